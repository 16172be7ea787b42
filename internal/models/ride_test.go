package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from RideStatus
		to   RideStatus
		want bool
	}{
		{RideStatusPending, RideStatusOngoing, true},
		{RideStatusPending, RideStatusCancelled, true},
		{RideStatusPending, RideStatusCompleted, false},
		{RideStatusOngoing, RideStatusCompleted, true},
		{RideStatusOngoing, RideStatusCancelled, true},
		{RideStatusOngoing, RideStatusPending, false},
		{RideStatusCompleted, RideStatusPending, false},
		{RideStatusCompleted, RideStatusCancelled, false},
		{RideStatusCancelled, RideStatusPending, false},
		{RideStatusCancelled, RideStatusOngoing, false},
		{RideStatusPending, RideStatusPending, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(RideStatusPending) || IsTerminal(RideStatusOngoing) {
		t.Error("pending and ongoing must not be terminal")
	}
	if !IsTerminal(RideStatusCompleted) || !IsTerminal(RideStatusCancelled) {
		t.Error("completed and cancelled must be terminal")
	}
}

func TestPassengerLookups(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	ride := &Ride{
		Passengers: []PassengerEntry{
			{UserID: alice, OTP: "123456"},
			{UserID: bob, OTP: "123456"}, // same code, different user
		},
		DriverValidationOTPs: []PassengerEntry{
			{UserID: alice, OTP: "123456"},
			{UserID: bob, OTP: "123456"},
		},
	}

	if !ride.HasPassenger(alice) || !ride.HasPassenger(bob) {
		t.Error("expected both passengers on roster")
	}
	if ride.HasPassenger(carol) {
		t.Error("carol should not be on roster")
	}

	entry, ok := ride.PassengerEntryFor(bob)
	if !ok || entry.OTP != "123456" {
		t.Error("expected bob's entry with his code")
	}

	// Duplicate codes stay distinguishable because lookups pair user and code.
	if !ride.HasValidationOTP(alice, "123456") || !ride.HasValidationOTP(bob, "123456") {
		t.Error("expected both pairs to validate")
	}
	if ride.HasValidationOTP(carol, "123456") {
		t.Error("carol must not validate with someone else's code")
	}
	if ride.HasValidationOTP(alice, "654321") {
		t.Error("wrong code must not validate")
	}
}
