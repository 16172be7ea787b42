package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusOngoing   RideStatus = "ongoing"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// rideTransitions is the only source of truth for the ride state machine.
// Completed and cancelled are terminal.
var rideTransitions = map[RideStatus][]RideStatus{
	RideStatusPending: {RideStatusOngoing, RideStatusCancelled},
	RideStatusOngoing: {RideStatusCompleted, RideStatusCancelled},
}

// CanTransition reports whether a ride may move from one status to another.
func CanTransition(from, to RideStatus) bool {
	for _, next := range rideTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(status RideStatus) bool {
	return len(rideTransitions[status]) == 0
}

// PassengerEntry binds a booked passenger to their boarding OTP. The same
// shape backs both the passenger roster and the driver's validation list;
// lookups are keyed by (user_id, otp), so OTP collisions between
// passengers are harmless.
type PassengerEntry struct {
	UserID primitive.ObjectID `json:"user_id" bson:"user_id"`
	OTP    string             `json:"-" bson:"otp"`
}

// Ride is the central aggregate. From/To, coordinates, cost, date_time
// and driver_id are immutable after creation; seats, status, passengers
// and driver_validation_otps mutate only through the conditional updates
// in the ride repository.
type Ride struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	From                 string             `json:"from" bson:"from" validate:"required"`
	To                   string             `json:"to" bson:"to" validate:"required"`
	Cost                 float64            `json:"cost" bson:"cost" validate:"required"`
	DateTime             time.Time          `json:"date_time" bson:"date_time" validate:"required"`
	DriverID             primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	Seats                int                `json:"seats" bson:"seats" validate:"required"`
	Passengers           []PassengerEntry   `json:"passengers" bson:"passengers"`
	DriverValidationOTPs []PassengerEntry   `json:"-" bson:"driver_validation_otps"`
	Status               RideStatus         `json:"status" bson:"status" default:"pending"`
	FromCoordinates      []float64          `json:"from_coordinates" bson:"from_coordinates" validate:"required"`
	ToCoordinates        []float64          `json:"to_coordinates" bson:"to_coordinates" validate:"required"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" bson:"updated_at"`
}

// PassengerEntryFor returns the roster entry for a user, if present.
func (r *Ride) PassengerEntryFor(userID primitive.ObjectID) (PassengerEntry, bool) {
	for _, p := range r.Passengers {
		if p.UserID == userID {
			return p, true
		}
	}
	return PassengerEntry{}, false
}

// HasPassenger reports whether a user is on the roster.
func (r *Ride) HasPassenger(userID primitive.ObjectID) bool {
	_, ok := r.PassengerEntryFor(userID)
	return ok
}

// HasValidationOTP reports whether the exact (user, otp) pair is still in
// the driver's working validation list.
func (r *Ride) HasValidationOTP(userID primitive.ObjectID, otp string) bool {
	for _, e := range r.DriverValidationOTPs {
		if e.UserID == userID && e.OTP == otp {
			return true
		}
	}
	return false
}
