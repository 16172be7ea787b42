package services

import (
	"context"
	"testing"

	"poolride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRecorderFixture() (*fakeHistoryRepo, *fakeNotificationRepo, *fakeGroupRepo, Recorder) {
	historyRepo := newFakeHistoryRepo()
	notificationRepo := newFakeNotificationRepo()
	groupRepo := newFakeGroupRepo()
	rec := NewRecorder(historyRepo, notificationRepo, groupRepo, testLogger())
	return historyRepo, notificationRepo, groupRepo, rec
}

func TestRecorderRideCreatedIsIdempotent(t *testing.T) {
	historyRepo, _, _, rec := newRecorderFixture()

	driverUser := &models.User{ID: primitive.NewObjectID(), FirstName: "Ada"}
	ride := &models.Ride{ID: primitive.NewObjectID()}
	event := Event{Kind: EventRideCreated, Ride: ride, Actor: driverUser, DriverName: "Ada"}

	rec.Record(context.Background(), event)
	rec.Record(context.Background(), event)

	entries, _ := historyRepo.GetByUser(context.Background(), driverUser.ID)
	if len(entries) != 1 {
		t.Fatalf("expected a single creation row, got %d", len(entries))
	}
	if entries[0].Message != models.HistoryRideCreated {
		t.Errorf("unexpected message %q", entries[0].Message)
	}
}

func TestRecorderFansOutToGroupsExcludingDriver(t *testing.T) {
	_, notificationRepo, groupRepo, rec := newRecorderFixture()

	driverID := primitive.NewObjectID()
	memberA := primitive.NewObjectID()
	memberB := primitive.NewObjectID()

	// Driver shares one group with A and B, another with just A. A gets
	// one notification per group.
	groupRepo.Create(context.Background(), &models.Group{
		GroupName: "commuters",
		Users:     []primitive.ObjectID{driverID, memberA, memberB},
	})
	groupRepo.Create(context.Background(), &models.Group{
		GroupName: "neighbors",
		Users:     []primitive.ObjectID{driverID, memberA},
	})

	ride := &models.Ride{ID: primitive.NewObjectID()}
	rec.Record(context.Background(), Event{
		Kind:  EventRideCreated,
		Ride:  ride,
		Actor: &models.User{ID: driverID},
	})

	forA, _ := notificationRepo.GetUnreadByUser(context.Background(), memberA)
	if len(forA) != 2 {
		t.Errorf("expected 2 notifications for member A, got %d", len(forA))
	}
	forB, _ := notificationRepo.GetUnreadByUser(context.Background(), memberB)
	if len(forB) != 1 {
		t.Errorf("expected 1 notification for member B, got %d", len(forB))
	}
	forDriver, _ := notificationRepo.GetUnreadByUser(context.Background(), driverID)
	if len(forDriver) != 0 {
		t.Errorf("driver should not be notified, got %d", len(forDriver))
	}
}

func TestRecorderCancellationRewritesHistory(t *testing.T) {
	historyRepo, notificationRepo, _, rec := newRecorderFixture()

	rideID := primitive.NewObjectID()
	driverID := primitive.NewObjectID()
	passengerID := primitive.NewObjectID()

	historyRepo.Create(context.Background(), &models.RideHistory{
		UserID: driverID, RideID: rideID, Message: models.HistoryRideCreated,
	})
	historyRepo.Create(context.Background(), &models.RideHistory{
		UserID: passengerID, RideID: rideID, Message: models.HistoryRideBooked,
	})
	notificationRepo.CreateMany(context.Background(), []*models.Notification{
		{UserID: passengerID, RideID: rideID, GroupID: primitive.NewObjectID()},
	})

	rec.Record(context.Background(), Event{
		Kind:  EventRideCancelled,
		Ride:  &models.Ride{ID: rideID},
		Actor: &models.User{ID: driverID},
	})

	for _, userID := range []primitive.ObjectID{driverID, passengerID} {
		entries, _ := historyRepo.GetByUser(context.Background(), userID)
		if len(entries) != 1 {
			t.Fatalf("cancellation should rewrite, not append: got %d rows", len(entries))
		}
		if entries[0].Message != models.HistoryRideCancelledDriver {
			t.Errorf("expected rewritten message, got %q", entries[0].Message)
		}
	}

	remaining, _ := notificationRepo.GetUnreadByUser(context.Background(), passengerID)
	if len(remaining) != 0 {
		t.Errorf("notifications not cleared on cancellation: %d left", len(remaining))
	}
}

func TestRecorderCompletionWritesRowPerPassenger(t *testing.T) {
	historyRepo, _, _, rec := newRecorderFixture()

	rideID := primitive.NewObjectID()
	p1 := primitive.NewObjectID()
	p2 := primitive.NewObjectID()
	ride := &models.Ride{
		ID: rideID,
		Passengers: []models.PassengerEntry{
			{UserID: p1, OTP: "111111"},
			{UserID: p2, OTP: "222222"},
		},
	}

	rec.Record(context.Background(), Event{
		Kind:       EventRideCompleted,
		Ride:       ride,
		Actor:      &models.User{ID: primitive.NewObjectID()},
		DriverName: "Ada",
	})

	for _, passengerID := range []primitive.ObjectID{p1, p2} {
		entries, _ := historyRepo.GetByUser(context.Background(), passengerID)
		if len(entries) != 1 || entries[0].Message != models.HistoryRideCompleted {
			t.Errorf("expected one completion row for passenger %s", passengerID.Hex())
		}
	}
}

func TestRecorderUnbookRewritesOnlyThatPassenger(t *testing.T) {
	historyRepo, _, _, rec := newRecorderFixture()

	rideID := primitive.NewObjectID()
	p1 := primitive.NewObjectID()
	p2 := primitive.NewObjectID()

	historyRepo.Create(context.Background(), &models.RideHistory{
		UserID: p1, RideID: rideID, Message: models.HistoryRideBooked,
	})
	historyRepo.Create(context.Background(), &models.RideHistory{
		UserID: p2, RideID: rideID, Message: models.HistoryRideBooked,
	})

	rec.Record(context.Background(), Event{
		Kind:  EventPassengerUnbooked,
		Ride:  &models.Ride{ID: rideID},
		Actor: &models.User{ID: p1},
	})

	entries, _ := historyRepo.GetByUser(context.Background(), p1)
	if entries[0].Message != models.HistoryRideCancelledUser {
		t.Errorf("expected rewritten message for unbooked passenger, got %q", entries[0].Message)
	}
	entries, _ = historyRepo.GetByUser(context.Background(), p2)
	if entries[0].Message != models.HistoryRideBooked {
		t.Errorf("other passenger's row was touched: %q", entries[0].Message)
	}
}
