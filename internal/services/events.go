package services

import (
	"context"

	"poolride/internal/models"
)

// EventKind names a ride lifecycle transition that produced side effects.
type EventKind string

const (
	EventRideCreated       EventKind = "ride.created"
	EventPassengerBooked   EventKind = "ride.passenger_booked"
	EventPassengerUnbooked EventKind = "ride.passenger_unbooked"
	EventRideCompleted     EventKind = "ride.completed"
	EventRideCancelled     EventKind = "ride.cancelled"
)

// Event carries everything the recorder needs to write history and
// notification rows without re-reading the ride.
type Event struct {
	Kind EventKind

	// Ride is the aggregate as read around the mutation.
	Ride *models.Ride

	// Actor is the user whose request produced the event: the driver's
	// user record for create/complete/cancel, the passenger for
	// book/unbook.
	Actor *models.User

	// DriverName is the display name stamped onto history rows.
	DriverName string
}

// Recorder consumes lifecycle events. Implementations are best-effort:
// they log failures and never propagate them, so a lost history row or
// notification cannot fail the ride mutation that produced it.
type Recorder interface {
	Record(ctx context.Context, event Event)
}
