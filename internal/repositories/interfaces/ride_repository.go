package interfaces

import (
	"context"

	"poolride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideRepository owns the ride aggregate. Every mutating method is a
// single conditional update keyed on the current status (and seat count
// or roster membership where relevant), so concurrent requests cannot
// break the seats + passengers invariant. Methods return
// ErrConditionFailed when the predicates matched nothing.
type RideRepository interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)

	// GetRelated returns rides where the user is the driver (via their
	// driver profile id, if any) or a passenger, newest first.
	GetRelated(ctx context.Context, driverID *primitive.ObjectID, userID primitive.ObjectID) ([]*models.Ride, error)

	// GetUnrelated returns the complement of GetRelated.
	GetUnrelated(ctx context.Context, driverID *primitive.ObjectID, userID primitive.ObjectID) ([]*models.Ride, error)

	// AddPassenger books a seat: requires status pending, seats > 0 and
	// the user not already on the roster; pushes the entry onto both
	// passengers and driver_validation_otps and decrements seats.
	AddPassenger(ctx context.Context, id primitive.ObjectID, entry models.PassengerEntry) error

	// RemovePassenger unbooks: requires status pending and roster
	// membership; pulls the user's entries from both lists and restores
	// one seat.
	RemovePassenger(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error

	// FinalizeBoarding flips pending to ongoing and clears the working
	// OTP list, keyed on the exact (user, otp) pair being present. This
	// is the only path out of pending besides cancellation.
	FinalizeBoarding(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, otp string) error

	// UpdateStatus transitions to the target status only from one of the
	// allowed source statuses.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.RideStatus, to models.RideStatus) error
}
