package interfaces

import (
	"context"

	"poolride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepository interface {
	// CreateMany bulk-inserts fan-out rows. A no-op on an empty slice.
	CreateMany(ctx context.Context, notifications []*models.Notification) error

	// DeleteByRide removes every notification for a ride. Called when
	// the ride leaves the pending state.
	DeleteByRide(ctx context.Context, rideID primitive.ObjectID) error

	GetUnreadByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error)
}
