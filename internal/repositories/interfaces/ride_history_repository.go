package interfaces

import (
	"context"

	"poolride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideHistoryRepository interface {
	Create(ctx context.Context, entry *models.RideHistory) error

	// CreateIfAbsent inserts the entry unless a row for the same
	// (ride, user) pair already exists. Backs the idempotent ride
	// creation record.
	CreateIfAbsent(ctx context.Context, entry *models.RideHistory) error

	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.RideHistory, error)

	// RewriteMessageByRide overwrites the message of every existing row
	// for the ride without inserting new ones.
	RewriteMessageByRide(ctx context.Context, rideID primitive.ObjectID, message string) error

	// RewriteMessageByRideAndUser overwrites the message of the single
	// row for the (ride, user) pair.
	RewriteMessageByRideAndUser(ctx context.Context, rideID, userID primitive.ObjectID, message string) error
}
