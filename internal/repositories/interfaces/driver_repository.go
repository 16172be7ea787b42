package interfaces

import (
	"context"

	"poolride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverRepository interface {
	// Create inserts a new driver profile; ErrDuplicate if the user
	// already has one.
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// AddReview atomically accumulates a rating into the running
	// score/count pair.
	AddReview(ctx context.Context, id primitive.ObjectID, rating float64) error
}
