package interfaces

import (
	"context"

	"poolride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	GetByMember(ctx context.Context, userID primitive.ObjectID) ([]*models.Group, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	AddUser(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Group, error)
	RemoveUser(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Group, error)
}
