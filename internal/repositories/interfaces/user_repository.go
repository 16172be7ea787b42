package interfaces

import (
	"context"
	"errors"

	"poolride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by lookups that matched no document.
var ErrNotFound = errors.New("not found")

// ErrConditionFailed is returned by conditional updates whose predicates
// matched no document. The caller re-reads the aggregate to classify the
// failure.
var ErrConditionFailed = errors.New("update conditions not met")

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("duplicate record")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetBySubject(ctx context.Context, firebaseUID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpsertBySubject creates or fully overwrites the profile fields for
	// the given external subject and returns the stored record.
	UpsertBySubject(ctx context.Context, firebaseUID string, user *models.User) (*models.User, error)

	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
}
