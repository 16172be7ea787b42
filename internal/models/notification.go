package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a transient new-ride announcement. One row per
// (member, group) pair of every group the publishing driver belongs to;
// rows are bulk-deleted when the ride leaves the pending state.
type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	GroupID   primitive.ObjectID `json:"group_id" bson:"group_id" validate:"required"`
	RideID    primitive.ObjectID `json:"ride_id" bson:"ride_id" validate:"required"`
	Read      bool               `json:"read" bson:"read" default:"false"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
