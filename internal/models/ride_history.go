package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// History messages. Cancellation rewrites existing rows in place instead
// of appending new ones.
const (
	HistoryRideCreated         = "Ride created by driver"
	HistoryRideBooked          = "Ride booked"
	HistoryRideCompleted       = "Ride completed"
	HistoryRideCancelledDriver = "Ride cancelled by driver"
	HistoryRideCancelledUser   = "Ride cancelled by user"
)

// RideHistory is an audit trail entry tied to one user and one ride.
type RideHistory struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	RideID     primitive.ObjectID `json:"ride_id" bson:"ride_id" validate:"required"`
	DriverName string             `json:"driver_name" bson:"driver_name" validate:"required"`
	Message    string             `json:"message" bson:"message" validate:"required"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
