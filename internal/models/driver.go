package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver is the driver capability profile, one-to-one with User
// (unique index on user_id).
type Driver struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID            primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	LicenseNo         string             `json:"license_no" bson:"license_no" validate:"required"`
	CarName           string             `json:"car_name" bson:"car_name" validate:"required"`
	Seats             int                `json:"seats" bson:"seats" default:"4"`
	ReviewScoreDriver float64            `json:"review_score_driver" bson:"review_score_driver" default:"0"`
	TotalReviews      int64              `json:"total_reviews" bson:"total_reviews" default:"0"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// Rating returns the displayed rating, review score over review count.
func (d *Driver) Rating() float64 {
	if d.TotalReviews == 0 {
		return 0
	}
	return d.ReviewScoreDriver / float64(d.TotalReviews)
}

// HasVehicleDetails reports whether the profile is complete enough to
// publish rides.
func (d *Driver) HasVehicleDetails() bool {
	return d.LicenseNo != "" && d.CarName != ""
}
