package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the internal record behind an external identity-provider subject.
// FirebaseUID is the opaque verified subject; it is unique per user.
type User struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirebaseUID      string             `json:"firebase_uid" bson:"firebase_uid" validate:"required"`
	FirstName        string             `json:"first_name" bson:"first_name"`
	LastName         string             `json:"last_name" bson:"last_name"`
	Email            string             `json:"email" bson:"email" validate:"required,email"`
	Phone            string             `json:"phone" bson:"phone"`
	ProfilePhoto     string             `json:"profile_photo" bson:"profile_photo"`
	ReviewScoreUser  float64            `json:"review_score_user" bson:"review_score_user" default:"0"`
	TotalReviews     int64              `json:"total_reviews" bson:"total_reviews" default:"0"`
	Wallet           float64            `json:"wallet" bson:"wallet" default:"0"`
	EmergencyPhone   string             `json:"emergencyphone" bson:"emergencyphone"`
	LicenseValidated bool               `json:"license_validated" bson:"license_validated" default:"false"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// FullName is the display name used on ride history entries.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
