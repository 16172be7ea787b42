package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a social circle of users; new rides published by a member fan
// out notifications to the rest of the group.
type Group struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	GroupName  string               `json:"group_name" bson:"group_name" validate:"required"`
	Users      []primitive.ObjectID `json:"users" bson:"users"`
	GroupColor string               `json:"group_color" bson:"group_color" default:"#000000"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" bson:"updated_at"`
}

// HasMember reports whether a user belongs to the group.
func (g *Group) HasMember(userID primitive.ObjectID) bool {
	for _, u := range g.Users {
		if u == userID {
			return true
		}
	}
	return false
}
