package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// constraints back the one-profile-per-user and one-subject-per-user
// invariants; the compound ride history index backs the idempotent
// creation record and per-passenger message rewrites.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "firebase_uid", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		"drivers": {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		"rides": {
			{Keys: bson.D{{Key: "driver_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "passengers.user_id", Value: 1}}},
			{Keys: bson.D{{Key: "date_time", Value: -1}}},
		},
		"groups": {
			{
				Keys:    bson.D{{Key: "group_name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "users", Value: 1}}},
		},
		"ride_histories": {
			{Keys: bson.D{{Key: "ride_id", Value: 1}, {Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "ride_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}

	return nil
}
