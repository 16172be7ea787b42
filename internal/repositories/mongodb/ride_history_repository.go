package mongodb

import (
	"context"
	"fmt"
	"time"

	"poolride/internal/models"
	"poolride/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type rideHistoryRepository struct {
	collection *mongo.Collection
}

func NewRideHistoryRepository(db *mongo.Database) interfaces.RideHistoryRepository {
	return &rideHistoryRepository{
		collection: db.Collection("ride_histories"),
	}
}

func (r *rideHistoryRepository) Create(ctx context.Context, entry *models.RideHistory) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create ride history: %w", err)
	}

	return nil
}

func (r *rideHistoryRepository) CreateIfAbsent(ctx context.Context, entry *models.RideHistory) error {
	filter := bson.M{
		"ride_id": entry.RideID,
		"user_id": entry.UserID,
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check ride history existence: %w", err)
	}
	if count > 0 {
		return nil
	}

	return r.Create(ctx, entry)
}

func (r *rideHistoryRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.RideHistory, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find ride history: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.RideHistory
	for cursor.Next(ctx) {
		var entry models.RideHistory
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode ride history: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *rideHistoryRepository) RewriteMessageByRide(ctx context.Context, rideID primitive.ObjectID, message string) error {
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"ride_id": rideID},
		bson.M{"$set": bson.M{"message": message, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to rewrite ride history messages: %w", err)
	}

	return nil
}

func (r *rideHistoryRepository) RewriteMessageByRideAndUser(ctx context.Context, rideID, userID primitive.ObjectID, message string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"ride_id": rideID, "user_id": userID},
		bson.M{"$set": bson.M{"message": message, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to rewrite ride history message: %w", err)
	}

	return nil
}
