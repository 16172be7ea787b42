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

// Cache is the subset of the redis client the ride repository uses.
// A nil cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const rideCacheTTL = 5 * time.Minute

type rideRepository struct {
	collection *mongo.Collection
	cache      Cache
}

func NewRideRepository(db *mongo.Database, cache Cache) interfaces.RideRepository {
	return &rideRepository{
		collection: db.Collection("rides"),
		cache:      cache,
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	ride.Status = models.RideStatusPending
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = ride.CreatedAt
	if ride.Passengers == nil {
		ride.Passengers = []models.PassengerEntry{}
	}
	if ride.DriverValidationOTPs == nil {
		ride.DriverValidationOTPs = []models.PassengerEntry{}
	}

	_, err := r.collection.InsertOne(ctx, ride)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	if ride := r.getRideFromCache(ctx, id.Hex()); ride != nil {
		return ride, nil
	}

	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	// Only pending rides are worth caching; they are the hot read path
	// for the booking UI.
	if ride.Status == models.RideStatusPending {
		r.cacheRide(ctx, &ride)
	}

	return &ride, nil
}

func (r *rideRepository) GetRelated(ctx context.Context, driverID *primitive.ObjectID, userID primitive.ObjectID) ([]*models.Ride, error) {
	or := []bson.M{
		{"passengers.user_id": userID},
	}
	if driverID != nil {
		or = append(or, bson.M{"driver_id": *driverID})
	}

	return r.findRides(ctx, bson.M{"$or": or})
}

func (r *rideRepository) GetUnrelated(ctx context.Context, driverID *primitive.ObjectID, userID primitive.ObjectID) ([]*models.Ride, error) {
	nor := []bson.M{
		{"passengers.user_id": userID},
	}
	if driverID != nil {
		nor = append(nor, bson.M{"driver_id": *driverID})
	}

	return r.findRides(ctx, bson.M{"$nor": nor})
}

func (r *rideRepository) AddPassenger(ctx context.Context, id primitive.ObjectID, entry models.PassengerEntry) error {
	filter := bson.M{
		"_id":                id,
		"status":             models.RideStatusPending,
		"seats":              bson.M{"$gt": 0},
		"passengers.user_id": bson.M{"$ne": entry.UserID},
	}
	update := bson.M{
		"$push": bson.M{
			"passengers":             entry,
			"driver_validation_otps": entry,
		},
		"$inc": bson.M{"seats": -1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add passenger: %w", err)
	}
	if res.MatchedCount == 0 {
		return interfaces.ErrConditionFailed
	}

	r.invalidateRideCache(ctx, id.Hex())
	return nil
}

func (r *rideRepository) RemovePassenger(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id":                id,
		"status":             models.RideStatusPending,
		"passengers.user_id": userID,
	}
	update := bson.M{
		"$pull": bson.M{
			"passengers":             bson.M{"user_id": userID},
			"driver_validation_otps": bson.M{"user_id": userID},
		},
		"$inc": bson.M{"seats": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove passenger: %w", err)
	}
	if res.MatchedCount == 0 {
		return interfaces.ErrConditionFailed
	}

	r.invalidateRideCache(ctx, id.Hex())
	return nil
}

func (r *rideRepository) FinalizeBoarding(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID, otp string) error {
	filter := bson.M{
		"_id":    id,
		"status": models.RideStatusPending,
		"driver_validation_otps": bson.M{
			"$elemMatch": bson.M{"user_id": userID, "otp": otp},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"status":                 models.RideStatusOngoing,
			"driver_validation_otps": []models.PassengerEntry{},
			"updated_at":             time.Now(),
		},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to finalize boarding: %w", err)
	}
	if res.MatchedCount == 0 {
		return interfaces.ErrConditionFailed
	}

	r.invalidateRideCache(ctx, id.Hex())
	return nil
}

func (r *rideRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.RideStatus, to models.RideStatus) error {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": from},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": time.Now(),
		},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update ride status: %w", err)
	}
	if res.MatchedCount == 0 {
		return interfaces.ErrConditionFailed
	}

	r.invalidateRideCache(ctx, id.Hex())
	return nil
}

func (r *rideRepository) findRides(ctx context.Context, filter bson.M) ([]*models.Ride, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date_time", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find rides: %w", err)
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	for cursor.Next(ctx) {
		var ride models.Ride
		if err := cursor.Decode(&ride); err != nil {
			return nil, fmt.Errorf("failed to decode ride: %w", err)
		}
		rides = append(rides, &ride)
	}

	return rides, nil
}

func (r *rideRepository) cacheRide(ctx context.Context, ride *models.Ride) {
	if r.cache != nil {
		cacheKey := fmt.Sprintf("ride:%s", ride.ID.Hex())
		r.cache.Set(ctx, cacheKey, ride, rideCacheTTL)
	}
}

func (r *rideRepository) getRideFromCache(ctx context.Context, rideID string) *models.Ride {
	if r.cache == nil {
		return nil
	}

	cacheKey := fmt.Sprintf("ride:%s", rideID)
	var ride models.Ride
	if err := r.cache.Get(ctx, cacheKey, &ride); err != nil {
		return nil
	}

	return &ride
}

func (r *rideRepository) invalidateRideCache(ctx context.Context, rideID string) {
	if r.cache != nil {
		cacheKey := fmt.Sprintf("ride:%s", rideID)
		r.cache.Delete(ctx, cacheKey)
	}
}
