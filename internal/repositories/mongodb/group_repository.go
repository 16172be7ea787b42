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

type groupRepository struct {
	collection *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) interfaces.GroupRepository {
	return &groupRepository{
		collection: db.Collection("groups"),
	}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	group.ID = primitive.NewObjectID()
	group.CreatedAt = time.Now()
	group.UpdatedAt = group.CreatedAt
	if group.Users == nil {
		group.Users = []primitive.ObjectID{}
	}

	_, err := r.collection.InsertOne(ctx, group)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var group models.Group
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &group, nil
}

func (r *groupRepository) GetByMember(ctx context.Context, userID primitive.ObjectID) ([]*models.Group, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"users": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to find groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []*models.Group
	for cursor.Next(ctx) {
		var group models.Group
		if err := cursor.Decode(&group); err != nil {
			return nil, fmt.Errorf("failed to decode group: %w", err)
		}
		groups = append(groups, &group)
	}

	return groups, nil
}

func (r *groupRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	return nil
}

func (r *groupRepository) AddUser(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Group, error) {
	return r.updateMembership(ctx, id, bson.M{"$addToSet": bson.M{"users": userID}})
}

func (r *groupRepository) RemoveUser(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Group, error) {
	return r.updateMembership(ctx, id, bson.M{"$pull": bson.M{"users": userID}})
}

func (r *groupRepository) updateMembership(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Group, error) {
	update["$set"] = bson.M{"updated_at": time.Now()}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var group models.Group
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update group membership: %w", err)
	}

	return &group, nil
}
