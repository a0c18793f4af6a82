package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/repository"
)

const friendshipCollectionName = "friendships"

// mongoFriendshipRepository keeps one document per unordered user pair.
// The pair key is the _id, so both directions of a friendship share it.
type mongoFriendshipRepository struct {
	collection *mongo.Collection
}

func NewMongoFriendshipRepository(db *mongo.Database) repository.FriendshipRepository {
	return &mongoFriendshipRepository{
		collection: db.Collection(friendshipCollectionName),
	}
}

// Add upserts the edge; an existing edge is left as is.
func (r *mongoFriendshipRepository) Add(ctx context.Context, a, b primitive.ObjectID) error {
	edge := domain.NewFriendship(a, b)
	update := bson.M{
		"$setOnInsert": bson.M{
			"users":     edge.Users,
			"createdAt": time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": edge.ID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *mongoFriendshipRepository) Remove(ctx context.Context, a, b primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": domain.FriendshipKey(a, b)})
	return err
}

func (r *mongoFriendshipRepository) ListFriends(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	edges, err := r.find(ctx, bson.M{"users": userID})
	if err != nil {
		return nil, err
	}
	friends := make([]primitive.ObjectID, 0, len(edges))
	for _, edge := range edges {
		friends = append(friends, edge.Other(userID))
	}
	return friends, nil
}

func (r *mongoFriendshipRepository) ListAll(ctx context.Context) ([]domain.Friendship, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoFriendshipRepository) find(ctx context.Context, filter bson.M) ([]domain.Friendship, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	edges := []domain.Friendship{}
	if err = cursor.All(ctx, &edges); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return edges, nil
}

// RemoveAllFor drops every edge touching userID, used when a user is deleted.
func (r *mongoFriendshipRepository) RemoveAllFor(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"users": userID})
	return err
}

// EnsureFriendshipIndexes indexes the multikey users array for ListFriends.
func EnsureFriendshipIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "users", Value: 1}},
	})
	return err
}
