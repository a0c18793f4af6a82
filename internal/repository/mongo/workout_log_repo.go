package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/repository"
)

const workoutLogCollectionName = "workoutLogs"

type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

func (r *mongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now
	if log.ExerciseLogs == nil {
		log.ExerciseLogs = []domain.ExerciseLog{}
	}

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoWorkoutLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	return decodeLog(r.collection.FindOne(ctx, bson.M{"_id": id}))
}

// Find returns logs matching every supplied filter field, most recent date first.
func (r *mongoWorkoutLogRepository) Find(ctx context.Context, filter domain.WorkoutLogFilter) ([]domain.WorkoutLog, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["userId"] = *filter.UserID
	}
	if filter.WorkoutID != nil {
		query["workoutId"] = *filter.WorkoutID
	}
	if filter.Date != nil {
		query["date"] = *filter.Date
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.WorkoutLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// Update replaces the mutable fields and returns the post-update document.
func (r *mongoWorkoutLogRepository) Update(ctx context.Context, id primitive.ObjectID, update domain.WorkoutLogUpdate) (*domain.WorkoutLog, error) {
	entries := update.ExerciseLogs
	if entries == nil {
		entries = []domain.ExerciseLog{}
	}
	set := bson.M{
		"userId":       update.UserID,
		"workoutId":    update.WorkoutID,
		"date":         update.Date,
		"exerciseLogs": entries,
		"updatedAt":    time.Now().UTC(),
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *mongoWorkoutLogRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	return decodeLog(r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}))
}

// PushExerciseLog appends one entry in place; concurrent appends never lose each other.
func (r *mongoWorkoutLogRepository) PushExerciseLog(ctx context.Context, id primitive.ObjectID, entry domain.ExerciseLog) (*domain.WorkoutLog, error) {
	update := bson.M{
		"$push": bson.M{"exerciseLogs": entry},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update)
}

// PullExerciseLogs removes every entry for exerciseID in place.
func (r *mongoWorkoutLogRepository) PullExerciseLogs(ctx context.Context, id, exerciseID primitive.ObjectID) (*domain.WorkoutLog, error) {
	update := bson.M{
		"$pull": bson.M{"exerciseLogs": bson.M{"exerciseId": exerciseID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *mongoWorkoutLogRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*domain.WorkoutLog, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeLog(r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts))
}

func decodeLog(result *mongo.SingleResult) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	if err := result.Decode(&log); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// EnsureWorkoutLogIndexes creates necessary indexes for the workoutLogs collection.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "workoutId", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
