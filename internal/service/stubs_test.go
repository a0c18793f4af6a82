package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

// flakyFriendships fails the selected calls and delegates the rest.
type flakyFriendships struct {
	repository.FriendshipRepository
	failAdd       bool
	failRemoveAll bool
}

func (f *flakyFriendships) Add(ctx context.Context, a, b primitive.ObjectID) error {
	if f.failAdd {
		return errStoreDown
	}
	return f.FriendshipRepository.Add(ctx, a, b)
}

func (f *flakyFriendships) RemoveAllFor(ctx context.Context, userID primitive.ObjectID) error {
	if f.failRemoveAll {
		return errStoreDown
	}
	return f.FriendshipRepository.RemoveAllFor(ctx, userID)
}

// noStore fails the test on any repository call. Operations given a
// malformed id must reject it before reaching the store.
type noStore struct{ t *testing.T }

func (n noStore) called(method string) error {
	n.t.Helper()
	n.t.Errorf("unexpected store call: %s", method)
	return errStoreDown
}

type noExerciseStore struct{ noStore }

func (n noExerciseStore) Create(context.Context, *domain.Exercise) (primitive.ObjectID, error) {
	return primitive.NilObjectID, n.called("exercises.Create")
}

func (n noExerciseStore) GetByID(context.Context, primitive.ObjectID) (*domain.Exercise, error) {
	return nil, n.called("exercises.GetByID")
}

func (n noExerciseStore) GetByName(context.Context, string) (*domain.Exercise, error) {
	return nil, n.called("exercises.GetByName")
}

func (n noExerciseStore) Find(context.Context, domain.ExerciseFilter) ([]domain.Exercise, error) {
	return nil, n.called("exercises.Find")
}

type noUserStore struct{ noStore }

func (n noUserStore) Create(context.Context, *domain.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, n.called("users.Create")
}

func (n noUserStore) GetByID(context.Context, primitive.ObjectID) (*domain.User, error) {
	return nil, n.called("users.GetByID")
}

func (n noUserStore) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, n.called("users.GetByUsername")
}

func (n noUserStore) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, n.called("users.GetByEmail")
}

func (n noUserStore) GetProfileByID(context.Context, primitive.ObjectID) (*domain.UserProfile, error) {
	return nil, n.called("users.GetProfileByID")
}

func (n noUserStore) GetProfileByUsername(context.Context, string) (*domain.UserProfile, error) {
	return nil, n.called("users.GetProfileByUsername")
}

func (n noUserStore) GetAll(context.Context) ([]domain.User, error) {
	return nil, n.called("users.GetAll")
}

func (n noUserStore) Update(context.Context, primitive.ObjectID, domain.UserUpdate) error {
	return n.called("users.Update")
}

func (n noUserStore) Delete(context.Context, primitive.ObjectID) error {
	return n.called("users.Delete")
}

type noFriendshipStore struct{ noStore }

func (n noFriendshipStore) Add(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return n.called("friendships.Add")
}

func (n noFriendshipStore) Remove(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return n.called("friendships.Remove")
}

func (n noFriendshipStore) ListFriends(context.Context, primitive.ObjectID) ([]primitive.ObjectID, error) {
	return nil, n.called("friendships.ListFriends")
}

func (n noFriendshipStore) ListAll(context.Context) ([]domain.Friendship, error) {
	return nil, n.called("friendships.ListAll")
}

func (n noFriendshipStore) RemoveAllFor(context.Context, primitive.ObjectID) error {
	return n.called("friendships.RemoveAllFor")
}

type noWorkoutStore struct{ noStore }

func (n noWorkoutStore) Create(context.Context, *domain.Workout) (primitive.ObjectID, error) {
	return primitive.NilObjectID, n.called("workouts.Create")
}

func (n noWorkoutStore) GetByID(context.Context, primitive.ObjectID) (*domain.Workout, error) {
	return nil, n.called("workouts.GetByID")
}

func (n noWorkoutStore) GetByCreator(context.Context, string) ([]domain.Workout, error) {
	return nil, n.called("workouts.GetByCreator")
}

func (n noWorkoutStore) GetByName(context.Context, string) ([]domain.Workout, error) {
	return nil, n.called("workouts.GetByName")
}

func (n noWorkoutStore) GetAll(context.Context) ([]domain.Workout, error) {
	return nil, n.called("workouts.GetAll")
}

type noWorkoutLogStore struct{ noStore }

func (n noWorkoutLogStore) Create(context.Context, *domain.WorkoutLog) (primitive.ObjectID, error) {
	return primitive.NilObjectID, n.called("workoutLogs.Create")
}

func (n noWorkoutLogStore) GetByID(context.Context, primitive.ObjectID) (*domain.WorkoutLog, error) {
	return nil, n.called("workoutLogs.GetByID")
}

func (n noWorkoutLogStore) Find(context.Context, domain.WorkoutLogFilter) ([]domain.WorkoutLog, error) {
	return nil, n.called("workoutLogs.Find")
}

func (n noWorkoutLogStore) Update(context.Context, primitive.ObjectID, domain.WorkoutLogUpdate) (*domain.WorkoutLog, error) {
	return nil, n.called("workoutLogs.Update")
}

func (n noWorkoutLogStore) Delete(context.Context, primitive.ObjectID) (*domain.WorkoutLog, error) {
	return nil, n.called("workoutLogs.Delete")
}

func (n noWorkoutLogStore) PushExerciseLog(context.Context, primitive.ObjectID, domain.ExerciseLog) (*domain.WorkoutLog, error) {
	return nil, n.called("workoutLogs.PushExerciseLog")
}

func (n noWorkoutLogStore) PullExerciseLogs(context.Context, primitive.ObjectID, primitive.ObjectID) (*domain.WorkoutLog, error) {
	return nil, n.called("workoutLogs.PullExerciseLogs")
}

// Compile-time checks that the stubs satisfy the store interfaces.
var (
	_ repository.ExerciseRepository   = noExerciseStore{}
	_ repository.UserRepository       = noUserStore{}
	_ repository.FriendshipRepository = noFriendshipStore{}
	_ repository.WorkoutRepository    = noWorkoutStore{}
	_ repository.WorkoutLogRepository = noWorkoutLogStore{}
)
