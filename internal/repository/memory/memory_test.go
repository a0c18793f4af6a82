package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/repository"
)

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	_, err := users.Create(ctx, &domain.User{Username: "alice1", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{Username: "alice1", Email: "other@example.com"})
	assert.True(t, errors.Is(err, repository.ErrConflict))

	bobID, err := users.Create(ctx, &domain.User{Username: "bob2", Email: "b@example.com"})
	require.NoError(t, err)

	taken := "alice1"
	err = users.Update(ctx, bobID, domain.UserUpdate{Username: &taken})
	assert.True(t, errors.Is(err, repository.ErrConflict))

	same := "bob2"
	assert.NoError(t, users.Update(ctx, bobID, domain.UserUpdate{Username: &same}))

	shared := "a@example.com"
	assert.NoError(t, users.Update(ctx, bobID, domain.UserUpdate{Email: &shared}))
	_, err = users.Create(ctx, &domain.User{Username: "carol3", Email: "a@example.com"})
	assert.NoError(t, err)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	w := primitive.NewObjectID()
	id, err := users.Create(ctx, &domain.User{Username: "alice1", Email: "a@example.com", Workouts: []primitive.ObjectID{w}})
	require.NoError(t, err)

	got, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	got.Workouts[0] = primitive.NewObjectID()

	again, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, w, again.Workouts[0])
}

func TestFriendshipsAreSymmetric(t *testing.T) {
	ctx := context.Background()
	friends := NewStore().Friendships()
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, friends.Add(ctx, a, b))
	require.NoError(t, friends.Add(ctx, b, a))
	require.NoError(t, friends.Add(ctx, a, c))

	all, err := friends.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ofB, err := friends.ListFriends(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a}, ofB)

	require.NoError(t, friends.Remove(ctx, b, a))
	ofA, err := friends.ListFriends(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{c}, ofA)

	require.NoError(t, friends.RemoveAllFor(ctx, c))
	ofA, err = friends.ListFriends(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, ofA)
}

func TestWorkoutLogMutations(t *testing.T) {
	ctx := context.Background()
	logs := NewStore().WorkoutLogs()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	squat := primitive.NewObjectID()
	lunge := primitive.NewObjectID()

	id, err := logs.Create(ctx, &domain.WorkoutLog{UserID: primitive.NewObjectID(), WorkoutID: primitive.NewObjectID(), Date: day})
	require.NoError(t, err)

	_, err = logs.PushExerciseLog(ctx, id, domain.ExerciseLog{ExerciseID: squat, Name: "squat", Sets: 3, Reps: 5})
	require.NoError(t, err)
	got, err := logs.PushExerciseLog(ctx, id, domain.ExerciseLog{ExerciseID: lunge, Name: "lunge", Sets: 3, Reps: 10})
	require.NoError(t, err)
	require.Len(t, got.ExerciseLogs, 2)
	assert.Equal(t, lunge, got.ExerciseLogs[1].ExerciseID)

	got, err = logs.PullExerciseLogs(ctx, id, squat)
	require.NoError(t, err)
	require.Len(t, got.ExerciseLogs, 1)
	assert.Equal(t, lunge, got.ExerciseLogs[0].ExerciseID)

	_, err = logs.Delete(ctx, id)
	require.NoError(t, err)
	_, err = logs.Delete(ctx, id)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	_, err = logs.PushExerciseLog(ctx, id, domain.ExerciseLog{})
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestExerciseFind(t *testing.T) {
	ctx := context.Background()
	exercises := NewStore().Exercises()

	for _, ex := range []domain.Exercise{
		{Name: "b lunge", BodyPart: "upper legs", Equipment: "barbell", Target: "glutes"},
		{Name: "a squat", BodyPart: "upper legs", Equipment: "barbell", Target: "quads"},
		{Name: "curl", BodyPart: "upper arms", Equipment: "dumbbell", Target: "biceps"},
	} {
		ex := ex
		_, err := exercises.Create(ctx, &ex)
		require.NoError(t, err)
	}

	legs, err := exercises.Find(ctx, domain.ExerciseFilter{BodyPart: "upper legs"})
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, "a squat", legs[0].Name)

	all, err := exercises.Find(ctx, domain.ExerciseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = exercises.GetByName(ctx, "missing")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
