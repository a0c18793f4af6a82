package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/apperror"
	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/repository/memory"
)

func newWorkoutLogService(t *testing.T) WorkoutLogService {
	t.Helper()
	return NewWorkoutLogService(memory.NewStore().WorkoutLogs())
}

func logEntry(id primitive.ObjectID, name string, sets, reps int) domain.ExerciseLogInput {
	return domain.ExerciseLogInput{ExerciseID: id.Hex(), Name: name, Sets: intPtr(sets), Reps: intPtr(reps)}
}

func TestWorkoutLogService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newWorkoutLogService(t)
	user, workout, squat := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	in := logEntry(squat, "  barbell full squat ", 4, 8)
	in.Notes = "felt heavy"
	log, err := svc.Create(ctx, domain.WorkoutLogInput{
		UserID:       user.Hex(),
		WorkoutID:    workout.Hex(),
		Date:         "2024-03-15T18:30:00-05:00",
		ExerciseLogs: []domain.ExerciseLogInput{in},
	})
	require.NoError(t, err)
	assert.False(t, log.ID.IsZero())

	got, err := svc.GetByID(ctx, log.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user, got.UserID)
	assert.Equal(t, workout, got.WorkoutID)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got.Date)
	require.Len(t, got.ExerciseLogs, 1)
	assert.Equal(t, domain.ExerciseLog{ExerciseID: squat, Name: "barbell full squat", Sets: 4, Reps: 8, Notes: "felt heavy"}, got.ExerciseLogs[0])
}

func TestWorkoutLogService_CreateValidation(t *testing.T) {
	user, workout := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()
	good := logEntry(primitive.NewObjectID(), "squat", 3, 5)
	blankName := logEntry(primitive.NewObjectID(), "   ", 3, 5)

	tests := []struct {
		name      string
		input     domain.WorkoutLogInput
		wantField string
	}{
		{"bad user", domain.WorkoutLogInput{UserID: "x", WorkoutID: workout, Date: "2024-03-15"}, "userId"},
		{"missing workout", domain.WorkoutLogInput{UserID: user, Date: "2024-03-15"}, "workoutId"},
		{"bad date", domain.WorkoutLogInput{UserID: user, WorkoutID: workout, Date: "someday"}, "date"},
		{"blank entry name", domain.WorkoutLogInput{UserID: user, WorkoutID: workout, Date: "2024-03-15",
			ExerciseLogs: []domain.ExerciseLogInput{good, blankName}}, "exerciseLogs[1].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newWorkoutLogService(t)
			_, err := svc.Create(context.Background(), tt.input)
			require.ErrorIs(t, err, apperror.ErrInvalidArgument)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantField, appErr.Field)
		})
	}
}

func TestWorkoutLogService_AddAndRemoveExercise(t *testing.T) {
	ctx := context.Background()
	svc := newWorkoutLogService(t)
	squat, lunge := primitive.NewObjectID(), primitive.NewObjectID()

	log, err := svc.Create(ctx, domain.WorkoutLogInput{
		UserID:       primitive.NewObjectID().Hex(),
		WorkoutID:    primitive.NewObjectID().Hex(),
		Date:         "2024-03-15",
		ExerciseLogs: []domain.ExerciseLogInput{logEntry(squat, "squat", 3, 5)},
	})
	require.NoError(t, err)
	id := log.ID.Hex()

	updated, err := svc.AddExercise(ctx, id, logEntry(lunge, "lunge", 3, 10))
	require.NoError(t, err)
	require.Len(t, updated.ExerciseLogs, 2)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.ExerciseLogs, 2)
	assert.Equal(t, squat, got.ExerciseLogs[0].ExerciseID)
	assert.Equal(t, 5, got.ExerciseLogs[0].Reps)
	assert.Equal(t, lunge, got.ExerciseLogs[1].ExerciseID)

	missingSets := logEntry(lunge, "lunge", 3, 10)
	missingSets.Sets = nil
	_, err = svc.AddExercise(ctx, id, missingSets)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	updated, err = svc.RemoveExercise(ctx, id, squat.Hex())
	require.NoError(t, err)
	require.Len(t, updated.ExerciseLogs, 1)
	assert.Equal(t, lunge, updated.ExerciseLogs[0].ExerciseID)

	unchanged, err := svc.RemoveExercise(ctx, id, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Len(t, unchanged.ExerciseLogs, 1)

	_, err = svc.AddExercise(ctx, primitive.NewObjectID().Hex(), logEntry(lunge, "lunge", 3, 10))
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.RemoveExercise(ctx, id, "lunge")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestWorkoutLogService_DeleteLog(t *testing.T) {
	ctx := context.Background()
	svc := newWorkoutLogService(t)

	_, err := svc.DeleteLog(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	log, err := svc.Create(ctx, domain.WorkoutLogInput{
		UserID:    primitive.NewObjectID().Hex(),
		WorkoutID: primitive.NewObjectID().Hex(),
		Date:      "2024-03-15",
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteLog(ctx, log.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, log.ID, deleted.ID)

	_, err = svc.DeleteLog(ctx, log.ID.Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestWorkoutLogService_UpdateLog(t *testing.T) {
	ctx := context.Background()
	svc := newWorkoutLogService(t)
	user := primitive.NewObjectID()

	log, err := svc.Create(ctx, domain.WorkoutLogInput{
		UserID:    user.Hex(),
		WorkoutID: primitive.NewObjectID().Hex(),
		Date:      "2024-03-15",
	})
	require.NoError(t, err)

	otherWorkout := primitive.NewObjectID()
	updated, err := svc.UpdateLog(ctx, log.ID.Hex(), domain.WorkoutLogInput{
		UserID:       user.Hex(),
		WorkoutID:    otherWorkout.Hex(),
		Date:         "2024-03-16",
		ExerciseLogs: []domain.ExerciseLogInput{logEntry(primitive.NewObjectID(), "row", 4, 8)},
	})
	require.NoError(t, err)
	assert.Equal(t, otherWorkout, updated.WorkoutID)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), updated.Date)
	assert.Len(t, updated.ExerciseLogs, 1)

	_, err = svc.UpdateLog(ctx, primitive.NewObjectID().Hex(), domain.WorkoutLogInput{
		UserID:    user.Hex(),
		WorkoutID: otherWorkout.Hex(),
		Date:      "2024-03-16",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.UpdateLog(ctx, log.ID.Hex(), domain.WorkoutLogInput{UserID: user.Hex()})
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestWorkoutLogService_Queries(t *testing.T) {
	ctx := context.Background()
	svc := newWorkoutLogService(t)
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	legs, push := primitive.NewObjectID(), primitive.NewObjectID()

	for _, l := range []struct {
		user, workout primitive.ObjectID
		date          string
	}{
		{alice, legs, "2024-03-15"},
		{alice, push, "2024-03-16"},
		{bob, legs, "2024-03-15"},
	} {
		_, err := svc.Create(ctx, domain.WorkoutLogInput{UserID: l.user.Hex(), WorkoutID: l.workout.Hex(), Date: l.date})
		require.NoError(t, err)
	}

	byAlice, err := svc.GetByUser(ctx, alice.Hex())
	require.NoError(t, err)
	assert.Len(t, byAlice, 2)

	byLegs, err := svc.GetByWorkout(ctx, legs.Hex())
	require.NoError(t, err)
	assert.Len(t, byLegs, 2)

	onDay, err := svc.GetByDate(ctx, "2024-03-15T23:59:00Z")
	require.NoError(t, err)
	assert.Len(t, onDay, 2)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	unfiltered, err := svc.FilterLogs(ctx, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, all, unfiltered)

	both, err := svc.FilterLogs(ctx, alice.Hex(), legs.Hex(), "")
	require.NoError(t, err)
	assert.Len(t, both, 1)

	none, err := svc.FilterLogs(ctx, bob.Hex(), "", "2024-03-16")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.FilterLogs(ctx, "nope", "", "")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = svc.GetByDate(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = svc.GetByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestWorkoutLogService_MalformedIDsFailBeforeStore(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutLogService(noWorkoutLogStore{noStore{t}})
	for _, raw := range malformedIDs {
		_, err := svc.GetByID(ctx, raw)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument, "id %q", raw)

		_, err = svc.DeleteLog(ctx, raw)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument, "id %q", raw)

		_, err = svc.GetByUser(ctx, raw)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument, "id %q", raw)
	}
}
