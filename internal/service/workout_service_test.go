package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/apperror"
	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/repository/memory"
)

func intPtr(i int) *int { return &i }

func entry(id primitive.ObjectID, sets, reps int) domain.WorkoutExerciseInput {
	return domain.WorkoutExerciseInput{ExerciseID: id.Hex(), Sets: intPtr(sets), Reps: intPtr(reps)}
}

func newWorkoutService(t *testing.T) WorkoutService {
	t.Helper()
	return NewWorkoutService(memory.NewStore().Workouts())
}

func TestWorkoutService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newWorkoutService(t)
	creator := primitive.NewObjectID().Hex()
	squat := primitive.NewObjectID()

	in := entry(squat, 4, 8)
	in.AdditionalDetails = "Rest 2 minutes"
	id, err := svc.Create(ctx, "Leg Day", creator, []domain.WorkoutExerciseInput{in, entry(primitive.NewObjectID(), 3, 12)})
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Leg Day", got.Name)
	assert.Equal(t, creator, got.Creator)
	require.Len(t, got.Exercises, 2)
	assert.Equal(t, domain.WorkoutExercise{ExerciseID: squat, Sets: 4, Reps: 8, AdditionalDetails: "Rest 2 minutes"}, got.Exercises[0])
	assert.Empty(t, got.Exercises[1].AdditionalDetails)
}

func TestWorkoutService_CreateValidation(t *testing.T) {
	creator := primitive.NewObjectID().Hex()
	valid := entry(primitive.NewObjectID(), 3, 10)

	missingReps := valid
	missingReps.Reps = nil
	zeroSets := valid
	zeroSets.Sets = intPtr(0)
	badID := valid
	badID.ExerciseID = "squat"

	tests := []struct {
		name      string
		wname     string
		creator   string
		exercises []domain.WorkoutExerciseInput
		wantField string
	}{
		{"empty name", "", creator, []domain.WorkoutExerciseInput{valid}, "name"},
		{"blank creator", "Leg Day", "  ", []domain.WorkoutExerciseInput{valid}, "creator"},
		{"no exercises", "Leg Day", creator, []domain.WorkoutExerciseInput{}, "exercises"},
		{"nil exercises", "Leg Day", creator, nil, "exercises"},
		{"missing reps", "Leg Day", creator, []domain.WorkoutExerciseInput{valid, missingReps}, "exercises[1].reps"},
		{"zero sets", "Leg Day", creator, []domain.WorkoutExerciseInput{zeroSets}, "exercises[0].sets"},
		{"bad exercise id", "Leg Day", creator, []domain.WorkoutExerciseInput{badID}, "exercises[0].exerciseId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newWorkoutService(t)
			_, err := svc.Create(context.Background(), tt.wname, tt.creator, tt.exercises)
			require.ErrorIs(t, err, apperror.ErrInvalidArgument)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Contains(t, appErr.Message, tt.wantField)
		})
	}
}

func TestWorkoutService_Queries(t *testing.T) {
	ctx := context.Background()
	svc := newWorkoutService(t)
	alice := primitive.NewObjectID().Hex()
	bob := primitive.NewObjectID().Hex()
	ex := primitive.NewObjectID()

	for _, w := range []struct{ name, creator string }{
		{"Leg Day", alice},
		{"Push Day", alice},
		{"Leg Day", bob},
	} {
		_, err := svc.Create(ctx, w.name, w.creator, []domain.WorkoutExerciseInput{entry(ex, 3, 10)})
		require.NoError(t, err)
	}

	byAlice, err := svc.GetByCreator(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, byAlice, 2)

	nobody, err := svc.GetByCreator(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.NotNil(t, nobody)
	assert.Empty(t, nobody)

	_, err = svc.GetByCreator(ctx, "ADMIN")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	legs, err := svc.GetByName(ctx, "Leg Day")
	require.NoError(t, err)
	assert.Len(t, legs, 2)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	everything, err := svc.GetByName(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, all, everything)

	_, err = svc.Get(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestWorkoutService_FilterByContainedExercises(t *testing.T) {
	ctx := context.Background()
	svc := newWorkoutService(t)
	creator := primitive.NewObjectID().Hex()
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	create := func(name string, ids ...primitive.ObjectID) string {
		in := make([]domain.WorkoutExerciseInput, 0, len(ids))
		for _, id := range ids {
			in = append(in, entry(id, 3, 10))
		}
		id, err := svc.Create(ctx, name, creator, in)
		require.NoError(t, err)
		return id
	}
	ab := create("ab", a, b)
	abc := create("abc", a, b, c)
	create("a", a)
	create("bc", b, c)

	got, err := svc.FilterByContainedExercises(ctx, []string{a.Hex(), b.Hex()})
	require.NoError(t, err)

	var ids []string
	for _, w := range got {
		ids = append(ids, w.ID.Hex())
	}
	assert.ElementsMatch(t, []string{ab, abc}, ids)

	all, err := svc.FilterByContainedExercises(ctx, []string{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = svc.FilterByContainedExercises(ctx, []string{a.Hex(), "nope"})
	require.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = svc.FilterByContainedExercises(ctx, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}

func TestWorkoutService_MalformedIDsFailBeforeStore(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(noWorkoutStore{noStore{t}})
	for _, raw := range malformedIDs {
		_, err := svc.Get(ctx, raw)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument, "id %q", raw)

		_, err = svc.GetByCreator(ctx, raw)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument, "id %q", raw)
	}
}
