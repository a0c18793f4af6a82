package seed

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stevensfit/fitness-api/internal/apperror"
	"stevensfit/fitness-api/internal/repository/memory"
	"stevensfit/fitness-api/internal/service"
	"stevensfit/fitness-api/internal/storage"
)

type testServices struct {
	exercises service.ExerciseService
	workouts  service.WorkoutService
	users     service.UserService
	seeder    *Seeder
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	store := memory.NewStore()
	s := testServices{
		exercises: service.NewExerciseService(store.Exercises()),
		workouts:  service.NewWorkoutService(store.Workouts()),
		users:     service.NewUserService(store.Users(), store.Friendships(), bcrypt.MinCost),
	}
	s.seeder = NewSeeder(s.exercises, s.workouts, s.users)
	return s
}

// stockRows returns one CSV row for every exercise the stock workouts use.
func stockRows() []ExerciseRow {
	rows := []ExerciseRow{}
	for _, w := range StockWorkouts {
		for _, e := range w.Exercises {
			rows = append(rows, ExerciseRow{
				Name:      e.Name,
				Target:    "target",
				BodyPart:  "body part",
				Equipment: "equipment",
				GifURL:    "https://example.com/gif/" + strconv.Itoa(len(rows)) + ".gif",
			})
		}
	}
	return rows
}

func TestParseExercisesCSV(t *testing.T) {
	input := "\ufeffid,gifUrl,name,target,bodyPart,equipment\n" +
		`0001,https://example.com/0001.gif,3/4 sit-up,abs,waist,body weight` + "\n" +
		`0002,https://example.com/0002.gif,"cable pulldown (pro lat bar)",lats,back,cable` + "\n"

	rows, err := ParseExercisesCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ExerciseRow{
		Name:      "3/4 sit-up",
		Target:    "abs",
		BodyPart:  "waist",
		Equipment: "body weight",
		GifURL:    "https://example.com/0001.gif",
	}, rows[0])
	assert.Equal(t, "cable pulldown (pro lat bar)", rows[1].Name)
}

func TestParseExercisesCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "exercise csv is empty"},
		{"missing column", "name,target,bodyPart,equipment\nair bike,abs,waist,body weight\n", `missing column "gifUrl"`},
		{"ragged row", "name,target,bodyPart,equipment,gifUrl\nair bike,abs\n", "read exercise csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExercisesCSV(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseExercisesCSVHeaderOnly(t *testing.T) {
	rows, err := ParseExercisesCSV(strings.NewReader("name,target,bodyPart,equipment,gifUrl\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}

type fakeObjects struct {
	bucket, key string
	body        string
}

func (f *fakeObjects) Open(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	f.bucket, f.key = bucket, key
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0o600))
	body, err := OpenSource(ctx, path, nil)
	require.NoError(t, err)
	got, _ := io.ReadAll(body)
	body.Close()
	assert.Equal(t, "local", string(got))

	objects := &fakeObjects{body: "remote"}
	body, err = OpenSource(ctx, "s3://seed-data/exercises/data.csv", objects)
	require.NoError(t, err)
	got, _ = io.ReadAll(body)
	body.Close()
	assert.Equal(t, "remote", string(got))
	assert.Equal(t, "seed-data", objects.bucket)
	assert.Equal(t, "exercises/data.csv", objects.key)

	_, err = OpenSource(ctx, "s3://seed-data/data.csv", nil)
	assert.ErrorContains(t, err, "object storage is not configured")

	_, err = OpenSource(ctx, "s3://seed-data", objects)
	assert.ErrorIs(t, err, storage.ErrInvalidURI)
}

func TestSeederExercises(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	added, err := s.seeder.Exercises(ctx, stockRows())
	require.NoError(t, err)
	assert.Len(t, added, 12)

	ex, err := s.exercises.GetByName(ctx, "sled 45° leg press")
	require.NoError(t, err)
	assert.Equal(t, added[2].ID, ex.ID.Hex())
}

func TestSeederExercisesStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	rows := stockRows()[:3]
	rows[1].GifURL = "not a url"

	added, err := s.seeder.Exercises(ctx, rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "exercise row 2")
	assert.Len(t, added, 1)
}

func TestSeederWorkouts(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.seeder.Exercises(ctx, stockRows())
	require.NoError(t, err)

	added, err := s.seeder.Workouts(ctx, StockWorkouts)
	require.NoError(t, err)
	require.Len(t, added, 4)

	legs, err := s.workouts.Get(ctx, added[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Leg Workout", legs.Name)
	assert.Equal(t, AdminCreator, legs.Creator)
	require.Len(t, legs.Exercises, 3)
	assert.Equal(t, 4, legs.Exercises[0].Sets)
	assert.Equal(t, 8, legs.Exercises[0].Reps)
	assert.Contains(t, legs.Exercises[0].AdditionalDetails, "back straight")

	squat, err := s.exercises.GetByName(ctx, "barbell full squat")
	require.NoError(t, err)
	assert.Equal(t, squat.ID, legs.Exercises[0].ExerciseID)
}

func TestSeederWorkoutsUnknownExercise(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	added, err := s.seeder.Workouts(ctx, StockWorkouts[:1])
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Contains(t, err.Error(), `exercise "barbell full squat"`)
	assert.Empty(t, added)
}

func TestSeederWorkoutsBadCount(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	_, err := s.seeder.Exercises(ctx, stockRows()[:1])
	require.NoError(t, err)

	_, err = s.seeder.Workouts(ctx, []StockWorkout{{
		Name:      "Broken",
		Creator:   AdminCreator,
		Exercises: []StockExercise{{Name: "Barbell Full Squat", Sets: "four", Reps: "8"}},
	}})
	assert.ErrorContains(t, err, "sets")
}

func TestSeederUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	added, err := s.seeder.Users(ctx, 3)
	require.NoError(t, err)
	require.Len(t, added, 3)
	assert.Equal(t, "student3", added[2].Name)

	user, err := s.users.CheckUserByEmail(ctx, "student2@stevens.edu", "password2")
	require.NoError(t, err)
	assert.Equal(t, added[1].ID, user.ID.Hex())

	_, err = s.seeder.Users(ctx, 1)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = s.seeder.Users(ctx, -1)
	assert.Error(t, err)
}
