// Package seed loads the exercise library from CSV and creates the stock
// workouts and demo users through the service layer.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cast"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/logging"
	"stevensfit/fitness-api/internal/service"
	"stevensfit/fitness-api/internal/storage"
)

// AdminCreator marks workouts that ship with the app rather than belonging to a user.
const AdminCreator = "ADMIN"

// DefaultUserCount is the number of demo students created by Users.
const DefaultUserCount = 30

var exerciseColumns = []string{"name", "target", "bodyPart", "equipment", "gifUrl"}

// ExerciseRow is one line of the exercise CSV.
type ExerciseRow struct {
	Name      string
	Target    string
	BodyPart  string
	Equipment string
	GifURL    string
}

// ParseExercisesCSV reads rows keyed by the header line, so column order and
// extra columns do not matter. All of name, target, bodyPart, equipment and
// gifUrl must be present in the header.
func ParseExercisesCSV(r io.Reader) ([]ExerciseRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("exercise csv is empty")
		}
		return nil, fmt.Errorf("read exercise csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range exerciseColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("exercise csv: missing column %q", col)
		}
	}

	rows := []ExerciseRow{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read exercise csv: %w", err)
		}
		rows = append(rows, ExerciseRow{
			Name:      record[index["name"]],
			Target:    record[index["target"]],
			BodyPart:  record[index["bodyPart"]],
			Equipment: record[index["equipment"]],
			GifURL:    record[index["gifUrl"]],
		})
	}
	return rows, nil
}

// OpenSource opens a local path, or an s3:// object through objects.
func OpenSource(ctx context.Context, source string, objects storage.ObjectReader) (io.ReadCloser, error) {
	if !storage.IsS3URI(source) {
		return os.Open(source)
	}
	loc, err := storage.ParseS3URI(source)
	if err != nil {
		return nil, err
	}
	if objects == nil {
		return nil, fmt.Errorf("%s: object storage is not configured", source)
	}
	return objects.Open(ctx, loc.Bucket, loc.Key)
}

// StockExercise mirrors the hand-written workout sheets, where sets and reps
// are kept as text.
type StockExercise struct {
	Name    string
	Sets    string
	Reps    string
	Details string
}

type StockWorkout struct {
	Name      string
	Creator   string
	Exercises []StockExercise
}

// StockWorkouts ship with every fresh database.
var StockWorkouts = []StockWorkout{
	{
		Name:    "Leg Workout",
		Creator: AdminCreator,
		Exercises: []StockExercise{
			{"barbell full squat", "4", "8", "Focus on keeping your back straight and your knees aligned with your toes."},
			{"barbell lunge", "3", "12", "Take long steps and ensure your front knee doesn't extend past your toes."},
			{"sled 45° leg press", "3", "10", "Adjust the seat and foot position to target different areas of the legs."},
		},
	},
	{
		Name:    "Chest Workout",
		Creator: AdminCreator,
		Exercises: []StockExercise{
			{"barbell bench press", "3", "10", "Start with a warm-up set, then increase the weight gradually."},
			{"lever chest press", "4", "8", "Focus on maintaining proper form throughout the exercise."},
			{"cable cross-over revers fly", "3", "12", "Use controlled movements and squeeze the chest at the peak of each repetition."},
		},
	},
	{
		Name:    "Back Workout",
		Creator: AdminCreator,
		Exercises: []StockExercise{
			{"barbell deadlift", "4", "8", "Maintain a straight back and engage your core throughout the movement."},
			{"pull up (neutral grip)", "3", "10", "Use a grip that suits your comfort level and focus on pulling with your back muscles."},
			{"barbell bent over row", "3", "12", "Keep your back straight and pull the weight towards your lower chest."},
		},
	},
	{
		Name:    "Shoulder Workout",
		Creator: AdminCreator,
		Exercises: []StockExercise{
			{"barbell rear delt row", "4", "8", "Start with a weight you can comfortably handle and gradually increase."},
			{"dumbbell full can lateral raise", "3", "12", "Keep your arms slightly bent and lift the weights to shoulder height."},
			{"barbell front raise", "3", "10", "Raise the dumbbells to shoulder height while keeping your arms straight."},
		},
	},
}

// Added records one created document.
type Added struct {
	Name string
	ID   string
}

// Seeder creates documents through the services so every seeded value passes
// the same validation as API input.
type Seeder struct {
	exercises service.ExerciseService
	workouts  service.WorkoutService
	users     service.UserService
}

func NewSeeder(exercises service.ExerciseService, workouts service.WorkoutService, users service.UserService) *Seeder {
	return &Seeder{exercises: exercises, workouts: workouts, users: users}
}

// Exercises creates one exercise per row and stops at the first failure.
// The documents created before the failure are returned with the error.
func (s *Seeder) Exercises(ctx context.Context, rows []ExerciseRow) ([]Added, error) {
	added := make([]Added, 0, len(rows))
	for i, row := range rows {
		id, err := s.exercises.Create(ctx, row.Name, row.Target, row.BodyPart, row.Equipment, row.GifURL)
		if err != nil {
			return added, fmt.Errorf("exercise row %d (%q): %w", i+1, row.Name, err)
		}
		added = append(added, Added{Name: row.Name, ID: id})
	}
	logging.FromContext(ctx).Info("exercises seeded", slog.Int("count", len(added)))
	return added, nil
}

// Workouts resolves each exercise by its lowercased name and creates the
// workouts in order.
func (s *Seeder) Workouts(ctx context.Context, workouts []StockWorkout) ([]Added, error) {
	added := make([]Added, 0, len(workouts))
	for _, w := range workouts {
		entries, err := s.resolve(ctx, w)
		if err != nil {
			return added, err
		}
		id, err := s.workouts.Create(ctx, w.Name, w.Creator, entries)
		if err != nil {
			return added, fmt.Errorf("workout %q: %w", w.Name, err)
		}
		added = append(added, Added{Name: w.Name, ID: id})
	}
	logging.FromContext(ctx).Info("workouts seeded", slog.Int("count", len(added)))
	return added, nil
}

func (s *Seeder) resolve(ctx context.Context, w StockWorkout) ([]domain.WorkoutExerciseInput, error) {
	entries := make([]domain.WorkoutExerciseInput, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		exercise, err := s.exercises.GetByName(ctx, strings.ToLower(e.Name))
		if err != nil {
			return nil, fmt.Errorf("workout %q: exercise %q: %w", w.Name, e.Name, err)
		}
		sets, err := cast.ToIntE(strings.TrimSpace(e.Sets))
		if err != nil {
			return nil, fmt.Errorf("workout %q: exercise %q: sets: %w", w.Name, e.Name, err)
		}
		reps, err := cast.ToIntE(strings.TrimSpace(e.Reps))
		if err != nil {
			return nil, fmt.Errorf("workout %q: exercise %q: reps: %w", w.Name, e.Name, err)
		}
		entries = append(entries, domain.WorkoutExerciseInput{
			ExerciseID:        exercise.ID.Hex(),
			Sets:              &sets,
			Reps:              &reps,
			AdditionalDetails: e.Details,
		})
	}
	return entries, nil
}

// Users creates student1..studentN with password<i> passwords and
// student<i>@stevens.edu addresses.
func (s *Seeder) Users(ctx context.Context, count int) ([]Added, error) {
	if count < 0 {
		return nil, fmt.Errorf("user count must not be negative, got %d", count)
	}
	added := make([]Added, 0, count)
	for i := 1; i <= count; i++ {
		username := fmt.Sprintf("student%d", i)
		id, err := s.users.CreateUser(ctx, username, fmt.Sprintf("password%d", i), username+"@stevens.edu")
		if err != nil {
			return added, fmt.Errorf("user %q: %w", username, err)
		}
		added = append(added, Added{Name: username, ID: id})
	}
	logging.FromContext(ctx).Info("users seeded", slog.Int("count", len(added)))
	return added, nil
}
