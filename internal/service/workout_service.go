package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/apperror"
	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/logging"
	"stevensfit/fitness-api/internal/repository"
	"stevensfit/fitness-api/internal/validate"
)

// WorkoutService creates workout templates and answers queries over them.
type WorkoutService interface {
	Create(ctx context.Context, name, creator string, exercises []domain.WorkoutExerciseInput) (string, error)
	Get(ctx context.Context, id string) (*domain.Workout, error)
	GetByCreator(ctx context.Context, userID string) ([]domain.Workout, error)
	GetByName(ctx context.Context, name string) ([]domain.Workout, error)
	GetAll(ctx context.Context) ([]domain.Workout, error)
	FilterByContainedExercises(ctx context.Context, exerciseIDs []string) ([]domain.Workout, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
	}
}

// Create validates the workout and stores only the whitelisted entry fields.
func (s *workoutService) Create(ctx context.Context, name, creator string, exercises []domain.WorkoutExerciseInput) (string, error) {
	const op = "workouts.create"

	in := domain.NewWorkout{
		Name:      strings.TrimSpace(name),
		Creator:   strings.TrimSpace(creator),
		Exercises: exercises,
	}
	if err := validate.Struct(op, &in); err != nil {
		return "", err
	}

	entries := make([]domain.WorkoutExercise, 0, len(in.Exercises))
	for i, e := range in.Exercises {
		id, err := validate.ID(op, fmt.Sprintf("exercises[%d].exerciseId", i), e.ExerciseID)
		if err != nil {
			return "", err
		}
		entries = append(entries, domain.WorkoutExercise{
			ExerciseID:        id,
			Sets:              *e.Sets,
			Reps:              *e.Reps,
			AdditionalDetails: e.AdditionalDetails,
		})
	}

	workout := &domain.Workout{
		Name:      in.Name,
		Creator:   in.Creator,
		Exercises: entries,
	}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return "", persistenceFailure(ctx, op, err)
	}

	logging.FromContext(ctx).Info("workout created",
		slog.String("workout_id", id.Hex()),
		slog.String("creator", in.Creator),
		slog.Int("exercises", len(entries)),
	)
	return id.Hex(), nil
}

func (s *workoutService) Get(ctx context.Context, id string) (*domain.Workout, error) {
	const op = "workouts.get"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	workout, err := s.workoutRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(op, "workout", "id", oid.Hex())
		}
		return nil, persistenceFailure(ctx, op, err)
	}
	return workout, nil
}

// GetByCreator lists the workouts a user authored. The creator must be a
// valid user id; seeded workouts owned by "ADMIN" are reached through GetAll.
func (s *workoutService) GetByCreator(ctx context.Context, userID string) ([]domain.Workout, error) {
	const op = "workouts.getByCreator"

	oid, err := validate.ID(op, "userId", userID)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.GetByCreator(ctx, oid.Hex())
	if err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}
	return workouts, nil
}

// GetByName matches exactly; an empty name lists every workout.
func (s *workoutService) GetByName(ctx context.Context, name string) ([]domain.Workout, error) {
	const op = "workouts.getByName"

	if name == "" {
		return s.GetAll(ctx)
	}
	workouts, err := s.workoutRepo.GetByName(ctx, name)
	if err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}
	return workouts, nil
}

func (s *workoutService) GetAll(ctx context.Context) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.GetAll(ctx)
	if err != nil {
		return nil, persistenceFailure(ctx, "workouts.getAll", err)
	}
	return workouts, nil
}

// FilterByContainedExercises returns workouts that reference every given
// exercise id. An empty list matches every workout.
func (s *workoutService) FilterByContainedExercises(ctx context.Context, exerciseIDs []string) ([]domain.Workout, error) {
	const op = "workouts.filterByContainedExercises"

	if exerciseIDs == nil {
		return nil, apperror.InvalidArgument(op, "exercises", "you must provide a list of exercise ids")
	}
	ids, err := validate.IDs(op, "exercises", exerciseIDs)
	if err != nil {
		return nil, err
	}

	workouts, err := s.workoutRepo.GetAll(ctx)
	if err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}
	return containing(workouts, ids), nil
}

func containing(workouts []domain.Workout, ids []primitive.ObjectID) []domain.Workout {
	matched := make([]domain.Workout, 0, len(workouts))
	for i := range workouts {
		if workouts[i].ContainsAll(ids) {
			matched = append(matched, workouts[i])
		}
	}
	return matched
}
