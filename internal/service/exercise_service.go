package service

import (
	"context"
	"errors"
	"log/slog"

	"stevensfit/fitness-api/internal/apperror"
	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/logging"
	"stevensfit/fitness-api/internal/repository"
	"stevensfit/fitness-api/internal/validate"
)

// ExerciseService validates input and queries the exercise library.
type ExerciseService interface {
	Create(ctx context.Context, name, target, bodyPart, equipment, gifURL string) (string, error)
	Get(ctx context.Context, id string) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	GetByBodyPart(ctx context.Context, bodyPart string) ([]domain.Exercise, error)
	GetByEquipment(ctx context.Context, equipment string) ([]domain.Exercise, error)
	GetByTarget(ctx context.Context, target string) ([]domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	FilterBy(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// Create validates all five fields and inserts the exercise, returning its id.
func (s *exerciseService) Create(ctx context.Context, name, target, bodyPart, equipment, gifURL string) (string, error) {
	const op = "exercises.create"

	exercise := &domain.Exercise{
		Name:      name,
		Target:    target,
		BodyPart:  bodyPart,
		Equipment: equipment,
		GifURL:    gifURL,
	}
	if err := validate.Struct(op, exercise); err != nil {
		return "", err
	}

	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return "", persistenceFailure(ctx, op, err)
	}

	logging.FromContext(ctx).Info("exercise created",
		slog.String("exercise_id", id.Hex()),
		slog.String("name", name),
	)
	return id.Hex(), nil
}

func (s *exerciseService) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	const op = "exercises.get"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(op, "exercise", "id", oid.Hex())
		}
		return nil, persistenceFailure(ctx, op, err)
	}
	return exercise, nil
}

func (s *exerciseService) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	const op = "exercises.getByName"

	if name == "" {
		return nil, apperror.InvalidArgument(op, "name", "you must provide an exercise name")
	}
	exercise, err := s.exerciseRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(op, "exercise", "name", name)
		}
		return nil, persistenceFailure(ctx, op, err)
	}
	return exercise, nil
}

func (s *exerciseService) GetByBodyPart(ctx context.Context, bodyPart string) ([]domain.Exercise, error) {
	return s.getByField(ctx, "exercises.getByBodyPart", "bodyPart", bodyPart, domain.ExerciseFilter{BodyPart: bodyPart})
}

func (s *exerciseService) GetByEquipment(ctx context.Context, equipment string) ([]domain.Exercise, error) {
	return s.getByField(ctx, "exercises.getByEquipment", "equipment", equipment, domain.ExerciseFilter{Equipment: equipment})
}

func (s *exerciseService) GetByTarget(ctx context.Context, target string) ([]domain.Exercise, error) {
	return s.getByField(ctx, "exercises.getByTarget", "target", target, domain.ExerciseFilter{Target: target})
}

// getByField requires a non-empty key; no matches is an empty list, not an error.
func (s *exerciseService) getByField(ctx context.Context, op, field, value string, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	if value == "" {
		return nil, apperror.InvalidArgument(op, field, "you must provide %s", field)
	}
	exercises, err := s.exerciseRepo.Find(ctx, filter)
	if err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}
	return exercises, nil
}

func (s *exerciseService) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.Find(ctx, domain.ExerciseFilter{})
	if err != nil {
		return nil, persistenceFailure(ctx, "exercises.getAll", err)
	}
	return exercises, nil
}

// FilterBy ANDs together whichever fields are non-empty. Empty fields are
// dropped rather than rejected, so an empty filter behaves like GetAll.
func (s *exerciseService) FilterBy(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.Find(ctx, filter)
	if err != nil {
		return nil, persistenceFailure(ctx, "exercises.filterBy", err)
	}
	return exercises, nil
}
