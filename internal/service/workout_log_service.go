package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/apperror"
	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/logging"
	"stevensfit/fitness-api/internal/repository"
	"stevensfit/fitness-api/internal/validate"
)

// WorkoutLogService records completed workouts and edits their exercise entries.
type WorkoutLogService interface {
	Create(ctx context.Context, input domain.WorkoutLogInput) (*domain.WorkoutLog, error)
	GetAll(ctx context.Context) ([]domain.WorkoutLog, error)
	GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error)
	GetByUser(ctx context.Context, userID string) ([]domain.WorkoutLog, error)
	GetByWorkout(ctx context.Context, workoutID string) ([]domain.WorkoutLog, error)
	GetByDate(ctx context.Context, date string) ([]domain.WorkoutLog, error)
	FilterLogs(ctx context.Context, userID, workoutID, date string) ([]domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, id string) (*domain.WorkoutLog, error)
	UpdateLog(ctx context.Context, id string, input domain.WorkoutLogInput) (*domain.WorkoutLog, error)
	AddExercise(ctx context.Context, id string, entry domain.ExerciseLogInput) (*domain.WorkoutLog, error)
	RemoveExercise(ctx context.Context, id, exerciseID string) (*domain.WorkoutLog, error)
}

type workoutLogService struct {
	logRepo repository.WorkoutLogRepository
}

// NewWorkoutLogService creates a new instance of workoutLogService.
func NewWorkoutLogService(logRepo repository.WorkoutLogRepository) WorkoutLogService {
	return &workoutLogService{
		logRepo: logRepo,
	}
}

// parsedLog is a WorkoutLogInput that has passed every check.
type parsedLog struct {
	userID    primitive.ObjectID
	workoutID primitive.ObjectID
	date      time.Time
	entries   []domain.ExerciseLog
}

func parseLogInput(op string, input domain.WorkoutLogInput) (*parsedLog, error) {
	var (
		p   parsedLog
		err error
	)
	if p.userID, err = validate.ID(op, "userId", input.UserID); err != nil {
		return nil, err
	}
	if p.workoutID, err = validate.ID(op, "workoutId", input.WorkoutID); err != nil {
		return nil, err
	}
	if p.date, err = validate.Date(op, "date", input.Date); err != nil {
		return nil, err
	}

	entries := make([]domain.ExerciseLogInput, len(input.ExerciseLogs))
	copy(entries, input.ExerciseLogs)
	for i := range entries {
		entries[i].Name = strings.TrimSpace(entries[i].Name)
	}
	input.ExerciseLogs = entries
	if err := validate.Struct(op, &input); err != nil {
		return nil, err
	}

	p.entries = make([]domain.ExerciseLog, 0, len(entries))
	for i, in := range entries {
		id, err := validate.ID(op, fmt.Sprintf("exerciseLogs[%d].exerciseId", i), in.ExerciseID)
		if err != nil {
			return nil, err
		}
		p.entries = append(p.entries, toExerciseLog(id, in))
	}
	return &p, nil
}

// parseEntry validates a single exercise-log entry.
func parseEntry(op string, in domain.ExerciseLogInput) (domain.ExerciseLog, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(op, &in); err != nil {
		return domain.ExerciseLog{}, err
	}
	id, err := validate.ID(op, "exerciseId", in.ExerciseID)
	if err != nil {
		return domain.ExerciseLog{}, err
	}
	return toExerciseLog(id, in), nil
}

func toExerciseLog(id primitive.ObjectID, in domain.ExerciseLogInput) domain.ExerciseLog {
	return domain.ExerciseLog{
		ExerciseID: id,
		Name:       in.Name,
		Sets:       *in.Sets,
		Reps:       *in.Reps,
		Notes:      in.Notes,
	}
}

func (s *workoutLogService) Create(ctx context.Context, input domain.WorkoutLogInput) (*domain.WorkoutLog, error) {
	const op = "workoutLogs.create"

	p, err := parseLogInput(op, input)
	if err != nil {
		return nil, err
	}

	log := &domain.WorkoutLog{
		UserID:       p.userID,
		WorkoutID:    p.workoutID,
		Date:         p.date,
		ExerciseLogs: p.entries,
	}
	id, err := s.logRepo.Create(ctx, log)
	if err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}
	log.ID = id

	logging.FromContext(ctx).Info("workout log created",
		slog.String("log_id", id.Hex()),
		slog.String("user_id", p.userID.Hex()),
		slog.String("workout_id", p.workoutID.Hex()),
	)
	return log, nil
}

func (s *workoutLogService) GetAll(ctx context.Context) ([]domain.WorkoutLog, error) {
	return s.find(ctx, "workoutLogs.getAll", domain.WorkoutLogFilter{})
}

func (s *workoutLogService) GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	const op = "workoutLogs.getById"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	log, err := s.logRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, s.mapErr(ctx, op, oid, err)
	}
	return log, nil
}

func (s *workoutLogService) GetByUser(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	const op = "workoutLogs.getByUser"

	oid, err := validate.ID(op, "userId", userID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, op, domain.WorkoutLogFilter{UserID: &oid})
}

func (s *workoutLogService) GetByWorkout(ctx context.Context, workoutID string) ([]domain.WorkoutLog, error) {
	const op = "workoutLogs.getByWorkout"

	oid, err := validate.ID(op, "workoutId", workoutID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, op, domain.WorkoutLogFilter{WorkoutID: &oid})
}

func (s *workoutLogService) GetByDate(ctx context.Context, date string) ([]domain.WorkoutLog, error) {
	const op = "workoutLogs.getByDate"

	day, err := validate.Date(op, "date", date)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, op, domain.WorkoutLogFilter{Date: &day})
}

// FilterLogs ANDs together whichever parameters are non-empty. Supplied
// parameters must be valid; none at all lists every log.
func (s *workoutLogService) FilterLogs(ctx context.Context, userID, workoutID, date string) ([]domain.WorkoutLog, error) {
	const op = "workoutLogs.filterLogs"

	var filter domain.WorkoutLogFilter
	if userID != "" {
		oid, err := validate.ID(op, "userId", userID)
		if err != nil {
			return nil, err
		}
		filter.UserID = &oid
	}
	if workoutID != "" {
		oid, err := validate.ID(op, "workoutId", workoutID)
		if err != nil {
			return nil, err
		}
		filter.WorkoutID = &oid
	}
	if date != "" {
		day, err := validate.Date(op, "date", date)
		if err != nil {
			return nil, err
		}
		filter.Date = &day
	}
	return s.find(ctx, op, filter)
}

func (s *workoutLogService) find(ctx context.Context, op string, filter domain.WorkoutLogFilter) ([]domain.WorkoutLog, error) {
	logs, err := s.logRepo.Find(ctx, filter)
	if err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}
	return logs, nil
}

// DeleteLog removes the log in one find-and-delete and returns what was removed.
func (s *workoutLogService) DeleteLog(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	const op = "workoutLogs.deleteLog"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	log, err := s.logRepo.Delete(ctx, oid)
	if err != nil {
		return nil, s.mapErr(ctx, op, oid, err)
	}

	logging.FromContext(ctx).Info("workout log deleted", slog.String("log_id", oid.Hex()))
	return log, nil
}

// UpdateLog replaces every mutable field and returns the updated log.
func (s *workoutLogService) UpdateLog(ctx context.Context, id string, input domain.WorkoutLogInput) (*domain.WorkoutLog, error) {
	const op = "workoutLogs.updateLog"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	p, err := parseLogInput(op, input)
	if err != nil {
		return nil, err
	}

	log, err := s.logRepo.Update(ctx, oid, domain.WorkoutLogUpdate{
		UserID:       p.userID,
		WorkoutID:    p.workoutID,
		Date:         p.date,
		ExerciseLogs: p.entries,
	})
	if err != nil {
		return nil, s.mapErr(ctx, op, oid, err)
	}

	logging.FromContext(ctx).Info("workout log updated", slog.String("log_id", oid.Hex()))
	return log, nil
}

// AddExercise appends one entry to the end of the log's exerciseLogs.
func (s *workoutLogService) AddExercise(ctx context.Context, id string, entry domain.ExerciseLogInput) (*domain.WorkoutLog, error) {
	const op = "workoutLogs.addExercise"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	parsed, err := parseEntry(op, entry)
	if err != nil {
		return nil, err
	}

	log, err := s.logRepo.PushExerciseLog(ctx, oid, parsed)
	if err != nil {
		return nil, s.mapErr(ctx, op, oid, err)
	}

	logging.FromContext(ctx).Info("exercise added to workout log",
		slog.String("log_id", oid.Hex()),
		slog.String("exercise_id", parsed.ExerciseID.Hex()),
	)
	return log, nil
}

// RemoveExercise drops every entry for exerciseID. Removing an exercise the
// log does not contain leaves it unchanged.
func (s *workoutLogService) RemoveExercise(ctx context.Context, id, exerciseID string) (*domain.WorkoutLog, error) {
	const op = "workoutLogs.removeExercise"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	exID, err := validate.ID(op, "exerciseId", exerciseID)
	if err != nil {
		return nil, err
	}

	log, err := s.logRepo.PullExerciseLogs(ctx, oid, exID)
	if err != nil {
		return nil, s.mapErr(ctx, op, oid, err)
	}

	logging.FromContext(ctx).Info("exercise removed from workout log",
		slog.String("log_id", oid.Hex()),
		slog.String("exercise_id", exID.Hex()),
	)
	return log, nil
}

func (s *workoutLogService) mapErr(ctx context.Context, op string, id primitive.ObjectID, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(op, "workout log", "id", id.Hex())
	}
	return persistenceFailure(ctx, op, err)
}
