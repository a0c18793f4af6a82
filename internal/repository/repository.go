package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/domain"
)

// Store-level errors. Services translate these into apperror kinds.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("duplicate key")
	ErrInsertFailed = RepositoryError("insert not acknowledged")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository stores the shared exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	// Find returns every exercise matching all non-empty filter fields.
	Find(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error)
}

// UserRepository stores accounts. Create and Update return ErrConflict when
// the username is already taken. Emails are not unique.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetProfileByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProfile, error)
	GetProfileByUsername(ctx context.Context, username string) (*domain.UserProfile, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, update domain.UserUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// FriendshipRepository stores the symmetric friend relation as one edge per pair.
type FriendshipRepository interface {
	// Add is idempotent: adding an existing edge is not an error.
	Add(ctx context.Context, a, b primitive.ObjectID) error
	// Remove is idempotent: removing a missing edge is not an error.
	Remove(ctx context.Context, a, b primitive.ObjectID) error
	ListFriends(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	ListAll(ctx context.Context) ([]domain.Friendship, error)
	RemoveAllFor(ctx context.Context, userID primitive.ObjectID) error
}

type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByCreator(ctx context.Context, creator string) ([]domain.Workout, error)
	GetByName(ctx context.Context, name string) ([]domain.Workout, error)
	GetAll(ctx context.Context) ([]domain.Workout, error)
}

// WorkoutLogRepository stores workout logs. Every mutation is a single
// atomic store operation that returns the resulting document.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	Find(ctx context.Context, filter domain.WorkoutLogFilter) ([]domain.WorkoutLog, error)
	Update(ctx context.Context, id primitive.ObjectID, update domain.WorkoutLogUpdate) (*domain.WorkoutLog, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	PushExerciseLog(ctx context.Context, id primitive.ObjectID, entry domain.ExerciseLog) (*domain.WorkoutLog, error)
	PullExerciseLogs(ctx context.Context, id, exerciseID primitive.ObjectID) (*domain.WorkoutLog, error)
}
