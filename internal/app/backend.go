// Package app wires the configured store into the services both binaries use.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stevensfit/fitness-api/internal/api"
	"stevensfit/fitness-api/internal/config"
	"stevensfit/fitness-api/internal/logging"
	"stevensfit/fitness-api/internal/repository"
	"stevensfit/fitness-api/internal/repository/memory"
	"stevensfit/fitness-api/internal/repository/mongo"
	"stevensfit/fitness-api/internal/service"
)

const indexTimeout = time.Minute

// Repositories holds one store-facing repository per collection.
type Repositories struct {
	Exercises   repository.ExerciseRepository
	Users       repository.UserRepository
	Friendships repository.FriendshipRepository
	Workouts    repository.WorkoutRepository
	WorkoutLogs repository.WorkoutLogRepository
}

// Open builds the repositories for cfg.Database.Backend. The returned close
// function releases the backend and is safe to call once.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Repositories, func() error, error) {
	logger := logging.FromContext(ctx)

	switch cfg.Backend {
	case config.BackendMemory:
		store := memory.NewStore()
		logger.Warn("using in-memory store; data is lost on exit")
		return &Repositories{
			Exercises:   store.Exercises(),
			Users:       store.Users(),
			Friendships: store.Friendships(),
			Workouts:    store.Workouts(),
			WorkoutLogs: store.WorkoutLogs(),
		}, func() error { return nil }, nil

	case config.BackendMongo:
		client, err := mongo.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.Name)
		logger.Info("database connection established", slog.String("database", cfg.Name))

		indexCtx, cancel := context.WithTimeout(ctx, indexTimeout)
		defer cancel()
		if err := mongo.EnsureIndexes(indexCtx, db); err != nil {
			_ = mongo.DisconnectDB(client)
			return nil, nil, err
		}
		logger.Info("database indexes ensured")

		return &Repositories{
			Exercises:   mongo.NewMongoExerciseRepository(db),
			Users:       mongo.NewMongoUserRepository(db),
			Friendships: mongo.NewMongoFriendshipRepository(db),
			Workouts:    mongo.NewMongoWorkoutRepository(db),
			WorkoutLogs: mongo.NewMongoWorkoutLogRepository(db),
		}, func() error { return mongo.DisconnectDB(client) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown database backend: %q", cfg.Backend)
	}
}

// Services builds the service layer over r.
func (r *Repositories) Services(bcryptCost int) api.Services {
	return api.Services{
		Exercises:   service.NewExerciseService(r.Exercises),
		Users:       service.NewUserService(r.Users, r.Friendships, bcryptCost),
		Workouts:    service.NewWorkoutService(r.Workouts),
		WorkoutLogs: service.NewWorkoutLogService(r.WorkoutLogs),
	}
}
