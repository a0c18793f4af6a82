// Package memory provides in-process implementations of the repository
// interfaces. It backs the "memory" database backend for local runs and
// serves as the store in service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/repository"
)

// Store bundles one of each repository over a shared lock.
type Store struct {
	mu          sync.RWMutex
	exercises   map[primitive.ObjectID]domain.Exercise
	users       map[primitive.ObjectID]domain.User
	friendships map[string]domain.Friendship
	workouts    map[primitive.ObjectID]domain.Workout
	workoutLogs map[primitive.ObjectID]domain.WorkoutLog
}

func NewStore() *Store {
	return &Store{
		exercises:   make(map[primitive.ObjectID]domain.Exercise),
		users:       make(map[primitive.ObjectID]domain.User),
		friendships: make(map[string]domain.Friendship),
		workouts:    make(map[primitive.ObjectID]domain.Workout),
		workoutLogs: make(map[primitive.ObjectID]domain.WorkoutLog),
	}
}

func (s *Store) Exercises() repository.ExerciseRepository     { return exerciseRepo{s} }
func (s *Store) Users() repository.UserRepository             { return userRepo{s} }
func (s *Store) Friendships() repository.FriendshipRepository { return friendshipRepo{s} }
func (s *Store) Workouts() repository.WorkoutRepository       { return workoutRepo{s} }
func (s *Store) WorkoutLogs() repository.WorkoutLogRepository { return workoutLogRepo{s} }

func now() time.Time {
	// Mongo stores milliseconds; match it so both backends compare alike.
	return time.Now().UTC().Truncate(time.Millisecond)
}

func copyIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

// byCreation orders ids by their embedded timestamp, then hex, which matches
// insertion order closely enough for stable listings.
func byCreation(ids []primitive.ObjectID) {
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := ids[i].Timestamp(), ids[j].Timestamp()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return ids[i].Hex() < ids[j].Hex()
	})
}

// ---- exercises ----

type exerciseRepo struct{ s *Store }

func (r exerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = now()
	r.s.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r exerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ex, ok := r.s.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (r exerciseRepo) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	matches, _ := r.Find(ctx, domain.ExerciseFilter{Name: name})
	if name == "" || len(matches) == 0 {
		return nil, repository.ErrNotFound
	}
	return &matches[0], nil
}

func (r exerciseRepo) Find(_ context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Exercise{}
	for _, ex := range r.s.exercises {
		if filter.Matches(&ex) {
			out = append(out, ex)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ---- users ----

type userRepo struct{ s *Store }

func copyUser(u domain.User) domain.User {
	u.Workouts = copyIDs(u.Workouts)
	u.WorkoutLogs = copyIDs(u.WorkoutLogs)
	u.Friends = nil
	return u
}

// taken reports whether another user already holds username.
func (r userRepo) taken(self primitive.ObjectID, username *string) bool {
	if username == nil {
		return false
	}
	for id, u := range r.s.users {
		if id != self && u.Username == *username {
			return true
		}
	}
	return false
}

func (r userRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.taken(primitive.NilObjectID, &user.Username) {
		return primitive.NilObjectID, repository.ErrConflict
	}
	user.ID = primitive.NewObjectID()
	ts := now()
	user.CreatedAt = ts
	user.UpdatedAt = ts
	if user.Workouts == nil {
		user.Workouts = []primitive.ObjectID{}
	}
	if user.WorkoutLogs == nil {
		user.WorkoutLogs = []primitive.ObjectID{}
	}
	r.s.users[user.ID] = copyUser(*user)
	return user.ID, nil
}

func (r userRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			found := copyUser(u)
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r userRepo) GetProfileByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProfile, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Profile(), nil
}

func (r userRepo) GetProfileByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.Profile(), nil
}

func (r userRepo) GetAll(_ context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]primitive.ObjectID, 0, len(r.s.users))
	for id := range r.s.users {
		ids = append(ids, id)
	}
	byCreation(ids)

	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyUser(r.s.users[id]))
	}
	return out, nil
}

func (r userRepo) Update(_ context.Context, id primitive.ObjectID, update domain.UserUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.taken(id, update.Username) {
		return repository.ErrConflict
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	if update.Workouts != nil {
		u.Workouts = copyIDs(*update.Workouts)
	}
	if update.WorkoutLogs != nil {
		u.WorkoutLogs = copyIDs(*update.WorkoutLogs)
	}
	u.UpdatedAt = now()
	r.s.users[id] = u
	return nil
}

func (r userRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// ---- friendships ----

type friendshipRepo struct{ s *Store }

func (r friendshipRepo) Add(_ context.Context, a, b primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	edge := domain.NewFriendship(a, b)
	if _, ok := r.s.friendships[edge.ID]; ok {
		return nil
	}
	edge.CreatedAt = now()
	r.s.friendships[edge.ID] = edge
	return nil
}

func (r friendshipRepo) Remove(_ context.Context, a, b primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.friendships, domain.FriendshipKey(a, b))
	return nil
}

func (r friendshipRepo) ListFriends(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	edges, _ := r.ListAll(ctx)
	friends := []primitive.ObjectID{}
	for _, edge := range edges {
		if edge.Involves(userID) {
			friends = append(friends, edge.Other(userID))
		}
	}
	return friends, nil
}

func (r friendshipRepo) ListAll(_ context.Context) ([]domain.Friendship, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Friendship, 0, len(r.s.friendships))
	for _, edge := range r.s.friendships {
		edge.Users = copyIDs(edge.Users)
		out = append(out, edge)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r friendshipRepo) RemoveAllFor(_ context.Context, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, edge := range r.s.friendships {
		if edge.Involves(userID) {
			delete(r.s.friendships, key)
		}
	}
	return nil
}

// ---- workouts ----

type workoutRepo struct{ s *Store }

func copyWorkout(w domain.Workout) domain.Workout {
	entries := make([]domain.WorkoutExercise, len(w.Exercises))
	copy(entries, w.Exercises)
	w.Exercises = entries
	return w
}

func (r workoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = now()
	r.s.workouts[workout.ID] = copyWorkout(*workout)
	return workout.ID, nil
}

func (r workoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w = copyWorkout(w)
	return &w, nil
}

func (r workoutRepo) GetByCreator(_ context.Context, creator string) ([]domain.Workout, error) {
	return r.filter(func(w domain.Workout) bool { return w.Creator == creator }), nil
}

func (r workoutRepo) GetByName(_ context.Context, name string) ([]domain.Workout, error) {
	return r.filter(func(w domain.Workout) bool { return w.Name == name }), nil
}

func (r workoutRepo) GetAll(_ context.Context) ([]domain.Workout, error) {
	return r.filter(func(domain.Workout) bool { return true }), nil
}

// filter returns matches newest first, like the mongo store.
func (r workoutRepo) filter(match func(domain.Workout) bool) []domain.Workout {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]primitive.ObjectID, 0, len(r.s.workouts))
	for id, w := range r.s.workouts {
		if match(w) {
			ids = append(ids, id)
		}
	}
	byCreation(ids)

	out := make([]domain.Workout, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, copyWorkout(r.s.workouts[ids[i]]))
	}
	return out
}

// ---- workout logs ----

type workoutLogRepo struct{ s *Store }

func copyLog(l domain.WorkoutLog) domain.WorkoutLog {
	entries := make([]domain.ExerciseLog, len(l.ExerciseLogs))
	copy(entries, l.ExerciseLogs)
	l.ExerciseLogs = entries
	return l
}

func (r workoutLogRepo) Create(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log.ID = primitive.NewObjectID()
	ts := now()
	log.CreatedAt = ts
	log.UpdatedAt = ts
	if log.ExerciseLogs == nil {
		log.ExerciseLogs = []domain.ExerciseLog{}
	}
	r.s.workoutLogs[log.ID] = copyLog(*log)
	return log.ID, nil
}

func (r workoutLogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.workoutLogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	l = copyLog(l)
	return &l, nil
}

func (r workoutLogRepo) Find(_ context.Context, filter domain.WorkoutLogFilter) ([]domain.WorkoutLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.WorkoutLog{}
	for _, l := range r.s.workoutLogs {
		if filter.Matches(&l) {
			out = append(out, copyLog(l))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

// mutate applies fn to the stored log under the write lock and returns the result.
func (r workoutLogRepo) mutate(id primitive.ObjectID, fn func(*domain.WorkoutLog)) (*domain.WorkoutLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.workoutLogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	l = copyLog(l)
	fn(&l)
	l.UpdatedAt = now()
	r.s.workoutLogs[id] = l

	result := copyLog(l)
	return &result, nil
}

func (r workoutLogRepo) Update(_ context.Context, id primitive.ObjectID, update domain.WorkoutLogUpdate) (*domain.WorkoutLog, error) {
	return r.mutate(id, func(l *domain.WorkoutLog) {
		l.UserID = update.UserID
		l.WorkoutID = update.WorkoutID
		l.Date = update.Date
		l.ExerciseLogs = make([]domain.ExerciseLog, len(update.ExerciseLogs))
		copy(l.ExerciseLogs, update.ExerciseLogs)
	})
}

func (r workoutLogRepo) Delete(_ context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.workoutLogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.workoutLogs, id)
	return &l, nil
}

func (r workoutLogRepo) PushExerciseLog(_ context.Context, id primitive.ObjectID, entry domain.ExerciseLog) (*domain.WorkoutLog, error) {
	return r.mutate(id, func(l *domain.WorkoutLog) {
		l.ExerciseLogs = append(l.ExerciseLogs, entry)
	})
}

func (r workoutLogRepo) PullExerciseLogs(_ context.Context, id, exerciseID primitive.ObjectID) (*domain.WorkoutLog, error) {
	return r.mutate(id, func(l *domain.WorkoutLog) {
		kept := l.ExerciseLogs[:0]
		for _, e := range l.ExerciseLogs {
			if e.ExerciseID != exerciseID {
				kept = append(kept, e)
			}
		}
		l.ExerciseLogs = kept
	})
}
