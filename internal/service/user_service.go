package service

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"stevensfit/fitness-api/internal/apperror"
	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/logging"
	"stevensfit/fitness-api/internal/repository"
	"stevensfit/fitness-api/internal/validate"
)

// UserService manages accounts, credential checks and the friend relation.
type UserService interface {
	CreateUser(ctx context.Context, username, password, email string) (string, error)
	CheckUserByUsername(ctx context.Context, username, password string) (*domain.User, error)
	CheckUserByEmail(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.UserProfile, error)
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.UserProfile, error)
	DeleteUser(ctx context.Context, id string) error
	AddFriend(ctx context.Context, id, friendID string) ([]primitive.ObjectID, error)
	RemoveFriend(ctx context.Context, id, friendID string) ([]primitive.ObjectID, error)
	GetFriends(ctx context.Context, id string) ([]primitive.ObjectID, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	userRepo       repository.UserRepository
	friendshipRepo repository.FriendshipRepository
	bcryptCost     int
}

// NewUserService creates a UserService. A bcryptCost outside bcrypt's range
// falls back to bcrypt.DefaultCost.
func NewUserService(userRepo repository.UserRepository, friendshipRepo repository.FriendshipRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepo:       userRepo,
		friendshipRepo: friendshipRepo,
		bcryptCost:     bcryptCost,
	}
}

func (s *userService) hash(ctx context.Context, op, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		logging.FromContext(ctx).Error("password hashing failed", slog.String("op", op), slog.String("error", err.Error()))
		return "", apperror.Persistence(op, err)
	}
	return string(hashed), nil
}

// CreateUser validates the signup fields, hashes the password and inserts the
// user. Uniqueness is decided by the store's unique indexes in the same write.
func (s *userService) CreateUser(ctx context.Context, username, password, email string) (string, error) {
	const op = "users.createUser"

	in := domain.NewUser{Username: username, Password: password, Email: email}
	if err := validate.Struct(op, &in); err != nil {
		return "", err
	}

	hashed, err := s.hash(ctx, op, password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Workouts:     []primitive.ObjectID{},
		WorkoutLogs:  []primitive.ObjectID{},
	}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", apperror.Conflict(op, "user", "username", username)
		}
		return "", persistenceFailure(ctx, op, err)
	}

	logging.FromContext(ctx).Info("user created", slog.String("user_id", id.Hex()), slog.String("username", username))
	return id.Hex(), nil
}

func (s *userService) CheckUserByUsername(ctx context.Context, username, password string) (*domain.User, error) {
	const op = "users.checkUserByUsername"

	if err := validate.Struct(op, &struct {
		Username string `json:"username" validate:"required,alphanum"`
		Password string `json:"password" validate:"required"`
	}{username, password}); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	return s.checkPassword(ctx, op, user, err, "username", username, password)
}

func (s *userService) CheckUserByEmail(ctx context.Context, email, password string) (*domain.User, error) {
	const op = "users.checkUserByEmail"

	if err := validate.Struct(op, &struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}{email, password}); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	return s.checkPassword(ctx, op, user, err, "email", email, password)
}

// checkPassword finishes a credential check. The returned user never carries
// the password hash.
func (s *userService) checkPassword(ctx context.Context, op string, user *domain.User, lookupErr error, key, value, password string) (*domain.User, error) {
	if lookupErr != nil {
		if errors.Is(lookupErr, repository.ErrNotFound) {
			return nil, apperror.NotFound(op, "user", key, value)
		}
		return nil, persistenceFailure(ctx, op, lookupErr)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logging.FromContext(ctx).Warn("credential check failed", slog.String("op", op), slog.String("user_id", user.ID.Hex()))
		return nil, apperror.Unauthorized(op, "either the "+key+" or password is invalid")
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	const op = "users.getUserById"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, op, oid)
}

func (s *userService) profile(ctx context.Context, op string, id primitive.ObjectID) (*domain.UserProfile, error) {
	profile, err := s.userRepo.GetProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(op, "user", "id", id.Hex())
		}
		return nil, persistenceFailure(ctx, op, err)
	}
	return profile, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	const op = "users.getUserByUsername"

	if err := validate.Struct(op, &struct {
		Username string `json:"username" validate:"required,alphanum"`
	}{username}); err != nil {
		return nil, err
	}
	profile, err := s.userRepo.GetProfileByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(op, "user", "username", username)
		}
		return nil, persistenceFailure(ctx, op, err)
	}
	return profile, nil
}

// UpdateUser applies a partial patch. Only supplied fields change; a supplied
// password is re-hashed and a supplied friends list replaces the user's edges.
// The field update runs first since it is the step that can conflict; the
// edge replacement after it is idempotent, so retrying the same patch after
// a failed edge write converges.
func (s *userService) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.UserProfile, error) {
	const op = "users.updateUser"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, apperror.InvalidArgument(op, "", "you must provide at least one field to update")
	}
	if err := validate.Struct(op, &patch); err != nil {
		return nil, err
	}

	update := domain.UserUpdate{Username: patch.Username, Email: patch.Email}
	if patch.Password != nil {
		hashed, err := s.hash(ctx, op, *patch.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hashed
	}
	if patch.Workouts != nil {
		ids, err := validate.IDs(op, "workouts", *patch.Workouts)
		if err != nil {
			return nil, err
		}
		update.Workouts = &ids
	}
	if patch.WorkoutLogs != nil {
		ids, err := validate.IDs(op, "workoutLogs", *patch.WorkoutLogs)
		if err != nil {
			return nil, err
		}
		update.WorkoutLogs = &ids
	}

	var friends []primitive.ObjectID
	if patch.Friends != nil {
		if friends, err = validate.IDs(op, "friends", *patch.Friends); err != nil {
			return nil, err
		}
		for _, f := range friends {
			if f == oid {
				return nil, apperror.InvalidArgument(op, "friends", "a user cannot be their own friend")
			}
			if _, err := s.profile(ctx, op, f); err != nil {
				return nil, err
			}
		}
	}

	if !update.IsEmpty() {
		if err := s.userRepo.Update(ctx, oid, update); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return nil, apperror.NotFound(op, "user", "id", oid.Hex())
			case errors.Is(err, repository.ErrConflict):
				return nil, updateConflict(op, patch)
			default:
				return nil, persistenceFailure(ctx, op, err)
			}
		}
	} else if _, err := s.profile(ctx, op, oid); err != nil {
		return nil, err
	}

	if patch.Friends != nil {
		if err := s.replaceFriends(ctx, op, oid, friends); err != nil {
			return nil, err
		}
	}

	logging.FromContext(ctx).Info("user updated", slog.String("user_id", oid.Hex()))
	return s.profile(ctx, op, oid)
}

// updateConflict names the username, the only unique user field.
func updateConflict(op string, patch domain.UserPatch) error {
	var username string
	if patch.Username != nil {
		username = *patch.Username
	}
	return apperror.Conflict(op, "user", "username", username)
}

// replaceFriends makes the user's edge set equal to want.
func (s *userService) replaceFriends(ctx context.Context, op string, id primitive.ObjectID, want []primitive.ObjectID) error {
	current, err := s.friendshipRepo.ListFriends(ctx, id)
	if err != nil {
		return persistenceFailure(ctx, op, err)
	}

	keep := make(map[primitive.ObjectID]bool, len(want))
	for _, f := range want {
		keep[f] = true
	}
	for _, f := range current {
		if keep[f] {
			delete(keep, f)
			continue
		}
		if err := s.friendshipRepo.Remove(ctx, id, f); err != nil {
			return persistenceFailure(ctx, op, err)
		}
	}
	for f := range keep {
		if err := s.friendshipRepo.Add(ctx, id, f); err != nil {
			return persistenceFailure(ctx, op, err)
		}
	}
	return nil
}

// DeleteUser removes every friendship edge touching the user, then the user.
// Edges go first: if that step fails the user still exists and the delete
// can be retried, so no edge outlives its user.
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	const op = "users.deleteUser"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return err
	}
	if err := s.friendshipRepo.RemoveAllFor(ctx, oid); err != nil {
		return persistenceFailure(ctx, op, err)
	}
	if err := s.userRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(op, "user", "id", oid.Hex())
		}
		return persistenceFailure(ctx, op, err)
	}

	logging.FromContext(ctx).Info("user deleted", slog.String("user_id", oid.Hex()))
	return nil
}

// friendPair validates both ids and rejects self-friendship.
func friendPair(op, id, friendID string) (primitive.ObjectID, primitive.ObjectID, error) {
	uid, err := validate.ID(op, "id", id)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	fid, err := validate.ID(op, "friendId", friendID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	if uid == fid {
		return primitive.NilObjectID, primitive.NilObjectID, apperror.InvalidArgument(op, "friendId", "a user cannot be their own friend")
	}
	return uid, fid, nil
}

// AddFriend records a symmetric friendship and returns the caller's friends.
func (s *userService) AddFriend(ctx context.Context, id, friendID string) ([]primitive.ObjectID, error) {
	const op = "users.addFriend"

	uid, fid, err := friendPair(op, id, friendID)
	if err != nil {
		return nil, err
	}
	if _, err := s.profile(ctx, op, uid); err != nil {
		return nil, err
	}
	if _, err := s.profile(ctx, op, fid); err != nil {
		return nil, err
	}
	if err := s.friendshipRepo.Add(ctx, uid, fid); err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}

	logging.FromContext(ctx).Info("friend added", slog.String("user_id", uid.Hex()), slog.String("friend_id", fid.Hex()))
	return s.listFriends(ctx, op, uid)
}

// RemoveFriend drops the friendship for both users and returns the caller's friends.
func (s *userService) RemoveFriend(ctx context.Context, id, friendID string) ([]primitive.ObjectID, error) {
	const op = "users.removeFriend"

	uid, fid, err := friendPair(op, id, friendID)
	if err != nil {
		return nil, err
	}
	if _, err := s.profile(ctx, op, uid); err != nil {
		return nil, err
	}
	if err := s.friendshipRepo.Remove(ctx, uid, fid); err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}

	logging.FromContext(ctx).Info("friend removed", slog.String("user_id", uid.Hex()), slog.String("friend_id", fid.Hex()))
	return s.listFriends(ctx, op, uid)
}

func (s *userService) GetFriends(ctx context.Context, id string) ([]primitive.ObjectID, error) {
	const op = "users.getFriends"

	oid, err := validate.ID(op, "id", id)
	if err != nil {
		return nil, err
	}
	if _, err := s.profile(ctx, op, oid); err != nil {
		return nil, err
	}
	return s.listFriends(ctx, op, oid)
}

func (s *userService) listFriends(ctx context.Context, op string, id primitive.ObjectID) ([]primitive.ObjectID, error) {
	friends, err := s.friendshipRepo.ListFriends(ctx, id)
	if err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}
	if friends == nil {
		friends = []primitive.ObjectID{}
	}
	return friends, nil
}

// GetAllUsers returns every user with their friend lists filled in.
func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	const op = "users.getAllUsers"

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}
	edges, err := s.friendshipRepo.ListAll(ctx)
	if err != nil {
		return nil, persistenceFailure(ctx, op, err)
	}

	friends := make(map[primitive.ObjectID][]primitive.ObjectID)
	for _, edge := range edges {
		if len(edge.Users) != 2 {
			continue
		}
		a, b := edge.Users[0], edge.Users[1]
		friends[a] = append(friends[a], b)
		friends[b] = append(friends[b], a)
	}
	for i := range users {
		users[i].Friends = friends[users[i].ID]
		if users[i].Friends == nil {
			users[i].Friends = []primitive.ObjectID{}
		}
	}
	return users, nil
}
