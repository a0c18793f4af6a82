package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account in the users collection.
// Friends are not stored on the user document; see Friendship.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"` // unique, alphanumeric
	Email        string               `bson:"email" json:"email"`       // unique
	PasswordHash string               `bson:"password" json:"-"`        // bcrypt hash, never exposed
	Workouts     []primitive.ObjectID `bson:"workouts" json:"workouts"`
	WorkoutLogs  []primitive.ObjectID `bson:"workoutLogs" json:"workoutLogs"`
	Friends      []primitive.ObjectID `bson:"-" json:"friends,omitempty"` // filled from friendship edges
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// UserProfile is the read projection returned by id/username lookups.
// It deliberately leaves out the password hash and the friend list.
type UserProfile struct {
	ID          primitive.ObjectID   `bson:"_id" json:"id"`
	Username    string               `bson:"username" json:"username"`
	Email       string               `bson:"email" json:"email"`
	Workouts    []primitive.ObjectID `bson:"workouts" json:"workouts"`
	WorkoutLogs []primitive.ObjectID `bson:"workoutLogs" json:"workoutLogs"`
}

// Profile projects u onto the fields exposed by UserProfile.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Workouts:    u.Workouts,
		WorkoutLogs: u.WorkoutLogs,
	}
}

// NewUser is the signup input. It passes through the validation gate as a whole.
type NewUser struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,password"`
	Email    string `json:"email" validate:"required,email"`
}

// UserPatch is a partial update. Nil fields are left untouched; every
// non-nil field is validated as if it were supplied at signup.
type UserPatch struct {
	Username    *string   `json:"username" validate:"omitempty,alphanum"`
	Password    *string   `json:"password" validate:"omitempty,password"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Workouts    *[]string `json:"workouts" validate:"omitempty,dive,objectid"`
	WorkoutLogs *[]string `json:"workoutLogs" validate:"omitempty,dive,objectid"`
	Friends     *[]string `json:"friends" validate:"omitempty,dive,objectid"`
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Email == nil &&
		p.Workouts == nil && p.WorkoutLogs == nil && p.Friends == nil
}

// UserUpdate is the store-level $set document built from a validated UserPatch.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Workouts     *[]primitive.ObjectID
	WorkoutLogs  *[]primitive.ObjectID
}

// IsEmpty reports whether no stored field changes.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil &&
		u.Workouts == nil && u.WorkoutLogs == nil
}
