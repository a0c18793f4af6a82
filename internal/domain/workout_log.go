package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLog records one completed performance of a workout. Exercise names
// and counts are copied into the log, so later workout edits do not change it.
type WorkoutLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	WorkoutID    primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Date         time.Time          `bson:"date" json:"date"` // UTC midnight
	ExerciseLogs []ExerciseLog      `bson:"exerciseLogs" json:"exerciseLogs"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ExerciseLog struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Name       string             `bson:"name" json:"name"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	Notes      string             `bson:"notes" json:"notes"`
}

type ExerciseLogInput struct {
	ExerciseID string `json:"exerciseId" validate:"required,objectid"`
	Name       string `json:"name" validate:"required"`
	Sets       *int   `json:"sets" validate:"required,gt=0"`
	Reps       *int   `json:"reps" validate:"required,gt=0"`
	Notes      string `json:"notes"`
}

// WorkoutLogInput carries the raw fields for create and wholesale update.
type WorkoutLogInput struct {
	UserID       string             `json:"userId"`
	WorkoutID    string             `json:"workoutId"`
	Date         string             `json:"date"`
	ExerciseLogs []ExerciseLogInput `json:"exerciseLogs" validate:"dive"`
}

// WorkoutLogFilter is a conjunctive filter; nil fields are not filtered on.
type WorkoutLogFilter struct {
	UserID    *primitive.ObjectID
	WorkoutID *primitive.ObjectID
	Date      *time.Time
}

func (f WorkoutLogFilter) Matches(l *WorkoutLog) bool {
	return (f.UserID == nil || *f.UserID == l.UserID) &&
		(f.WorkoutID == nil || *f.WorkoutID == l.WorkoutID) &&
		(f.Date == nil || f.Date.Equal(l.Date))
}

// WorkoutLogUpdate replaces every mutable field of a log.
type WorkoutLogUpdate struct {
	UserID       primitive.ObjectID
	WorkoutID    primitive.ObjectID
	Date         time.Time
	ExerciseLogs []ExerciseLog
}
