package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a named, ordered list of exercises with set/rep targets.
// Workouts are immutable after creation.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Creator   string             `bson:"creator" json:"creator"` // user id, or "ADMIN" for seeded workouts
	Exercises []WorkoutExercise  `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type WorkoutExercise struct {
	ExerciseID        primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets              int                `bson:"sets" json:"sets"`
	Reps              int                `bson:"reps" json:"reps"`
	AdditionalDetails string             `bson:"additionalDetails,omitempty" json:"additionalDetails,omitempty"`
}

// ContainsAll reports whether the workout references every id in ids.
func (w *Workout) ContainsAll(ids []primitive.ObjectID) bool {
	have := make(map[primitive.ObjectID]struct{}, len(w.Exercises))
	for _, e := range w.Exercises {
		have[e.ExerciseID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			return false
		}
	}
	return true
}

// NewWorkout is the creation input. Unknown entry fields never reach it:
// decoding whitelists exerciseId, sets, reps and additionalDetails.
type NewWorkout struct {
	Name      string                 `json:"name" validate:"required"`
	Creator   string                 `json:"creator" validate:"required"`
	Exercises []WorkoutExerciseInput `json:"exercises" validate:"required,min=1,dive"`
}

type WorkoutExerciseInput struct {
	ExerciseID        string `json:"exerciseId" validate:"required,objectid"`
	Sets              *int   `json:"sets" validate:"required,gt=0"`
	Reps              *int   `json:"reps" validate:"required,gt=0"`
	AdditionalDetails string `json:"additionalDetails,omitempty"`
}
