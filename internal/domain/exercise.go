package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single movement in the shared exercise library.
// Exercises are immutable once created.
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Target    string             `bson:"target" json:"target" validate:"required"`       // e.g. "quads", "pectorals"
	BodyPart  string             `bson:"bodyPart" json:"bodyPart" validate:"required"`   // e.g. "upper legs"
	Equipment string             `bson:"equipment" json:"equipment" validate:"required"` // e.g. "barbell"
	GifURL    string             `bson:"gifUrl" json:"gifUrl" validate:"required,url"`   // animated demo
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ExerciseFilter is a conjunctive filter; empty fields are not filtered on.
type ExerciseFilter struct {
	Name      string
	BodyPart  string
	Equipment string
	Target    string
}

// IsEmpty reports whether the filter matches every exercise.
func (f ExerciseFilter) IsEmpty() bool {
	return f.Name == "" && f.BodyPart == "" && f.Equipment == "" && f.Target == ""
}

// Matches is used by in-memory stores; the mongo store builds a query instead.
func (f ExerciseFilter) Matches(ex *Exercise) bool {
	return (f.Name == "" || f.Name == ex.Name) &&
		(f.BodyPart == "" || f.BodyPart == ex.BodyPart) &&
		(f.Equipment == "" || f.Equipment == ex.Equipment) &&
		(f.Target == "" || f.Target == ex.Target)
}
