// Package validate guards every service operation: identifier and date
// parsing, plus a single struct-tag gate per entity input.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/apperror"
)

var schema = newSchema()

func newSchema() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("gifUrl") rather than Go names ("GifURL").
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return v
}

// StrongPassword reports whether pw is at least 8 characters of letters and
// digits only, containing at least one of each.
func StrongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		default:
			return false
		}
	}
	return letter && digit
}

// ID trims raw and parses it as a 24-hex-character object id.
func ID(op, field, raw string) (primitive.ObjectID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return primitive.NilObjectID, apperror.InvalidArgument(op, field, "you must provide %s", field)
	}
	id, err := primitive.ObjectIDFromHex(trimmed)
	if err != nil {
		return primitive.NilObjectID, apperror.InvalidArgument(op, field, "%s %q is not a valid id", field, raw)
	}
	return id, nil
}

// IDs validates every element of raws; the error names the first bad index.
func IDs(op, field string, raws []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raws))
	for i, raw := range raws {
		id, err := ID(op, fmt.Sprintf("%s[%d]", field, i), raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Date parses raw into a calendar date at UTC midnight, so logs written and
// queried on the same day compare equal.
func Date(op, field, raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, apperror.InvalidArgument(op, field, "you must provide %s", field)
	}
	t, err := cast.ToTimeE(trimmed)
	if err != nil || t.Year() < 1 {
		return time.Time{}, apperror.InvalidArgument(op, field, "%s %q is not a valid date", field, raw)
	}
	return Day(t), nil
}

// Day truncates t to midnight UTC of its own calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Struct runs the tag rules on v and returns the first failure as an
// InvalidArgument naming the offending field.
func Struct(op string, v any) error {
	err := schema.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.InvalidArgument(op, "", "invalid input: %v", err)
	}

	fe := fieldErrs[0]
	field := fieldPath(fe)
	return apperror.InvalidArgument(op, field, "%s", describe(field, fe))
}

// fieldPath drops the top-level struct name from the namespace,
// e.g. "NewWorkout.exercises[0].reps" -> "exercises[0].reps".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", field)
	case "password":
		return fmt.Sprintf("%s must be at least 8 letters and digits with at least one of each", field)
	case "objectid":
		return fmt.Sprintf("%s %q is not a valid id", field, fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q rule", field, fe.Tag())
	}
}
