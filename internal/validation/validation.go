// Package validation checks event drafts before they reach the store.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"global-terrorism-dashboard/internal/model"
)

// ValidationError lists every problem found in a draft.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// EventValidator validates event drafts and registration forms.
type EventValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewEventValidator registers the custom rules used by event forms.
func NewEventValidator() *EventValidator {
	ev := &EventValidator{validate: validator.New(), now: time.Now}

	ev.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	ev.validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(model.Date); ok {
			return d.Time
		}
		return nil
	}, model.Date{})

	_ = ev.validate.RegisterValidation("notblank", notBlank)
	_ = ev.validate.RegisterValidation("notfuture", ev.notFuture)

	return ev
}

// Validate returns a *ValidationError when draft is not acceptable.
func (ev *EventValidator) Validate(draft model.EventDTO) error {
	return ev.check("event", draft)
}

// ValidateRegistration checks a sign up form before it is sent upstream.
func (ev *EventValidator) ValidateRegistration(data model.RegistrationData) error {
	return ev.check("registration", data)
}

func (ev *EventValidator) check(kind string, v any) error {
	err := ev.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s: %w", kind, err)
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, message(fe))
	}
	return &ValidationError{Messages: messages}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func (ev *EventValidator) notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(ev.now())
}

// message renders a field error using the json path without the root type.
func message(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "notblank":
		return fmt.Sprintf("%s cannot be empty", field)
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notfuture":
		return fmt.Sprintf("%s cannot be in the future", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, lowerFirst(fe.Param()))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s cannot exceed %s", field, lowerFirst(fe.Param()))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
