package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"studio-booking/internal/domain/booking"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TagCivilDate = "civildate"
	TagClockTime = "clocktime"
)

var (
	messages = map[string]string{
		"required":   "{field} is required",
		"gt":         "{field} must be greater than {param}",
		"gte":        "{field} must be greater than or equal to {param}",
		"lte":        "{field} must be less than or equal to {param}",
		"max":        "{field} must be at most {param} characters",
		"email":      "{field} must be a valid email address",
		TagCivilDate: "{field} must be a date formatted as YYYY-MM-DD",
		TagClockTime: "{field} must be a time formatted as HH:MM",
	}

	registerOnce sync.Once
	registerErr  error
)

// Register adds the booking validators to gin's binding engine. Safe to call
// more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(fieldName)
		if err := v.RegisterValidation(TagCivilDate, civilDate); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation(TagClockTime, clockTime)
	})
	return registerErr
}

// fieldName reports the json name, or the form name for query structs.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func civilDate(fl validator.FieldLevel) bool {
	_, err := booking.ParseDate(fl.Field().String())
	return err == nil
}

func clockTime(fl validator.FieldLevel) bool {
	_, err := booking.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

// Message renders the first validation failure for a response body.
func Message(err error) string {
	var valErrors validator.ValidationErrors
	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			msg := messages[valErr.Tag()]
			if msg == "" {
				continue
			}
			msg = strings.ReplaceAll(msg, "{field}", valErr.Field())
			return strings.ReplaceAll(msg, "{param}", valErr.Param())
		}
		return valErrors.Error()
	}
	return "Invalid request format"
}
