// Package validation checks request payloads with go-playground/validator and
// reports failures per JSON field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	notBlankTag = "notblank"

	// MinPasswordLength is the shortest accepted parent password
	MinPasswordLength = 8
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string { return "this field cannot be blank" },
	)
}

// FieldError describes one invalid field
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is returned when a payload fails validation
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Error))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError builds a validation error for a single field
func NewError(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Error: message}}}
}

// Struct validates v using its validate tags
func Struct(v any) error {
	return convert(validate.Struct(v), "")
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewError("email", "email is required")
	}
	if strings.ContainsAny(email, " \t") {
		return NewError("email", "invalid email format")
	}
	return convert(validate.Var(email, "email"), "email")
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return NewError("password", "password is required")
	}
	if len(password) < MinPasswordLength {
		return NewError("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// ValidateName checks a child's display name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewError("name", "name is required")
	}
	if len([]rune(name)) > 100 {
		return NewError("name", "name must be at most 100 characters")
	}
	return nil
}

// convert turns validator errors into *Error. A non-empty field overrides the
// reported name, which Var checks do not have.
func convert(err error, field string) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		name := fe.Field()
		if field != "" {
			name = field
		}
		msg := fe.Translate(translator)
		if field != "" && fe.Tag() == "email" {
			msg = "invalid email format"
		}
		out.Fields = append(out.Fields, FieldError{Field: name, Error: msg})
	}
	return out
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}
