package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type registerInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"min=6"`
	Role     string `validate:"oneof=teacher student"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(registerInput{Email: "nope", Password: "abc", Role: "root"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := FormatValidationError(err)
	for _, want := range []string{
		"Username is required",
		"Email must be a valid email",
		"Password must be at least 6 characters",
		"Role must be one of: teacher student",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
}

func TestFormatValidationErrorPassthrough(t *testing.T) {
	if got := FormatValidationError(errors.New("EOF")); got != "EOF" {
		t.Errorf("got %q, want EOF", got)
	}
}
