package http

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ActionData is the form-action envelope: submitted fields echoed back,
// per-field validation messages, and form-level errors. Validation is
// settled here; the auth service never sees an out-of-bounds field.
type ActionData struct {
	Fields      map[string]string   `json:"fields,omitempty"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
	FormError   []string            `json:"formError,omitempty"`
}

type loginForm struct {
	LoginType  string `validate:"required,oneof=login register"`
	Username   string `validate:"required,min=3,max=20"`
	Password   string `validate:"required,min=3,max=100"`
	RedirectTo string `validate:"omitempty,startswith=/"`
}

var fieldMessages = map[string]string{
	"loginForm.Username.min": "Username is too short.",
	"loginForm.Username.max": "Username is too long",
	"loginForm.Password.min": "Password is too short.",
	"loginForm.Password.max": "Password is too long",
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// fieldErrors flattens validator output into the envelope's per-field shape,
// keyed by the lowercased form field name.
func fieldErrors(err error) map[string][]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{}
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		msg, ok := fieldMessages[fmt.Sprintf("%s.%s", fe.StructNamespace(), fe.Tag())]
		if !ok {
			msg = fmt.Sprintf("Invalid %s.", field)
		}
		out[field] = append(out[field], msg)
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}
