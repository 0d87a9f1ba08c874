package http

import (
	"github.com/go-playground/validator/v10"
)

type jokeForm struct {
	Name    string `validate:"required,min=3"`
	Content string `validate:"required,min=10"`
}

// actionData mirrors the login form envelope so both forms fail the same
// way on the wire.
type actionData struct {
	Fields      map[string]string   `json:"fields,omitempty"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
	FormError   []string            `json:"formError,omitempty"`
}

var jokeFieldMessages = map[string]string{
	"Name":    "Joke name is too short.",
	"Content": "Joke content is too short",
}

func jokeActionData(form jokeForm, err error) actionData {
	out := actionData{
		Fields: map[string]string{
			"name":    form.Name,
			"content": form.Content,
		},
		FieldErrors: map[string][]string{},
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}

	for _, fe := range verrs {
		field := fe.Field()
		msg, known := jokeFieldMessages[field]
		if !known {
			msg = "Invalid value."
		}
		key := string(field[0]|0x20) + field[1:]
		out.FieldErrors[key] = append(out.FieldErrors[key], msg)
	}

	return out
}
