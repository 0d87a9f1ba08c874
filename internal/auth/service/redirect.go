package service

import (
	"errors"
	"fmt"
	"net/url"
)

// Redirect is a control-flow value, not a failure. It rides the error return
// so that auth gating composes with normal error handling, but callers must
// answer it with an HTTP redirect, never log it as an error.
type Redirect struct {
	To string
}

func (r *Redirect) Error() string {
	return fmt.Sprintf("redirect to %s", r.To)
}

func AsRedirect(err error) (*Redirect, bool) {
	var redirect *Redirect
	if errors.As(err, &redirect) {
		return redirect, true
	}
	return nil, false
}

func loginRedirect(redirectTo string) *Redirect {
	params := url.Values{}
	params.Set("redirectTo", redirectTo)
	return &Redirect{To: "/login?" + params.Encode()}
}
