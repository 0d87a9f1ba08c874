package service

import (
	"net/http"

	commonerrors "github.com/jokehub/jokehub/internal/common/errors"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases must stay indistinguishable to the caller.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid username or password",
	)

	ErrUsernameTaken = commonerrors.NewDomainError(
		"USERNAME_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)
)
