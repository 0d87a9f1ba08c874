package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jokehub/jokehub/internal/auth/service"
	commonhttp "github.com/jokehub/jokehub/internal/common/http"
	"github.com/jokehub/jokehub/internal/common/logger"
)

const defaultRedirectTo = "/jokes"

type Handler struct {
	auth     *service.AuthService
	validate *validator.Validate
	log      *logger.Logger
}

func NewHandler(auth *service.AuthService, log *logger.Logger) http.Handler {
	h := &Handler{
		auth:     auth,
		validate: newValidator(),
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
	mux.HandleFunc("/api/auth/username-available", h.usernameAvailable)
	return mux
}

// login serves the combined login/register form action. loginType picks the
// flow; both end in a session cookie and a redirect on success.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidForm, "invalid form body", nil)
		return
	}

	form := loginForm{
		LoginType:  r.PostFormValue("loginType"),
		Username:   r.PostFormValue("username"),
		Password:   r.PostFormValue("password"),
		RedirectTo: r.PostFormValue("redirectTo"),
	}

	if err := h.validate.Struct(form); err != nil {
		commonhttp.WriteJSON(w, http.StatusUnprocessableEntity, ActionData{
			Fields:      map[string]string{"username": form.Username},
			FieldErrors: fieldErrors(err),
		})
		return
	}

	creds := service.Credentials{
		Username: form.Username,
		Password: form.Password,
	}

	var userID string

	switch form.LoginType {
	case "register":
		userID = h.register(w, r, creds)
		if userID == "" {
			return
		}
	case "login":
		user, err := h.auth.Login(r.Context(), creds)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				commonhttp.WriteJSON(w, http.StatusUnauthorized, ActionData{
					Fields:    map[string]string{"username": form.Username},
					FormError: []string{"Invalid username or password"},
				})
				return
			}
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
		userID = string(user.ID)
	}

	redirectTo := form.RedirectTo
	if redirectTo == "" {
		redirectTo = defaultRedirectTo
	}

	redirect, err := h.auth.CreateSession(w, userID, redirectTo)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	http.Redirect(w, r, redirect.To, http.StatusSeeOther)
}

// register runs the registration flow and answers the duplicate-username
// form error itself. Returns the new user id, or "" when a response has
// already been written.
func (h *Handler) register(w http.ResponseWriter, r *http.Request, creds service.Credentials) string {
	user, err := h.auth.Register(r.Context(), creds)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			commonhttp.WriteJSON(w, http.StatusConflict, ActionData{
				Fields:    map[string]string{"username": creds.Username},
				FormError: []string{fmt.Sprintf("Username %s already exists.", creds.Username)},
			})
			return ""
		}
		commonhttp.HandleError(w, r, err, h.log)
		return ""
	}
	return string(user.ID)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil)
		return
	}

	redirect := h.auth.ClearSession(w)
	http.Redirect(w, r, redirect.To, http.StatusSeeOther)
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

func (h *Handler) usernameAvailable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "username is required", nil)
		return
	}

	available, err := h.auth.UsernameAvailable(r.Context(), username)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, availabilityResponse{Available: available})
}
