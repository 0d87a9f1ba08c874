package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	authservice "github.com/jokehub/jokehub/internal/auth/service"
	"github.com/jokehub/jokehub/internal/common/constants"
	commonhttp "github.com/jokehub/jokehub/internal/common/http"
	"github.com/jokehub/jokehub/internal/common/logger"
	jokedomain "github.com/jokehub/jokehub/internal/joke/domain"
	jokeservice "github.com/jokehub/jokehub/internal/joke/service"
	userdomain "github.com/jokehub/jokehub/internal/user/domain"
	userrepo "github.com/jokehub/jokehub/internal/user/repository"
)

type Handler struct {
	jokes    *jokeservice.JokeService
	auth     *authservice.AuthService
	users    userrepo.Repository
	validate *validator.Validate
	log      *logger.Logger
}

func NewHandler(
	jokes *jokeservice.JokeService,
	auth *authservice.AuthService,
	users userrepo.Repository,
	log *logger.Logger,
) http.Handler {
	h := &Handler{
		jokes:    jokes,
		auth:     auth,
		users:    users,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/jokes", h.jokesRoot)
	mux.HandleFunc("/jokes/random", h.random)
	mux.HandleFunc("/jokes/", h.byID)
	return mux
}

type jokeResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

type jokeSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type jokesPageResponse struct {
	User  *userResponse         `json:"user,omitempty"`
	Jokes []jokeSummaryResponse `json:"jokes"`
}

func (h *Handler) jokesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil)
	}
}

// list serves the jokes page data: the most recent summaries plus the
// session's user for the header, when one is logged in.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.jokes.ListRecent(r.Context(), constants.RecentJokesLimit)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := jokesPageResponse{Jokes: make([]jokeSummaryResponse, 0, len(summaries))}
	for _, s := range summaries {
		resp.Jokes = append(resp.Jokes, jokeSummaryResponse{ID: string(s.ID), Name: s.Name})
	}

	if userID, ok := h.auth.CurrentUserID(r); ok {
		user, err := h.users.FindByID(r.Context(), userdomain.ID(userID))
		switch {
		case err == nil:
			resp.User = &userResponse{ID: string(user.ID), Username: user.Username}
		case errors.Is(err, userrepo.ErrUserNotFound):
			// Stale session for a user the store no longer knows; render anonymous.
		default:
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
	}

	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, err := h.auth.RequireUserID(r, "")
	if err != nil {
		if redirect, ok := authservice.AsRedirect(err); ok {
			http.Redirect(w, r, redirect.To, http.StatusSeeOther)
			return
		}
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	if err := r.ParseForm(); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidForm, "invalid form body", nil)
		return
	}

	form := jokeForm{
		Name:    r.PostFormValue("name"),
		Content: r.PostFormValue("content"),
	}

	if err := h.validate.Struct(form); err != nil {
		commonhttp.WriteJSON(w, http.StatusUnprocessableEntity, jokeActionData(form, err))
		return
	}

	joke, err := h.jokes.Create(r.Context(), jokeservice.CreateInput{
		Name:       form.Name,
		Content:    form.Content,
		JokesterID: userID,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	http.Redirect(w, r, "/jokes/"+string(joke.ID), http.StatusSeeOther)
}

func (h *Handler) random(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil)
		return
	}

	joke, err := h.jokes.Random(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	writeJoke(w, joke)
}

func (h *Handler) byID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/jokes/")
	if id == "" || strings.Contains(id, "/") {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidJokeID, "joke not found", nil)
		return
	}

	if _, err := uuid.Parse(id); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidJokeID, "joke not found", nil)
		return
	}

	joke, err := h.jokes.FindByID(r.Context(), jokedomain.ID(id))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	writeJoke(w, joke)
}

func writeJoke(w http.ResponseWriter, joke jokedomain.Joke) {
	commonhttp.WriteJSON(w, http.StatusOK, jokeResponse{
		ID:      string(joke.ID),
		Name:    joke.Name,
		Content: joke.Content,
	})
}
