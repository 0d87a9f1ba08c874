package service

import (
	"context"
	"errors"
	"net/http"

	commoncrypto "github.com/jokehub/jokehub/internal/common/crypto"
	"github.com/jokehub/jokehub/internal/common/logger"
	"github.com/jokehub/jokehub/internal/observability/metrics"
	"github.com/jokehub/jokehub/internal/session"
	userdomain "github.com/jokehub/jokehub/internal/user/domain"
	userrepo "github.com/jokehub/jokehub/internal/user/repository"
)

// AuthService owns the credential flow and the session cookie. Input
// validation is the form layer's job; by the time a call lands here the
// fields are already within bounds.
type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	codec       *session.Codec
	log         *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	codec *session.Codec,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		idGenerator: idGenerator,
		codec:       codec,
		log:         log,
	}
}

type Credentials struct {
	Username string
	Password string
}

// Register hashes the password and creates the user. There is no prior
// existence check: the store's unique constraint is the authority, and its
// violation is the duplicate-username signal. Two racing registrations can
// both reach the insert; exactly one wins.
func (s *AuthService) Register(ctx context.Context, creds Credentials) (userdomain.User, error) {
	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": creds.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userdomain.User{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return userdomain.User{}, err
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     creds.Username,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": creds.Username,
				"action":   "register_username_taken",
			}).Warn("register failed: username taken")
			metrics.RegistrationsRejected.Inc()
			return userdomain.User{}, ErrUsernameTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": creds.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.User{}, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  id,
		"action":   "register_success",
	}).Info("register success")

	return user, nil
}

// Login resolves credentials to a user. An unknown username and a wrong
// password both come back as ErrInvalidCredentials; nothing in the result
// tells the caller which field was wrong.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (userdomain.User, error) {
	user, err := s.repo.FindByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": creds.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginsFailed.Inc()
			return userdomain.User{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": creds.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return userdomain.User{}, err
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		s.log.WithFields(ctx, logger.Fields{
			"username": creds.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginsFailed.Inc()
		return userdomain.User{}, ErrInvalidCredentials
	}

	metrics.LoginsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return user, nil
}

// UsernameAvailable reports whether a username is free. This deliberately
// leaks account existence, matching what registration's duplicate error
// reveals anyway.
func (s *AuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	count, err := s.repo.CountByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CurrentUserID reads the session cookie without any store lookup. Every
// failure mode is simply "no session".
func (s *AuthService) CurrentUserID(r *http.Request) (string, bool) {
	raw := session.FromRequest(r)
	if raw == "" {
		return "", false
	}

	payload, ok := s.codec.Decode(raw)
	if !ok {
		metrics.SessionsRejected.Inc()
		return "", false
	}

	return payload.UserID, true
}

// RequireUserID gates a handler on a valid session. Without one it returns
// a *Redirect to the login page carrying redirectTo, which defaults to the
// request's own path so the user lands back where they started.
func (s *AuthService) RequireUserID(r *http.Request, redirectTo string) (string, error) {
	if userID, ok := s.CurrentUserID(r); ok {
		return userID, nil
	}

	if redirectTo == "" {
		redirectTo = r.URL.Path
	}

	return "", loginRedirect(redirectTo)
}

// CreateSession encodes a fresh session for userID, attaches the cookie to
// the response, and signals where to send the client next.
func (s *AuthService) CreateSession(w http.ResponseWriter, userID, redirectTo string) (*Redirect, error) {
	value, err := s.codec.Encode(session.Payload{UserID: userID})
	if err != nil {
		s.log.WithFields(nil, logger.Fields{
			"user_id": userID,
			"action":  "session_encode_failed",
		}).Errorf("session encode failed: %v", err)
		return nil, err
	}

	http.SetCookie(w, s.codec.Bake(value))
	metrics.SessionsIssued.Inc()

	return &Redirect{To: redirectTo}, nil
}

// ClearSession expires the cookie. The session value itself stays valid
// until its TTL runs out; logout only removes it from the client.
func (s *AuthService) ClearSession(w http.ResponseWriter) *Redirect {
	http.SetCookie(w, s.codec.Expired())
	return &Redirect{To: "/"}
}
