package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jokehub/jokehub/internal/auth/service"
	"github.com/jokehub/jokehub/internal/common/clock"
	"github.com/jokehub/jokehub/internal/common/constants"
	"github.com/jokehub/jokehub/internal/common/logger"
	"github.com/jokehub/jokehub/internal/session"
	userdomain "github.com/jokehub/jokehub/internal/user/domain"
	userrepo "github.com/jokehub/jokehub/internal/user/repository"
)

type mockUserRepo struct {
	createFunc          func(ctx context.Context, user userdomain.User) error
	findByUsernameFunc  func(ctx context.Context, username string) (userdomain.User, error)
	findByIDFunc        func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	countByUsernameFunc func(ctx context.Context, username string) (int, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) CountByUsername(ctx context.Context, username string) (int, error) {
	if m.countByUsernameFunc != nil {
		return m.countByUsernameFunc(ctx, username)
	}
	return 0, nil
}

type mockHasher struct {
	verifyFunc func(password string, digest string) bool
}

func (m *mockHasher) Hash(password string) (string, error) {
	return "hashed_" + password, nil
}

func (m *mockHasher) Verify(password string, digest string) bool {
	if m.verifyFunc != nil {
		return m.verifyFunc(password, digest)
	}
	return digest == "hashed_"+password
}

type mockIDGenerator struct{}

func (m *mockIDGenerator) NewID() (string, error) {
	return "11111111-1111-1111-1111-111111111111", nil
}

func setupHandler(t *testing.T) (http.Handler, *mockUserRepo) {
	_ = t
	mockRepo := &mockUserRepo{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	log, _ := logger.New("", "test", "info")
	codec := session.NewCodec("0123456789abcdef0123456789abcdef", constants.SessionTTL, mockClock)

	auth := service.NewAuthService(mockRepo, &mockHasher{}, &mockIDGenerator{}, codec, log)
	return NewHandler(auth, log), mockRepo
}

func postLoginForm(handler http.Handler, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func decodeActionData(t *testing.T, w *httptest.ResponseRecorder) ActionData {
	t.Helper()
	var data ActionData
	if err := json.NewDecoder(w.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return data
}

func TestLogin_MethodNotAllowed(t *testing.T) {
	handler, _ := setupHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestLogin_Register_Success(t *testing.T) {
	handler, _ := setupHandler(t)

	w := postLoginForm(handler, url.Values{
		"loginType": {"register"},
		"username":  {"bob"},
		"password":  {"secret123"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/jokes" {
		t.Errorf("expected redirect to /jokes, got %s", got)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != constants.SessionCookieName {
		t.Fatalf("expected a session cookie, got %v", cookies)
	}
	if cookies[0].Value == "" {
		t.Error("expected a non-empty session value")
	}
}

func TestLogin_Register_HonorsRedirectTo(t *testing.T) {
	handler, _ := setupHandler(t)

	w := postLoginForm(handler, url.Values{
		"loginType":  {"register"},
		"username":   {"bob"},
		"password":   {"secret123"},
		"redirectTo": {"/jokes/new"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/jokes/new" {
		t.Errorf("expected redirect to /jokes/new, got %s", got)
	}
}

func TestLogin_Register_UsernameTaken(t *testing.T) {
	handler, mockRepo := setupHandler(t)

	mockRepo.createFunc = func(ctx context.Context, user userdomain.User) error {
		return userrepo.ErrUsernameAlreadyExists
	}

	w := postLoginForm(handler, url.Values{
		"loginType": {"register"},
		"username":  {"bob"},
		"password":  {"secret123"},
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	data := decodeActionData(t, w)
	if len(data.FormError) != 1 || data.FormError[0] != "Username bob already exists." {
		t.Errorf("unexpected form error %v", data.FormError)
	}
	if data.Fields["username"] != "bob" {
		t.Errorf("expected username echoed back, got %v", data.Fields)
	}
}

func TestLogin_Validation_ShortFields(t *testing.T) {
	handler, _ := setupHandler(t)

	w := postLoginForm(handler, url.Values{
		"loginType": {"login"},
		"username":  {"ab"},
		"password":  {"xy"},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	data := decodeActionData(t, w)
	if got := data.FieldErrors["username"]; len(got) != 1 || got[0] != "Username is too short." {
		t.Errorf("unexpected username errors %v", got)
	}
	if got := data.FieldErrors["password"]; len(got) != 1 || got[0] != "Password is too short." {
		t.Errorf("unexpected password errors %v", got)
	}
}

func TestLogin_Validation_LongUsername(t *testing.T) {
	handler, _ := setupHandler(t)

	w := postLoginForm(handler, url.Values{
		"loginType": {"login"},
		"username":  {strings.Repeat("a", 21)},
		"password":  {"secret123"},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	data := decodeActionData(t, w)
	if got := data.FieldErrors["username"]; len(got) != 1 || got[0] != "Username is too long" {
		t.Errorf("unexpected username errors %v", got)
	}
}

func TestLogin_Validation_BadLoginType(t *testing.T) {
	handler, _ := setupHandler(t)

	w := postLoginForm(handler, url.Values{
		"loginType": {"delete"},
		"username":  {"bob"},
		"password":  {"secret123"},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestLogin_Validation_ForeignRedirect(t *testing.T) {
	handler, _ := setupHandler(t)

	w := postLoginForm(handler, url.Values{
		"loginType":  {"login"},
		"username":   {"bob"},
		"password":   {"secret123"},
		"redirectTo": {"https://evil.example"},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for an absolute redirect target, got %d", w.Code)
	}
}

func TestLogin_Login_Success(t *testing.T) {
	handler, mockRepo := setupHandler(t)

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{ID: "user-123", Username: "bob", PasswordHash: "hashed_secret123"}, nil
	}

	w := postLoginForm(handler, url.Values{
		"loginType": {"login"},
		"username":  {"bob"},
		"password":  {"secret123"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/jokes" {
		t.Errorf("expected redirect to /jokes, got %s", got)
	}
}

func TestLogin_Login_InvalidCredentials(t *testing.T) {
	handler, mockRepo := setupHandler(t)

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	w := postLoginForm(handler, url.Values{
		"loginType": {"login"},
		"username":  {"ghost"},
		"password":  {"secret123"},
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	data := decodeActionData(t, w)
	if len(data.FormError) != 1 || data.FormError[0] != "Invalid username or password" {
		t.Errorf("unexpected form error %v", data.FormError)
	}

	if len(w.Result().Cookies()) != 0 {
		t.Error("expected no session cookie on a failed login")
	}
}

func TestLogout(t *testing.T) {
	handler, _ := setupHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/" {
		t.Errorf("expected redirect to /, got %s", got)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Error("expected the session cookie to be cleared")
	}
}

func TestLogout_MethodNotAllowed(t *testing.T) {
	handler, _ := setupHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestUsernameAvailable(t *testing.T) {
	handler, mockRepo := setupHandler(t)

	mockRepo.countByUsernameFunc = func(ctx context.Context, username string) (int, error) {
		if username == "taken" {
			return 1, nil
		}
		return 0, nil
	}

	r := httptest.NewRequest(http.MethodGet, "/api/auth/username-available?username=taken", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp availabilityResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Available {
		t.Error("expected taken to be unavailable")
	}
}

func TestUsernameAvailable_MissingParam(t *testing.T) {
	handler, _ := setupHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/username-available", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
