package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

type stubSessionService struct {
	loginErr    error
	refreshErr  error
	loginCalls  int
	logoutCalls int
	user        domain.User
	token       string
}

func (s *stubSessionService) Hydrate(_ context.Context, sessionID string) *domain.Session {
	sess := domain.NewSession(sessionID)
	sess.Reset()
	return sess
}

func (s *stubSessionService) Login(_ context.Context, sess *domain.Session, _, _ string) (*domain.User, error) {
	s.loginCalls++
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	sess.Authenticate(s.user, s.token)
	return sess.User, nil
}

func (s *stubSessionService) Register(_ context.Context, sess *domain.Session, input ports.RegisterInput) (*domain.User, error) {
	sess.Authenticate(domain.User{ID: "new", Name: input.Name, Role: input.Role}, s.token)
	return sess.User, nil
}

func (s *stubSessionService) Logout(_ context.Context, sess *domain.Session) error {
	s.logoutCalls++
	sess.Reset()
	return nil
}

func (s *stubSessionService) Refresh(_ context.Context, sess *domain.Session) (*domain.User, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return sess.User, nil
}

func newAuthContext(t *testing.T, method, path, body string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set("session", sess)
	}
	return c, rec
}

func TestAuthLogin_Success(t *testing.T) {
	svc := &stubSessionService{user: domain.User{ID: "1", Name: "A", Role: "client"}, token: "t1"}
	h := NewAuthHandler(svc)

	sess := domain.NewSession("sid")
	sess.Reset()
	c, rec := newAuthContext(t, http.MethodPost, "/login", `{"email":"a@b.com","password":"pw"}`, sess)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"state":"authenticated"`) {
		t.Fatalf("expected authenticated state, got %s", body)
	}
	if !strings.Contains(body, `"role":"CLIENT"`) {
		t.Fatalf("expected normalized role in response, got %s", body)
	}
}

func TestAuthLogin_ValidationFailure(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc)

	sess := domain.NewSession("sid")
	sess.Reset()
	c, _ := newAuthContext(t, http.MethodPost, "/login", `{"email":"not-an-email","password":""}`, sess)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 validation error, got %v", err)
	}
	if svc.loginCalls != 0 {
		t.Fatalf("invalid payload must not reach the session service")
	}
}

func TestAuthLogin_BindFailure(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})

	sess := domain.NewSession("sid")
	sess.Reset()
	c, _ := newAuthContext(t, http.MethodPost, "/login", `{broken`, sess)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 bind error, got %v", err)
	}
}

func TestAuthLogin_ServiceFailurePropagates(t *testing.T) {
	svc := &stubSessionService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	sess := domain.NewSession("sid")
	sess.Reset()
	c, _ := newAuthContext(t, http.MethodPost, "/login", `{"email":"a@b.com","password":"bad"}`, sess)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthRegister_Success(t *testing.T) {
	svc := &stubSessionService{token: "t2"}
	h := NewAuthHandler(svc)

	sess := domain.NewSession("sid")
	sess.Reset()
	c, rec := newAuthContext(t, http.MethodPost, "/register",
		`{"name":"B","email":"b@c.com","password":"secret1","role":"vet"}`, sess)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthLogout(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc)

	sess := domain.NewSession("sid")
	sess.Authenticate(domain.User{ID: "1", Role: "CLIENT"}, "t1")
	c, rec := newAuthContext(t, http.MethodPost, "/logout", "", sess)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.logoutCalls != 1 {
		t.Fatalf("expected one logout call, got %d", svc.logoutCalls)
	}
	if sess.Authenticated() {
		t.Fatalf("session must be reset after logout")
	}
}

func TestAuthSession_ReportsState(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})

	sess := domain.NewSession("sid")
	sess.Authenticate(domain.User{ID: "1", Name: "A", Role: "CLIENT"}, "t1")
	c, rec := newAuthContext(t, http.MethodGet, "/session", "", sess)

	if err := h.Session(c); err != nil {
		t.Fatalf("Session returned error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"state":"authenticated"`) || !strings.Contains(body, `"user_id":"1"`) {
		t.Fatalf("unexpected session response: %s", body)
	}
}

func TestAuthMe_RequiresAuthentication(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})

	sess := domain.NewSession("sid")
	sess.Reset()
	c, _ := newAuthContext(t, http.MethodGet, "/me", "", sess)

	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous /me, got %v", err)
	}
}
