package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
	"github.com/vetlink/session-gateway/internal/infrastructure/db/memory"
)

type stubAuthAPI struct {
	loginRes      *ports.AuthResult
	loginErr      error
	registerRes   *ports.AuthResult
	registerErr   error
	meRes         *domain.User
	meErr         error
	loginCalls    int
	registerCalls int
	meCalls       int
}

func (s *stubAuthAPI) Login(_ context.Context, _, _ string) (*ports.AuthResult, error) {
	s.loginCalls++
	return s.loginRes, s.loginErr
}

func (s *stubAuthAPI) Register(_ context.Context, _ ports.RegisterInput) (*ports.AuthResult, error) {
	s.registerCalls++
	return s.registerRes, s.registerErr
}

func (s *stubAuthAPI) Me(_ context.Context) (*domain.User, error) {
	s.meCalls++
	return s.meRes, s.meErr
}

// failingStore simulates an unreachable session store.
type failingStore struct{}

func (failingStore) Load(context.Context, string) (*ports.StoredSession, error) {
	return nil, errors.New("store down")
}
func (failingStore) Save(context.Context, string, domain.User, string) error {
	return errors.New("store down")
}
func (failingStore) Clear(context.Context, string) error {
	return errors.New("store down")
}

func newService(store ports.SessionStore, auth ports.AuthAPI) *SessionService {
	return NewSessionService(store, auth, zerolog.Nop())
}

func TestHydrate_ValidPair(t *testing.T) {
	store := memory.NewSessionStore()
	_ = store.Save(context.Background(), "sid", domain.User{ID: "1", Name: "A", Role: "client"}, "t1")

	sess := newService(store, &stubAuthAPI{}).Hydrate(context.Background(), "sid")
	if !sess.Authenticated() {
		t.Fatalf("expected authenticated session, got state %s", sess.State)
	}
	if sess.User.Role != domain.RoleClient {
		t.Fatalf("expected normalized role %q, got %q", domain.RoleClient, sess.User.Role)
	}
	if sess.Token != "t1" {
		t.Fatalf("expected token t1, got %q", sess.Token)
	}
}

func TestHydrate_Absent(t *testing.T) {
	sess := newService(memory.NewSessionStore(), &stubAuthAPI{}).Hydrate(context.Background(), "sid")
	if sess.State != domain.SessionAnonymous {
		t.Fatalf("expected anonymous session, got %s", sess.State)
	}
}

func TestHydrate_MalformedRecord(t *testing.T) {
	store := memory.NewSessionStore()
	store.SaveRaw("sid", "{not json", "t1")

	sess := newService(store, &stubAuthAPI{}).Hydrate(context.Background(), "sid")
	if sess.State != domain.SessionAnonymous {
		t.Fatalf("malformed record must hydrate to anonymous, got %s", sess.State)
	}
}

func TestHydrate_StoreDownStaysHydrating(t *testing.T) {
	sess := newService(failingStore{}, &stubAuthAPI{}).Hydrate(context.Background(), "sid")
	if sess.State != domain.SessionHydrating {
		t.Fatalf("unreachable store must leave session hydrating, got %s", sess.State)
	}
}

func TestLogin_Success(t *testing.T) {
	store := memory.NewSessionStore()
	auth := &stubAuthAPI{loginRes: &ports.AuthResult{
		User:  domain.User{ID: "1", Name: "A", Role: "client"},
		Token: "t1",
	}}
	svc := newService(store, auth)

	sess := domain.NewSession("sid")
	sess.Reset()

	user, err := svc.Login(context.Background(), sess, "a@b.com", "x")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("expected exposed role %q, got %q", domain.RoleClient, user.Role)
	}
	if !sess.Authenticated() {
		t.Fatalf("expected authenticated session, got %s", sess.State)
	}

	stored, err := store.Load(context.Background(), "sid")
	if err != nil {
		t.Fatalf("expected persisted pair: %v", err)
	}
	if stored.Token != "t1" {
		t.Fatalf("storage holds token %q, want t1", stored.Token)
	}
	if stored.User.Role != domain.RoleClient {
		t.Fatalf("stored role %q, want %q", stored.User.Role, domain.RoleClient)
	}
}

func TestLogin_MissingTokenPreservesState(t *testing.T) {
	store := memory.NewSessionStore()
	prior := domain.User{ID: "9", Name: "Old", Role: "VET"}
	_ = store.Save(context.Background(), "sid", prior, "old-token")

	auth := &stubAuthAPI{loginRes: &ports.AuthResult{
		User: domain.User{ID: "1", Name: "A", Role: "client"},
		// no token
	}}
	svc := newService(store, auth)

	sess := domain.NewSession("sid")
	sess.Authenticate(prior, "old-token")

	if _, err := svc.Login(context.Background(), sess, "a@b.com", "x"); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if sess.Token != "old-token" || sess.User.ID != "9" {
		t.Fatalf("session mutated on failed login: %+v", sess)
	}
	stored, err := store.Load(context.Background(), "sid")
	if err != nil || stored.Token != "old-token" {
		t.Fatalf("store mutated on failed login: %+v, %v", stored, err)
	}
}

func TestLogin_UpstreamError(t *testing.T) {
	auth := &stubAuthAPI{loginErr: domain.ErrSessionExpired}
	svc := newService(memory.NewSessionStore(), auth)

	sess := domain.NewSession("sid")
	sess.Reset()

	if _, err := svc.Login(context.Background(), sess, "a@b.com", "bad"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected upstream error to propagate, got %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("session must stay anonymous after failed login")
	}
}

func TestRegister_Success(t *testing.T) {
	store := memory.NewSessionStore()
	auth := &stubAuthAPI{registerRes: &ports.AuthResult{
		User:  domain.User{ID: "2", Name: "B", Role: "vet"},
		Token: "t2",
	}}
	svc := newService(store, auth)

	sess := domain.NewSession("sid")
	sess.Reset()

	user, err := svc.Register(context.Background(), sess, ports.RegisterInput{Name: "B", Email: "b@c.com", Password: "pw", Role: "vet"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleVet {
		t.Fatalf("expected role %q, got %q", domain.RoleVet, user.Role)
	}
	if auth.registerCalls != 1 {
		t.Fatalf("expected one register call, got %d", auth.registerCalls)
	}
}

func TestLogout_LocalOnly(t *testing.T) {
	store := memory.NewSessionStore()
	user := domain.User{ID: "1", Role: "CLIENT"}
	_ = store.Save(context.Background(), "sid", user, "t1")

	auth := &stubAuthAPI{}
	svc := newService(store, auth)

	sess := domain.NewSession("sid")
	sess.Authenticate(user, "t1")

	if err := svc.Logout(context.Background(), sess); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if sess.State != domain.SessionAnonymous {
		t.Fatalf("expected anonymous session, got %s", sess.State)
	}
	if _, err := store.Load(context.Background(), "sid"); !errors.Is(err, domain.ErrNoStoredSession) {
		t.Fatalf("expected empty store after logout, got %v", err)
	}
	if auth.loginCalls+auth.registerCalls+auth.meCalls != 0 {
		t.Fatalf("logout must not call the backend")
	}
}

func TestRefresh_RequiresAuthentication(t *testing.T) {
	svc := newService(memory.NewSessionStore(), &stubAuthAPI{})
	sess := domain.NewSession("sid")
	sess.Reset()

	if _, err := svc.Refresh(context.Background(), sess); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRefresh_ReplacesWholePair(t *testing.T) {
	store := memory.NewSessionStore()
	user := domain.User{ID: "1", Name: "A", Role: "CLIENT"}
	_ = store.Save(context.Background(), "sid", user, "t1")

	auth := &stubAuthAPI{meRes: &domain.User{ID: "1", Name: "A2", Role: "client", Phone: "555"}}
	svc := newService(store, auth)

	sess := domain.NewSession("sid")
	sess.Authenticate(user, "t1")

	refreshed, err := svc.Refresh(context.Background(), sess)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if refreshed.Name != "A2" || refreshed.Role != domain.RoleClient {
		t.Fatalf("unexpected refreshed user: %+v", refreshed)
	}
	if sess.Token != "t1" {
		t.Fatalf("refresh must keep the token, got %q", sess.Token)
	}

	stored, err := store.Load(context.Background(), "sid")
	if err != nil {
		t.Fatalf("expected stored pair after refresh: %v", err)
	}
	if stored.User.Name != "A2" || stored.Token != "t1" {
		t.Fatalf("store not replaced as a pair: %+v", stored)
	}
}
