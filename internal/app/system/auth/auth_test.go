package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
)

const testKey = "test-session-key-0123456789ABCDEFGH"

type stubFetcher struct {
	users map[string]*auth.SessionUser
}

func (f *stubFetcher) FetchSessionUser(ctx context.Context, userID string) (*auth.SessionUser, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, nil
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestSignInThenLoadSessionUser(t *testing.T) {
	sm, err := auth.NewSessionManager(testKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error: %v", err)
	}
	sm.SetUserFetcher(&stubFetcher{users: map[string]*auth.SessionUser{
		"user-1": {ID: "user-1", Name: "Mary", Organisation: "acme"},
	}})

	// Sign in and capture the cookie.
	signInRec := httptest.NewRecorder()
	if err := sm.SignIn(signInRec, httptest.NewRequest("POST", "/login", nil), "user-1"); err != nil {
		t.Fatalf("SignIn() error: %v", err)
	}
	cookies := signInRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn() set no cookie")
	}

	// Replay the cookie through the middleware.
	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	req := httptest.NewRequest("GET", "/employees", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("middleware did not load the session user")
	}
	if got.ID != "user-1" || got.Organisation != "acme" {
		t.Errorf("loaded user: got %+v", got)
	}
}

func TestRequireSignedIn(t *testing.T) {
	sm, err := auth.NewSessionManager(testKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error: %v", err)
	}

	called := false
	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/employees", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous request: got %d, want 401", rec.Code)
	}
	if called {
		t.Error("handler ran for anonymous request")
	}

	rec = httptest.NewRecorder()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/employees", nil),
		&auth.SessionUser{ID: "user-1"})
	handler.ServeHTTP(rec, req)
	if !called {
		t.Error("handler did not run for signed-in request")
	}
}

func TestSignOut(t *testing.T) {
	sm, err := auth.NewSessionManager(testKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager() error: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := sm.SignOut(rec, httptest.NewRequest("POST", "/logout", nil)); err != nil {
		t.Fatalf("SignOut() error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignOut() set no cookie")
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("cookie MaxAge: got %d, want -1", cookies[0].MaxAge)
	}
}
