package login_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/features/login"
	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/dalemusser/pulsecheck/internal/app/system/indexes"
	"github.com/dalemusser/pulsecheck/internal/testutil"
)

const sessionKey = "test-session-key-0123456789ABCDEFGH"

func newTestHandler(t *testing.T) *login.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager(sessionKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return login.NewHandler(db, sm, zap.NewNop())
}

func TestHandleSignup(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.NewJSONRequest("POST", "/signup",
		`{"fullName":"Mary Manager","email":"mary@acme.test","password":"hunter2hunter2","organisation":"acme"}`)
	h.HandleSignup(rec, req)
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `"organisation":"acme"`)

	if cookies := rec.Result().Cookies(); len(cookies) == 0 {
		t.Error("signup did not set a session cookie")
	}
}

func TestHandleSignup_ShortPassword(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	req := testutil.NewJSONRequest("POST", "/signup",
		`{"fullName":"Mary","email":"mary@acme.test","password":"short"}`)
	h.HandleSignup(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleSignup_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager(sessionKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	h := login.NewHandler(db, sm, zap.NewNop())

	// Duplicate detection relies on the unique email index.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	body := `{"fullName":"Mary","email":"mary@acme.test","password":"hunter2hunter2"}`
	rec := testutil.NewRecorder()
	h.HandleSignup(rec, testutil.NewJSONRequest("POST", "/signup", body))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.HandleSignup(rec, testutil.NewJSONRequest("POST", "/signup", body))
	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleLogin(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleSignup(rec, testutil.NewJSONRequest("POST", "/signup",
		`{"fullName":"Mary","email":"mary@acme.test","password":"hunter2hunter2"}`))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest("POST", "/login",
		`{"email":"mary@acme.test","password":"hunter2hunter2"}`))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"email":"mary@acme.test"`)
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleSignup(rec, testutil.NewJSONRequest("POST", "/signup",
		`{"fullName":"Mary","email":"mary@acme.test","password":"hunter2hunter2"}`))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest("POST", "/login",
		`{"email":"mary@acme.test","password":"wrong-password"}`))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleLogin_UnknownEmail(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest("POST", "/login",
		`{"email":"nobody@acme.test","password":"hunter2hunter2"}`))
	rec.AssertStatus(t, http.StatusUnauthorized)
}
