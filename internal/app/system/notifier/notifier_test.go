package notifier_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/mailer"
	"github.com/dalemusser/pulsecheck/internal/app/system/notifier"
	"github.com/dalemusser/pulsecheck/internal/testutil"
)

// resendStub captures Resend API calls and fails delivery for any
// recipient whose address contains "bounce".
type resendStub struct {
	mu   sync.Mutex
	sent []string
}

func (s *resendStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			To   string `json:"to"`
			HTML string `json:"html"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if strings.Contains(req.To, "bounce") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		s.mu.Lock()
		s.sent = append(s.sent, req.To)
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}
}

func TestRun_FailsClosedWithoutTransport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")

	mail := mailer.New(mailer.Config{}, zap.NewNop())
	n := notifier.New(db, mail, "http://localhost:3000", "PulseCheck", zap.NewNop())

	_, err := n.Run(ctx)
	if !errors.Is(err, mailer.ErrNotConfigured) {
		t.Fatalf("got %v, want ErrNotConfigured", err)
	}
}

func TestRun_SendsToAllEmployees(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	f.CreateEmployee(ctx, "Bob", "bob@acme.test", "acme")
	// The daily send covers every organisation.
	f.CreateEmployee(ctx, "Zed", "zed@other.test", "otherco")

	stub := &resendStub{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	mail := mailer.New(mailer.Config{
		ResendAPIKey:   "test-key",
		ResendEndpoint: srv.URL,
		From:           "noreply@test.com",
		FromName:       "PulseCheck",
	}, zap.NewNop())
	n := notifier.New(db, mail, "http://localhost:3000", "PulseCheck", zap.NewNop())

	result, err := n.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.TotalEmployees != 3 {
		t.Errorf("total: got %d, want 3", result.TotalEmployees)
	}
	if result.SentCount != 3 || result.ErrorCount != 0 {
		t.Errorf("sent=%d errors=%d, want 3/0", result.SentCount, result.ErrorCount)
	}
	if len(stub.sent) != 3 {
		t.Errorf("stub received %d sends, want 3", len(stub.sent))
	}
}

func TestRun_OneFailureDoesNotStopTheRest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	f.CreateEmployee(ctx, "Bad", "bounce@acme.test", "acme")
	f.CreateEmployee(ctx, "Bob", "bob@acme.test", "acme")

	stub := &resendStub{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	mail := mailer.New(mailer.Config{
		ResendAPIKey:   "test-key",
		ResendEndpoint: srv.URL,
		From:           "noreply@test.com",
		FromName:       "PulseCheck",
	}, zap.NewNop())
	n := notifier.New(db, mail, "http://localhost:3000", "PulseCheck", zap.NewNop())

	result, err := n.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.SentCount != 2 {
		t.Errorf("sent: got %d, want 2", result.SentCount)
	}
	if result.ErrorCount != 1 {
		t.Errorf("errors: got %d, want 1", result.ErrorCount)
	}
	if result.TotalEmployees != 3 {
		t.Errorf("total: got %d, want 3", result.TotalEmployees)
	}
}
