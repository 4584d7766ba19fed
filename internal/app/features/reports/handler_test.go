package reports_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/features/reports"
	"github.com/dalemusser/pulsecheck/internal/app/store/queries/trendqueries"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
	"github.com/dalemusser/pulsecheck/internal/testutil"
)

func TestServeTrends_EmptyWhenSignedOut(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := reports.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeTrends(rec, testutil.NewRequest("GET", "/reports/trends"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"data":[]`)
}

func TestServeTrends_Window(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	today := models.CheckInDate(time.Now())
	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	bob := f.CreateEmployee(ctx, "Bob", "bob@acme.test", "acme")
	f.CreateCheckIn(ctx, alice, models.MoodGreen, today)
	f.CreateCheckIn(ctx, bob, models.MoodRed, today)

	h := reports.NewHandler(db, zap.NewNop())
	manager := testutil.ManagerUser("acme")

	rec := testutil.NewRecorder()
	h.ServeTrends(rec, testutil.NewAuthenticatedRequest("GET", "/reports/trends?days=3", manager))
	rec.AssertStatus(t, http.StatusOK)

	var envelope struct {
		Data []trendqueries.DaySummary `json:"data"`
	}
	if err := json.Unmarshal([]byte(rec.ReadBody()), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 3 {
		t.Fatalf("got %d days, want 3", len(envelope.Data))
	}
	last := envelope.Data[2]
	if last.Date != today || last.Green != 1 || last.Red != 1 {
		t.Errorf("today summary: got %+v", last)
	}
	if last.GreenPercent != 50 || last.RedPercent != 50 || last.AmberPercent != 0 {
		t.Errorf("today percents: got %d/%d/%d", last.GreenPercent, last.AmberPercent, last.RedPercent)
	}
}

func TestServeTrends_RejectsBadDays(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := reports.NewHandler(db, zap.NewNop())
	manager := testutil.ManagerUser("acme")

	for _, target := range []string{"/reports/trends?days=0", "/reports/trends?days=-2", "/reports/trends?days=abc"} {
		rec := testutil.NewRecorder()
		h.ServeTrends(rec, testutil.NewAuthenticatedRequest("GET", target, manager))
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}

func TestServeToday(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	today := models.CheckInDate(time.Now())
	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	f.CreateCheckIn(ctx, alice, models.MoodAmber, today)

	h := reports.NewHandler(db, zap.NewNop())
	manager := testutil.ManagerUser("acme")

	rec := testutil.NewRecorder()
	h.ServeToday(rec, testutil.NewAuthenticatedRequest("GET", "/reports/today", manager))
	rec.AssertStatus(t, http.StatusOK)

	var envelope struct {
		Data []trendqueries.EnrichedCheckIn `json:"data"`
	}
	if err := json.Unmarshal([]byte(rec.ReadBody()), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("got %d responses, want 1", len(envelope.Data))
	}
	if envelope.Data[0].EmployeeName != "Alice" {
		t.Errorf("employee name: got %q", envelope.Data[0].EmployeeName)
	}
}
