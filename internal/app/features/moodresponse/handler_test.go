package moodresponse_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/features/moodresponse"
	checkinstore "github.com/dalemusser/pulsecheck/internal/app/store/checkins"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
	"github.com/dalemusser/pulsecheck/internal/testutil"
)

func moodURL(employeeID, mood string) string {
	q := url.Values{}
	if employeeID != "" {
		q.Set("employeeId", employeeID)
	}
	if mood != "" {
		q.Set("mood", mood)
	}
	return "/mood-response?" + q.Encode()
}

func TestServe_MissingParameters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := moodresponse.NewHandler(db, zap.NewNop())

	for _, target := range []string{
		moodURL("", "green"),
		moodURL(primitive.NewObjectID().Hex(), ""),
		"/mood-response",
	} {
		rec := testutil.NewRecorder()
		h.Serve(rec, testutil.NewRequest("GET", target))
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}

func TestServe_InvalidMood(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	h := moodresponse.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", moodURL(alice.ID.Hex(), "purple")))
	rec.AssertStatus(t, http.StatusBadRequest)

	// Nothing was written for the rejected mood.
	count, err := checkinstore.New(db).CountByOrgDate(ctx, "acme", models.CheckInDate(time.Now()))
	if err != nil {
		t.Fatalf("CountByOrgDate() error: %v", err)
	}
	if count != 0 {
		t.Errorf("check-in count: got %d, want 0", count)
	}
}

func TestServe_InvalidEmployeeID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := moodresponse.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", moodURL("not-an-id", "green")))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServe_UnknownEmployee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := moodresponse.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", moodURL(primitive.NewObjectID().Hex(), "green")))
	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestServe_RecordsMoodAndRendersThankYou(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	h := moodresponse.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", moodURL(alice.ID.Hex(), "green")))
	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type: got %q", ct)
	}
	rec.AssertContains(t, "Thank")

	stored, found, err := checkinstore.New(db).GetByEmployeeDate(ctx, alice.ID, models.CheckInDate(time.Now()))
	if err != nil || !found {
		t.Fatalf("GetByEmployeeDate() found=%v err=%v", found, err)
	}
	if stored.Mood != models.MoodGreen {
		t.Errorf("stored mood: got %q", stored.Mood)
	}
}

func TestServe_SecondClickSameDayWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	h := moodresponse.NewHandler(db, zap.NewNop())

	for _, mood := range []string{"green", "red"} {
		rec := testutil.NewRecorder()
		h.Serve(rec, testutil.NewRequest("GET", moodURL(alice.ID.Hex(), mood)))
		rec.AssertStatus(t, http.StatusOK)
	}

	today := models.CheckInDate(time.Now())
	store := checkinstore.New(db)

	count, err := store.CountByOrgDate(ctx, "acme", today)
	if err != nil {
		t.Fatalf("CountByOrgDate() error: %v", err)
	}
	if count != 1 {
		t.Errorf("check-in count: got %d, want 1", count)
	}

	stored, _, err := store.GetByEmployeeDate(ctx, alice.ID, today)
	if err != nil {
		t.Fatalf("GetByEmployeeDate() error: %v", err)
	}
	if stored.Mood != models.MoodRed {
		t.Errorf("stored mood: got %q, want red", stored.Mood)
	}
}

func TestServe_RedShowsSupportNotice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	h := moodresponse.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", moodURL(alice.ID.Hex(), "red")))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "support")
}
