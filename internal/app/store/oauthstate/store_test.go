package oauthstate_test

import (
	"testing"
	"time"

	"github.com/dalemusser/pulsecheck/internal/app/store/oauthstate"
	"github.com/dalemusser/pulsecheck/internal/testutil"
)

func TestValidate_SingleUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := oauthstate.New(db)
	expires := time.Now().UTC().Add(10 * time.Minute)
	if err := store.Save(ctx, "state-abc", "/reports", expires); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	returnURL, valid, err := store.Validate(ctx, "state-abc")
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !valid || returnURL != "/reports" {
		t.Errorf("Validate() = %q, %v; want /reports, true", returnURL, valid)
	}

	// Consumed on first use.
	_, valid, err = store.Validate(ctx, "state-abc")
	if err != nil {
		t.Fatalf("second Validate() error: %v", err)
	}
	if valid {
		t.Error("state token was valid twice")
	}
}

func TestValidate_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := oauthstate.New(db)
	if err := store.Save(ctx, "state-old", "/", time.Now().UTC().Add(-time.Minute)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	_, valid, err := store.Validate(ctx, "state-old")
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if valid {
		t.Error("expired state token was accepted")
	}
}

func TestValidate_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, valid, err := oauthstate.New(db).Validate(ctx, "never-saved")
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if valid {
		t.Error("unknown state token was accepted")
	}
}
