package tasks_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/mailer"
	"github.com/dalemusser/pulsecheck/internal/app/system/notifier"
	"github.com/dalemusser/pulsecheck/internal/app/system/tasks"
	"github.com/dalemusser/pulsecheck/internal/testutil"
)

func TestNewScheduler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mail := mailer.New(mailer.Config{}, zap.NewNop())
	n := notifier.New(db, mail, "http://localhost:3000", "PulseCheck", zap.NewNop())

	sched, err := tasks.NewScheduler(n, 10, 3, zap.NewNop())
	if err != nil {
		t.Fatalf("NewScheduler() error: %v", err)
	}

	sched.Start()
	if err := sched.Stop(); err != nil {
		t.Errorf("Stop() error: %v", err)
	}
}
