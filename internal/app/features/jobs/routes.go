// internal/app/features/jobs/routes.go
package jobs

import (
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/notifier"
	"github.com/go-chi/chi/v5"
)

func Routes(r chi.Router, n *notifier.Notifier, token string, logger *zap.Logger) {
	h := NewHandler(n, token, logger)

	r.Post("/jobs/daily-checkin", h.HandleDailyCheckIn)
}
