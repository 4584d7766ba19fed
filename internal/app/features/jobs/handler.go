// internal/app/features/jobs/handler.go
package jobs

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/mailer"
	"github.com/dalemusser/pulsecheck/internal/app/system/notifier"
	"github.com/dalemusser/pulsecheck/internal/app/system/timeouts"
	"github.com/dalemusser/pulsecheck/internal/app/system/webapi"
)

// Handler exposes the daily check-in send as an HTTP trigger, so an
// external scheduler or an operator can kick it off outside the
// in-process timer. Guarded by a shared bearer token.
type Handler struct {
	Notifier *notifier.Notifier
	Token    string
	Log      *zap.Logger
}

func NewHandler(n *notifier.Notifier, token string, logger *zap.Logger) *Handler {
	return &Handler{Notifier: n, Token: token, Log: logger}
}

// HandleDailyCheckIn handles POST /jobs/daily-checkin.
func (h *Handler) HandleDailyCheckIn(w http.ResponseWriter, r *http.Request) {
	if h.Token == "" {
		webapi.Fail(w, http.StatusNotFound, webapi.CodeNotFound, "Job trigger not enabled.")
		return
	}

	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(raw), []byte(h.Token)) != 1 {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Invalid job token.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	result, err := h.Notifier.Run(ctx)
	if err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			webapi.Fail(w, http.StatusServiceUnavailable, webapi.CodeExternalService, "Email sending is not configured.")
			return
		}
		h.Log.Error("daily check-in run failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "Job failed.")
		return
	}
	webapi.Success(w, result)
}
