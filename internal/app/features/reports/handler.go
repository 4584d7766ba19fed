// internal/app/features/reports/handler.go
package reports

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/store/queries/trendqueries"
	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/dalemusser/pulsecheck/internal/app/system/timeouts"
	"github.com/dalemusser/pulsecheck/internal/app/system/webapi"
)

// Handler serves the manager dashboards: daily trend windows and
// today's individual responses.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeTrends handles GET /reports/trends?days=N.
//
// Signed-out callers and users without an organisation get an empty
// window rather than an error; the dashboard renders blank.
func (h *Handler) ServeTrends(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.Organisation == "" {
		webapi.Success(w, []trendqueries.DaySummary{})
		return
	}

	days := trendqueries.DefaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "days must be a positive integer.")
			return
		}
		days = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	window, err := trendqueries.Window(ctx, h.DB, user.Organisation, days)
	if err != nil {
		h.Log.Error("trend window failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	webapi.Success(w, window)
}

// ServeToday handles GET /reports/today.
func (h *Handler) ServeToday(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.Organisation == "" {
		webapi.Success(w, []trendqueries.EnrichedCheckIn{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := trendqueries.TodayWithEmployees(ctx, h.DB, user.Organisation)
	if err != nil {
		h.Log.Error("today responses failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	if list == nil {
		list = []trendqueries.EnrichedCheckIn{}
	}
	webapi.Success(w, list)
}
