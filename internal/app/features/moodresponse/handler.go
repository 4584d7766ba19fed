// internal/app/features/moodresponse/handler.go
package moodresponse

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	checkinstore "github.com/dalemusser/pulsecheck/internal/app/store/checkins"
	"github.com/dalemusser/pulsecheck/internal/app/system/timeouts"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
)

// Handler serves the unauthenticated mood-response endpoint that employees
// reach from their daily email. The link is the only credential: whoever
// holds it can record the mood it encodes. Accepted trade-off; do not add
// auth here without a product decision.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// Serve handles GET /mood-response?employeeId=<hex>&mood=<green|amber|red>.
//
// An optional note parameter is stored alongside the mood (sanitized by the
// ledger before storage). Responses: 400 text/plain on missing or invalid
// parameters with no write performed, 200 text/html on success, 500
// text/plain with a generic message on any ledger failure.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employeeId")
	moodParam := r.URL.Query().Get("mood")
	note := r.URL.Query().Get("note")

	if employeeID == "" || moodParam == "" {
		http.Error(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	mood, ok := models.ParseMood(moodParam)
	if !ok {
		http.Error(w, "Invalid mood value", http.StatusBadRequest)
		return
	}

	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		http.Error(w, "Invalid employee id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := checkinstore.New(h.DB).Submit(ctx, oid, mood, note); err != nil {
		if errors.Is(err, checkinstore.ErrEmployeeNotFound) {
			h.Log.Warn("mood response for unknown employee",
				zap.String("employee_id", employeeID))
		} else {
			h.Log.Error("mood response: submit failed", zap.Error(err))
		}
		http.Error(w, "Error recording response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderThankYou(w, mood)
}
