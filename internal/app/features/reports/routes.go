// internal/app/features/reports/routes.go
package reports

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(r chi.Router, db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) {
	h := NewHandler(db, logger)

	r.Route("/reports", func(r chi.Router) {
		r.Use(sm.LoadSessionUser)
		r.Get("/trends", h.ServeTrends)
		r.Get("/today", h.ServeToday)
	})
}
