// internal/app/features/profile/routes.go
package profile

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(r chi.Router, db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) {
	h := NewHandler(db, logger)

	r.Route("/profile", func(r chi.Router) {
		r.Use(sm.LoadSessionUser, sm.RequireSignedIn)
		r.Get("/", h.ServeProfile)
		r.Put("/", h.HandleUpdate)
	})
}
