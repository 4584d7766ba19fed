// internal/app/features/employees/routes.go
package employees

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(r chi.Router, db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) {
	h := NewHandler(db, logger)

	r.Route("/employees", func(r chi.Router) {
		r.Use(sm.LoadSessionUser)
		r.Get("/", h.ServeList)
		r.With(sm.RequireSignedIn).Post("/", h.HandleCreate)
		r.With(sm.RequireSignedIn).Delete("/{id}", h.HandleDelete)
	})
}
