// internal/app/features/groups/routes.go
package groups

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(r chi.Router, db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) {
	h := NewHandler(db, logger)

	r.Route("/groups", func(r chi.Router) {
		r.Use(sm.LoadSessionUser)
		r.Get("/", h.ServeList)
		r.With(sm.RequireSignedIn).Post("/", h.HandleCreate)
		r.With(sm.RequireSignedIn).Delete("/{id}", h.HandleDelete)

		r.Route("/{id}/members", func(r chi.Router) {
			r.Use(sm.RequireSignedIn)
			r.Get("/", h.ServeMembers)
			r.Post("/", h.HandleAddMember)
			r.Delete("/{membershipID}", h.HandleRemoveMember)
		})
	})
}
