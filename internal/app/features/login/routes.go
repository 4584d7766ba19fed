// internal/app/features/login/routes.go
package login

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(r chi.Router, db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) {
	h := NewHandler(db, sm, logger)

	r.Post("/signup", h.HandleSignup)
	r.Post("/login", h.HandleLogin)
}
