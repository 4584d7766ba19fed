// internal/app/features/authgoogle/routes.go
package authgoogle

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(r chi.Router, db *mongo.Database, sm *auth.SessionManager, clientID, clientSecret, baseURL string, logger *zap.Logger) {
	h := NewHandler(db, sm, clientID, clientSecret, baseURL, logger)

	r.Get("/auth/google", h.ServeLogin)
	r.Get("/auth/google/callback", h.ServeCallback)
}
