// internal/app/features/logout/routes.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/dalemusser/pulsecheck/internal/app/system/webapi"
	"github.com/go-chi/chi/v5"
)

func Routes(r chi.Router, sm *auth.SessionManager, logger *zap.Logger) {
	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		if err := sm.SignOut(w, r); err != nil {
			logger.Warn("sign out failed", zap.Error(err))
		}
		webapi.Success(w, map[string]bool{"signedOut": true})
	})
}
