// internal/app/features/moodresponse/routes.go
package moodresponse

import "github.com/go-chi/chi/v5"

// Routes returns the public mood-response subrouter. No auth middleware on
// purpose; see Handler.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve) // mounted under /mood-response
	return r
}
