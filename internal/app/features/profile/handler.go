// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/pulsecheck/internal/app/store/users"
	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/dalemusser/pulsecheck/internal/app/system/timeouts"
	"github.com/dalemusser/pulsecheck/internal/app/system/webapi"
)

// Handler serves the signed-in manager's own profile. The organisation
// set here is the tenant scope for everything else in the app.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeProfile handles GET /profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Sign in required.")
		return
	}
	webapi.Success(w, user)
}

type updateRequest struct {
	FullName     string `json:"fullName"`
	Organisation string `json:"organisation"`
}

// HandleUpdate handles PUT /profile.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Sign in required.")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid request body.")
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Organisation = strings.TrimSpace(req.Organisation)
	if req.FullName == "" {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "fullName is required.")
		return
	}

	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid user id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := userstore.New(h.DB).UpdateProfile(ctx, oid, req.FullName, req.Organisation); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			webapi.Fail(w, http.StatusNotFound, webapi.CodeNotFound, "User not found.")
			return
		}
		h.Log.Error("update profile failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "Could not update profile.")
		return
	}
	webapi.Success(w, auth.SessionUser{
		ID:           user.ID,
		Name:         req.FullName,
		Email:        user.Email,
		Organisation: req.Organisation,
	})
}
