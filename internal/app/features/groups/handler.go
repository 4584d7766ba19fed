// internal/app/features/groups/handler.go
package groups

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	groupstore "github.com/dalemusser/pulsecheck/internal/app/store/groups"
	membershipstore "github.com/dalemusser/pulsecheck/internal/app/store/memberships"
	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/dalemusser/pulsecheck/internal/app/system/timeouts"
	"github.com/dalemusser/pulsecheck/internal/app/system/webapi"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Handler serves group CRUD and group membership management.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeList handles GET /groups.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.Organisation == "" {
		webapi.Success(w, []models.Group{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := groupstore.New(h.DB).ListByOrg(ctx, user.Organisation)
	if err != nil {
		h.Log.Error("list groups failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Group{}
	}
	webapi.Success(w, list)
}

type createRequest struct {
	Name string `json:"name"`
}

// HandleCreate handles POST /groups.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Sign in required.")
		return
	}
	if user.Organisation == "" {
		webapi.Fail(w, http.StatusForbidden, webapi.CodeUnauthorized, "Set your organisation before adding groups.")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid request body.")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := groupstore.New(h.DB).Create(ctx, models.Group{
		Name:         req.Name,
		Organisation: user.Organisation,
	})
	if err != nil {
		h.Log.Error("create group failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	webapi.Created(w, created)
}

// HandleDelete handles DELETE /groups/{id}. Memberships go with the group.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Sign in required.")
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid group id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	store := groupstore.New(h.DB)
	group, err := store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			webapi.Fail(w, http.StatusNotFound, webapi.CodeNotFound, "Group not found.")
			return
		}
		h.Log.Error("get group failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}

	if group.Organisation != user.Organisation {
		webapi.Fail(w, http.StatusForbidden, webapi.CodeUnauthorized, "Not authorized to remove this group.")
		return
	}

	if _, err := membershipstore.New(h.DB).DeleteByGroup(ctx, oid); err != nil {
		h.Log.Error("delete group memberships failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	if _, err := store.Delete(ctx, oid); err != nil {
		h.Log.Error("delete group failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}

	webapi.Success(w, map[string]string{"deleted": oid.Hex()})
}
