// internal/app/features/employees/handler.go
package employees

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	employeestore "github.com/dalemusser/pulsecheck/internal/app/store/employees"
	membershipstore "github.com/dalemusser/pulsecheck/internal/app/store/memberships"
	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/dalemusser/pulsecheck/internal/app/system/timeouts"
	"github.com/dalemusser/pulsecheck/internal/app/system/webapi"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Handler serves the manager-facing employee directory.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeList handles GET /employees.
// Callers without an organisation get an empty list, not an error.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.Organisation == "" {
		webapi.Success(w, []models.Employee{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := employeestore.New(h.DB).ListByOrg(ctx, user.Organisation)
	if err != nil {
		h.Log.Error("list employees failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	if list == nil {
		list = []models.Employee{}
	}
	webapi.Success(w, list)
}

type createRequest struct {
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
}

// HandleCreate handles POST /employees.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Sign in required.")
		return
	}
	if user.Organisation == "" {
		webapi.Fail(w, http.StatusForbidden, webapi.CodeUnauthorized, "Set your organisation before adding employees.")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid request body.")
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.Email == "" {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "firstName and email are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := employeestore.New(h.DB).Create(ctx, models.Employee{
		FirstName:    req.FirstName,
		Email:        req.Email,
		Organisation: user.Organisation,
	})
	if err != nil {
		h.Log.Error("create employee failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	webapi.Created(w, created)
}

// HandleDelete handles DELETE /employees/{id}.
//
// Deleting an employee removes their group memberships but leaves their
// historical check-ins in place; trend dashboards keep counting old
// entries for the dates they were recorded on.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Sign in required.")
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid employee id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	store := employeestore.New(h.DB)
	employee, err := store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, employeestore.ErrNotFound) {
			webapi.Fail(w, http.StatusNotFound, webapi.CodeNotFound, "Employee not found.")
			return
		}
		h.Log.Error("get employee failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}

	if employee.Organisation != user.Organisation {
		webapi.Fail(w, http.StatusForbidden, webapi.CodeUnauthorized, "Not authorized to remove this employee.")
		return
	}

	// Memberships first, then the employee. Independent deletes; a crash
	// in between can orphan nothing worse than membership rows.
	if _, err := membershipstore.New(h.DB).DeleteByEmployee(ctx, oid); err != nil {
		h.Log.Error("delete employee memberships failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	if _, err := store.Delete(ctx, oid); err != nil {
		h.Log.Error("delete employee failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}

	webapi.Success(w, map[string]string{"deleted": oid.Hex()})
}
