// internal/app/features/groups/members.go
package groups

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	employeestore "github.com/dalemusser/pulsecheck/internal/app/store/employees"
	groupstore "github.com/dalemusser/pulsecheck/internal/app/store/groups"
	membershipstore "github.com/dalemusser/pulsecheck/internal/app/store/memberships"
	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/dalemusser/pulsecheck/internal/app/system/timeouts"
	"github.com/dalemusser/pulsecheck/internal/app/system/webapi"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// memberView is one group member with its employee record inlined.
type memberView struct {
	MembershipID primitive.ObjectID `json:"membershipId"`
	Employee     models.Employee    `json:"employee"`
}

// ServeMembers handles GET /groups/{id}/members.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.ownsGroup(ctx, w, oid, user.Organisation) {
		return
	}

	list, err := membershipstore.New(h.DB).ListByGroup(ctx, oid)
	if err != nil {
		h.Log.Error("list group members failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}

	estore := employeestore.New(h.DB)
	members := make([]memberView, 0, len(list))
	for _, m := range list {
		emp, err := estore.GetByID(ctx, m.EmployeeID)
		if err != nil {
			if errors.Is(err, employeestore.ErrNotFound) {
				// Employee deleted concurrently; its membership cleanup
				// lags behind.
				continue
			}
			h.Log.Error("get member employee failed", zap.Error(err))
			webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
			return
		}
		members = append(members, memberView{MembershipID: m.ID, Employee: emp})
	}
	webapi.Success(w, members)
}

type addMemberRequest struct {
	EmployeeID string `json:"employeeId"`
}

// HandleAddMember handles POST /groups/{id}/members.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Sign in required.")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid group id.")
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid request body.")
		return
	}
	employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
	if err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid employee id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.ownsGroup(ctx, w, groupID, user.Organisation) {
		return
	}

	created, err := membershipstore.New(h.DB).Add(ctx, groupID, employeeID)
	if err != nil {
		switch {
		case errors.Is(err, membershipstore.ErrNotFound):
			webapi.Fail(w, http.StatusNotFound, webapi.CodeNotFound, "Group or employee not found.")
		case errors.Is(err, membershipstore.ErrDuplicateMembership):
			webapi.Fail(w, http.StatusConflict, webapi.CodeConflict, "Employee is already in this group.")
		case errors.Is(err, membershipstore.ErrOrgMismatch):
			webapi.Fail(w, http.StatusForbidden, webapi.CodeUnauthorized, "Group and employee belong to different organisations.")
		default:
			h.Log.Error("add group member failed", zap.Error(err))
			webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		}
		return
	}
	webapi.Created(w, created)
}

// HandleRemoveMember handles DELETE /groups/{id}/members/{membershipID}.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Sign in required.")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid group id.")
		return
	}
	membershipID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "membershipID"))
	if err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid membership id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.ownsGroup(ctx, w, groupID, user.Organisation) {
		return
	}

	store := membershipstore.New(h.DB)
	membership, err := store.GetByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, membershipstore.ErrNotFound) {
			webapi.Fail(w, http.StatusNotFound, webapi.CodeNotFound, "Membership not found.")
			return
		}
		h.Log.Error("get membership failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	if membership.GroupID != groupID {
		webapi.Fail(w, http.StatusNotFound, webapi.CodeNotFound, "Membership not found.")
		return
	}

	if err := store.Remove(ctx, membershipID); err != nil {
		if errors.Is(err, membershipstore.ErrNotFound) {
			webapi.Fail(w, http.StatusNotFound, webapi.CodeNotFound, "Membership not found.")
			return
		}
		h.Log.Error("remove membership failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return
	}
	webapi.Success(w, map[string]string{"removed": membershipID.Hex()})
}

// ownsGroup loads the group and enforces tenant scoping; on failure it
// writes the response and reports false.
func (h *Handler) ownsGroup(ctx context.Context, w http.ResponseWriter, groupID primitive.ObjectID, organisation string) bool {
	group, err := groupstore.New(h.DB).GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			webapi.Fail(w, http.StatusNotFound, webapi.CodeNotFound, "Group not found.")
			return false
		}
		h.Log.Error("get group failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "A database error occurred.")
		return false
	}
	if group.Organisation != organisation {
		webapi.Fail(w, http.StatusForbidden, webapi.CodeUnauthorized, "Not authorized to manage this group.")
		return false
	}
	return true
}
