// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/dalemusser/pulsecheck/internal/app/store/users"
	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"github.com/dalemusser/pulsecheck/internal/app/system/timeouts"
	"github.com/dalemusser/pulsecheck/internal/app/system/webapi"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
)

// Handler serves password signup and login for managers.
type Handler struct {
	DB       *mongo.Database
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Sessions: sm, Log: logger}
}

type signupRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Organisation string `json:"organisation"`
}

type sessionResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Organisation string `json:"organisation"`
}

// HandleSignup handles POST /signup.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid request body.")
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Organisation = strings.TrimSpace(req.Organisation)

	if req.FullName == "" || req.Email == "" {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "fullName and email are required.")
		return
	}
	if len(req.Password) < 8 {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Password must be at least 8 characters.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "Could not create account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := userstore.New(h.DB).Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		AuthMethod:   models.AuthMethodPassword,
		Organisation: req.Organisation,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			webapi.Fail(w, http.StatusConflict, webapi.CodeConflict, "An account with that email already exists.")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "Could not create account.")
		return
	}

	if err := h.Sessions.SignIn(w, r, created.ID.Hex()); err != nil {
		h.Log.Error("sign in after signup failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "Could not start session.")
		return
	}
	webapi.Created(w, sessionResponse{
		ID:           created.ID.Hex(),
		FullName:     created.FullName,
		Email:        created.Email,
		Organisation: created.Organisation,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /login. Unknown email and wrong password get
// the same response.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "Invalid request body.")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		webapi.Fail(w, http.StatusBadRequest, webapi.CodeValidation, "email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := userstore.New(h.DB).GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Invalid email or password.")
			return
		}
		h.Log.Error("lookup user failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "Could not sign in.")
		return
	}
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		webapi.Fail(w, http.StatusUnauthorized, webapi.CodeUnauthenticated, "Invalid email or password.")
		return
	}

	if err := h.Sessions.SignIn(w, r, user.ID.Hex()); err != nil {
		h.Log.Error("sign in failed", zap.Error(err))
		webapi.Fail(w, http.StatusInternalServerError, webapi.CodeInternal, "Could not start session.")
		return
	}
	webapi.Success(w, sessionResponse{
		ID:           user.ID.Hex(),
		FullName:     user.FullName,
		Email:        user.Email,
		Organisation: user.Organisation,
	})
}
