package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/profile-booster/account-service/internal/middleware"
	"github.com/profile-booster/account-service/internal/repository"
	"github.com/profile-booster/account-service/internal/service"
	"github.com/profile-booster/account-service/internal/validate"
	"github.com/sirupsen/logrus"
)

// Handler exposes the HTTP endpoints of the account service.
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Backend is running"))
}

// Signup handles user registration
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate.Signup(req.Username, req.Password); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	user, signed, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if errors.Is(err, repository.ErrConflict) {
		writeError(w, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		h.log.Errorf("signup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Database insert failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User created successfully",
		"user_id": user.ID,
		"token":   signed,
	})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate.Login(req.Username, req.Password); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	signed, err := h.svc.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	case err != nil:
		h.log.Errorf("login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Database query failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   signed,
	})
}

// Me returns the authenticated user's own record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	user, err := h.svc.GetUser(r.Context(), identity.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.log.Errorf("fetch user failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Database query failed")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update applies a sparse self-update of username and/or password.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	_, targetID, ok := h.requireSelf(w, r, "You can only update your own account")
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Empty strings count as absent, matching required-field semantics.
	username := presentField(req.Username)
	password := presentField(req.Password)

	if errs := validate.Update(username, password); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if username == nil && password == nil {
		writeError(w, http.StatusBadRequest, "Provide username or password to update")
		return
	}

	affected, err := h.svc.UpdateUser(r.Context(), targetID, username, password)
	if errors.Is(err, repository.ErrConflict) {
		writeError(w, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		h.log.Errorf("update user failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Database update failed")
		return
	}
	if affected == 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User updated successfully"})
}

// Delete removes the authenticated user's own record.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	_, targetID, ok := h.requireSelf(w, r, "You can only delete your own account")
	if !ok {
		return
	}

	affected, err := h.svc.DeleteUser(r.Context(), targetID)
	if err != nil {
		h.log.Errorf("delete user failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Database delete failed")
		return
	}
	if affected == 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// requireSelf extracts the path id and rejects callers operating on another
// user's record. The 403 applies regardless of whether the target exists.
func (h *Handler) requireSelf(w http.ResponseWriter, r *http.Request, denied string) (middleware.Identity, int64, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return middleware.Identity{}, 0, false
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return identity, 0, false
	}
	if targetID != identity.UserID {
		writeError(w, http.StatusForbidden, denied)
		return identity, 0, false
	}
	return identity, targetID, true
}

func presentField(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeValidationErrors(w http.ResponseWriter, errs []validate.Error) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
}
