package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/akashsingh062/Smart-Ai-Todo/logging"
	"github.com/akashsingh062/Smart-Ai-Todo/middleware"
	"github.com/akashsingh062/Smart-Ai-Todo/models"
	"github.com/akashsingh062/Smart-Ai-Todo/services"
)

type AuthHandler struct {
	UserService *services.UserService
	Blacklist   services.TokenBlacklist
}

func NewAuthHandler(userService *services.UserService, blacklist services.TokenBlacklist) *AuthHandler {
	return &AuthHandler{UserService: userService, Blacklist: blacklist}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func validRegistration(req RegisterRequest) bool {
	if len(req.Username) < 3 || len(req.Username) > 30 {
		return false
	}
	if req.Email == "" || len(req.Password) < 6 {
		return false
	}
	return true
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	if !validRegistration(req) {
		writeError(w, http.StatusBadRequest, "Invalid registration data", nil)
		return
	}

	user, token, err := h.UserService.RegisterUser(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			writeError(w, http.StatusBadRequest, "User already exists", nil)
			return
		}
		logging.Logger.Errorf("Event ID: USER_REGISTER_FAILED, Description: Registration failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User %s registered successfully", user.Username)
	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	user, token, err := h.UserService.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid credentials", nil)
			return
		}
		logging.Logger.Errorf("Event ID: USER_LOGIN_FAILED, Description: Login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	logging.Logger.Infof("Event ID: USER_LOGIN, Description: User %s logged in", user.Username)
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Logout revokes the presented token for the remainder of its lifetime.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token", nil)
		return
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := h.Blacklist.Add(r.Context(), token, ttl); err != nil {
		logging.Logger.Errorf("Event ID: TOKEN_REVOKE_FAILED, Description: Failed to revoke token: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
