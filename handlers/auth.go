package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"bracket-pool-go/logging"
	"bracket-pool-go/middleware"
	"bracket-pool-go/models"
	"bracket-pool-go/services"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService  *services.AuthService
	emailService *services.EmailService
	baseURL      string
	logger       *logging.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *services.AuthService, emailService *services.EmailService, baseURL string) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
		baseURL:      baseURL,
		logger:       logging.WithPrefix("AuthHandler"),
	}
}

// Register creates a new account and sets the auth cookie
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	authResponse, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Warnf("Registration failed for %s: %v", req.Email, err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.setAuthCookie(w, authResponse.Token)
	h.logger.Infof("User %s (%s) registered", authResponse.User.Name, authResponse.User.Email)
	respondJSON(w, http.StatusCreated, authResponse)
}

// Login authenticates a user and sets the auth cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	authResponse, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Warnf("Login failed for %s: %v", req.Email, err)
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.setAuthCookie(w, authResponse.Token)
	h.logger.Infof("User %s (%s) logged in", authResponse.User.Name, authResponse.User.Email)
	respondJSON(w, http.StatusOK, authResponse)
}

// Logout clears the auth cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	behindProxy := os.Getenv("BEHIND_PROXY") == "true"

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   !behindProxy,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the current user's information
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	respondJSON(w, http.StatusOK, user.ToSafeUser())
}

// ForgotPassword generates a reset token and emails it. The response is the
// same whether or not the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := h.authService.RequestPasswordReset(req.Email)
	if err != nil {
		h.logger.Errorf("Password reset request failed for %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if user != nil {
		if err := h.emailService.SendPasswordResetEmail(user.Email, user.Name, user.ResetToken, h.baseURL); err != nil {
			h.logger.Errorf("Failed to send reset email to %s: %v", user.Email, err)
		}
		if !h.emailService.IsConfigured() {
			// Development fallback when no SMTP is available
			h.logger.Infof("Reset URL: %s/reset-password?token=%s", h.baseURL, user.ResetToken)
		}
	} else {
		h.logger.Infof("Password reset requested for unknown email %s", req.Email)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "if the email exists, a reset link has been sent",
	})
}

// ResetPassword replaces the password using a valid reset token
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Token == "" {
		respondError(w, http.StatusBadRequest, "reset token is required")
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		respondError(w, http.StatusBadRequest, "passwords do not match")
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		h.logger.Warnf("Password reset failed: %v", err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokenPrefix := req.Token
	if len(tokenPrefix) > 8 {
		tokenPrefix = tokenPrefix[:8] + "..."
	}
	h.logger.Infof("Password reset using token %s", tokenPrefix)
	respondJSON(w, http.StatusOK, map[string]string{"status": "password reset successful"})
}

// setAuthCookie sets the authentication cookie
func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	behindProxy := os.Getenv("BEHIND_PROXY") == "true"

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   !behindProxy,
		SameSite: http.SameSiteStrictMode,
	})
}
