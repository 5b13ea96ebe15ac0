package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/services"
)

type AuthHandler struct {
	BaseHandler
	auth   *services.AuthService
	resets *services.PasswordResetService
}

func NewAuthHandler(auth *services.AuthService, resets *services.PasswordResetService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(log),
		auth:        auth,
		resets:      resets,
	}
}

// Login exchanges a username (email) and password for an access token.
// @Tags Auth
// @Summary Log in
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid_request", "Invalid form body")
		return
	}
	req := models.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if !h.validate(w, r, req) {
		return
	}

	resp, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// @Tags Auth
// @Summary Request a password reset code
// @Accept json
// @Produce json
// @Param request body models.PasswordResetRequest true "Account email"
// @Success 200 {object} models.PasswordResetResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/auth/password-reset/request [post]
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.resets.RequestReset(r.Context(), req.Email)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// @Tags Auth
// @Summary Check a password reset code
// @Accept json
// @Produce json
// @Param request body models.VerifyResetCodeRequest true "Email and code"
// @Success 200 {object} models.PasswordResetResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/auth/password-reset/verify [post]
func (h *AuthHandler) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyResetCodeRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.resets.VerifyCode(r.Context(), req)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// @Tags Auth
// @Summary Set a new password with a reset code
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Email, code and new password"
// @Success 200 {object} models.PasswordResetResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/auth/password-reset/confirm [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.resets.ResetPassword(r.Context(), req)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}
