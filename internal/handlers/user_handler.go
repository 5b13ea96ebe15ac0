package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/services"
)

type UserHandler struct {
	BaseHandler
	auth *services.AuthService
}

func NewUserHandler(auth *services.AuthService, log *slog.Logger) *UserHandler {
	return &UserHandler{BaseHandler: NewBaseHandler(log), auth: auth}
}

// @Tags Users
// @Summary Register a user
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "New user"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, u)
}

// @Tags Users
// @Summary Current user
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, u)
}
