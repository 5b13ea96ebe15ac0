package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/services"
)

type PymeHandler struct {
	BaseHandler
	pymes *services.PymeService
}

func NewPymeHandler(pymes *services.PymeService, log *slog.Logger) *PymeHandler {
	return &PymeHandler{BaseHandler: NewBaseHandler(log), pymes: pymes}
}

// pathID reads a UUID path parameter, answering 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "validation_error", name+" must be a valid UUID")
		return "", false
	}
	return id, true
}

// @Tags Pymes
// @Summary Create the caller's pyme
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreatePymeRequest true "Company data"
// @Success 201 {object} models.Pyme
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/pymes [post]
func (h *PymeHandler) CreatePyme(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.CreatePymeRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.pymes.Create(r.Context(), u, req)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, p)
}

// @Tags Pymes
// @Summary The caller's pyme
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Pyme
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/pymes/me [get]
func (h *PymeHandler) GetMyPyme(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	p, err := h.pymes.GetMine(r.Context(), u)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

// @Tags Pymes
// @Summary Get a pyme
// @Security BearerAuth
// @Produce json
// @Param id path string true "Pyme ID"
// @Success 200 {object} models.Pyme
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/pymes/{id} [get]
func (h *PymeHandler) GetPyme(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.pymes.Get(r.Context(), u, id)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

// @Tags Pymes
// @Summary Update a pyme
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Pyme ID"
// @Param request body models.UpdatePymeRequest true "Fields to change"
// @Success 200 {object} models.Pyme
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/pymes/{id} [put]
func (h *PymeHandler) UpdatePyme(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.UpdatePymeRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.pymes.Update(r.Context(), u, id, req)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}
