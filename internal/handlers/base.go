// internal/handlers/base.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
)

// BaseHandler carries what every handler needs to read a request.
type BaseHandler struct {
	v   *validator.Validate
	log *slog.Logger
}

func NewBaseHandler(log *slog.Logger) BaseHandler {
	return BaseHandler{
		v:   models.NewValidator(),
		log: log,
	}
}

// decode reads a JSON body into dst and validates it, answering 400 itself
// on failure.
func (b BaseHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return false
	}
	return b.validate(w, r, dst)
}

func (b BaseHandler) validate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := b.v.Struct(v); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "validation_error", validationMessage(err))
		return false
	}
	return true
}
