package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/logger"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/middleware"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/storage"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeJSONMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]any{"message": message})
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	writeJSON(w, r, status, map[string]any{"error": code, "message": message})
}

// writeAppError maps err onto its HTTP status. Internal causes are logged,
// never sent.
func writeAppError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if errors.Is(err, storage.ErrDisabled) {
		writeJSONError(w, r, http.StatusServiceUnavailable, "storage_unavailable", "document storage is not configured")
		return
	}

	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Err(err),
		)
	}
	writeJSONError(w, r, status, apperrors.Code(err), apperrors.Message(err))
}

// validationMessage reports the first failing field by its JSON name.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "password":
			return fmt.Sprintf("%s must be 8 to 72 characters with at least one letter and one digit", fe.Field())
		case "cuit":
			return fmt.Sprintf("%s must look like 30-12345678-9", fe.Field())
		case "fiscal_year":
			return fmt.Sprintf("%s must be between 2000 and the current year", fe.Field())
		}
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
	return "invalid request"
}

func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSONError(w, r, http.StatusUnauthorized, "authentication_error", "not authenticated")
	}
	return u, ok
}
