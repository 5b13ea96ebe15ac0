package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
)

const uniqueViolation = "23505"

var uniqueMessages = map[string]string{
	"users_email_key":           "email already registered",
	"pymes_user_id_key":         "user already has a pyme",
	"pymes_cuit_key":            "cuit already registered",
	"pymes_corporate_email_key": "corporate email already registered",
}

// mapError converts driver errors into the application taxonomy: missing rows
// become NotFound, unique violations become Validation, the rest are store
// failures.
func mapError(op string, err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(notFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		if msg, ok := uniqueMessages[pqErr.Constraint]; ok {
			return apperrors.Validation(msg)
		}
		return apperrors.Validation("duplicate value")
	}

	return apperrors.TransientStore(op, err)
}
