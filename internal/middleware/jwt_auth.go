package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/logger"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/token"
)

type ctxKey string

const ctxUser ctxKey = "user"

// TokenVerifier yields the email claim of a valid access token.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// UserLookup resolves the user behind a token.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxUser).(*models.User)
	return u, ok && u != nil
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]any{"error": code, "message": msg})
}

// JWTAuth requires a bearer token and puts the stored, active user in the
// request context.
func JWTAuth(verifier TokenVerifier, users UserLookup, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.JWTAuth"

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, r, http.StatusUnauthorized, "authentication_error", "missing authorization header")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, r, http.StatusUnauthorized, "authentication_error", "invalid authorization header")
				return
			}

			email, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				if errors.Is(err, token.ErrInvalidToken) {
					w.Header().Set("WWW-Authenticate", "Bearer")
					writeError(w, r, http.StatusUnauthorized, "authentication_error", "invalid or expired token")
					return
				}
				log.Error("token verification failed", slog.String("op", op), logger.Err(err))
				writeError(w, r, http.StatusInternalServerError, "internal_error", "could not verify token")
				return
			}

			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					writeError(w, r, http.StatusUnauthorized, "authentication_error", "invalid or expired token")
					return
				}
				log.Error("user lookup failed", slog.String("op", op), logger.Err(err))
				writeError(w, r, apperrors.HTTPStatus(err), apperrors.Code(err), apperrors.Message(err))
				return
			}
			if !user.IsActive {
				writeError(w, r, http.StatusUnauthorized, "authentication_error", "inactive user")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireRole answers 403 unless the authenticated user has one of roles.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				writeError(w, r, http.StatusUnauthorized, "authentication_error", "not authenticated")
				return
			}
			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, r, http.StatusForbidden, "forbidden", "insufficient role")
		})
	}
}
