// internal/routes/routes.go
package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/jmoiron/sqlx"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/config"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/logger"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/middleware"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/services"
)

// Deps is everything the router hands to handlers.
type Deps struct {
	DB     *sqlx.DB
	Config *config.Config
	Log    *slog.Logger

	Auth    *services.AuthService
	Resets  *services.PasswordResetService
	Pymes   *services.PymeService
	Credits *services.CreditService

	Verifier middleware.TokenVerifier
	Users    middleware.UserLookup
}

type dbHealth struct {
	Status string `json:"status"`
}

type healthResponse struct {
	Status string   `json:"status"`
	DB     dbHealth `json:"db"`
}

func SetupRoutes(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Config.CORSDomains,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{"message": "Pymes credit API"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", DB: dbHealth{Status: "ok"}}
		status := http.StatusOK
		if err := d.DB.PingContext(ctx); err != nil {
			d.Log.Error("database ping failed", slog.String("op", "routes.health"), logger.Err(err))
			resp.Status = "degraded"
			resp.DB = dbHealth{Status: "down"}
			status = http.StatusServiceUnavailable
		}
		render.Status(r, status)
		render.JSON(w, r, resp)
	})

	RegisterSwaggerRoutes(r)

	auth := middleware.JWTAuth(d.Verifier, d.Users, d.Log)

	r.Route("/api/v1", func(r chi.Router) {
		RegisterAuthRoutes(r, d)
		RegisterUserRoutes(r, d, auth)
		RegisterPymeRoutes(r, d, auth)
		RegisterCreditRoutes(r, d, auth)
	})

	return r
}
