package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/handlers"
)

func RegisterAuthRoutes(router chi.Router, d Deps) {
	authHandler := handlers.NewAuthHandler(d.Auth, d.Resets, d.Log)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Route("/password-reset", func(r chi.Router) {
			r.Post("/request", authHandler.RequestPasswordReset)
			r.Post("/verify", authHandler.VerifyResetCode)
			r.Post("/confirm", authHandler.ResetPassword)
		})
	})
}
