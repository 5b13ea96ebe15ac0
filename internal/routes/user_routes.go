package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/handlers"
)

func RegisterUserRoutes(router chi.Router, d Deps, auth func(http.Handler) http.Handler) {
	userHandler := handlers.NewUserHandler(d.Auth, d.Log)

	router.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Register)
		r.With(auth).Get("/me", userHandler.Me)
	})
}
