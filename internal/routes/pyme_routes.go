package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/handlers"
)

func RegisterPymeRoutes(router chi.Router, d Deps, auth func(http.Handler) http.Handler) {
	pymeHandler := handlers.NewPymeHandler(d.Pymes, d.Log)

	router.Route("/pymes", func(r chi.Router) {
		r.Use(auth)
		r.Post("/", pymeHandler.CreatePyme)
		r.Get("/me", pymeHandler.GetMyPyme)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", pymeHandler.GetPyme)
			r.Put("/", pymeHandler.UpdatePyme)
		})
	})
}
