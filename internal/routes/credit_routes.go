package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/handlers"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/middleware"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
)

func RegisterCreditRoutes(router chi.Router, d Deps, auth func(http.Handler) http.Handler) {
	creditHandler := handlers.NewCreditHandler(d.Credits, d.Log)

	router.Route("/credits", func(r chi.Router) {
		r.Use(auth)
		r.Post("/", creditHandler.CreateCredit)
		r.Get("/", creditHandler.ListCredits)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", creditHandler.GetCredit)
			r.Post("/documents", creditHandler.UploadDocument)
			r.Get("/documents", creditHandler.ListDocuments)
			r.Get("/reviews", creditHandler.ListReviews)
			r.With(middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)).
				Post("/reviews", creditHandler.ReviewCredit)
		})
	})
}
