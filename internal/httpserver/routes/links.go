package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/linkshelf/linkshelf/internal/httpserver/deps"
	"github.com/linkshelf/linkshelf/internal/httpserver/handlers"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Route("/api/links", func(r chi.Router) {
		r.Get("/", handlers.ListLinks(d))
		r.Post("/", handlers.CreateLink(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetLink(d))
			r.Delete("/", handlers.DeleteLink(d))
			r.Put("/favorite", handlers.SetFavorite(d))
			r.Put("/category", handlers.SetCategory(d))
			r.Put("/note", handlers.SetNote(d))
			r.Put("/reminder", handlers.SetReminder(d))
			r.Post("/enrich", handlers.EnrichLink(d))
		})
	})
}
