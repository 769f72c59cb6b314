package wire

import (
	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/search", movieHandler.Search)
		r.Get("/{id}", movieHandler.Get)
	})
}
