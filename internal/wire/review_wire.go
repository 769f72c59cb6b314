package wire

import (
	"net/http"

	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	authMW func(http.Handler) http.Handler,
) {
	r.Route("/api/reviews", func(r chi.Router) {
		// GET /api/reviews?rating=&sortBy=&sortOrder= (public)
		r.Get("/", reviewHandler.List)

		// owner checks happen in the service
		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Post("/", reviewHandler.Create)
			r.Put("/{id}", reviewHandler.Update)
			r.Delete("/{id}", reviewHandler.Delete)
		})
	})
}
