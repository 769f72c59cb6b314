package wire

import (
	"net/http"

	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	authMW func(http.Handler) http.Handler,
	rateLimitMW func(http.Handler) http.Handler,
) {
	r.Route("/api/auth", func(r chi.Router) {
		// credential endpoints are rate limited per client ip
		r.Group(func(r chi.Router) {
			r.Use(rateLimitMW)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.With(authMW).Get("/me", authHandler.Me)
	})
}
