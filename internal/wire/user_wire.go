package wire

import (
	"net/http"

	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authMW func(http.Handler) http.Handler,
) {
	r.With(authMW).Get("/api/users/me/reviews", userHandler.MyReviews)
}
