package adaptor

import (
	"net/http"

	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	reviews usecase.ReviewService
	log     *zap.Logger
}

func NewUserHandler(reviews usecase.ReviewService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		reviews: reviews,
		log:     log.With(zap.String("handler", "user")),
	}
}

// MyReviews handles GET /api/users/me/reviews
func (h *UserHandler) MyReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListMyReviews(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, h.log, err, "my reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}
