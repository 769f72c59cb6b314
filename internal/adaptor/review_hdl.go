package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// List handles GET /api/reviews?rating=&sortBy=&sortOrder=
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := request.ListReviewsQuery{
		Rating:    q.Get("rating"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	reviews, err := h.service.ListReviews(r.Context(), &query)
	if err != nil {
		writeServiceError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), callerID(r), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created", review)
}

// Update handles PUT /api/reviews/{id}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review, err := h.service.UpdateReview(r.Context(), callerID(r), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated", review)
}

// Delete handles DELETE /api/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted", nil)
}
