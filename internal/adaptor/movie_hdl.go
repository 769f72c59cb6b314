package adaptor

import (
	"net/http"

	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// Search handles GET /api/movies/search?q=
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.log, err, "search movies")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Get handles GET /api/movies/{id}
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}
