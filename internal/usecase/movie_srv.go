package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"movie-review/internal/dto/response"
	"movie-review/pkg/apperror"
	"movie-review/pkg/cache"
	"movie-review/pkg/omdb"

	"go.uber.org/zap"
)

const minSearchLength = 2

// MovieLookup is the external movie metadata provider.
type MovieLookup interface {
	Search(ctx context.Context, query string) (*omdb.SearchResult, error)
	Get(ctx context.Context, imdbID string) (*omdb.Movie, error)
}

type MovieService interface {
	Search(ctx context.Context, query string) (*response.MovieSearchResponse, error)
	GetByID(ctx context.Context, imdbID string) (*response.MovieDetailResponse, error)
}

type movieService struct {
	lookup MovieLookup
	cache  cache.Cache
	ttl    time.Duration
	log    *zap.Logger
}

func NewMovieService(lookup MovieLookup, c cache.Cache, ttl time.Duration, log *zap.Logger) MovieService {
	return &movieService{
		lookup: lookup,
		cache:  c,
		ttl:    ttl,
		log:    log.With(zap.String("service", "movie")),
	}
}

// Search answers short queries with an empty result without asking upstream.
func (s *movieService) Search(ctx context.Context, query string) (*response.MovieSearchResponse, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchLength {
		return &response.MovieSearchResponse{Results: []response.MovieSummaryResponse{}}, nil
	}

	key := "search:" + strings.ToLower(query)
	var cached response.MovieSearchResponse
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	if s.lookup == nil {
		return nil, apperror.External("Movie search is not configured", nil)
	}

	result, err := s.lookup.Search(ctx, query)
	if err != nil {
		return nil, apperror.External("Movie search failed", err)
	}

	resp := response.SearchToResponse(result)
	s.toCache(ctx, key, resp)
	return &resp, nil
}

func (s *movieService) GetByID(ctx context.Context, imdbID string) (*response.MovieDetailResponse, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, apperror.NotFound("Movie not found")
	}

	key := "movie:" + imdbID
	var cached response.MovieDetailResponse
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	if s.lookup == nil {
		return nil, apperror.External("Movie lookup is not configured", nil)
	}

	movie, err := s.lookup.Get(ctx, imdbID)
	if errors.Is(err, omdb.ErrNotFound) {
		return nil, apperror.NotFound("Movie not found")
	}
	if err != nil {
		return nil, apperror.External("Movie fetch failed", err)
	}

	resp := response.MovieToDetailResponse(movie)
	s.toCache(ctx, key, resp)
	return &resp, nil
}

// cache failures are never fatal to a lookup
func (s *movieService) fromCache(ctx context.Context, key string, dst any) bool {
	found, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.log.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		return false
	}
	return found
}

func (s *movieService) toCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}
