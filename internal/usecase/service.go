package usecase

import (
	"time"

	"movie-review/internal/data/repository"
	"movie-review/internal/sentiment"
	"movie-review/pkg/cache"
	"movie-review/pkg/metrics"
	"movie-review/pkg/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Review ReviewService
	Movie  MovieService
}

// Dependencies are the collaborators services need beyond the repositories.
type Dependencies struct {
	Classifier sentiment.Classifier
	Clock      clockwork.Clock
	Tokens     *utils.TokenIssuer
	Movies     MovieLookup
	Cache      cache.Cache
	Metrics    *metrics.Metrics
}

func NewService(repo *repository.Repository, deps Dependencies, config *utils.Config, log *zap.Logger) *Service {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Classifier == nil {
		deps.Classifier = sentiment.NewAnalyzer()
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewNoop()
	}

	var reviewMetrics *metrics.ReviewMetrics
	if deps.Metrics != nil {
		reviewMetrics = deps.Metrics.Reviews
	}

	cacheTTL := config.OMDB.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	return &Service{
		Auth:   NewAuthService(repo, deps.Tokens, deps.Clock, log),
		User:   NewUserService(repo.User, log),
		Review: NewReviewService(repo, deps.Classifier, deps.Clock, reviewMetrics, log),
		Movie:  NewMovieService(deps.Movies, deps.Cache, cacheTTL, log),
	}
}
