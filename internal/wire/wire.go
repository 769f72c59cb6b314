package wire

import (
	"context"
	"net/http"
	"strings"
	"time"

	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/internal/usecase"
	"movie-review/pkg/metrics"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Infra is the process-level plumbing the router exposes directly.
type Infra struct {
	DB       Pinger
	Registry *prometheus.Registry
}

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services and handlers and mounts every route.
func Wiring(
	repo *repository.Repository,
	deps usecase.Dependencies,
	infra Infra,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, deps, infra, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	deps usecase.Dependencies,
	infra Infra,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	if config.App.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(config.App.CORSOrigin),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         600,
	}))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics.HTTP, "/metrics", "/health"))
	}

	authMW := middleware.Auth(deps.Tokens, logger)
	limiter := middleware.NewIPRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst, deps.Clock)

	wireAuth(r, handler.Auth, authMW, middleware.RateLimit(limiter, logger))
	wireReview(r, handler.Review, authMW)
	wireUser(r, handler.User, authMW)
	wireMovie(r, handler.Movie)

	r.Get("/health", healthHandler(infra.DB, logger))
	if infra.Registry != nil {
		r.Handle("/metrics", metrics.Handler(infra.Registry))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}

// corsOrigins splits the comma separated CORS_ORIGIN value.
func corsOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logger.Error("Health check failed", zap.Error(err))
				utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", nil, nil)
				return
			}
		}

		utils.ResponseSuccess(w, "OK", nil)
	}
}
