// Package omdb is a small client for the OMDb movie metadata API.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movie-review/pkg/metrics"
	"movie-review/pkg/utils"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("omdb: movie not found")
	ErrUnavailable = errors.New("omdb: service unavailable")
)

const breakerName = "omdb"

type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type SearchResult struct {
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error,omitempty"`
}

type Movie struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	IMDbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// NewClient builds a client guarded by a circuit breaker that opens after
// 60% of at least 5 requests fail and probes again after 30s. m may be nil.
func NewClient(config utils.OMDBConfig, m *metrics.BreakerMetrics, log *zap.Logger) *Client {
	log = log.With(zap.String("client", "omdb"))

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// a definitive "not found" is a healthy upstream
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("component", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if m != nil {
				m.StateChanges.WithLabelValues(name, to.String()).Inc()
				m.State.WithLabelValues(name).Set(stateToFloat(to))
			}
		},
	})

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		http:    &http.Client{Timeout: timeout},
		cb:      cb,
		log:     log,
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// State is exposed for health reporting and tests.
func (c *Client) State() gobreaker.State {
	return c.cb.State()
}

// Search finds titles matching query. An upstream "no results" answer is
// returned as an empty result, not an error.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("s", query)

	var result SearchResult
	if err := c.call(ctx, params, &result); err != nil {
		return nil, err
	}

	if result.Response == "False" {
		c.log.Debug("Search returned no results",
			zap.String("query", query),
			zap.String("reason", result.Error),
		)
		return &SearchResult{Search: []SearchItem{}, TotalResults: "0", Response: "False", Error: result.Error}, nil
	}
	if result.Search == nil {
		result.Search = []SearchItem{}
	}
	return &result, nil
}

// Get fetches full details for an IMDb id.
func (c *Client) Get(ctx context.Context, imdbID string) (*Movie, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")

	out, err := c.cb.Execute(func() (interface{}, error) {
		var movie Movie
		if err := c.do(ctx, params, &movie); err != nil {
			return nil, err
		}
		if movie.Response == "False" {
			return nil, ErrNotFound
		}
		return &movie, nil
	})
	if err != nil {
		return nil, c.wrap(err, "get", imdbID)
	}
	return out.(*Movie), nil
}

func (c *Client) call(ctx context.Context, params url.Values, dst any) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, params, dst)
	})
	if err != nil {
		return c.wrap(err, "search", params.Get("s"))
	}
	return nil
}

func (c *Client) wrap(err error, op, arg string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.log.Warn("Circuit open, rejecting request", zap.String("op", op), zap.String("arg", arg))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		c.log.Error("Request failed", zap.Error(err), zap.String("op", op), zap.String("arg", arg))
		return fmt.Errorf("omdb %s %q: %w", op, arg, err)
	}
}

func (c *Client) do(ctx context.Context, params url.Values, dst any) error {
	params.Set("apikey", c.apiKey)
	endpoint := c.baseURL + "/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
