package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
)

type fakeReviewService struct {
	CreateFn func(ctx context.Context, callerID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateFn func(ctx context.Context, callerID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteFn func(ctx context.Context, callerID, reviewID string) error
	ListFn   func(ctx context.Context, q *request.ListReviewsQuery) ([]response.ReviewResponse, error)
	MineFn   func(ctx context.Context, callerID string) ([]response.ReviewResponse, error)
}

func (f *fakeReviewService) CreateReview(ctx context.Context, callerID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	return f.CreateFn(ctx, callerID, req)
}

func (f *fakeReviewService) UpdateReview(ctx context.Context, callerID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	return f.UpdateFn(ctx, callerID, reviewID, req)
}

func (f *fakeReviewService) DeleteReview(ctx context.Context, callerID, reviewID string) error {
	return f.DeleteFn(ctx, callerID, reviewID)
}

func (f *fakeReviewService) ListReviews(ctx context.Context, q *request.ListReviewsQuery) ([]response.ReviewResponse, error) {
	return f.ListFn(ctx, q)
}

func (f *fakeReviewService) ListMyReviews(ctx context.Context, callerID string) ([]response.ReviewResponse, error) {
	return f.MineFn(ctx, callerID)
}

type fakeAuthService struct {
	RegisterFn func(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	LoginFn    func(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	return f.RegisterFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	return f.LoginFn(ctx, req)
}

func (f *fakeAuthService) EnsureDefaultUser(context.Context) error {
	return nil
}

type fakeUserService struct {
	GetProfileFn func(ctx context.Context, callerID string) (*response.MeResponse, error)
}

func (f *fakeUserService) GetProfile(ctx context.Context, callerID string) (*response.MeResponse, error) {
	return f.GetProfileFn(ctx, callerID)
}

type fakeMovieService struct {
	SearchFn func(ctx context.Context, query string) (*response.MovieSearchResponse, error)
	GetFn    func(ctx context.Context, imdbID string) (*response.MovieDetailResponse, error)
}

func (f *fakeMovieService) Search(ctx context.Context, query string) (*response.MovieSearchResponse, error) {
	return f.SearchFn(ctx, query)
}

func (f *fakeMovieService) GetByID(ctx context.Context, imdbID string) (*response.MovieDetailResponse, error) {
	return f.GetFn(ctx, imdbID)
}

// newRequest builds a request, authenticated as userID unless it is uuid.Nil.
func newRequest(method, target, body string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req = req.WithContext(utils.SetUserContext(req.Context(), userID, "alice@example.com"))
	}
	return req
}
