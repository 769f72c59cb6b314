package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/internal/sentiment"
	"movie-review/pkg/apperror"
	"movie-review/pkg/metrics"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, callerID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, callerID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, callerID, reviewID string) error
	ListReviews(ctx context.Context, q *request.ListReviewsQuery) ([]response.ReviewResponse, error)
	ListMyReviews(ctx context.Context, callerID string) ([]response.ReviewResponse, error)
}

type reviewService struct {
	repo       *repository.Repository
	classifier sentiment.Classifier
	clock      clockwork.Clock
	metrics    *metrics.ReviewMetrics
	log        *zap.Logger
}

// NewReviewService keeps every review's sentiment in step with its text.
// metrics may be nil.
func NewReviewService(
	repo *repository.Repository,
	classifier sentiment.Classifier,
	clock clockwork.Clock,
	m *metrics.ReviewMetrics,
	log *zap.Logger,
) ReviewService {
	return &reviewService{
		repo:       repo,
		classifier: classifier,
		clock:      clock,
		metrics:    m,
		log:        log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, callerID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	authorID, err := parseCaller(callerID)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Validation failed", errs)
	}

	now := s.now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     authorID,
		MovieName:  req.MovieName,
		Rating:     *req.Rating,
		ReviewText: req.ReviewText,
		Sentiment:  s.classify(req.ReviewText),
	}

	var created *entity.ReviewDetail
	err = s.repo.Tx.WithinTransaction(ctx, func(tx *repository.Repository) error {
		author, err := tx.User.FindByID(ctx, authorID)
		if err != nil {
			return apperror.Internal("Failed to load author", err)
		}
		if author == nil {
			return apperror.Unauthorized("Unknown user")
		}

		if err := tx.Review.Create(ctx, review); err != nil {
			return apperror.Internal("Failed to create review", err)
		}

		created, err = tx.Review.FindByID(ctx, review.ID)
		if err != nil {
			return apperror.Internal("Failed to load review", err)
		}
		if created == nil {
			return apperror.Internal("Review vanished after insert", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Observe("create", string(created.Sentiment))
	s.log.Info("Review created",
		zap.String("review_id", created.ID.String()),
		zap.String("user_id", authorID.String()),
		zap.Int("rating", created.Rating),
		zap.String("sentiment", string(created.Sentiment)),
	)

	resp := response.ReviewToResponse(created)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, callerID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	userID, err := parseCaller(callerID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, apperror.NotFound("Review not found")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed",
			zap.Any("errors", errs),
			zap.String("review_id", reviewID),
		)
		return nil, apperror.Validation("Validation failed", errs)
	}

	var updated *entity.ReviewDetail
	err = s.repo.Tx.WithinTransaction(ctx, func(tx *repository.Repository) error {
		review, err := s.lockOwned(ctx, tx, id, userID)
		if err != nil {
			return err
		}

		if req.MovieName != nil {
			review.MovieName = *req.MovieName
		}
		review.Rating = *req.Rating
		// recomputed whenever text is supplied, even if unchanged
		review.ReviewText = *req.ReviewText
		review.Sentiment = s.classify(review.ReviewText)
		review.UpdatedAt = s.now()

		if err := tx.Review.Update(ctx, review); err != nil {
			return apperror.Internal("Failed to update review", err)
		}

		updated, err = tx.Review.FindByID(ctx, id)
		if err != nil {
			return apperror.Internal("Failed to load review", err)
		}
		if updated == nil {
			return apperror.Internal("Review vanished after update", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Observe("update", string(updated.Sentiment))
	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
		zap.Int("rating", updated.Rating),
		zap.String("sentiment", string(updated.Sentiment)),
	)

	resp := response.ReviewToResponse(updated)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, callerID, reviewID string) error {
	userID, err := parseCaller(callerID)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return apperror.NotFound("Review not found")
	}

	var deleted *entity.Review
	err = s.repo.Tx.WithinTransaction(ctx, func(tx *repository.Repository) error {
		review, err := s.lockOwned(ctx, tx, id, userID)
		if err != nil {
			return err
		}

		if err := tx.Review.Delete(ctx, id); err != nil {
			return apperror.Internal("Failed to delete review", err)
		}
		deleted = review
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.Observe("delete", string(deleted.Sentiment))
	s.log.Info("Review deleted by owner",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// lockOwned loads the review FOR UPDATE and checks the caller owns it.
func (s *reviewService) lockOwned(ctx context.Context, tx *repository.Repository, id, callerID uuid.UUID) (*entity.Review, error) {
	review, err := tx.Review.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Failed to load review", err)
	}
	if review == nil {
		return nil, apperror.NotFound("Review not found")
	}
	if review.UserID != callerID {
		s.log.Warn("Review mutation by non-owner rejected",
			zap.String("review_id", id.String()),
			zap.String("owner_id", review.UserID.String()),
			zap.String("caller_id", callerID.String()),
		)
		return nil, apperror.Forbidden("You can only modify your own reviews")
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, q *request.ListReviewsQuery) ([]response.ReviewResponse, error) {
	filter, errs := parseListQuery(q)
	if len(errs) > 0 {
		s.log.Warn("List reviews validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("Invalid query parameters", errs)
	}

	reviews, err := s.repo.Review.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("Failed to list reviews", err)
	}

	s.log.Debug("Reviews listed",
		zap.Int("count", len(reviews)),
		zap.String("sort_by", string(filter.SortBy)),
		zap.String("sort_order", string(filter.SortOrder)),
	)

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) ListMyReviews(ctx context.Context, callerID string) ([]response.ReviewResponse, error) {
	userID, err := parseCaller(callerID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Failed to list reviews", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) classify(text string) entity.Sentiment {
	return entity.Sentiment(s.classifier.Classify(text))
}

// postgres keeps microseconds; truncating keeps responses equal to stored rows
func (s *reviewService) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

// parseListQuery applies defaults (all ratings, newest first) and rejects
// anything outside the accepted values.
func parseListQuery(q *request.ListReviewsQuery) (entity.ReviewFilter, map[string]string) {
	filter := entity.ReviewFilter{
		SortBy:    entity.SortByCreatedAt,
		SortOrder: entity.SortDesc,
	}
	if q == nil {
		return filter, nil
	}

	errs := make(map[string]string)

	rating := strings.TrimSpace(q.Rating)
	if rating != "" && !strings.EqualFold(rating, "all") {
		n, err := strconv.Atoi(rating)
		if err != nil || n < 1 || n > 5 {
			errs["rating"] = "Must be a whole number between 1 and 5, or all"
		} else {
			filter.Rating = &n
		}
	}

	switch entity.SortField(strings.TrimSpace(q.SortBy)) {
	case "":
	case entity.SortByCreatedAt:
		filter.SortBy = entity.SortByCreatedAt
	case entity.SortByRating:
		filter.SortBy = entity.SortByRating
	default:
		errs["sortBy"] = "Must be one of: createdAt, rating"
	}

	switch entity.SortOrder(strings.ToUpper(strings.TrimSpace(q.SortOrder))) {
	case "":
	case entity.SortAsc:
		filter.SortOrder = entity.SortAsc
	case entity.SortDesc:
		filter.SortOrder = entity.SortDesc
	default:
		errs["sortOrder"] = "Must be one of: ASC, DESC"
	}

	if len(errs) == 0 {
		return filter, nil
	}
	return filter, errs
}

// parseCaller turns the identity supplied by the auth layer into a user id.
func parseCaller(callerID string) (uuid.UUID, error) {
	if callerID == "" {
		return uuid.Nil, apperror.Unauthorized("Authentication required")
	}
	id, err := uuid.Parse(callerID)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("Invalid caller identity")
	}
	return id, nil
}
