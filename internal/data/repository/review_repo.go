package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ReviewDetail, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entity.ReviewFilter) ([]*entity.ReviewDetail, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.ReviewDetail, error)
}

type reviewRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReviewRepository(db database.Querier, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewDetailColumns = `
	r.id, r.user_id, r.movie_name, r.rating, r.review_text, r.sentiment,
	r.created_at, r.updated_at, u.email
`

// sort columns are never taken from user input directly
var sortColumns = map[entity.SortField]string{
	entity.SortByCreatedAt: "r.created_at",
	entity.SortByRating:    "r.rating",
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, movie_name, rating, review_text,
		                     sentiment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.MovieName,
		review.Rating,
		review.ReviewText,
		sentimentArg(review.Sentiment),
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("movie_name", review.MovieName),
		)
		return fmt.Errorf("create review for %q by user %s: %w",
			review.MovieName, review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ReviewDetail, error) {
	query := `SELECT ` + reviewDetailColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`

	detail, err := scanReviewDetail(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return detail, nil
}

func (r *reviewRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, movie_name, rating, review_text, sentiment,
		       created_at, updated_at
		FROM reviews
		WHERE id = $1
		FOR UPDATE
	`

	var (
		review    entity.Review
		sentiment *string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.MovieName,
		&review.Rating,
		&review.ReviewText,
		&sentiment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("lock review %s: %w", id.String(), err)
	}
	review.Sentiment = sentimentFromColumn(sentiment)

	return &review, nil
}

// Update writes the mutable fields. user_id and created_at are never touched.
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET movie_name = $2, rating = $3, review_text = $4,
		    sentiment = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.MovieName,
		review.Rating,
		review.ReviewText,
		sentimentArg(review.Sentiment),
		review.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) List(ctx context.Context, filter entity.ReviewFilter) ([]*entity.ReviewDetail, error) {
	query := `SELECT ` + reviewDetailColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
	`
	var args []any
	if filter.Rating != nil {
		args = append(args, *filter.Rating)
		query += ` WHERE r.rating = $1`
	}
	query += orderClause(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reviews",
			zap.Error(err),
			zap.String("sort_by", string(filter.SortBy)),
			zap.String("sort_order", string(filter.SortOrder)),
		)
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return r.collect(rows)
}

func (r *reviewRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.ReviewDetail, error) {
	query := `SELECT ` + reviewDetailColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list reviews by user ID %s: %w", userID.String(), err)
	}

	return r.collect(rows)
}

func (r *reviewRepository) collect(rows pgx.Rows) ([]*entity.ReviewDetail, error) {
	defer rows.Close()

	reviews := make([]*entity.ReviewDetail, 0)
	for rows.Next() {
		detail, err := scanReviewDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, detail)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// orderClause falls back to newest first for unknown fields; created_at and
// id break ties so equal keys still list in a stable order.
func orderClause(filter entity.ReviewFilter) string {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns[entity.SortByCreatedAt]
	}
	direction := string(entity.SortDesc)
	if filter.SortOrder == entity.SortAsc {
		direction = string(entity.SortAsc)
	}

	clause := fmt.Sprintf(" ORDER BY %s %s", column, direction)
	if column != sortColumns[entity.SortByCreatedAt] {
		clause += fmt.Sprintf(", r.created_at %s", direction)
	}
	return clause + fmt.Sprintf(", r.id %s", direction)
}

func scanReviewDetail(row pgx.Row) (*entity.ReviewDetail, error) {
	var (
		detail    entity.ReviewDetail
		sentiment *string
	)
	err := row.Scan(
		&detail.ID,
		&detail.UserID,
		&detail.MovieName,
		&detail.Rating,
		&detail.ReviewText,
		&sentiment,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.AuthorEmail,
	)
	if err != nil {
		return nil, err
	}
	detail.Sentiment = sentimentFromColumn(sentiment)
	return &detail, nil
}

func sentimentArg(s entity.Sentiment) *string {
	if s == entity.SentimentUnset {
		return nil
	}
	v := string(s)
	return &v
}

func sentimentFromColumn(s *string) entity.Sentiment {
	if s == nil {
		return entity.SentimentUnset
	}
	return entity.Sentiment(*s)
}
