package entity

import (
	"github.com/google/uuid"
)

type Sentiment string

const (
	SentimentUnset    Sentiment = ""
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Review is owned by the user in UserID, which never changes after insert.
type Review struct {
	Base
	UserID     uuid.UUID `db:"user_id"`
	MovieName  string    `db:"movie_name"`
	Rating     int       `db:"rating"` // 1-5
	ReviewText string    `db:"review_text"`
	Sentiment  Sentiment `db:"sentiment"`
}

// ReviewDetail is a review joined with its author's public profile.
type ReviewDetail struct {
	Review
	AuthorEmail string `db:"email"`
}

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByRating    SortField = "rating"
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ReviewFilter selects and orders the review listing. A nil Rating means all.
type ReviewFilter struct {
	Rating    *int
	SortBy    SortField
	SortOrder SortOrder
}
