package response

import (
	"time"

	"movie-review/internal/data/entity"
)

// AuthorResponse is the public part of a user shown next to a review.
type AuthorResponse struct {
	Email string `json:"email"`
}

type ReviewResponse struct {
	ID         string         `json:"id"`
	MovieName  string         `json:"movieName"`
	Rating     int            `json:"rating"`
	ReviewText string         `json:"reviewText"`
	Sentiment  *string        `json:"sentiment"`
	UserID     string         `json:"userId"`
	Author     AuthorResponse `json:"author"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func ReviewToResponse(review *entity.ReviewDetail) ReviewResponse {
	var sentiment *string
	if review.Sentiment != entity.SentimentUnset {
		s := string(review.Sentiment)
		sentiment = &s
	}

	return ReviewResponse{
		ID:         review.ID.String(),
		MovieName:  review.MovieName,
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
		Sentiment:  sentiment,
		UserID:     review.UserID.String(),
		Author:     AuthorResponse{Email: review.AuthorEmail},
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.ReviewDetail) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewToResponse(r))
	}
	return out
}
