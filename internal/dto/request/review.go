package request

// Rating is a pointer so a missing value and 0 are told apart by required
// and min respectively.
type CreateReviewRequest struct {
	MovieName  string `json:"movieName" validate:"required,min=2"`
	Rating     *int   `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" validate:"required,min=10"`
}

// UpdateReviewRequest requires rating and reviewText on every call while
// movieName stays optional.
type UpdateReviewRequest struct {
	MovieName  *string `json:"movieName,omitempty" validate:"omitempty,min=2"`
	Rating     *int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText *string `json:"reviewText" validate:"required,min=10"`
}

// ListReviewsQuery carries the raw query string values; the service
// parses and validates them.
type ListReviewsQuery struct {
	Rating    string
	SortBy    string
	SortOrder string
}
