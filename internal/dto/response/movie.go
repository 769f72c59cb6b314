package response

import (
	"strconv"

	"movie-review/pkg/omdb"
)

type MovieSummaryResponse struct {
	IMDbID string `json:"imdbId"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Type   string `json:"type"`
	Poster string `json:"poster,omitempty"`
}

type MovieSearchResponse struct {
	Results      []MovieSummaryResponse `json:"results"`
	TotalResults int                    `json:"totalResults"`
}

type MovieDetailResponse struct {
	MovieSummaryResponse
	Rated      string `json:"rated,omitempty"`
	Released   string `json:"released,omitempty"`
	Runtime    string `json:"runtime,omitempty"`
	Genre      string `json:"genre,omitempty"`
	Director   string `json:"director,omitempty"`
	Writer     string `json:"writer,omitempty"`
	Actors     string `json:"actors,omitempty"`
	Plot       string `json:"plot,omitempty"`
	Language   string `json:"language,omitempty"`
	Country    string `json:"country,omitempty"`
	IMDbRating string `json:"imdbRating,omitempty"`
}

// OMDb uses "N/A" for missing values
func orEmpty(v string) string {
	if v == "N/A" {
		return ""
	}
	return v
}

func SearchToResponse(result *omdb.SearchResult) MovieSearchResponse {
	resp := MovieSearchResponse{Results: make([]MovieSummaryResponse, 0, len(result.Search))}
	for _, item := range result.Search {
		resp.Results = append(resp.Results, MovieSummaryResponse{
			IMDbID: item.IMDbID,
			Title:  item.Title,
			Year:   item.Year,
			Type:   item.Type,
			Poster: orEmpty(item.Poster),
		})
	}

	if total, err := strconv.Atoi(result.TotalResults); err == nil {
		resp.TotalResults = total
	}
	return resp
}

func MovieToDetailResponse(movie *omdb.Movie) MovieDetailResponse {
	return MovieDetailResponse{
		MovieSummaryResponse: MovieSummaryResponse{
			IMDbID: movie.IMDbID,
			Title:  movie.Title,
			Year:   movie.Year,
			Type:   movie.Type,
			Poster: orEmpty(movie.Poster),
		},
		Rated:      orEmpty(movie.Rated),
		Released:   orEmpty(movie.Released),
		Runtime:    orEmpty(movie.Runtime),
		Genre:      orEmpty(movie.Genre),
		Director:   orEmpty(movie.Director),
		Writer:     orEmpty(movie.Writer),
		Actors:     orEmpty(movie.Actors),
		Plot:       orEmpty(movie.Plot),
		Language:   orEmpty(movie.Language),
		Country:    orEmpty(movie.Country),
		IMDbRating: orEmpty(movie.IMDbRating),
	}
}
