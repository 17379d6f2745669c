package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params, err := parseMoviesParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request) {
	movieId, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || movieId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("movie ID must be a positive integer"))
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.MovieDetailResponse{
		MovieSummary: toMovieSummary(movie, today()),
		Description:  movie.Description,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func parseMoviesParams(r *http.Request) (api.GetMoviesParams, error) {
	var (
		params api.GetMoviesParams
		err    error
	)

	params.Term = queryString(r, "term")
	params.Genre = queryString(r, "genre")
	params.Sort = queryString(r, "sort")

	params.Page, err = queryInt(r, "page")
	if err != nil {
		return params, err
	}

	params.PageSize, err = queryInt(r, "pageSize")
	if err != nil {
		return params, err
	}

	return params, nil
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Pagination: domain.Pagination{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
			Sort:     DefaultSort,
		},
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}
	if params.Genre != nil {
		filters.Genre = *params.Genre
	}

	return filters
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))
	now := today()

	for i, movie := range movies {
		summaries[i] = toMovieSummary(movie, now)
	}

	return summaries
}

func toMovieSummary(movie *domain.Movie, today time.Time) api.MovieSummary {
	if movie == nil {
		return api.MovieSummary{}
	}

	summary := api.MovieSummary{
		Id:          movie.ID,
		Title:       movie.Title,
		PosterUrl:   movie.PosterUrl,
		Genres:      movie.Genres,
		Languages:   movie.Languages,
		Duration:    movie.Duration,
		ReleaseDate: types.Date{Time: movie.ReleaseDate},
		Status:      api.NOWSHOWING,
	}

	if movie.ReleaseDate.After(today) {
		summary.Status = api.COMINGSOON
	}

	return summary
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
