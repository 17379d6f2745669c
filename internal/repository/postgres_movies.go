package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

const movieColumns = `id, title, description, poster_url, genres, languages, duration_minutes, release_date`

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), %s
		FROM movies
		WHERE (to_tsvector('english', title) @@ plainto_tsquery('english', $1)
			OR to_tsvector('english', description) @@ plainto_tsquery('english', $1)
			OR $1 = '')
		AND ($2 = '' OR EXISTS (SELECT 1 FROM unnest(genres) g WHERE lower(g) = lower($2)))
		ORDER BY %s %s, id ASC
		LIMIT $3 OFFSET $4`, movieColumns, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Genre, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterUrl,
			&movie.Genres,
			&movie.Languages,
			&movie.Duration,
			&movie.ReleaseDate,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterUrl,
		&movie.Genres,
		&movie.Languages,
		&movie.Duration,
		&movie.ReleaseDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}
