package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Description string
	PosterUrl   string
	Genres      []string
	Languages   []string
	Duration    int
	ReleaseDate time.Time
}

type MovieFilters struct {
	Pagination
	Term  string
	Genre string
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
}
