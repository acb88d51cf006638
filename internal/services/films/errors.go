package films

import (
	"errors"

	"filmorate/proj/internal/services/refdata"
)

var (
	ErrFilmNotFound = errors.New("film not found")

	// Reference-data lookups fail with the refdata sentinels so the
	// HTTP layer maps them the same way regardless of the entry point.
	ErrMpaNotFound   = refdata.ErrMpaNotFound
	ErrGenreNotFound = refdata.ErrGenreNotFound
)
