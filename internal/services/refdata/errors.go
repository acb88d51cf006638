package refdata

import "errors"

var (
	ErrGenreNotFound = errors.New("genre not found")
	ErrMpaNotFound   = errors.New("mpa rating not found")
)
