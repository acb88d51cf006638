package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"filmorate/proj/internal/lib/validation"
	"filmorate/proj/internal/services/films"
	"filmorate/proj/internal/services/refdata"
	"filmorate/proj/internal/services/users"
	"filmorate/proj/internal/storage"
)

const defaultPopularCount = 10

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func (app *Application) extractIDParam(w http.ResponseWriter, r *http.Request, param string) (id int, extracted bool) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		app.Http.BadRequest(w, r, fmt.Sprintf("invalid %s parameter", param))
		return 0, false
	}
	if id < 1 {
		app.Http.BadRequest(w, r, fmt.Sprintf("%s must be greater than zero", param))
		return 0, false
	}
	return id, true
}

type popularQuery struct {
	Count int `schema:"count"`
}

// extractPopularCount reads the count query param; absent or
// non-positive values fall back to the default of 10.
func (app *Application) extractPopularCount(r *http.Request) int {
	var q popularQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil || q.Count < 1 {
		return defaultPopularCount
	}
	return q.Count
}

// handleServiceError maps the error taxonomy to statuses: validation
// failures and integrity violations are 400, missing references are
// 404, everything else is a 500 with detail kept out of the response.
func (app *Application) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		app.Http.BadRequest(w, r, validationErr.Message)
	case errors.Is(err, films.ErrFilmNotFound),
		errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, refdata.ErrGenreNotFound),
		errors.Is(err, refdata.ErrMpaNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, storage.ErrConflict):
		app.Http.BadRequest(w, r, "data integrity violation")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	src := http.MaxBytesReader(w, r.Body, int64(maxBytes))
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}
