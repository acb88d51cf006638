package films_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/lib/validation"
	"filmorate/proj/internal/services/films"
	"filmorate/proj/internal/services/users"
	"filmorate/proj/internal/storage/memory"
)

func newService(t *testing.T) (*films.FilmService, *memory.Storage, *users.UserService) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	storage := memory.New()
	usersService := users.New(log, storage)
	return films.New(log, storage, storage, usersService, nil, nil), storage, usersService
}

func validFilm() *models.Film {
	return &models.Film{
		Name:        "The Lumiere Reel",
		Description: "First public screening",
		ReleaseDate: fields.NewDate(2000, time.January, 1),
		Duration:    90,
		Mpa:         models.MpaRating{ID: 1},
		Genres:      []models.Genre{},
	}
}

func validUser() *models.User {
	return &models.User{
		Email:    "ann@example.com",
		Login:    "ann",
		Birthday: fields.NewDate(1990, time.January, 1),
	}
}

func TestCreateValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(f *models.Film) *models.Film
		message string
	}{
		{"nil film", func(f *models.Film) *models.Film { return nil }, "film cannot be null"},
		{"blank name", func(f *models.Film) *models.Film { f.Name = "   "; return f }, "name cannot be blank"},
		{
			"long description",
			func(f *models.Film) *models.Film { f.Description = strings.Repeat("д", 201); return f },
			"description must be at most 200 characters",
		},
		{
			"missing release date",
			func(f *models.Film) *models.Film { f.ReleaseDate = fields.Date{}; return f },
			"release date cannot be null",
		},
		{
			"release date before cinema",
			func(f *models.Film) *models.Film { f.ReleaseDate = fields.NewDate(1895, time.December, 27); return f },
			"release date cannot be before 1895-12-28",
		},
		{"zero duration", func(f *models.Film) *models.Film { f.Duration = 0; return f }, "duration must be a positive number"},
		{"negative duration", func(f *models.Film) *models.Film { f.Duration = -5; return f }, "duration must be a positive number"},
		{"missing mpa", func(f *models.Film) *models.Film { f.Mpa = models.MpaRating{}; return f }, "mpa rating cannot be null"},
		{"nil genres", func(f *models.Film) *models.Film { f.Genres = nil; return f }, "genres cannot be null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, storage, _ := newService(t)
			_, err := service.Create(context.Background(), tc.mutate(validFilm()))
			var validationErr *validation.Error
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.message, validationErr.Message)

			// a failed validation must not mutate the store
			stored, listErr := storage.ListFilms(context.Background())
			require.NoError(t, listErr)
			assert.Empty(t, stored)
		})
	}
}

func TestCreateAcceptsReleaseDateBoundary(t *testing.T) {
	service, _, _ := newService(t)
	film := validFilm()
	film.ReleaseDate = fields.NewDate(1895, time.December, 28)
	created, err := service.Create(context.Background(), film)
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestCreateDescriptionBoundary(t *testing.T) {
	service, _, _ := newService(t)
	film := validFilm()
	film.Description = strings.Repeat("д", 200)
	_, err := service.Create(context.Background(), film)
	assert.NoError(t, err)
}

func TestCreateUnknownMpa(t *testing.T) {
	service, storage, _ := newService(t)
	film := validFilm()
	film.Mpa = models.MpaRating{ID: 99}
	_, err := service.Create(context.Background(), film)
	require.ErrorIs(t, err, films.ErrMpaNotFound)
	assert.Contains(t, err.Error(), "id = 99")

	stored, listErr := storage.ListFilms(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, stored)
}

func TestCreateUnknownGenreNamesMissingID(t *testing.T) {
	service, _, _ := newService(t)
	film := validFilm()
	film.Genres = []models.Genre{{ID: 1}, {ID: 77}}
	_, err := service.Create(context.Background(), film)
	require.ErrorIs(t, err, films.ErrGenreNotFound)
	assert.Contains(t, err.Error(), "id = 77")
}

func TestUpdateRequiresExistingFilm(t *testing.T) {
	service, _, _ := newService(t)
	film := validFilm()
	film.ID = 123
	_, err := service.Update(context.Background(), film)
	assert.ErrorIs(t, err, films.ErrFilmNotFound)
}

func TestUpdateReplacesStoredValue(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()
	created, err := service.Create(ctx, validFilm())
	require.NoError(t, err)

	changed := validFilm()
	changed.ID = created.ID
	changed.Name = "Renamed"
	changed.Description = ""
	updated, err := service.Update(ctx, changed)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Empty(t, updated.Description)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestAddLikeChecksFilmThenUser(t *testing.T) {
	service, _, usersService := newService(t)
	ctx := context.Background()

	// neither exists: the film check fires first
	err := service.AddLike(ctx, 1, 1)
	assert.ErrorIs(t, err, films.ErrFilmNotFound)

	_, err = service.Create(ctx, validFilm())
	require.NoError(t, err)
	err = service.AddLike(ctx, 1, 1)
	assert.ErrorIs(t, err, users.ErrUserNotFound)

	_, err = usersService.Create(ctx, validUser())
	require.NoError(t, err)
	assert.NoError(t, service.AddLike(ctx, 1, 1))
}

func TestRemoveLikeIsIdempotent(t *testing.T) {
	service, _, usersService := newService(t)
	ctx := context.Background()
	_, err := service.Create(ctx, validFilm())
	require.NoError(t, err)
	_, err = usersService.Create(ctx, validUser())
	require.NoError(t, err)

	// removing a like that was never added is not an error
	assert.NoError(t, service.RemoveLike(ctx, 1, 1))
}

func TestPopularRanksByLikes(t *testing.T) {
	service, _, usersService := newService(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := service.Create(ctx, validFilm())
		require.NoError(t, err)
	}
	for _, login := range []string{"ann", "bob", "carol"} {
		user := validUser()
		user.Email = login + "@example.com"
		user.Login = login
		_, err := usersService.Create(ctx, user)
		require.NoError(t, err)
	}
	for userID := 1; userID <= 3; userID++ {
		require.NoError(t, service.AddLike(ctx, 2, userID))
	}

	popular, err := service.Popular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, 2, popular[0].ID)

	// double-liking changes nothing
	require.NoError(t, service.AddLike(ctx, 2, 1))
	again, err := service.Popular(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, popular, again)
}

func TestDeleteFilm(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()
	created, err := service.Create(ctx, validFilm())
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, created.ID))
	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, films.ErrFilmNotFound)

	assert.ErrorIs(t, service.Delete(ctx, created.ID), films.ErrFilmNotFound)
}
