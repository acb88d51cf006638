package films

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"filmorate/proj/internal/cache"
	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/lib/validation"
	"filmorate/proj/internal/storage"
)

// The earliest date a film can be released: the first public film
// screening, 1895-12-28. The boundary itself is allowed.
var earliestReleaseDate = fields.NewDate(1895, time.December, 28)

const maxDescriptionLen = 200

type Storage interface {
	GetFilm(ctx context.Context, id int) (*models.Film, error)
	InsertFilm(ctx context.Context, film *models.Film) (*models.Film, error)
	UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error)
	ListFilms(ctx context.Context) ([]models.Film, error)
	DeleteFilm(ctx context.Context, id int) error
	AddLike(ctx context.Context, filmID, userID int) error
	RemoveLike(ctx context.Context, filmID, userID int) error
	PopularFilms(ctx context.Context, count int) ([]models.Film, error)
}

// RefData is the read-only lookup used to check that a film references
// existing MPA and genre rows.
type RefData interface {
	GetMpa(ctx context.Context, id int) (*models.MpaRating, error)
	GenresByIDs(ctx context.Context, ids []int) ([]models.Genre, error)
}

// UsersProvider resolves user ids for like operations.
type UsersProvider interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
}

type TaskExecutor interface {
	Add(task func())
}

type FilmService struct {
	log     *slog.Logger
	storage Storage
	refData RefData
	users   UsersProvider
	cache   *cache.Cache
	tasks   TaskExecutor
}

func New(log *slog.Logger, storage Storage, refData RefData, users UsersProvider, cache *cache.Cache, tasks TaskExecutor) *FilmService {
	return &FilmService{
		log:     log,
		storage: storage,
		refData: refData,
		users:   users,
		cache:   cache,
		tasks:   tasks,
	}
}

func (s *FilmService) List(ctx context.Context) ([]models.Film, error) {
	const op = "films.FilmService.List"
	films, err := s.storage.ListFilms(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return films, nil
}

func (s *FilmService) Get(ctx context.Context, id int) (*models.Film, error) {
	const op = "films.FilmService.Get"
	log := s.log.With("op", op, "id", id)
	film, err := s.storage.GetFilm(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("film not found")
			return nil, fmt.Errorf("%w with id = %d", ErrFilmNotFound, id)
		}
		log.Error(err.Error())
		return nil, err
	}
	return film, nil
}

func (s *FilmService) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	const op = "films.FilmService.Create"
	log := s.log.With("op", op)
	if err := s.validateFilm(ctx, film); err != nil {
		return nil, err
	}
	created, err := s.storage.InsertFilm(ctx, film)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	s.invalidatePopular()
	log.Info("film created", "id", created.ID)
	return created, nil
}

func (s *FilmService) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	const op = "films.FilmService.Update"
	log := s.log.With("op", op)
	if err := s.validateFilm(ctx, film); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, film.ID); err != nil {
		return nil, err
	}
	updated, err := s.storage.UpdateFilm(ctx, film)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w with id = %d", ErrFilmNotFound, film.ID)
		}
		log.Error(err.Error())
		return nil, err
	}
	s.invalidatePopular()
	return updated, nil
}

func (s *FilmService) Delete(ctx context.Context, id int) error {
	const op = "films.FilmService.Delete"
	log := s.log.With("op", op, "id", id)
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteFilm(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return err
	}
	s.invalidatePopular()
	return nil
}

// AddLike is an idempotent insert; the film is checked first, then the
// user, and either missing endpoint surfaces a not-found error.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID int) error {
	const op = "films.FilmService.AddLike"
	log := s.log.With("op", op, "film_id", filmID, "user_id", userID)
	if _, err := s.Get(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.storage.AddLike(ctx, filmID, userID); err != nil {
		log.Error(err.Error())
		return err
	}
	s.invalidatePopular()
	return nil
}

// RemoveLike never fails for a like that was not there; removing a
// non-member is a no-op.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int) error {
	const op = "films.FilmService.RemoveLike"
	log := s.log.With("op", op, "film_id", filmID, "user_id", userID)
	if _, err := s.Get(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.storage.RemoveLike(ctx, filmID, userID); err != nil {
		log.Error(err.Error())
		return err
	}
	s.invalidatePopular()
	return nil
}

func (s *FilmService) Popular(ctx context.Context, count int) ([]models.Film, error) {
	const op = "films.FilmService.Popular"
	log := s.log.With("op", op, "count", count)
	key := fmt.Sprintf("%s%d", cache.PopularFilmsPrefix, count)
	var films []models.Film
	if found, err := s.cache.GetJSON(ctx, key, &films); err != nil {
		log.Warn("cache read failed", "err", err.Error())
	} else if found {
		return films, nil
	}
	films, err := s.storage.PopularFilms(ctx, count)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, films); err != nil {
		log.Warn("cache write failed", "err", err.Error())
	}
	return films, nil
}

// Popularity rankings are cached per count; any film or like mutation
// drops the whole keyspace in the background.
func (s *FilmService) invalidatePopular() {
	if !s.cache.Enabled() {
		return
	}
	drop := func() {
		if err := s.cache.DeletePrefix(context.Background(), cache.PopularFilmsPrefix); err != nil {
			s.log.Warn("cache invalidation failed", "err", err.Error())
		}
	}
	if s.tasks != nil {
		s.tasks.Add(drop)
		return
	}
	drop()
}

// validateFilm applies the mutation contract in order, failing on the
// first violated rule and leaving storage untouched.
func (s *FilmService) validateFilm(ctx context.Context, film *models.Film) error {
	if film == nil {
		return validation.NewError("film", "film cannot be null")
	}
	if validation.IsBlank(film.Name) {
		return validation.NewError("name", "name cannot be blank")
	}
	if utf8.RuneCountInString(film.Description) > maxDescriptionLen {
		return validation.NewError("description", "description must be at most 200 characters")
	}
	if film.ReleaseDate.IsZero() {
		return validation.NewError("releaseDate", "release date cannot be null")
	}
	if film.ReleaseDate.Before(earliestReleaseDate) {
		return validation.NewError("releaseDate", "release date cannot be before 1895-12-28")
	}
	if film.Duration <= 0 {
		return validation.NewError("duration", "duration must be a positive number")
	}
	if film.Mpa.ID == 0 {
		return validation.NewError("mpa", "mpa rating cannot be null")
	}
	if _, err := s.refData.GetMpa(ctx, film.Mpa.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w with id = %d", ErrMpaNotFound, film.Mpa.ID)
		}
		return err
	}
	if film.Genres == nil {
		return validation.NewError("genres", "genres cannot be null")
	}
	return s.checkGenresExist(ctx, film.Genres)
}

func (s *FilmService) checkGenresExist(ctx context.Context, genres []models.Genre) error {
	seen := make(map[int]struct{}, len(genres))
	ids := make([]int, 0, len(genres))
	for _, g := range genres {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		ids = append(ids, g.ID)
	}
	existing, err := s.refData.GenresByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(existing) == len(ids) {
		return nil
	}
	existingIDs := make(map[int]struct{}, len(existing))
	for _, g := range existing {
		existingIDs[g.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := existingIDs[id]; !ok {
			return fmt.Errorf("%w with id = %d", ErrGenreNotFound, id)
		}
	}
	return nil
}
