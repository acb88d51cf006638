package refdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

// Storage is the read-mostly lookup over the fixed genre and MPA-rating
// vocabularies. No mutation path exists for reference data.
type Storage interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetGenre(ctx context.Context, id int) (*models.Genre, error)
	ListMpa(ctx context.Context) ([]models.MpaRating, error)
	GetMpa(ctx context.Context, id int) (*models.MpaRating, error)
}

type RefDataService struct {
	log     *slog.Logger
	storage Storage
}

func New(log *slog.Logger, storage Storage) *RefDataService {
	return &RefDataService{
		log:     log,
		storage: storage,
	}
}

func (s *RefDataService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	const op = "refdata.RefDataService.ListGenres"
	genres, err := s.storage.ListGenres(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return genres, nil
}

func (s *RefDataService) GetGenre(ctx context.Context, id int) (*models.Genre, error) {
	const op = "refdata.RefDataService.GetGenre"
	log := s.log.With("op", op, "id", id)
	genre, err := s.storage.GetGenre(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return nil, fmt.Errorf("%w with id = %d", ErrGenreNotFound, id)
		}
		log.Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *RefDataService) ListMpa(ctx context.Context) ([]models.MpaRating, error) {
	const op = "refdata.RefDataService.ListMpa"
	mpa, err := s.storage.ListMpa(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return mpa, nil
}

func (s *RefDataService) GetMpa(ctx context.Context, id int) (*models.MpaRating, error) {
	const op = "refdata.RefDataService.GetMpa"
	log := s.log.With("op", op, "id", id)
	rating, err := s.storage.GetMpa(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("mpa rating not found")
			return nil, fmt.Errorf("%w with id = %d", ErrMpaNotFound, id)
		}
		log.Error(err.Error())
		return nil, err
	}
	return rating, nil
}
