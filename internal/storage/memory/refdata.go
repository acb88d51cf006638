package memory

import (
	"context"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

func (s *Storage) ListGenres(_ context.Context) ([]models.Genre, error) {
	genres := make([]models.Genre, len(s.genres))
	copy(genres, s.genres)
	return genres, nil
}

func (s *Storage) GetGenre(_ context.Context, id int) (*models.Genre, error) {
	genre, ok := s.genreByID(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &genre, nil
}

// GenresByIDs returns the genres that exist; the result is shorter than
// the input when some ids are unknown, the caller diffs to find which.
func (s *Storage) GenresByIDs(_ context.Context, ids []int) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(ids))
	for _, id := range ids {
		if genre, ok := s.genreByID(id); ok {
			genres = append(genres, genre)
		}
	}
	return genres, nil
}

func (s *Storage) ListMpa(_ context.Context) ([]models.MpaRating, error) {
	mpa := make([]models.MpaRating, len(s.mpa))
	copy(mpa, s.mpa)
	return mpa, nil
}

func (s *Storage) GetMpa(_ context.Context, id int) (*models.MpaRating, error) {
	rating, ok := s.mpaByID(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &rating, nil
}
