package memory

import (
	"context"
	"sort"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

// normalizeFilm deduplicates genres by id, resolves reference-data names
// from the seeded vocabularies and orders genres by ascending id, so the
// stored value matches what the relational layout would return.
func (s *Storage) normalizeFilm(film models.Film) models.Film {
	if m, ok := s.mpaByID(film.Mpa.ID); ok {
		film.Mpa = m
	}
	seen := make(map[int]struct{}, len(film.Genres))
	genres := make([]models.Genre, 0, len(film.Genres))
	for _, g := range film.Genres {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		if resolved, ok := s.genreByID(g.ID); ok {
			g = resolved
		}
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	film.Genres = genres
	return film
}

func copyFilm(film models.Film) models.Film {
	genres := make([]models.Genre, len(film.Genres))
	copy(genres, film.Genres)
	film.Genres = genres
	return film
}

func (s *Storage) GetFilm(_ context.Context, id int) (*models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	film, ok := s.films[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	film = copyFilm(film)
	return &film, nil
}

func (s *Storage) InsertFilm(_ context.Context, film *models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextFilmID++
	stored := s.normalizeFilm(copyFilm(*film))
	stored.ID = s.nextFilmID
	s.films[stored.ID] = stored
	stored = copyFilm(stored)
	return &stored, nil
}

func (s *Storage) UpdateFilm(_ context.Context, film *models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.films[film.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	stored := s.normalizeFilm(copyFilm(*film))
	s.films[stored.ID] = stored
	stored = copyFilm(stored)
	return &stored, nil
}

func (s *Storage) ListFilms(_ context.Context) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	films := make([]models.Film, 0, len(s.films))
	for _, film := range s.films {
		films = append(films, copyFilm(film))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (s *Storage) DeleteFilm(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.films[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.films, id)
	delete(s.likes, id)
	return nil
}

func (s *Storage) AddLike(_ context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.likes[filmID]
	if !ok {
		set = make(map[int]struct{})
		s.likes[filmID] = set
	}
	set[userID] = struct{}{}
	return nil
}

func (s *Storage) RemoveLike(_ context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.likes[filmID], userID)
	return nil
}

// PopularFilms ranks by descending like count; ties break on ascending
// film id so the order is stable across calls.
func (s *Storage) PopularFilms(_ context.Context, count int) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	films := make([]models.Film, 0, len(s.films))
	for _, film := range s.films {
		films = append(films, copyFilm(film))
	}
	sort.Slice(films, func(i, j int) bool {
		li, lj := len(s.likes[films[i].ID]), len(s.likes[films[j].ID])
		if li != lj {
			return li > lj
		}
		return films[i].ID < films[j].ID
	})
	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}
