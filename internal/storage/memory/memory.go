package memory

import (
	"sync"

	"filmorate/proj/internal/domain/models"
)

// Storage keeps the whole catalogue in process memory: entity maps keyed
// by id, relation sets for likes and friendship edges, and the seeded
// genre/MPA vocabularies. A single RWMutex guards every table, so each
// public operation is atomic and ids are never assigned twice.
type Storage struct {
	mu sync.RWMutex

	films      map[int]models.Film
	nextFilmID int
	likes      map[int]map[int]struct{} // film id -> set of user ids

	users      map[int]models.User
	nextUserID int
	friends    map[int]map[int]struct{} // user id -> outgoing friend ids

	genres []models.Genre
	mpa    []models.MpaRating
}

func New() *Storage {
	return &Storage{
		films:   make(map[int]models.Film),
		likes:   make(map[int]map[int]struct{}),
		users:   make(map[int]models.User),
		friends: make(map[int]map[int]struct{}),
		genres: []models.Genre{
			{ID: 1, Name: "Комедия"},
			{ID: 2, Name: "Драма"},
			{ID: 3, Name: "Мультфильм"},
			{ID: 4, Name: "Триллер"},
			{ID: 5, Name: "Документальный"},
			{ID: 6, Name: "Боевик"},
		},
		mpa: []models.MpaRating{
			{ID: 1, Name: "G"},
			{ID: 2, Name: "PG"},
			{ID: 3, Name: "PG-13"},
			{ID: 4, Name: "R"},
			{ID: 5, Name: "NC-17"},
		},
	}
}

func (s *Storage) genreByID(id int) (models.Genre, bool) {
	for _, g := range s.genres {
		if g.ID == id {
			return g, true
		}
	}
	return models.Genre{}, false
}

func (s *Storage) mpaByID(id int) (models.MpaRating, bool) {
	for _, m := range s.mpa {
		if m.ID == id {
			return m, true
		}
	}
	return models.MpaRating{}, false
}
