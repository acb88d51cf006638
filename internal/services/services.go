package services

import (
	"log/slog"

	"filmorate/proj/internal/cache"
	"filmorate/proj/internal/services/films"
	"filmorate/proj/internal/services/refdata"
	"filmorate/proj/internal/services/users"
)

// Storage is everything the services need from a storage backend. Both
// the in-memory and the Postgres implementations satisfy it; services
// never depend on a concrete backend.
type Storage interface {
	films.Storage
	films.RefData
	users.Storage
	refdata.Storage
}

type Services struct {
	Films   *films.FilmService
	Users   *users.UserService
	RefData *refdata.RefDataService
}

func New(log *slog.Logger, storage Storage, cache *cache.Cache, tasks films.TaskExecutor) *Services {
	usersService := users.New(log, storage)
	return &Services{
		Films:   films.New(log, storage, storage, usersService, cache, tasks),
		Users:   usersService,
		RefData: refdata.New(log, storage),
	}
}
