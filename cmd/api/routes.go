package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Get("/healthcheck", app.healthcheck)
	router.Route("/films", func(r chi.Router) {
		r.Get("/", app.getFilms)
		r.Post("/", app.createFilm)
		r.Put("/", app.updateFilm)
		r.Get("/popular", app.getPopularFilms)
		r.Get("/{id}", app.getFilm)
		r.Delete("/{id}", app.deleteFilm)
		r.Put("/{id}/like/{userId}", app.addLike)
		r.Delete("/{id}/like/{userId}", app.removeLike)
	})
	router.Route("/users", func(r chi.Router) {
		r.Get("/", app.getUsers)
		r.Post("/", app.createUser)
		r.Put("/", app.updateUser)
		r.Get("/{id}", app.getUser)
		r.Delete("/{id}", app.deleteUser)
		r.Get("/{id}/friends", app.getFriends)
		r.Get("/{id}/friends/common/{otherId}", app.getCommonFriends)
		r.Put("/{id}/friends/{friendId}", app.addFriend)
		r.Delete("/{id}/friends/{friendId}", app.removeFriend)
	})
	router.Route("/genres", func(r chi.Router) {
		r.Get("/", app.getGenres)
		r.Get("/{id}", app.getGenre)
	})
	router.Route("/mpa", func(r chi.Router) {
		r.Get("/", app.getMpaRatings)
		r.Get("/{id}", app.getMpaRating)
	})
	return router
}
