package main

import (
	"net/http"

	"filmorate/proj/internal/domain/models"
)

// normalizeFilmInput applies the historical adapter defaults: an absent
// genre set becomes empty, an absent MPA rating becomes G (id=1). The
// core services only ever see fully-specified films.
func normalizeFilmInput(film *models.Film) {
	if film.Genres == nil {
		film.Genres = []models.Genre{}
	}
	if film.Mpa.ID == 0 && film.Mpa.Name == "" {
		film.Mpa = models.MpaRating{ID: 1, Name: "G"}
	}
}

func (app *Application) getFilms(w http.ResponseWriter, r *http.Request) {
	films, err := app.services.Films.List(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"films": films}, "")
}

func (app *Application) createFilm(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := app.readJSON(w, r, &film); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	normalizeFilmInput(&film)
	created, err := app.services.Films.Create(r.Context(), &film)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"film": created}, "")
}

func (app *Application) updateFilm(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := app.readJSON(w, r, &film); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	normalizeFilmInput(&film)
	updated, err := app.services.Films.Update(r.Context(), &film)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"film": updated}, "")
}

func (app *Application) getFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	film, err := app.services.Films.Get(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"film": film}, "")
}

func (app *Application) deleteFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.services.Films.Delete(r.Context(), id); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

func (app *Application) addLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	if err := app.services.Films.AddLike(r.Context(), filmID, userID); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "")
}

func (app *Application) removeLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	userID, ok := app.extractIDParam(w, r, "userId")
	if !ok {
		return
	}
	if err := app.services.Films.RemoveLike(r.Context(), filmID, userID); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "")
}

func (app *Application) getPopularFilms(w http.ResponseWriter, r *http.Request) {
	count := app.extractPopularCount(r)
	films, err := app.services.Films.Popular(r.Context(), count)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"films": films}, "")
}
