package main

import "net/http"

func (app *Application) getGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := app.services.RefData.ListGenres(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"genres": genres}, "")
}

func (app *Application) getGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	genre, err := app.services.RefData.GetGenre(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "")
}

func (app *Application) getMpaRatings(w http.ResponseWriter, r *http.Request) {
	mpa, err := app.services.RefData.ListMpa(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"mpa": mpa}, "")
}

func (app *Application) getMpaRating(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	rating, err := app.services.RefData.GetMpa(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"mpa": rating}, "")
}
