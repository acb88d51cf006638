package main

import (
	"net/http"

	"filmorate/proj/internal/domain/models"
)

func (app *Application) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.services.Users.List(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"users": users}, "")
}

func (app *Application) createUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := app.readJSON(w, r, &user); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	created, err := app.services.Users.Create(r.Context(), &user)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"user": created}, "")
}

func (app *Application) updateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := app.readJSON(w, r, &user); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	updated, err := app.services.Users.Update(r.Context(), &user)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": updated}, "")
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	user, err := app.services.Users.GetUser(r.Context(), id)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.services.Users.Delete(r.Context(), id); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

func (app *Application) addFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := app.extractIDParam(w, r, "friendId")
	if !ok {
		return
	}
	if err := app.services.Users.AddFriend(r.Context(), userID, friendID); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "")
}

func (app *Application) removeFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := app.extractIDParam(w, r, "friendId")
	if !ok {
		return
	}
	if err := app.services.Users.RemoveFriend(r.Context(), userID, friendID); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "")
}

func (app *Application) getFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	friends, err := app.services.Users.Friends(r.Context(), userID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"users": friends}, "")
}

func (app *Application) getCommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	otherID, ok := app.extractIDParam(w, r, "otherId")
	if !ok {
		return
	}
	common, err := app.services.Users.CommonFriends(r.Context(), userID, otherID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"users": common}, "")
}
