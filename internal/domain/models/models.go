package models

import (
	"filmorate/proj/internal/domain/fields"
)

type Film struct {
	ID          int         `json:"id"`                    // Unique integer ID, assigned on creation
	Name        string      `json:"name"`                  // Film title
	Description string      `json:"description,omitempty"` // Optional, at most 200 characters
	ReleaseDate fields.Date `json:"releaseDate"`           // Must not precede 1895-12-28
	Duration    int         `json:"duration"`              // Runtime in minutes, positive
	Mpa         MpaRating   `json:"mpa"`                   // Age rating, must reference an existing row
	Genres      []Genre     `json:"genres"`                // Zero or more, duplicates collapse by id
}

type User struct {
	ID       int         `json:"id"`       // Unique integer ID, assigned on creation
	Email    string      `json:"email"`    // Non-empty, contains '@'
	Login    string      `json:"login"`    // Non-empty, no whitespace
	Name     string      `json:"name"`     // Display name, defaults to login when blank
	Birthday fields.Date `json:"birthday"` // Must not be in the future
}

// Genre and MpaRating are immutable reference data; only the id matters
// for identity, the name travels along for display.

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MpaRating struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
