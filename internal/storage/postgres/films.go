package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

const filmColumns = `f.id, f.name, COALESCE(f.description, ''), f.release_date, f.duration, m.id, m.name`

func scanFilm(row pgx.Row) (*models.Film, error) {
	var film models.Film
	var releaseDate time.Time
	err := row.Scan(
		&film.ID,
		&film.Name,
		&film.Description,
		&releaseDate,
		&film.Duration,
		&film.Mpa.ID,
		&film.Mpa.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	film.ReleaseDate = fields.Date{Time: releaseDate}
	film.Genres = []models.Genre{}
	return &film, nil
}

func (db *PostgresDB) collectFilms(ctx context.Context, query string, args ...any) ([]models.Film, error) {
	rows, err := db.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	films := []models.Film{}
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		films = append(films, *film)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := db.attachGenres(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// attachGenres fills in the genre sets for every film in one query over
// the film_genres junction table, ordered by genre id.
func (db *PostgresDB) attachGenres(ctx context.Context, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}
	ids := make([]int, len(films))
	byID := make(map[int]*models.Film, len(films))
	for i := range films {
		ids[i] = films[i].ID
		byID[films[i].ID] = &films[i]
	}
	rows, err := db.Conn.Query(
		ctx,
		`SELECT fg.film_id, g.id, g.name FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id = ANY($1)
		ORDER BY g.id`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var filmID int
		var genre models.Genre
		if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return err
		}
		film := byID[filmID]
		film.Genres = append(film.Genres, genre)
	}
	return rows.Err()
}

func (db *PostgresDB) GetFilm(ctx context.Context, id int) (*models.Film, error) {
	film, err := scanFilm(db.Conn.QueryRow(
		ctx,
		`SELECT `+filmColumns+` FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		WHERE f.id = $1`,
		id,
	))
	if err != nil {
		return nil, err
	}
	films := []models.Film{*film}
	if err := db.attachGenres(ctx, films); err != nil {
		return nil, err
	}
	return &films[0], nil
}

func (db *PostgresDB) InsertFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)
	var id int
	err = tx.QueryRow(
		ctx,
		`INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5) RETURNING id`,
		film.Name,
		film.Description,
		film.ReleaseDate.Time,
		film.Duration,
		film.Mpa.ID,
	).Scan(&id)
	if err != nil {
		return nil, constraintErr(err)
	}
	if err := insertFilmGenres(ctx, tx, id, film.Genres); err != nil {
		return nil, constraintErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return db.GetFilm(ctx, id)
}

func (db *PostgresDB) UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)
	tag, err := tx.Exec(
		ctx,
		`UPDATE films SET name = $1, description = NULLIF($2, ''), release_date = $3, duration = $4, mpa_id = $5
		WHERE id = $6`,
		film.Name,
		film.Description,
		film.ReleaseDate.Time,
		film.Duration,
		film.Mpa.ID,
		film.ID,
	)
	if err != nil {
		return nil, constraintErr(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	if _, err := tx.Exec(ctx, "DELETE FROM film_genres WHERE film_id = $1", film.ID); err != nil {
		return nil, err
	}
	if err := insertFilmGenres(ctx, tx, film.ID, film.Genres); err != nil {
		return nil, constraintErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return db.GetFilm(ctx, film.ID)
}

func insertFilmGenres(ctx context.Context, tx pgx.Tx, filmID int, genres []models.Genre) error {
	for _, genre := range genres {
		_, err := tx.Exec(
			ctx,
			"INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			filmID,
			genre.ID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (db *PostgresDB) ListFilms(ctx context.Context) ([]models.Film, error) {
	return db.collectFilms(
		ctx,
		`SELECT `+filmColumns+` FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		ORDER BY f.id`,
	)
}

// DeleteFilm removes the film row; likes and film_genres rows go with
// it through ON DELETE CASCADE.
func (db *PostgresDB) DeleteFilm(ctx context.Context, id int) error {
	tag, err := db.Conn.Exec(ctx, "DELETE FROM films WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AddLike relies on the composite primary key of likes for idempotency:
// inserting the same pair twice is a no-op.
func (db *PostgresDB) AddLike(ctx context.Context, filmID, userID int) error {
	_, err := db.Conn.Exec(
		ctx,
		"INSERT INTO likes (film_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		filmID,
		userID,
	)
	if err != nil {
		return constraintErr(err)
	}
	return nil
}

func (db *PostgresDB) RemoveLike(ctx context.Context, filmID, userID int) error {
	_, err := db.Conn.Exec(
		ctx,
		"DELETE FROM likes WHERE film_id = $1 AND user_id = $2",
		filmID,
		userID,
	)
	return err
}

func (db *PostgresDB) PopularFilms(ctx context.Context, count int) ([]models.Film, error) {
	return db.collectFilms(
		ctx,
		`SELECT `+filmColumns+` FROM films f
		JOIN mpa_ratings m ON m.id = f.mpa_id
		LEFT JOIN likes l ON l.film_id = f.id
		GROUP BY f.id, f.name, f.description, f.release_date, f.duration, m.id, m.name
		ORDER BY COUNT(l.user_id) DESC, f.id ASC
		LIMIT $1`,
		count,
	)
}
