package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

func (db *PostgresDB) ListGenres(ctx context.Context) ([]models.Genre, error) {
	rows, _ := db.Conn.Query(ctx, "SELECT id, name FROM genres ORDER BY id")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Genre])
}

func (db *PostgresDB) GetGenre(ctx context.Context, id int) (*models.Genre, error) {
	rows, _ := db.Conn.Query(ctx, "SELECT id, name FROM genres WHERE id = $1", id)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &genre, nil
}

func (db *PostgresDB) GenresByIDs(ctx context.Context, ids []int) ([]models.Genre, error) {
	rows, _ := db.Conn.Query(ctx, "SELECT id, name FROM genres WHERE id = ANY($1) ORDER BY id", ids)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Genre])
}

func (db *PostgresDB) ListMpa(ctx context.Context) ([]models.MpaRating, error) {
	rows, _ := db.Conn.Query(ctx, "SELECT id, name FROM mpa_ratings ORDER BY id")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.MpaRating])
}

func (db *PostgresDB) GetMpa(ctx context.Context, id int) (*models.MpaRating, error) {
	rows, _ := db.Conn.Query(ctx, "SELECT id, name FROM mpa_ratings WHERE id = $1", id)
	rating, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.MpaRating])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &rating, nil
}
