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

const userColumns = `id, email, login, name, birthday`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var birthday time.Time
	err := row.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &birthday)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	user.Birthday = fields.Date{Time: birthday}
	return &user, nil
}

func (db *PostgresDB) collectUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := db.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (db *PostgresDB) GetUser(ctx context.Context, id int) (*models.User, error) {
	return scanUser(db.Conn.QueryRow(
		ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1",
		id,
	))
}

func (db *PostgresDB) InsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	created := *user
	err := db.Conn.QueryRow(
		ctx,
		`INSERT INTO users (email, login, name, birthday) VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday.Time,
	).Scan(&created.ID)
	if err != nil {
		return nil, constraintErr(err)
	}
	return &created, nil
}

func (db *PostgresDB) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	tag, err := db.Conn.Exec(
		ctx,
		`UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5`,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday.Time,
		user.ID,
	)
	if err != nil {
		return nil, constraintErr(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	updated := *user
	return &updated, nil
}

func (db *PostgresDB) ListUsers(ctx context.Context) ([]models.User, error) {
	return db.collectUsers(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
}

// DeleteUser removes the user row; likes and friendship edges in both
// directions go with it through ON DELETE CASCADE.
func (db *PostgresDB) DeleteUser(ctx context.Context, id int) error {
	tag, err := db.Conn.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AddFriend stores the directional edge userID -> friendID; the
// composite primary key makes re-adding a no-op.
func (db *PostgresDB) AddFriend(ctx context.Context, userID, friendID int) error {
	_, err := db.Conn.Exec(
		ctx,
		"INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		userID,
		friendID,
	)
	if err != nil {
		return constraintErr(err)
	}
	return nil
}

func (db *PostgresDB) RemoveFriend(ctx context.Context, userID, friendID int) error {
	_, err := db.Conn.Exec(
		ctx,
		"DELETE FROM friendships WHERE user_id = $1 AND friend_id = $2",
		userID,
		friendID,
	)
	return err
}

func (db *PostgresDB) Friends(ctx context.Context, userID int) ([]models.User, error) {
	return db.collectUsers(
		ctx,
		`SELECT u.id, u.email, u.login, u.name, u.birthday FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.id`,
		userID,
	)
}

func (db *PostgresDB) CommonFriends(ctx context.Context, userID, otherID int) ([]models.User, error) {
	return db.collectUsers(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id IN (
			SELECT friend_id FROM friendships WHERE user_id = $1
			INTERSECT
			SELECT friend_id FROM friendships WHERE user_id = $2
		) ORDER BY id`,
		userID,
		otherID,
	)
}
