package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	const query = `
SELECT id, name, major, created_at
FROM users
ORDER BY id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Name, &user.Major, &user.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id int) (User, error) {
	const query = `
SELECT id, name, major, created_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Major, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) Create(ctx context.Context, name, major string) (User, error) {
	const query = `
INSERT INTO users (name, major, created_at)
VALUES ($1, $2, now())
RETURNING id, name, major, created_at`
	var user User
	if err := r.DB.QueryRowContext(ctx, query, name, major).Scan(&user.ID, &user.Name, &user.Major, &user.CreatedAt); err != nil {
		return User{}, err
	}
	return user, nil
}
