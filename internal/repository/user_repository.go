// Package repository implements the api store interfaces on Postgres.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"libtrack/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user entity.User, passwordHash string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.Username, user.Email, passwordHash, user.Role).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, entity.ErrDuplicate
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) ByUsername(ctx context.Context, username string) (entity.User, string, error) {
	var (
		user entity.User
		hash string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password, role
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.Email, &hash, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, "", entity.ErrNotFound
	}
	if err != nil {
		return entity.User{}, "", fmt.Errorf("select user: %w", err)
	}
	return user, hash, nil
}

func (r *UserRepository) All(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, email, role
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Delete refuses while the user still holds borrowed books: the cascade on
// borrow_records would otherwise destroy active records without giving the
// copies back. Returned history rows are cascaded away with the account.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer tx.Rollback()

	var active bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM borrow_records
			WHERE user_id = $1 AND return_date IS NULL
		)
	`, id).Scan(&active)
	if err != nil {
		return fmt.Errorf("check active loans: %w", err)
	}
	if active {
		return entity.ErrActiveLoans
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return tx.Commit()
}
