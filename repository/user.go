package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"spendbook/backend/models"
)

// Users is the sqlite-backed UserRepository.
type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

func (r *Users) Create(ctx context.Context, u *models.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (user_id, username, hashed_password, is_active)
		VALUES (?, ?, ?, ?)
	`, u.ID, u.Username, u.HashedPassword, u.IsActive)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return tx.Commit()
}

func (r *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.get(ctx, `
		SELECT user_id, username, hashed_password, is_active FROM users WHERE user_id = ?
	`, id)
}

func (r *Users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.get(ctx, `
		SELECT user_id, username, hashed_password, is_active FROM users WHERE username = ?
	`, username)
}

func (r *Users) get(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.HashedPassword, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
