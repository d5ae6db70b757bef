package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"spendbook/backend/models"
)

// Categories is the sqlite-backed CategoryRepository. Every mutation runs in
// its own transaction so a failed statement never leaks partial writes into
// later operations on the same connection.
type Categories struct {
	db *sql.DB
}

func NewCategories(db *sql.DB) *Categories {
	return &Categories{db: db}
}

func (r *Categories) Create(ctx context.Context, c *models.Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO category (category_id, name, is_active)
		VALUES (?, ?, ?)
	`, c.ID, c.Name, c.IsActive)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	return tx.Commit()
}

func (r *Categories) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx, `
		SELECT category_id, name, is_active FROM category WHERE category_id = ?
	`, id).Scan(&c.ID, &c.Name, &c.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &c, nil
}

func (r *Categories) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx, `
		SELECT category_id, name, is_active FROM category WHERE name = ?
	`, name).Scan(&c.ID, &c.Name, &c.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select category by name: %w", err)
	}
	return &c, nil
}

func (r *Categories) List(ctx context.Context) ([]models.Category, error) {
	return r.list(ctx, `SELECT category_id, name, is_active FROM category`)
}

func (r *Categories) ListActive(ctx context.Context) ([]models.Category, error) {
	return r.list(ctx, `SELECT category_id, name, is_active FROM category WHERE is_active = 1`)
}

func (r *Categories) list(ctx context.Context, query string) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *Categories) Update(ctx context.Context, c *models.Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE category SET name = ?, is_active = ? WHERE category_id = ?
	`, c.Name, c.IsActive, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *Categories) SetActive(ctx context.Context, id string, active bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE category SET is_active = ? WHERE category_id = ?
	`, active, id)
	if err != nil {
		return fmt.Errorf("set category active: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
