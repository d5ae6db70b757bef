package repository

import (
	"context"
	"errors"

	"spendbook/backend/models"
)

// ErrNotFound is returned when a requested row does not exist. Services
// translate it into their own typed not-found errors.
var ErrNotFound = errors.New("not found")

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	SetActive(ctx context.Context, id string, active bool) error
}

// ExpenseRepository persists expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, e *models.Expense) error
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	List(ctx context.Context) ([]models.Expense, error)
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, id string) error
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
