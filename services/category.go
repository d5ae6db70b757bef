package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"spendbook/backend/models"
	"spendbook/backend/repository"
)

// CategoryService owns the CRUD and validation rules for categories.
type CategoryService struct {
	categories repository.CategoryRepository
	logger     *slog.Logger
}

func NewCategoryService(categories repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

// Create persists a new category. Duplicate names are rejected with a
// ConflictError via an explicit pre-query, matching the uniqueness rule that
// covers inactive categories too.
func (s *CategoryService) Create(ctx context.Context, name string, isActive bool) (*models.Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	existing, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.WarnContext(ctx, "category already exists", "name", name)
		return nil, &ConflictError{Resource: "category", Name: name}
	}

	c := &models.Category{
		ID:       uuid.NewString(),
		Name:     name,
		IsActive: isActive,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "error creating category", "name", name, "error", err)
		return nil, &UnexpectedError{Op: "create category", Err: err}
	}

	s.logger.InfoContext(ctx, "category created", "id", c.ID, "name", c.Name)
	return c, nil
}

// GetByID returns the category or a NotFoundError.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.WarnContext(ctx, "category not found", "id", id)
		return nil, &NotFoundError{Resource: "category", ID: id}
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "error retrieving category", "id", id, "error", err)
		return nil, &UnexpectedError{Op: "get category", Err: err}
	}
	return c, nil
}

// GetByName returns the category, or nil when absent. Absence is not an
// error at this layer; callers decide what it means.
func (s *CategoryService) GetByName(ctx context.Context, name string) (*models.Category, error) {
	c, err := s.categories.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "error retrieving category by name", "name", name, "error", err)
		return nil, &UnexpectedError{Op: "get category by name", Err: err}
	}
	return c, nil
}

// List returns all categories, active or not.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "error retrieving categories", "error", err)
		return nil, &UnexpectedError{Op: "list categories", Err: err}
	}
	return categories, nil
}

// ListActive returns only categories with is_active set.
func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "error retrieving active categories", "error", err)
		return nil, &UnexpectedError{Op: "list active categories", Err: err}
	}
	return categories, nil
}

// Update fully replaces the category's name and active flag.
func (s *CategoryService) Update(ctx context.Context, id, name string, isActive bool) (*models.Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = name
	c.IsActive = isActive
	if err := s.categories.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "category not found", "id", id)
			return nil, &NotFoundError{Resource: "category", ID: id}
		}
		s.logger.ErrorContext(ctx, "error updating category", "id", id, "error", err)
		return nil, &UnexpectedError{Op: "update category", Err: err}
	}

	s.logger.InfoContext(ctx, "category updated", "id", id)
	return c, nil
}

// MarkInactive soft-deactivates the category. This is the only deletion
// path; rows are never removed.
func (s *CategoryService) MarkInactive(ctx context.Context, id string) (bool, error) {
	err := s.categories.SetActive(ctx, id, false)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.WarnContext(ctx, "category not found", "id", id)
		return false, &NotFoundError{Resource: "category", ID: id}
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "error marking category inactive", "id", id, "error", err)
		return false, &UnexpectedError{Op: "mark category inactive", Err: err}
	}

	s.logger.InfoContext(ctx, "category marked inactive", "id", id)
	return true, nil
}

func validateCategoryName(name string) error {
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return &ValidationError{Detail: fmt.Sprintf("name must be between 2 and 50 characters, got %d", n)}
	}
	return nil
}
