package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"spendbook/backend/models"
	"spendbook/backend/repository"
)

// InvoiceUpload is an invoice image attached to a create or update request.
type InvoiceUpload struct {
	Filename string
	Content  io.Reader
}

// ExpenseService owns the CRUD and validation rules for expenses, including
// invoice image storage.
type ExpenseService struct {
	expenses   repository.ExpenseRepository
	categories repository.CategoryRepository
	invoices   *InvoiceStore
	logger     *slog.Logger
	now        func() time.Time
}

func NewExpenseService(expenses repository.ExpenseRepository, categories repository.CategoryRepository, invoices *InvoiceStore, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		categories: categories,
		invoices:   invoices,
		logger:     logger,
		now:        time.Now,
	}
}

// Create validates and persists a new expense for userID. When an invoice is
// attached it is written to disk first; a failed write aborts the whole
// operation so no row ever references a missing file.
func (s *ExpenseService) Create(ctx context.Context, userID string, in models.ExpenseCreate, upload *InvoiceUpload) (*models.Expense, error) {
	if err := s.validateCreate(ctx, in); err != nil {
		return nil, err
	}

	var invoiceImage *string
	if upload != nil {
		name, err := s.invoices.Save(upload.Filename, upload.Content)
		if err != nil {
			s.logger.ErrorContext(ctx, "error storing invoice image", "subject", in.Subject, "error", err)
			return nil, &UnexpectedError{Op: "store invoice image", Err: err}
		}
		invoiceImage = &name
	}

	e := &models.Expense{
		ID:           uuid.NewString(),
		UserID:       userID,
		CategoryID:   in.CategoryID,
		Subject:      in.Subject,
		ExpenseDate:  in.ExpenseDate,
		Amount:       in.Amount,
		Reimbursable: in.Reimbursable,
		Description:  in.Description,
		InvoiceImage: invoiceImage,
		Employee:     in.Employee,
		UpdatedAt:    s.now().UTC(),
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "error creating expense", "subject", in.Subject, "error", err)
		return nil, &UnexpectedError{Op: "create expense", Err: err}
	}

	s.logger.InfoContext(ctx, "expense created", "id", e.ID, "subject", e.Subject)
	return e, nil
}

// GetByID returns the expense or a NotFoundError.
func (s *ExpenseService) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.WarnContext(ctx, "expense not found", "id", id)
		return nil, &NotFoundError{Resource: "expense", ID: id}
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "error retrieving expense", "id", id, "error", err)
		return nil, &UnexpectedError{Op: "get expense", Err: err}
	}
	return e, nil
}

// List returns all expenses, unfiltered.
func (s *ExpenseService) List(ctx context.Context) ([]models.Expense, error) {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "error retrieving expenses", "error", err)
		return nil, &UnexpectedError{Op: "list expenses", Err: err}
	}
	return expenses, nil
}

// Update applies a field-level partial merge: fields present in the payload
// overwrite, nil fields are left untouched. A field can therefore never be
// cleared back to empty once set. UpdatedAt is always refreshed.
func (s *ExpenseService) Update(ctx context.Context, id string, in models.ExpenseUpdate, upload *InvoiceUpload) (*models.Expense, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateUpdate(ctx, in); err != nil {
		return nil, err
	}

	if upload != nil {
		name, err := s.invoices.Save(upload.Filename, upload.Content)
		if err != nil {
			s.logger.ErrorContext(ctx, "error storing invoice image", "id", id, "error", err)
			return nil, &UnexpectedError{Op: "store invoice image", Err: err}
		}
		e.InvoiceImage = &name
	}

	if in.CategoryID != nil {
		e.CategoryID = *in.CategoryID
	}
	if in.Subject != nil {
		e.Subject = *in.Subject
	}
	if in.ExpenseDate != nil {
		e.ExpenseDate = *in.ExpenseDate
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.Reimbursable != nil {
		e.Reimbursable = *in.Reimbursable
	}
	if in.Description != nil {
		e.Description = in.Description
	}
	if in.Employee != nil {
		e.Employee = in.Employee
	}
	e.UpdatedAt = s.now().UTC()

	if err := s.expenses.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "expense not found", "id", id)
			return nil, &NotFoundError{Resource: "expense", ID: id}
		}
		s.logger.ErrorContext(ctx, "error updating expense", "id", id, "error", err)
		return nil, &UnexpectedError{Op: "update expense", Err: err}
	}

	s.logger.InfoContext(ctx, "expense updated", "id", id)
	return e, nil
}

// Delete physically removes the expense.
func (s *ExpenseService) Delete(ctx context.Context, id string) (bool, error) {
	err := s.expenses.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.WarnContext(ctx, "expense not found", "id", id)
		return false, &NotFoundError{Resource: "expense", ID: id}
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "error deleting expense", "id", id, "error", err)
		return false, &UnexpectedError{Op: "delete expense", Err: err}
	}

	s.logger.InfoContext(ctx, "expense deleted", "id", id)
	return true, nil
}

func (s *ExpenseService) validateCreate(ctx context.Context, in models.ExpenseCreate) error {
	if err := validateSubject(in.Subject); err != nil {
		return err
	}
	if err := validateAmount(in.Amount); err != nil {
		return err
	}
	if in.ExpenseDate.IsZero() {
		return &ValidationError{Detail: "expense_date is required"}
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return err
		}
	}
	if in.Employee != nil {
		if err := validateEmployee(*in.Employee); err != nil {
			return err
		}
	}
	return s.requireCategory(ctx, in.CategoryID)
}

func (s *ExpenseService) validateUpdate(ctx context.Context, in models.ExpenseUpdate) error {
	if in.Subject != nil {
		if err := validateSubject(*in.Subject); err != nil {
			return err
		}
	}
	if in.Amount != nil {
		if err := validateAmount(*in.Amount); err != nil {
			return err
		}
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return err
		}
	}
	if in.Employee != nil {
		if err := validateEmployee(*in.Employee); err != nil {
			return err
		}
	}
	if in.CategoryID != nil {
		return s.requireCategory(ctx, *in.CategoryID)
	}
	return nil
}

// requireCategory rejects expenses that would reference a category that does
// not exist. Inactive categories stay valid targets.
func (s *ExpenseService) requireCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return &ValidationError{Detail: "category_id is required"}
	}
	_, err := s.categories.GetByID(ctx, categoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return &ValidationError{Detail: fmt.Sprintf("no category exists with ID '%s'", categoryID)}
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "error checking category", "category_id", categoryID, "error", err)
		return &UnexpectedError{Op: "check category", Err: err}
	}
	return nil
}

func validateSubject(subject string) error {
	if n := utf8.RuneCountInString(subject); n < 2 || n > 100 {
		return &ValidationError{Detail: fmt.Sprintf("subject must be between 2 and 100 characters, got %d", n)}
	}
	return nil
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return &ValidationError{Detail: "amount must be greater than 0"}
	}
	return nil
}

func validateDescription(description string) error {
	if n := utf8.RuneCountInString(description); n > 500 {
		return &ValidationError{Detail: fmt.Sprintf("description must be at most 500 characters, got %d", n)}
	}
	return nil
}

func validateEmployee(employee string) error {
	if n := utf8.RuneCountInString(employee); n > 100 {
		return &ValidationError{Detail: fmt.Sprintf("employee must be at most 100 characters, got %d", n)}
	}
	return nil
}
