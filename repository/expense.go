package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"spendbook/backend/models"
)

const expenseColumns = `expenses_id, user_id, category_id, subject, expense_date,
	amount, reimbursable, description, invoice_image, employee, updated_at`

// Expenses is the sqlite-backed ExpenseRepository.
type Expenses struct {
	db *sql.DB
}

func NewExpenses(db *sql.DB) *Expenses {
	return &Expenses{db: db}
}

func (r *Expenses) Create(ctx context.Context, e *models.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, e.CategoryID, e.Subject, e.ExpenseDate,
		e.Amount, e.Reimbursable, nullable(e.Description), nullable(e.InvoiceImage), nullable(e.Employee), e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	return tx.Commit()
}

func (r *Expenses) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+` FROM expenses WHERE expenses_id = ?
	`, id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select expense: %w", err)
	}
	return e, nil
}

func (r *Expenses) List(ctx context.Context) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses`)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func (r *Expenses) Update(ctx context.Context, e *models.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE expenses
		SET category_id = ?, subject = ?, expense_date = ?, amount = ?,
			reimbursable = ?, description = ?, invoice_image = ?, employee = ?, updated_at = ?
		WHERE expenses_id = ?
	`, e.CategoryID, e.Subject, e.ExpenseDate, e.Amount,
		e.Reimbursable, nullable(e.Description), nullable(e.InvoiceImage), nullable(e.Employee), e.UpdatedAt,
		e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
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

func (r *Expenses) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE expenses_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
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

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row scanner) (*models.Expense, error) {
	var (
		e           models.Expense
		description sql.NullString
		invoice     sql.NullString
		employee    sql.NullString
	)
	err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Subject, &e.ExpenseDate,
		&e.Amount, &e.Reimbursable, &description, &invoice, &employee, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		e.Description = &description.String
	}
	if invoice.Valid {
		e.InvoiceImage = &invoice.String
	}
	if employee.Valid {
		e.Employee = &employee.String
	}
	return &e, nil
}

// nullable maps a nil string pointer onto a SQL NULL.
func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
