package models

import "time"

// Expense is a single expense record owned by a user.
type Expense struct {
	ID           string    `json:"expenses_id"`
	UserID       string    `json:"user_id"`
	CategoryID   string    `json:"category_id"`
	Subject      string    `json:"subject"`
	ExpenseDate  Date      `json:"expense_date"`
	Amount       float64   `json:"amount"`
	Reimbursable bool      `json:"reimbursable"`
	Description  *string   `json:"description"`
	InvoiceImage *string   `json:"invoice_image"`
	Employee     *string   `json:"employee"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExpenseCreate is the payload accepted when creating an expense. The
// invoice image travels as a separate multipart file, never inside the JSON.
type ExpenseCreate struct {
	CategoryID   string  `json:"category_id"`
	Subject      string  `json:"subject"`
	ExpenseDate  Date    `json:"expense_date"`
	Amount       float64 `json:"amount"`
	Reimbursable bool    `json:"reimbursable"`
	Description  *string `json:"description"`
	Employee     *string `json:"employee"`
}

// ExpenseUpdate is the payload accepted when partially updating an expense.
// A nil field means "leave untouched"; a set field overwrites. There is no
// way to clear a field back to empty through this payload.
type ExpenseUpdate struct {
	CategoryID   *string  `json:"category_id"`
	Subject      *string  `json:"subject"`
	ExpenseDate  *Date    `json:"expense_date"`
	Amount       *float64 `json:"amount"`
	Reimbursable *bool    `json:"reimbursable"`
	Description  *string  `json:"description"`
	Employee     *string  `json:"employee"`
}
