package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"spendbook/backend/database"
	"spendbook/backend/repository"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCategoryService(db *sql.DB) *CategoryService {
	return NewCategoryService(repository.NewCategories(db), discardLogger())
}

func newExpenseService(t *testing.T, db *sql.DB) *ExpenseService {
	t.Helper()
	return NewExpenseService(
		repository.NewExpenses(db),
		repository.NewCategories(db),
		NewInvoiceStore(t.TempDir()),
		discardLogger(),
	)
}

func seedUser(t *testing.T, db *sql.DB) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO users (user_id, username, hashed_password, is_active)
		VALUES (?, ?, ?, 1)
	`, id, "user-"+id[:8], "not-a-real-hash")
	require.NoError(t, err)
	return id
}

func seedCategory(t *testing.T, svc *CategoryService, name string) string {
	t.Helper()
	c, err := svc.Create(context.Background(), name, true)
	require.NoError(t, err)
	return c.ID
}
