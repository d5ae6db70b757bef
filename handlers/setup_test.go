package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"spendbook/backend/database"
	"spendbook/backend/middleware"
	"spendbook/backend/models"
	"spendbook/backend/repository"
	"spendbook/backend/services"
)

const (
	testUsername = "tester"
	testPassword = "secret123"
)

// setupTestServer builds a router with the full route table over an in-memory
// database seeded with one active user.
func setupTestServer(t *testing.T) *mux.Router {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	_, err = db.Exec(`
		INSERT INTO users (user_id, username, hashed_password, is_active)
		VALUES (?, ?, ?, 1)
	`, uuid.NewString(), testUsername, string(hash))
	if err != nil {
		t.Fatalf("Failed to seed test user: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	categories := repository.NewCategories(db)
	expenses := repository.NewExpenses(db)
	users := repository.NewUsers(db)

	categoryService := services.NewCategoryService(categories, logger)
	expenseService := services.NewExpenseService(expenses, categories, services.NewInvoiceStore(t.TempDir()), logger)

	ch := NewCategoryHandler(categoryService)
	eh := NewExpenseHandler(expenseService)

	r := mux.NewRouter()
	r.HandleFunc("/health", HealthCheck).Methods("GET")
	r.HandleFunc("/categories", ch.Create).Methods("POST")
	r.HandleFunc("/categories", ch.List).Methods("GET")
	r.HandleFunc("/categories/active", ch.ListActive).Methods("GET")
	r.HandleFunc("/categories/by-name/{name}", ch.GetByName).Methods("GET")
	r.HandleFunc("/categories/{id}", ch.Get).Methods("GET")
	r.HandleFunc("/categories/{id}", ch.Update).Methods("PUT")
	r.HandleFunc("/categories/{id}", ch.MarkInactive).Methods("PATCH")

	protected := r.PathPrefix("/expenses").Subrouter()
	protected.Use(middleware.Auth(users))
	protected.HandleFunc("", eh.Create).Methods("POST")
	protected.HandleFunc("", eh.List).Methods("GET")
	protected.HandleFunc("/{id}", eh.Get).Methods("GET")
	protected.HandleFunc("/{id}", eh.Update).Methods("PUT")
	protected.HandleFunc("/{id}", eh.Delete).Methods("DELETE")

	return r
}

func doRequest(router *mux.Router, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rr.Body.String(), err)
	}
}

func createTestCategory(t *testing.T, router *mux.Router, name string) models.Category {
	t.Helper()

	body := strings.NewReader(`{"name": "` + name + `"}`)
	req := httptest.NewRequest("POST", "/categories", body)
	req.Header.Set("Content-Type", "application/json")

	rr := doRequest(router, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Failed to create category %q: status %d, body %s", name, rr.Code, rr.Body.String())
	}

	var created models.Category
	decodeBody(t, rr, &created)
	return created
}

// multipartBody builds a multipart form with the JSON payload under field and
// an optional file part named invoice_image.
func multipartBody(t *testing.T, field, payload, filename, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(field, payload); err != nil {
		t.Fatalf("Failed to write form field: %v", err)
	}
	if filename != "" {
		part, err := w.CreateFormFile("invoice_image", filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte(fileContent)); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	return &buf, w.FormDataContentType()
}

// createTestExpense posts a minimal valid expense as the seeded user.
func createTestExpense(t *testing.T, router *mux.Router, categoryID string) models.Expense {
	t.Helper()

	payload := `{"category_id": "` + categoryID + `", "subject": "Flight to Berlin", "expense_date": "2025-03-14", "amount": 199.99, "reimbursable": true}`
	body, contentType := multipartBody(t, "expense", payload, "", "")

	req := httptest.NewRequest("POST", "/expenses", body)
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(testUsername, testPassword)

	rr := doRequest(router, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Failed to create expense: status %d, body %s", rr.Code, rr.Body.String())
	}

	var created models.Expense
	decodeBody(t, rr, &created)
	return created
}
