package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"

	"spendbook/backend/middleware"
	"spendbook/backend/models"
	"spendbook/backend/services"
)

// maxUploadBytes bounds how much of a multipart body is held in memory
// before spilling to temp files.
const maxUploadBytes = 10 << 20

// ExpenseHandler translates expense HTTP requests into service calls and
// service outcomes into status codes and bodies. Expense payloads travel as
// a JSON string inside a multipart form so an invoice image can ride along.
type ExpenseHandler struct {
	service *services.ExpenseService
}

func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// Create handles POST /expenses (multipart: "expense" JSON field plus
// optional "invoice_image" file).
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Credentials are invalid")
		return
	}

	raw, upload, closeUpload, err := expenseFormParts(r, "expense")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer closeUpload()

	var payload models.ExpenseCreate
	if err := json.Unmarshal(raw, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "The 'expense' form field is not valid JSON.")
		return
	}

	expense, err := h.service.Create(r.Context(), userID, payload, upload)
	if err != nil {
		var invalid *services.ValidationError
		if errors.As(err, &invalid) {
			respondError(w, http.StatusBadRequest, invalid.Detail)
			return
		}
		respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("An unexpected error occurred while creating the expense '%s'. Please try again later.", payload.Subject))
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

// Get handles GET /expenses/{id}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	expense, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			respondError(w, http.StatusNotFound,
				fmt.Sprintf("No expense found with ID '%s'. Please check the ID and try again.", id))
			return
		}
		respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("An unexpected error occurred while retrieving the expense with ID '%s'. Please try again later.", id))
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

// List handles GET /expenses with pagination.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError,
			"An unexpected error occurred while retrieving the list of expenses. Please try again later.")
		return
	}

	page, size := pageParams(r)
	respondJSON(w, http.StatusOK, models.NewPage(expenses, page, size))
}

// Update handles PUT /expenses/{id} (multipart: "expense_update" JSON field
// plus optional "invoice_image" file).
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	raw, upload, closeUpload, err := expenseFormParts(r, "expense_update")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer closeUpload()

	var payload models.ExpenseUpdate
	if err := json.Unmarshal(raw, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "The 'expense_update' form field is not valid JSON.")
		return
	}

	expense, err := h.service.Update(r.Context(), id, payload, upload)
	if err != nil {
		var notFound *services.NotFoundError
		var invalid *services.ValidationError
		switch {
		case errors.As(err, &notFound):
			respondError(w, http.StatusNotFound,
				fmt.Sprintf("No expense found with ID '%s' for update. Please check the ID and try again.", id))
		case errors.As(err, &invalid):
			respondError(w, http.StatusBadRequest, invalid.Detail)
		default:
			respondError(w, http.StatusInternalServerError,
				fmt.Sprintf("An unexpected error occurred while updating the expense with ID '%s'. Please try again later.", id))
		}
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

// Delete handles DELETE /expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.Delete(r.Context(), id)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			respondError(w, http.StatusNotFound,
				fmt.Sprintf("No expense found with ID '%s' for deletion. Please check the ID and try again.", id))
			return
		}
		respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("An unexpected error occurred while deleting the expense with ID '%s'. Please try again later.", id))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Expense deleted successfully",
		"result":  result,
	})
}

// expenseFormParts parses the multipart body and returns the embedded JSON
// payload bytes plus the optional invoice upload. The returned close func
// releases the file handle and is safe to call when no file was sent.
func expenseFormParts(r *http.Request, field string) ([]byte, *services.InvoiceUpload, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, noop, fmt.Errorf("request body must be a multipart form with a '%s' field", field)
	}

	raw := r.FormValue(field)
	if raw == "" {
		return nil, nil, noop, fmt.Errorf("the '%s' form field is required", field)
	}

	file, header, err := r.FormFile("invoice_image")
	if errors.Is(err, http.ErrMissingFile) {
		return []byte(raw), nil, noop, nil
	}
	if err != nil {
		return nil, nil, noop, errors.New("the 'invoice_image' form file could not be read")
	}

	upload := &services.InvoiceUpload{
		Filename: header.Filename,
		Content:  file,
	}
	return []byte(raw), upload, closeFile(file), nil
}

func closeFile(f multipart.File) func() {
	return func() { f.Close() }
}
