package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"spendbook/backend/models"
	"spendbook/backend/services"
)

// CategoryHandler translates category HTTP requests into service calls and
// service outcomes into status codes and bodies.
type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.CategoryCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Request body is not valid JSON.")
		return
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}

	category, err := h.service.Create(r.Context(), payload.Name, active)
	if err != nil {
		var conflict *services.ConflictError
		var invalid *services.ValidationError
		switch {
		case errors.As(err, &conflict):
			respondError(w, http.StatusBadRequest,
				fmt.Sprintf("Category with name '%s' already exists. Please choose a different name.", payload.Name))
		case errors.As(err, &invalid):
			respondError(w, http.StatusBadRequest, invalid.Detail)
		default:
			respondError(w, http.StatusInternalServerError,
				fmt.Sprintf("An unexpected error occurred while creating the category '%s'. Please try again later.", payload.Name))
		}
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

// Get handles GET /categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			respondError(w, http.StatusNotFound,
				fmt.Sprintf("No category found with ID '%s'. Please check the ID and try again.", id))
			return
		}
		respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("An unexpected error occurred while retrieving the category with ID '%s'. Please try again later.", id))
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// GetByName handles GET /categories/by-name/{name}.
func (h *CategoryHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	category, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("An unexpected error occurred while retrieving the category with name '%s'. Please try again later.", name))
		return
	}
	if category == nil {
		respondError(w, http.StatusNotFound,
			fmt.Sprintf("No category found with the name '%s'. Please check the name and try again.", name))
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// List handles GET /categories with pagination.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError,
			"An unexpected error occurred while retrieving the list of categories. Please try again later.")
		return
	}

	page, size := pageParams(r)
	respondJSON(w, http.StatusOK, models.NewPage(categories, page, size))
}

// ListActive handles GET /categories/active. The active listing is not
// paginated, matching the unbounded dropdown use case it serves.
func (h *CategoryHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListActive(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError,
			"An unexpected error occurred while retrieving the list of categories. Please try again later.")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	respondJSON(w, http.StatusOK, categories)
}

// Update handles PUT /categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload models.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Request body is not valid JSON.")
		return
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}

	category, err := h.service.Update(r.Context(), id, payload.Name, active)
	if err != nil {
		var notFound *services.NotFoundError
		var invalid *services.ValidationError
		switch {
		case errors.As(err, &notFound):
			respondError(w, http.StatusNotFound,
				fmt.Sprintf("No category found with ID '%s' for update. Please check the ID and try again.", id))
		case errors.As(err, &invalid):
			respondError(w, http.StatusBadRequest, invalid.Detail)
		default:
			respondError(w, http.StatusInternalServerError,
				fmt.Sprintf("An unexpected error occurred while updating the category with ID '%s'. Please try again later.", id))
		}
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// MarkInactive handles PATCH /categories/{id}, the only deletion path.
func (h *CategoryHandler) MarkInactive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.MarkInactive(r.Context(), id)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			respondError(w, http.StatusNotFound,
				fmt.Sprintf("No category found with ID '%s' for deletion. Please check the ID and try again.", id))
			return
		}
		respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("An unexpected error occurred while deleting the category with ID '%s'. Please try again later.", id))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Category marked as inactive successfully",
		"result":  result,
	})
}
