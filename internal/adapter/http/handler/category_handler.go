package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aman-soni-070202/my-finances/internal/adapter/http/dto"
	"github.com/aman-soni-070202/my-finances/internal/domain"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	ListCategories(ctx context.Context, kind domain.TransactionKind) ([]string, error)
	AddCategory(ctx context.Context, kind domain.TransactionKind, name string) error
	RemoveCategory(ctx context.Context, kind domain.TransactionKind, name string) error
}

// CategoryHandler handles category HTTP requests. Categories are
// partitioned by transaction kind, so every route carries the kind.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// List lists the registered category names for one kind.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := domain.TransactionKind(chi.URLParam(r, "kind"))

	categories, err := h.categoryUC.ListCategories(r.Context(), kind)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesResponse{
		Kind:       string(kind),
		Categories: categories,
	})
}

// Add registers a new category name under one kind.
func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	kind := domain.TransactionKind(chi.URLParam(r, "kind"))

	var req dto.AddCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.categoryUC.AddCategory(r.Context(), kind, req.Name); err != nil {
		writeError(w, mapDomainError(err), "failed to add category", err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Remove unregisters a category name.
func (h *CategoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	kind := domain.TransactionKind(chi.URLParam(r, "kind"))
	name := chi.URLParam(r, "name")

	if err := h.categoryUC.RemoveCategory(r.Context(), kind, name); err != nil {
		writeError(w, mapDomainError(err), "failed to remove category", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
