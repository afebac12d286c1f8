package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/klassico/storefront/internal/metrics"
	"github.com/klassico/storefront/internal/models"
	repo "github.com/klassico/storefront/internal/repo"
	"github.com/klassico/storefront/internal/slug"
)

// GetCategoriesHandler godoc
// @Summary List categories ordered by name
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {string} string "Internal error"
// @Router /categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := categoryRepo.GetAll(r.Context())
	if err != nil {
		internalError(w, r, "could not fetch categories", err)
		return
	}
	respond(w, r, http.StatusOK, categories)
}

// CreateCategoryHandler godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category to add"
// @Success 201 {object} models.Category
// @Failure 400 {array} ProductValidationError
// @Failure 409 {string} string "Slug taken"
// @Router /categories [post]
func CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" {
		req.Slug = slug.Derive(req.Name)
	}

	errs := []ProductValidationError{}
	if req.Name == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "Name is required"})
	} else if !slug.Valid(req.Slug) {
		errs = append(errs, ProductValidationError{Field: "slug", Description: "Slug may only contain lowercase letters, digits, underscores and single hyphens"})
	}
	if len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, errs)
		return
	}

	created, err := categoryRepo.Create(r.Context(), models.Category{Name: req.Name, Slug: req.Slug})
	if errors.Is(err, repo.ErrDuplicatedSlug) {
		http.Error(w, "could not create category: slug already in use", http.StatusConflict)
		return
	}
	if err != nil {
		internalError(w, r, "could not create category", err)
		return
	}
	metrics.RecordCategoryOperation("create")
	respond(w, r, http.StatusCreated, created)
}
