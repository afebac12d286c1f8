package handlers

import (
	"context"
	"errors"
	"strings"

	repo "github.com/klassico/storefront/internal/repo"
	"github.com/klassico/storefront/internal/slug"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// normalizeTags trims tags and drops empty entries and duplicates, keeping first occurrence order.
func normalizeTags(tags []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// validateProduct normalizes p in place and returns the field errors found.
// The error is only set when the category lookup itself fails.
func validateProduct(ctx context.Context, p *ProductRequest) ([]ProductValidationError, error) {
	errs := []ProductValidationError{}

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "Name is required"})
	}

	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = slug.Derive(p.Name)
	}
	if p.Name != "" && !slug.Valid(p.Slug) {
		errs = append(errs, ProductValidationError{Field: "slug", Description: "Slug may only contain lowercase letters, digits, underscores and single hyphens"})
	}

	if p.Price.IsNegative() {
		errs = append(errs, ProductValidationError{Field: "price", Description: "Price cannot be negative"})
	}

	if strings.TrimSpace(p.CategoryID) == "" {
		errs = append(errs, ProductValidationError{Field: "category_id", Description: "Category is required"})
	} else if _, err := categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
		if !errors.Is(err, repo.ErrCategoryNotFound) {
			return nil, err
		}
		errs = append(errs, ProductValidationError{Field: "category_id", Description: "Category does not exist"})
	}

	p.Tags = normalizeTags(p.Tags)
	return errs, nil
}
