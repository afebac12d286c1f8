package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/klassico/storefront/internal/metrics"
	repo "github.com/klassico/storefront/internal/repo"
	"github.com/shopspring/decimal"
)

type csvRow struct {
	Name         string `csv:"name"`
	Slug         string `csv:"slug"`
	Description  string `csv:"description"`
	Price        string `csv:"price"`
	CategorySlug string `csv:"category_slug"`
	InStock      string `csv:"in_stock"`
	Featured     string `csv:"featured"`
	Tags         string `csv:"tags"`
	ImageURL     string `csv:"image_url"`
}

func parseCSV(r io.Reader) ([]csvRow, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	return rows, nil
}

func parseCSVBool(s string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// rowToRequest resolves the category slug and converts the raw columns.
func rowToRequest(ctx context.Context, row csvRow) (ProductRequest, error) {
	req := ProductRequest{
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Tags:        strings.Split(row.Tags, "|"),
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
	if err != nil {
		return req, errors.New("invalid price")
	}
	req.Price = price

	if req.InStock, err = parseCSVBool(row.InStock, true); err != nil {
		return req, fmt.Errorf("in_stock: %w", err)
	}
	if req.Featured, err = parseCSVBool(row.Featured, false); err != nil {
		return req, fmt.Errorf("featured: %w", err)
	}

	category, err := categoryRepo.GetBySlug(ctx, strings.TrimSpace(row.CategorySlug))
	if errors.Is(err, repo.ErrCategoryNotFound) {
		return req, fmt.Errorf("unknown category %q", row.CategorySlug)
	}
	if err != nil {
		return req, err
	}
	req.CategoryID = category.ID

	if url := strings.TrimSpace(row.ImageURL); url != "" {
		req.ImageURL = &url
	}
	return req, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ProductValidationError{}
	rowError := func(rowNum int, format string, args ...any) {
		errorsList = append(errorsList, ProductValidationError{
			Field:       fmt.Sprintf("row %d", rowNum),
			Description: fmt.Sprintf(format, args...),
		})
	}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		req, err := rowToRequest(r.Context(), rec)
		if err != nil {
			rowError(rowNum, "%v", err)
			continue
		}

		validationErrors, err := validateProduct(r.Context(), &req)
		if err != nil {
			rowError(rowNum, "%v", err)
			continue
		}
		if len(validationErrors) > 0 {
			rowError(rowNum, "%s: %s", validationErrors[0].Field, validationErrors[0].Description)
			continue
		}

		if _, err := productRepo.Create(r.Context(), req.toModel()); err != nil {
			if errors.Is(err, repo.ErrDuplicatedSlug) {
				rowError(rowNum, "product '%s' already exists", req.Slug)
				continue
			}
			rowError(rowNum, "%v", err)
			continue
		}
		imported++
	}

	if imported > 0 {
		metrics.ProductOperationsCounter.WithLabelValues("import").Add(float64(imported))
		invalidateListings(r)
	}

	respond(w, r, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}
