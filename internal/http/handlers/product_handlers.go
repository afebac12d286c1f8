package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/klassico/storefront/internal/logger"
	"github.com/klassico/storefront/internal/metrics"
	"github.com/klassico/storefront/internal/models"
	repo "github.com/klassico/storefront/internal/repo"
	"go.uber.org/zap"
)

const listingKeyPrefix = "products:list:"

// invalidateListings drops cached listings after a write. Failures are logged only.
func invalidateListings(r *http.Request) {
	if listingCache == nil {
		return
	}
	if err := listingCache.InvalidateTag(r.Context(), ProductsCacheTag); err != nil {
		logger.FromContext(r.Context()).Warn("Failed to invalidate product listings", zap.Error(err))
	}
}

func writeProductError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrDuplicatedSlug):
		http.Error(w, "could not "+action+" product: slug already in use", http.StatusConflict)
	case errors.Is(err, repo.ErrCategoryNotFound):
		http.Error(w, "could not "+action+" product: category not found", http.StatusBadRequest)
	default:
		internalError(w, r, "could not "+action+" product", err)
	}
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {array} ProductValidationError
// @Failure 409 {string} string "Slug taken"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors, err := validateProduct(r.Context(), &req)
	if err != nil {
		internalError(w, r, "could not validate product", err)
		return
	}
	if len(validationErrors) > 0 {
		respond(w, r, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := productRepo.Create(r.Context(), req.toModel())
	if err != nil {
		writeProductError(w, r, err, "create")
		return
	}

	metrics.RecordProductOperation("create")
	invalidateListings(r)
	logger.FromContext(r.Context()).Info("Product created", zap.String("product_id", created.ID), zap.String("slug", created.Slug))
	respond(w, r, http.StatusCreated, created)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProductError(w, r, err, "fetch")
		return
	}
	respond(w, r, http.StatusOK, product)
}

// GetProductBySlugHandler godoc
// @Summary Get product by slug
// @Tags products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Product
// @Failure 404 {string} string "Not found"
// @Router /products/slug/{slug} [get]
func GetProductBySlugHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeProductError(w, r, err, "fetch")
		return
	}
	respond(w, r, http.StatusOK, product)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := productRepo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeProductError(w, r, err, "delete")
		return
	}
	metrics.RecordProductOperation("delete")
	invalidateListings(r)
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProductHandler godoc
// @Summary Replace a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} models.Product
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors, err := validateProduct(r.Context(), &req)
	if err != nil {
		internalError(w, r, "could not validate product", err)
		return
	}
	if len(validationErrors) > 0 {
		respond(w, r, http.StatusBadRequest, validationErrors)
		return
	}

	product := req.toModel()
	product.ID = chi.URLParam(r, "id")
	updated, err := productRepo.Update(r.Context(), product)
	if err != nil {
		writeProductError(w, r, err, "update")
		return
	}

	metrics.RecordProductOperation("update")
	invalidateListings(r)
	respond(w, r, http.StatusOK, updated)
}

// PatchProductHandler godoc
// @Summary Update some fields of a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param patch body models.ProductPatch true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Router /products/{id} [patch]
// @Security BearerAuth
func PatchProductHandler(w http.ResponseWriter, r *http.Request) {
	var patch models.ProductPatch
	if err := readJSON(w, r, &patch); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if patch.Empty() {
		http.Error(w, "no fields to update", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	existing, err := productRepo.GetByID(r.Context(), id)
	if err != nil {
		writeProductError(w, r, err, "update")
		return
	}

	merged := requestFromProduct(patch.Apply(existing))
	validationErrors, err := validateProduct(r.Context(), &merged)
	if err != nil {
		internalError(w, r, "could not validate product", err)
		return
	}
	if len(validationErrors) > 0 {
		respond(w, r, http.StatusBadRequest, validationErrors)
		return
	}

	if patch.Name != nil {
		patch.Name = &merged.Name
	}
	if patch.Slug != nil {
		patch.Slug = &merged.Slug
	}
	if patch.Tags != nil {
		patch.Tags = &merged.Tags
	}

	updated, err := productRepo.Patch(r.Context(), id, patch)
	if err != nil {
		writeProductError(w, r, err, "update")
		return
	}

	metrics.RecordProductOperation("patch")
	invalidateListings(r)
	respond(w, r, http.StatusOK, updated)
}

// FilterProductsHandler godoc
// @Summary Filter and paginate products
// @Tags products
// @Produce json
// @Param q query string false "Search in name and description"
// @Param category_id query string false "Category ID"
// @Param featured query bool false "Featured only"
// @Param in_stock query bool false "Stock status"
// @Param tag query string false "Tag"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	log := logger.FromContext(r.Context())

	filter := repo.ProductFilter{
		Query:      q.Get("q"),
		CategoryID: q.Get("category_id"),
		Tag:        q.Get("tag"),
	}

	var err error
	if filter.Featured, err = parseBoolPtr(q.Get("featured")); err != nil {
		http.Error(w, "featured must be true or false", http.StatusBadRequest)
		return
	}
	if filter.InStock, err = parseBoolPtr(q.Get("in_stock")); err != nil {
		http.Error(w, "in_stock must be true or false", http.StatusBadRequest)
		return
	}
	if filter.MinPrice, err = parseDecimalPtr(q.Get("min_price")); err != nil {
		http.Error(w, "min_price must be a number", http.StatusBadRequest)
		return
	}
	if filter.MaxPrice, err = parseDecimalPtr(q.Get("max_price")); err != nil {
		http.Error(w, "max_price must be a number", http.StatusBadRequest)
		return
	}
	if filter.Offset, err = parseIntPtr(q.Get("offset")); err != nil || (filter.Offset != nil && *filter.Offset < 0) {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}
	if filter.Limit, err = parseIntPtr(q.Get("limit")); err != nil || (filter.Limit != nil && *filter.Limit <= 0) {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}

	key := listingKeyPrefix + q.Encode()
	if listingCache != nil {
		var cached ProductsSearchResult
		hit, err := listingCache.GetJSON(r.Context(), key, &cached)
		if err != nil {
			log.Warn("Listing cache lookup failed", zap.Error(err))
		}
		metrics.RecordListingCache(hit)
		if hit {
			w.Header().Set("X-Cache", "HIT")
			respond(w, r, http.StatusOK, cached)
			return
		}
	}

	products, total, err := productRepo.Filter(r.Context(), filter)
	if err != nil {
		internalError(w, r, "could not filter products", err)
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	resp := ProductsSearchResult{Data: products, Meta: Meta{TotalCount: total}}
	if listingCache != nil {
		if err := listingCache.SetJSON(r.Context(), key, resp, listingTTL, ProductsCacheTag); err != nil {
			log.Warn("Failed to cache product listing", zap.Error(err))
		}
		w.Header().Set("X-Cache", "MISS")
	}
	respond(w, r, http.StatusOK, resp)
}
