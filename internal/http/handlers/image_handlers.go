package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/klassico/storefront/internal/logger"
	"github.com/klassico/storefront/internal/metrics"
	repo "github.com/klassico/storefront/internal/repo"
	"github.com/klassico/storefront/internal/storage"
	"go.uber.org/zap"
)

// UploadProductImageHandler godoc
// @Summary Upload an image for a product
// @Description Stores the file and returns its public URL. The product record is not changed.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param file formData file true "Image file"
// @Success 201 {object} ImageUploadResult
// @Failure 400 {string} string "Invalid file"
// @Failure 404 {string} string "Not found"
// @Failure 413 {string} string "Too large"
// @Failure 415 {string} string "Not an image"
// @Router /products/{id}/image [post]
// @Security BearerAuth
func UploadProductImageHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := productRepo.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		internalError(w, r, "could not fetch product", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := imageStore.Save(r.Context(), id, file)
	if errors.Is(err, storage.ErrNotAnImage) {
		metrics.RecordImageUpload("rejected")
		http.Error(w, "Please upload an image file", http.StatusUnsupportedMediaType)
		return
	}
	if err != nil {
		metrics.RecordImageUpload("failed")
		internalError(w, r, "could not store image", err)
		return
	}

	metrics.RecordImageUpload("stored")
	logger.FromContext(r.Context()).Info("Product image stored", zap.String("product_id", id), zap.String("image_url", url))
	respond(w, r, http.StatusCreated, ImageUploadResult{ImageURL: url})
}
