package handlers

import (
	"net/http"
)

// GetCatalogStatsHandler godoc
// @Summary Catalog totals for the admin view
// @Tags stats
// @Produce json
// @Success 200 {object} repo.CatalogStats
// @Failure 500 {string} string "Internal error"
// @Router /catalog/stats [get]
func GetCatalogStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := statsRepo.GetCatalogStats(r.Context())
	if err != nil {
		internalError(w, r, "failed to fetch catalog stats", err)
		return
	}
	respond(w, r, http.StatusOK, stats)
}
