package handlers

import (
	"net/http"

	"github.com/klassico/storefront/internal/storefront"
)

// GetNavbarHandler godoc
// @Summary Navigation menu and order link
// @Tags storefront
// @Produce json
// @Success 200 {object} storefront.Navbar
// @Router /storefront/navbar [get]
func GetNavbarHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, storefront.NavbarContent())
}

// GetCTAHandler godoc
// @Summary WhatsApp ordering call to action
// @Tags storefront
// @Produce json
// @Success 200 {object} storefront.CTASection
// @Router /storefront/cta [get]
func GetCTAHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, storefront.CTAContent())
}

// GetCraftsmanshipHandler godoc
// @Summary Craftsmanship process section
// @Tags storefront
// @Produce json
// @Success 200 {object} storefront.Craftsmanship
// @Router /storefront/craftsmanship [get]
func GetCraftsmanshipHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, storefront.CraftsmanshipContent())
}

// GetPremiumBannersHandler godoc
// @Summary Signature collection banners for the categories that exist
// @Tags storefront
// @Produce json
// @Success 200 {object} storefront.PremiumBanners
// @Failure 500 {string} string "Internal error"
// @Router /storefront/premium-banners [get]
func GetPremiumBannersHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := categoryRepo.GetAll(r.Context())
	if err != nil {
		internalError(w, r, "could not fetch categories", err)
		return
	}
	respond(w, r, http.StatusOK, storefront.PremiumBannersContent(categories))
}
