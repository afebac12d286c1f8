package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/klassico/storefront/internal/auth"
	"github.com/klassico/storefront/internal/http/ban"
	"github.com/klassico/storefront/internal/http/handlers"
	rl "github.com/klassico/storefront/internal/http/rate_limiter"
	"github.com/klassico/storefront/internal/metrics"
	"github.com/klassico/storefront/internal/models"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/klassico/storefront/docs"
)

type RouterConfig struct {
	Issuer *auth.TokenIssuer
	// Limiter throttles /login and /refresh per client IP. Nil disables throttling.
	Limiter *rl.Limiter
	Bans    *ban.Store
	// ImageDir is served under /images when set.
	ImageDir string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging)
	r.Use(Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if cfg.ImageDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImageDir))))
	}

	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(RateLimit(cfg.Limiter, cfg.Bans))
		}
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
	})

	r.Get("/categories", handlers.GetCategoriesHandler)
	r.Get("/products", handlers.FilterProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/products/slug/{slug}", handlers.GetProductBySlugHandler)
	r.Get("/catalog/stats", handlers.GetCatalogStatsHandler)

	r.Route("/storefront", func(r chi.Router) {
		r.Get("/navbar", handlers.GetNavbarHandler)
		r.Get("/cta", handlers.GetCTAHandler)
		r.Get("/craftsmanship", handlers.GetCraftsmanshipHandler)
		r.Get("/premium-banners", handlers.GetPremiumBannersHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Issuer))
		r.Use(RequireRole(models.RoleAdmin))

		r.Post("/categories", handlers.CreateCategoryHandler)
		r.Post("/products", handlers.CreateProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Patch("/products/{id}", handlers.PatchProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/{id}/image", handlers.UploadProductImageHandler)
	})

	return r
}
