package handlers

import (
	"context"
	"time"

	"github.com/klassico/storefront/internal/auth"
	repo "github.com/klassico/storefront/internal/repo"
	"github.com/klassico/storefront/internal/storage"
)

// ProductsCacheTag groups every cached product listing.
const ProductsCacheTag = "products"

// ListingCache stores encoded responses grouped by tag.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error
	InvalidateTag(ctx context.Context, tag string) error
}

var (
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	statsRepo    repo.StatsRepository
	authService  *auth.AuthService
	imageStore   storage.ImageStore

	listingCache   ListingCache
	listingTTL     = 5 * time.Minute
	maxUploadBytes int64 = 5 << 20
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetCategoryRepo(r repo.CategoryRepository) {
	categoryRepo = r
}

func SetStatsRepo(r repo.StatsRepository) {
	statsRepo = r
}

func SetAuthService(s *auth.AuthService) {
	authService = s
}

func SetImageStore(s storage.ImageStore) {
	imageStore = s
}

// SetListingCache enables response caching for product listings. A nil cache disables it.
func SetListingCache(c ListingCache, ttl time.Duration) {
	listingCache = c
	if ttl > 0 {
		listingTTL = ttl
	}
}

func SetMaxUploadBytes(n int64) {
	if n > 0 {
		maxUploadBytes = n
	}
}
