package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/klassico/storefront/internal/models"
	"github.com/shopspring/decimal"
)

func seedProducts(t *testing.T, r *InMemoryProductRepository) {
	t.Helper()
	products := []models.Product{
		{Name: "Milano Slim Fit Jeans", Slug: "milano-slim-fit-jeans", Price: decimal.NewFromInt(2999), CategoryID: "jeans", InStock: true, Tags: []string{"denim", "slim"}},
		{Name: "Silk Saree", Slug: "silk-saree", Description: "Hand woven", Price: decimal.NewFromInt(8999), CategoryID: "sarees", InStock: false, Featured: true, Tags: []string{"silk"}},
		{Name: "Wool Blazer", Slug: "wool-blazer", Price: decimal.NewFromInt(12999), CategoryID: "blazers", InStock: true, Featured: true},
	}
	for _, p := range products {
		if _, err := r.Create(context.Background(), p); err != nil {
			t.Fatalf("could not seed product: %v", err)
		}
	}
}

func ptr[T any](v T) *T { return &v }

func TestInMemoryProductRepository_CreateAssignsID(t *testing.T) {
	r := NewInMemoryProductRepository()
	created, err := r.Create(context.Background(), models.Product{Name: "Kurti", Slug: "kurti"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID == "" {
		t.Error("expected id to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	_, err = r.Create(context.Background(), models.Product{Name: "Kurti 2", Slug: "kurti"})
	if !errors.Is(err, ErrDuplicatedSlug) {
		t.Errorf("expected ErrDuplicatedSlug, got %v", err)
	}
}

func TestInMemoryProductRepository_Filter(t *testing.T) {
	r := NewInMemoryProductRepository()
	seedProducts(t, r)

	tests := []struct {
		name      string
		filter    ProductFilter
		wantNames []string
		wantTotal int
	}{
		{"no filter", ProductFilter{}, []string{"Milano Slim Fit Jeans", "Silk Saree", "Wool Blazer"}, 3},
		{"query in description", ProductFilter{Query: "woven"}, []string{"Silk Saree"}, 1},
		{"featured", ProductFilter{Featured: ptr(true)}, []string{"Silk Saree", "Wool Blazer"}, 2},
		{"out of stock", ProductFilter{InStock: ptr(false)}, []string{"Silk Saree"}, 1},
		{"tag", ProductFilter{Tag: "denim"}, []string{"Milano Slim Fit Jeans"}, 1},
		{"category", ProductFilter{CategoryID: "blazers"}, []string{"Wool Blazer"}, 1},
		{"price range", ProductFilter{MinPrice: ptr(decimal.NewFromInt(3000)), MaxPrice: ptr(decimal.NewFromInt(10000))}, []string{"Silk Saree"}, 1},
		{"paginated", ProductFilter{Offset: ptr(1), Limit: ptr(1)}, []string{"Silk Saree"}, 3},
		{"offset past end", ProductFilter{Offset: ptr(10)}, []string{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := r.Filter(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("expected total %d, got %d", tt.wantTotal, total)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("expected %d products, got %d", len(tt.wantNames), len(got))
			}
			for i, name := range tt.wantNames {
				if got[i].Name != name {
					t.Errorf("expected product %d to be %q, got %q", i, name, got[i].Name)
				}
			}
		})
	}
}

func TestInMemoryProductRepository_Patch(t *testing.T) {
	r := NewInMemoryProductRepository()
	created, _ := r.Create(context.Background(), models.Product{Name: "Kurti", Slug: "kurti", Tags: []string{"cotton"}})

	url := "http://localhost:8080/images/kurti.png"
	patched, err := r.Patch(context.Background(), created.ID, models.ProductPatch{ImageURL: &url})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if patched.ImageURL == nil || *patched.ImageURL != url {
		t.Errorf("expected image url %q, got %v", url, patched.ImageURL)
	}
	if patched.Name != "Kurti" || len(patched.Tags) != 1 {
		t.Errorf("expected untouched fields to survive, got %+v", patched)
	}

	if _, err := r.Patch(context.Background(), "missing", models.ProductPatch{ImageURL: &url}); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestInMemoryProductRepository_ReturnsCopies(t *testing.T) {
	r := NewInMemoryProductRepository()
	created, _ := r.Create(context.Background(), models.Product{Name: "Kurti", Slug: "kurti", Tags: []string{"cotton"}})

	created.Tags[0] = "mutated"
	stored, _ := r.GetByID(context.Background(), created.ID)
	if stored.Tags[0] != "cotton" {
		t.Errorf("expected stored tags to be isolated, got %v", stored.Tags)
	}
}

func TestInMemoryProductRepository_Delete(t *testing.T) {
	r := NewInMemoryProductRepository()
	created, _ := r.Create(context.Background(), models.Product{Name: "Kurti", Slug: "kurti"})

	if err := r.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := r.GetByID(context.Background(), created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := r.Delete(context.Background(), created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

func TestInMemoryStatsRepository(t *testing.T) {
	products := NewInMemoryProductRepository()
	categories := NewInMemoryCategoryRepository()
	jeans, _ := categories.Create(context.Background(), models.Category{Name: "Jeans", Slug: "jeans"})
	sarees, _ := categories.Create(context.Background(), models.Category{Name: "Sarees", Slug: "sarees"})

	products.Create(context.Background(), models.Product{Name: "A", Slug: "a", CategoryID: jeans.ID, InStock: true, Featured: true})
	products.Create(context.Background(), models.Product{Name: "B", Slug: "b", CategoryID: jeans.ID, InStock: false})

	stats, err := NewInMemoryStatsRepository(products, categories).GetCatalogStats(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.TotalProducts != 2 || stats.FeaturedCount != 1 || stats.OutOfStockCount != 1 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if len(stats.ByCategory) != 2 {
		t.Fatalf("expected 2 category counts, got %d", len(stats.ByCategory))
	}
	if stats.ByCategory[0].CategoryID != jeans.ID || stats.ByCategory[0].Products != 2 {
		t.Errorf("expected jeans with 2 products, got %+v", stats.ByCategory[0])
	}
	if stats.ByCategory[1].CategoryID != sarees.ID || stats.ByCategory[1].Products != 0 {
		t.Errorf("expected sarees with 0 products, got %+v", stats.ByCategory[1])
	}
}

func TestInMemoryUserRepository(t *testing.T) {
	r := NewInMemoryUserRepository()
	if _, err := r.GetByUsername(context.Background(), "admin"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := r.CreateUser(context.Background(), models.User{Username: "admin"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := r.CreateUser(context.Background(), models.User{Username: "admin"}); !errors.Is(err, ErrDuplicatedUsername) {
		t.Errorf("expected ErrDuplicatedUsername, got %v", err)
	}
}
