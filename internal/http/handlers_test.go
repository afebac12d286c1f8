package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klassico/storefront/internal/http/ban"
	handler "github.com/klassico/storefront/internal/http/handlers"
	rl "github.com/klassico/storefront/internal/http/rate_limiter"
	"github.com/klassico/storefront/internal/models"
	"github.com/klassico/storefront/internal/repo"
	"github.com/klassico/storefront/internal/storefront"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	api "github.com/klassico/storefront/internal/http"
)

func TestCategoryHandlers(t *testing.T) {
	t.Cleanup(clearCatalog)

	sarees := createCategory(t, "Sarees")
	if sarees.Slug != "sarees" {
		t.Errorf("expected derived slug 'sarees', got %q", sarees.Slug)
	}
	createCategory(t, "Blazers")

	w := doJSON(http.MethodPost, "/categories", handler.CategoryRequest{Name: "Sarees"}, token)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate slug, got %d", w.Code)
	}

	w = doJSON(http.MethodPost, "/categories", handler.CategoryRequest{Name: " "}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty name, got %d", w.Code)
	}

	w = doJSON(http.MethodGet, "/categories", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var categories []models.Category
	json.NewDecoder(w.Body).Decode(&categories)
	if len(categories) != 2 || categories[0].Name != "Blazers" || categories[1].Name != "Sarees" {
		t.Errorf("expected categories ordered by name, got %+v", categories)
	}
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectCode int
	}{
		{"Valid credentials", `{"username":"admin","password":"secret"}`, http.StatusOK},
		{"Wrong password", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"Unknown user", `{"username":"ghost","password":"secret"}`, http.StatusUnauthorized},
		{"Missing fields", `{"username":"admin"}`, http.StatusBadRequest},
		{"Malformed", `{"username":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.expectCode {
				t.Errorf("expected %d, got %d", tt.expectCode, w.Code)
			}
		})
	}
}

func TestRefreshHandler(t *testing.T) {
	tokens, err := login(router, "admin", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tokens.RefreshToken == "" {
		t.Fatal("expected a refresh token")
	}

	w := doJSON(http.MethodPost, "/refresh", handler.RefreshRequest{RefreshToken: tokens.RefreshToken}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var refreshed handler.LoginResult
	json.NewDecoder(w.Body).Decode(&refreshed)
	if refreshed.Token == "" || refreshed.RefreshToken == tokens.RefreshToken {
		t.Errorf("expected a new token pair, got %+v", refreshed)
	}

	w = doJSON(http.MethodPost, "/refresh", handler.RefreshRequest{RefreshToken: tokens.RefreshToken}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected reused refresh token to be rejected, got %d", w.Code)
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func uploadImage(productID string, filename string, content []byte) *httptest.ResponseRecorder {
	body, contentType := multipartFile("file", filename, content)
	req := httptest.NewRequest(http.MethodPost, "/products/"+productID+"/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadProductImageHandler(t *testing.T) {
	t.Cleanup(clearCatalog)
	jeans := createCategory(t, "Jeans")
	product := createProduct(t, handler.ProductRequest{Name: "Slim Jeans", Price: decimal.NewFromInt(10), CategoryID: jeans.ID})

	t.Run("Stores image and serves it", func(t *testing.T) {
		w := uploadImage(product.ID, "front.png", pngHeader)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp handler.ImageUploadResult
		json.NewDecoder(w.Body).Decode(&resp)

		prefix := testBaseURL + "/images/" + product.ID + "/"
		if !strings.HasPrefix(resp.ImageURL, prefix) || !strings.HasSuffix(resp.ImageURL, ".png") {
			t.Fatalf("expected url under %s, got %s", prefix, resp.ImageURL)
		}

		get := doJSON(http.MethodGet, strings.TrimPrefix(resp.ImageURL, testBaseURL), nil, "")
		if get.Code != http.StatusOK {
			t.Errorf("expected stored image to be served, got %d", get.Code)
		}
		if !bytes.Equal(get.Body.Bytes(), pngHeader) {
			t.Error("expected served bytes to match upload")
		}

		stored, _ := productRepo.GetByID(t.Context(), product.ID)
		if stored.ImageURL != nil {
			t.Error("expected upload not to patch the product")
		}
	})

	t.Run("Rejects non image", func(t *testing.T) {
		w := uploadImage(product.ID, "notes.png", []byte("just some text"))
		if w.Code != http.StatusUnsupportedMediaType {
			t.Errorf("expected 415, got %d", w.Code)
		}
		if w.Body.String() != "Please upload an image file\n" {
			t.Errorf("unexpected body %q", w.Body.String())
		}
	})

	t.Run("Unknown product", func(t *testing.T) {
		w := uploadImage("missing", "front.png", pngHeader)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}

func TestImportProductsHandler(t *testing.T) {
	t.Cleanup(clearCatalog)
	createCategory(t, "Jeans")
	createCategory(t, "Sarees")

	csvData := `name,slug,description,price,category_slug,in_stock,featured,tags,image_url
Slim Jeans,,Stretch denim,2999,jeans,true,false,denim|slim,
Silk Saree,silk-saree,,8999.50,sarees,false,true,silk,https://cdn/saree.jpg
No Price,,,abc,jeans,,,,
Lost,,,10,shirts,,,,
Slim Jeans,,,100,jeans,,,,`

	body, contentType := multipartFile("file", "products.csv", []byte(csvData))
	req := httptest.NewRequest(http.MethodPost, "/products/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ImportedProductsCount != 2 {
		t.Errorf("expected 2 imported products, got %d", resp.ImportedProductsCount)
	}

	wantRows := []string{"row 4", "row 5", "row 6"}
	if len(resp.Errors) != len(wantRows) {
		t.Fatalf("expected %d errors, got %v", len(wantRows), resp.Errors)
	}
	for i, row := range wantRows {
		if resp.Errors[i].Field != row {
			t.Errorf("expected error for %s, got %s", row, resp.Errors[i].Field)
		}
	}

	saree, err := productRepo.GetBySlug(t.Context(), "silk-saree")
	if err != nil {
		t.Fatalf("expected imported saree, got %v", err)
	}
	if saree.InStock || !saree.Featured || saree.ImageURL == nil {
		t.Errorf("expected flags and image from csv, got %+v", saree)
	}
	jeans, _ := productRepo.GetBySlug(t.Context(), "slim-jeans")
	if len(jeans.Tags) != 2 || !jeans.InStock {
		t.Errorf("expected tags split on | and default stock, got %+v", jeans)
	}
}

func TestImportProductsHandler_MissingFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/products/import", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCatalogStatsHandler(t *testing.T) {
	t.Cleanup(clearCatalog)
	jeans := createCategory(t, "Jeans")
	createCategory(t, "Sarees")
	createProduct(t, handler.ProductRequest{Name: "Slim Jeans", Price: decimal.NewFromInt(10), CategoryID: jeans.ID, InStock: true, Featured: true})
	createProduct(t, handler.ProductRequest{Name: "Wide Jeans", Price: decimal.NewFromInt(10), CategoryID: jeans.ID})

	w := doJSON(http.MethodGet, "/catalog/stats", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats repo.CatalogStats
	json.NewDecoder(w.Body).Decode(&stats)
	if stats.TotalProducts != 2 || stats.FeaturedCount != 1 || stats.OutOfStockCount != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if len(stats.ByCategory) != 2 {
		t.Errorf("expected a row per category, got %+v", stats.ByCategory)
	}
}

func TestStorefrontHandlers(t *testing.T) {
	t.Cleanup(clearCatalog)
	createCategory(t, "Sarees")
	createCategory(t, "Blazers")

	for _, path := range []string{"/storefront/navbar", "/storefront/cta", "/storefront/craftsmanship"} {
		t.Run(path, func(t *testing.T) {
			w := doJSON(http.MethodGet, path, nil, "")
			if w.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", w.Code)
			}
		})
	}

	w := doJSON(http.MethodGet, "/storefront/premium-banners", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var section storefront.PremiumBanners
	json.NewDecoder(w.Body).Decode(&section)
	if len(section.Banners) != 2 || section.Banners[0].Slug != "blazers" || section.Banners[1].Position != "right" {
		t.Errorf("unexpected banners %+v", section.Banners)
	}
}

func TestOperationalRoutes(t *testing.T) {
	for _, path := range []string{"/healthz", "/metrics", "/swagger/doc.json"} {
		t.Run(path, func(t *testing.T) {
			w := doJSON(http.MethodGet, path, nil, "")
			if w.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", w.Code)
			}
		})
	}

	w := doJSON(http.MethodGet, "/healthz", nil, "")
	if w.Header().Get(api.RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}

func TestLoginRateLimitAndBan(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	t.Cleanup(func() { rdb.Close() })

	limited := api.NewRouter(api.RouterConfig{
		Issuer:  issuer,
		Limiter: rl.New(0.001, 2),
		Bans:    ban.NewStore(rdb, 2, time.Minute),
	})

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
		req.RemoteAddr = "203.0.113.9:5555"
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)
		return w.Code
	}

	want := []int{
		http.StatusUnauthorized,
		http.StatusUnauthorized,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusForbidden,
	}
	for i, code := range want {
		if got := send(); got != code {
			t.Errorf("request %d: expected %d, got %d", i+1, code, got)
		}
	}
}
