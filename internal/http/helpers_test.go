package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/klassico/storefront/internal/auth"
	api "github.com/klassico/storefront/internal/http"
	handler "github.com/klassico/storefront/internal/http/handlers"
	"github.com/klassico/storefront/internal/models"
	"github.com/klassico/storefront/internal/redissvc"
	"github.com/klassico/storefront/internal/repo"
	"github.com/klassico/storefront/internal/storage"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const testBaseURL = "http://localhost:8080"

var (
	router       http.Handler
	token        string
	viewerToken  string
	issuer       *auth.TokenIssuer
	productRepo  *repo.InMemoryProductRepository
	categoryRepo *repo.InMemoryCategoryRepository
	redisServer  *miniredis.Miniredis
)

func TestMain(m *testing.M) {
	var err error
	redisServer, err = miniredis.Run()
	if err != nil {
		panic(fmt.Sprintf("error starting miniredis: %v", err))
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})

	imageDir, err := os.MkdirTemp("", "klassico-images")
	if err != nil {
		panic(fmt.Sprintf("error creating image dir: %v", err))
	}

	setupTestRepos("secret", rdb, imageDir)
	router = api.NewRouter(api.RouterConfig{Issuer: issuer, ImageDir: imageDir})

	token, err = generateToken(router, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	viewerToken, err = generateToken(router, "viewer", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating viewer token: %v", err))
	}

	code := m.Run()
	rdb.Close()
	redisServer.Close()
	os.RemoveAll(imageDir)
	os.Exit(code)
}

func setupTestRepos(password string, rdb *redis.Client, imageDir string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	categoryRepo = repo.NewInMemoryCategoryRepository()
	handler.SetCategoryRepo(categoryRepo)
	handler.SetStatsRepo(repo.NewInMemoryStatsRepository(productRepo, categoryRepo))

	userRepo := repo.NewInMemoryUserRepository()
	issuer = auth.NewTokenIssuer("test-secret", time.Minute)
	authService := auth.NewAuthService(userRepo, issuer, auth.NewMemoryRefreshStore(), time.Hour)
	handler.SetAuthService(authService)

	if _, err := authService.SeedAdmin(context.Background(), "admin", password); err != nil {
		panic(fmt.Sprintf("error seeding admin: %v", err))
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	userRepo.CreateUser(context.Background(), models.User{
		Username:     "viewer",
		PasswordHash: string(hash),
		Role:         models.RoleViewer,
	})

	handler.SetListingCache(redissvc.NewRedisService(rdb), time.Minute)
	handler.SetImageStore(storage.NewLocalImageStore(imageDir, testBaseURL))
	handler.SetMaxUploadBytes(1 << 20)
}

func clearCatalog() {
	productRepo.Clear()
	categoryRepo.Clear()
	redisServer.FlushAll()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	resp, err := login(r, username, password)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func login(r http.Handler, username, password string) (handler.LoginResult, error) {
	body, _ := json.Marshal(handler.UserLogin{Username: username, Password: password})

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	if w.Code != http.StatusOK {
		return resp, fmt.Errorf("login returned %d: %s", w.Code, w.Body.String())
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("token decoding failed: %v", err)
	}
	return resp, nil
}

func doJSON(method, path string, payload any, bearer string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createCategory(t *testing.T, name string) models.Category {
	t.Helper()
	w := doJSON(http.MethodPost, "/categories", handler.CategoryRequest{Name: name}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating category, got %d: %s", w.Code, w.Body.String())
	}
	var c models.Category
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("error decoding category: %v", err)
	}
	return c
}

func createProduct(t *testing.T, p handler.ProductRequest) models.Product {
	t.Helper()
	w := doJSON(http.MethodPost, "/products", p, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating product, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Product
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	return created
}

func multipartFile(field, filename string, content []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile(field, filename)
	part.Write(content)

	writer.Close()
	return &buf, writer.FormDataContentType()
}
