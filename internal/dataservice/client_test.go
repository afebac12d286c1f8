package dataservice

import (
	"context"
	"fmt"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/klassico/storefront/internal/auth"
	api "github.com/klassico/storefront/internal/http"
	"github.com/klassico/storefront/internal/http/handlers"
	"github.com/klassico/storefront/internal/models"
	"github.com/klassico/storefront/internal/productform"
	"github.com/klassico/storefront/internal/redissvc"
	"github.com/klassico/storefront/internal/repo"
	"github.com/klassico/storefront/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var (
	server     *httptest.Server
	cache      *redissvc.RedisService
	categoryID string
)

func TestMain(m *testing.M) {
	mr, err := miniredis.Run()
	if err != nil {
		panic(fmt.Sprintf("error starting miniredis: %v", err))
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache = redissvc.NewRedisService(rdb)

	imageDir, err := os.MkdirTemp("", "klassico-client")
	if err != nil {
		panic(err)
	}

	products := repo.NewInMemoryProductRepository()
	categories := repo.NewInMemoryCategoryRepository()
	users := repo.NewInMemoryUserRepository()
	issuer := auth.NewTokenIssuer("client-test", time.Minute)
	authService := auth.NewAuthService(users, issuer, auth.NewMemoryRefreshStore(), time.Hour)
	if _, err := authService.SeedAdmin(context.Background(), "admin", "secret"); err != nil {
		panic(err)
	}
	jeans, _ := categories.Create(context.Background(), models.Category{Name: "Jeans", Slug: "jeans"})
	categoryID = jeans.ID

	handlers.SetProductRepo(products)
	handlers.SetCategoryRepo(categories)
	handlers.SetAuthService(authService)
	handlers.SetListingCache(cache, time.Minute)

	server = httptest.NewServer(api.NewRouter(api.RouterConfig{Issuer: issuer, ImageDir: imageDir}))
	handlers.SetImageStore(storage.NewLocalImageStore(imageDir, server.URL))

	code := m.Run()
	server.Close()
	rdb.Close()
	mr.Close()
	os.RemoveAll(imageDir)
	os.Exit(code)
}

func loggedIn(t *testing.T) *Client {
	t.Helper()
	c := New(server.URL, 5*time.Second)
	if err := c.Login(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return c
}

type notifications struct {
	successes []string
	errors    []string
}

func (n *notifications) Success(msg string) { n.successes = append(n.successes, msg) }

func (n *notifications) Error(msg string) { n.errors = append(n.errors, msg) }

func TestClient_Login(t *testing.T) {
	c := New(server.URL, 5*time.Second)
	if c.Authenticated() {
		t.Error("expected a new client to be anonymous")
	}
	if err := c.Login(context.Background(), "admin", "wrong"); err != ErrLoginFailed {
		t.Errorf("expected ErrLoginFailed, got %v", err)
	}
	if err := c.Login(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if !c.Authenticated() {
		t.Error("expected client to be authenticated")
	}
}

func TestClient_GetCategories(t *testing.T) {
	c := New(server.URL, 5*time.Second)
	categories, err := c.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 1 || categories[0].Slug != "jeans" {
		t.Errorf("expected the jeans category, got %+v", categories)
	}
}

func TestClient_FalsyResults(t *testing.T) {
	c := loggedIn(t)
	ctx := context.Background()

	created, err := c.CreateProduct(ctx, models.Product{Name: "Orphan", Price: decimal.NewFromInt(1), CategoryID: "missing"})
	if err != nil || created != nil {
		t.Errorf("expected nil product and nil error for a rejected create, got %v / %v", created, err)
	}

	updated, err := c.UpdateProduct(ctx, "missing", models.ProductPatch{})
	if err != nil || updated != nil {
		t.Errorf("expected nil product and nil error for a rejected update, got %v / %v", updated, err)
	}

	anonymous := New(server.URL, 5*time.Second)
	created, err = anonymous.CreateProduct(ctx, models.Product{Name: "X", Price: decimal.NewFromInt(1), CategoryID: categoryID})
	if err != nil || created != nil {
		t.Errorf("expected unauthorized create to be falsy, got %v / %v", created, err)
	}
}

func TestClient_TransportError(t *testing.T) {
	dead := httptest.NewServer(nil)
	dead.Close()

	c := New(dead.URL, time.Second)
	if _, err := c.GetCategories(context.Background()); err == nil {
		t.Error("expected a transport error")
	}
}

func TestWorkflowAgainstCatalogService(t *testing.T) {
	c := loggedIn(t)
	ctx := context.Background()
	note := &notifications{}
	closed := false
	w := productform.NewWorkflow(c, cache, note, c, productform.WithOnClose(func() { closed = true }))

	// warm the listing cache so the invalidation is observable
	if _, _, err := c.ListProducts(ctx, nil); err != nil {
		t.Fatalf("listing failed: %v", err)
	}

	f := productform.New()
	f.SetName("Milano Slim Fit Jeans")
	f.SelectCategory(categoryID)
	f.SetPrice("2999")
	f.SetTagInput("denim")
	f.AddTag()
	f.SelectImage(productform.File{Name: "front.png", Data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")})

	outcome, err := w.Submit(ctx, f)
	if err != nil {
		t.Fatalf("expected submit to succeed, got %v (notifications %v)", err, note.errors)
	}
	if outcome.ImageFailed || outcome.ImageURL == "" {
		t.Fatalf("expected image to be uploaded, got %+v (errors %v)", outcome, note.errors)
	}
	if !closed || len(note.successes) != 1 || note.successes[0] != productform.MsgCreated {
		t.Errorf("expected success and close, got %v", note.successes)
	}

	stored, err := c.GetProduct(ctx, outcome.Product.ID)
	if err != nil || stored == nil {
		t.Fatalf("expected stored product, got %v / %v", stored, err)
	}
	if stored.Slug != "milano-slim-fit-jeans" || !stored.Price.Equal(decimal.NewFromInt(2999)) {
		t.Errorf("unexpected stored product %+v", stored)
	}
	if stored.ImageURL == nil || *stored.ImageURL != outcome.ImageURL {
		t.Errorf("expected image url to be recorded, got %v", stored.ImageURL)
	}

	list, total, err := c.ListProducts(ctx, url.Values{"tag": {"denim"}})
	if err != nil || total != 1 || len(list) != 1 {
		t.Errorf("expected the new product in a fresh listing, got %d (%v)", total, err)
	}

	edit := productform.Load(*stored)
	edit.SetPrice("abc")
	if _, err := w.Submit(ctx, edit); err != productform.ErrInvalidPrice {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}

	edit.SetPrice("1999")
	edit.SetFeatured(true)
	outcome, err = w.Submit(ctx, edit)
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if !outcome.Product.Featured || outcome.Product.ImageURL == nil {
		t.Errorf("expected featured product keeping its image, got %+v", outcome.Product)
	}
}
