package productform

import (
	"context"
	"fmt"

	"github.com/klassico/storefront/internal/models"
)

type fakeService struct {
	products map[string]models.Product

	creates []models.Product
	updates []models.ProductPatch
	uploads []string

	createFalsy bool
	createErr   error
	updateFalsy bool
	uploadURL   string
	uploadErr   error
}

func newFakeService() *fakeService {
	return &fakeService{products: map[string]models.Product{}, uploadURL: "https://cdn.example/img.png"}
}

func (s *fakeService) calls() int {
	return len(s.creates) + len(s.updates)
}

func (s *fakeService) GetCategories(context.Context) ([]models.Category, error) {
	return []models.Category{{ID: "c1", Name: "Jeans", Slug: "jeans"}}, nil
}

func (s *fakeService) CreateProduct(_ context.Context, p models.Product) (*models.Product, error) {
	s.creates = append(s.creates, p)
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createFalsy {
		return nil, nil
	}
	p.ID = fmt.Sprintf("p%d", len(s.products)+1)
	s.products[p.ID] = p
	return &p, nil
}

func (s *fakeService) UpdateProduct(_ context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	s.updates = append(s.updates, patch)
	if s.updateFalsy {
		return nil, nil
	}
	existing, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	updated := patch.Apply(existing)
	s.products[id] = updated
	return &updated, nil
}

func (s *fakeService) UploadProductImage(_ context.Context, file File, productID string) (string, error) {
	s.uploads = append(s.uploads, productID)
	return s.uploadURL, s.uploadErr
}

type fakeCache struct {
	invalidated []string
}

func (c *fakeCache) InvalidateTag(_ context.Context, tag string) error {
	c.invalidated = append(c.invalidated, tag)
	return nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }

func (n *recordingNotifier) Error(msg string) { n.errors = append(n.errors, msg) }

type staticSession bool

func (s staticSession) Authenticated() bool { return bool(s) }
