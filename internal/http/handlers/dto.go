package handlers

import (
	"github.com/klassico/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id"`
	InStock     bool            `json:"in_stock"`
	Featured    bool            `json:"featured"`
	Tags        []string        `json:"tags"`
	ImageURL    *string         `json:"image_url"`
}

func (p ProductRequest) toModel() models.Product {
	return models.Product{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		InStock:     p.InStock,
		Featured:    p.Featured,
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
	}
}

func requestFromProduct(p models.Product) ProductRequest {
	return ProductRequest{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		InStock:     p.InStock,
		Featured:    p.Featured,
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
	}
}

type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []models.Product `json:"data"`
	Meta Meta             `json:"meta"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type ImageUploadResult struct {
	ImageURL string `json:"image_url"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
