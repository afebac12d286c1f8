package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a catalog item sold on the storefront.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id"`
	InStock     bool            `json:"in_stock"`
	Featured    bool            `json:"featured"`
	Tags        []string        `json:"tags"`
	ImageURL    *string         `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// ProductPatch carries a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Slug        *string          `json:"slug,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	InStock     *bool            `json:"in_stock,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

// Empty reports whether the patch sets no field.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Slug == nil && p.Description == nil && p.Price == nil &&
		p.CategoryID == nil && p.InStock == nil && p.Featured == nil && p.Tags == nil &&
		p.ImageURL == nil
}

// Apply returns a copy of product with the patch fields written over it.
func (p ProductPatch) Apply(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Slug != nil {
		product.Slug = *p.Slug
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.CategoryID != nil {
		product.CategoryID = *p.CategoryID
	}
	if p.InStock != nil {
		product.InStock = *p.InStock
	}
	if p.Featured != nil {
		product.Featured = *p.Featured
	}
	if p.Tags != nil {
		product.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.ImageURL != nil {
		url := *p.ImageURL
		product.ImageURL = &url
	}
	return product
}

// PatchFrom builds a patch that sets every writable attribute of product.
func PatchFrom(product Product) ProductPatch {
	tags := append([]string{}, product.Tags...)
	patch := ProductPatch{
		Name:        &product.Name,
		Slug:        &product.Slug,
		Description: &product.Description,
		Price:       &product.Price,
		CategoryID:  &product.CategoryID,
		InStock:     &product.InStock,
		Featured:    &product.Featured,
		Tags:        &tags,
	}
	if product.ImageURL != nil {
		url := *product.ImageURL
		patch.ImageURL = &url
	}
	return patch
}
