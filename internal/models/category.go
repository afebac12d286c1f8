package models

// Category groups products on the storefront and in the admin dropdown.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
