package repo

import "github.com/shopspring/decimal"

type ProductFilter struct {
	Query      string
	CategoryID string
	Tag        string
	Featured   *bool
	InStock    *bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Offset     *int
	Limit      *int
}
