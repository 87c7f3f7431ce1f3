package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ProductID        int             `json:"product_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	IsAvailable      bool            `json:"is_available"`
	CategoryID       *int            `json:"category_id"`
	CategoryName     string          `json:"category_name,omitempty"`
	Ingredients      []string        `json:"ingredients"`
	Collection       string          `json:"collection"`
	Seasonal         *string         `json:"seasonal"`
	StockQuantity    int             `json:"stock_quantity"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	ImageURL         string          `json:"image_url"`
	Slug             string          `json:"slug"`
	CreatedAt        time.Time       `json:"created_at"`

	// Computed by the catalog queries, never stored.
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalSold      int64           `json:"total_sold"`
}

type Category struct {
	CategoryID   int    `json:"category_id"`
	Name         string `json:"name"`
	CategorySlug string `json:"category_slug"`
}
