package models

import "strconv"

// Pagination defaults. The storefront grid shows 12 products per page and the
// API never hands out more than that in one response.
const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 12
)

// Sort keys accepted by the catalog listing. Anything else falls back to
// SortDefault (ascending alphabetical by name).
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortBestSelling  = "best_selling"
	SortDiscountHigh = "discount_high"
	SortDiscountLow  = "discount_low"
	SortPriceHigh    = "price_high"
	SortPriceLow     = "price_low"
	SortAlphabetDesc = "alphabet_desc"
	SortDefault      = ""
)

// seasons the storefront recognises; anything else on the seasonal filter is
// dropped rather than matched.
var allowedSeasons = map[string]bool{
	"Christmas":    true,
	"Valentine's":  true,
	"Easter":       true,
	"New Year":     true,
	"Halloween":    true,
	"Mother's Day": true,
	"Father's Day": true,
}

func IsValidSeason(s string) bool {
	return allowedSeasons[s]
}

// CatalogFilter is the normalized parameter bag for the product listing.
// Pointer fields are omitted filters; zero-value strings/slices likewise.
type CatalogFilter struct {
	Search       string
	CategoryID   *int
	CategorySlug string
	Ingredients  []string
	Collection   string
	Seasonal     string
	IsAvailable  *bool
	MinPrice     *float64
	MaxPrice     *float64
	Sort         string
	Page         int
	Limit        int
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type CatalogPage struct {
	Products   []Product
	Pagination Pagination
}

// NormalizePage coerces a raw page parameter to a usable page number:
// non-numeric input falls back to the default, numeric input is floor-clamped
// to 1.
func NormalizePage(raw string) int {
	if raw == "" {
		return DefaultPage
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultPage
	}
	if n < 1 {
		return 1
	}
	return n
}

// NormalizeLimit coerces a raw limit parameter into [1, MaxLimit].
// Non-numeric input falls back to the default of 12.
func NormalizeLimit(raw string) int {
	if raw == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultLimit
	}
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
