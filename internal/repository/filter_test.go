package repository

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenlight/bakery-storefront/internal/models"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// assertPlaceholdersMatchArgs checks the central invariant of the builder:
// placeholders are numbered 1..len(args) in order of first appearance.
func assertPlaceholdersMatchArgs(t *testing.T, clause string, args []interface{}) {
	t.Helper()

	matches := placeholderRe.FindAllStringSubmatch(clause, -1)
	seen := map[string]bool{}
	var ordered []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			ordered = append(ordered, m[1])
		}
	}

	require.Len(t, ordered, len(args), "distinct placeholders must equal bound args")
	for i, n := range ordered {
		assert.Equal(t, fmt.Sprintf("%d", i+1), n, "placeholders must be sequential")
	}
}

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestWhereBuilderNumbersPlaceholders(t *testing.T) {
	b := &whereBuilder{}
	b.and("p.price >= ?", 5.0)
	b.and("p.price <= ?", 10.0)
	b.and("(p.name ILIKE ? OR p.description ILIKE ?)", "%a%", "%a%")

	clause := b.clause()
	assert.Equal(t, " WHERE p.price >= $1 AND p.price <= $2 AND (p.name ILIKE $3 OR p.description ILIKE $4)", clause)
	assert.Equal(t, []interface{}{5.0, 10.0, "%a%", "%a%"}, b.args)
}

func TestWhereBuilderEmpty(t *testing.T) {
	b := &whereBuilder{}
	assert.Equal(t, "", b.clause())
	assert.Empty(t, b.args)
}

func TestWhereBuilderBindAfterWhere(t *testing.T) {
	b := &whereBuilder{}
	b.and("p.collection = ?", "classics")

	assert.Equal(t, "$2", b.bind(12))
	assert.Equal(t, "$3", b.bind(0))
	assert.Equal(t, []interface{}{"classics", 12, 0}, b.args)
}

func TestBuildCatalogWhere(t *testing.T) {
	testCases := []struct {
		name         string
		filter       models.CatalogFilter
		wantContains []string
		wantAbsent   []string
		wantArgs     []interface{}
	}{
		{
			name:     "no filters",
			filter:   models.CatalogFilter{},
			wantArgs: nil,
		},
		{
			name:   "search spans all text columns",
			filter: models.CatalogFilter{Search: "choco"},
			wantContains: []string{
				"p.product_id::TEXT ILIKE $1",
				"p.name ILIKE $2",
				"p.description ILIKE $3",
				"p.ingredients::TEXT ILIKE $4",
				"p.collection ILIKE $5",
				"c.name ILIKE $6",
				"p.seasonal ILIKE $7",
			},
			wantArgs: []interface{}{"%choco%", "%choco%", "%choco%", "%choco%", "%choco%", "%choco%", "%choco%"},
		},
		{
			name:         "category id",
			filter:       models.CatalogFilter{CategoryID: intPtr(3)},
			wantContains: []string{"p.category_id = $1"},
			wantArgs:     []interface{}{3},
		},
		{
			name:         "category slug",
			filter:       models.CatalogFilter{CategorySlug: "cakes"},
			wantContains: []string{"c.category_slug = $1"},
			wantArgs:     []interface{}{"cakes"},
		},
		{
			name:         "category id wins over slug",
			filter:       models.CatalogFilter{CategoryID: intPtr(3), CategorySlug: "cakes"},
			wantContains: []string{"p.category_id = $1"},
			wantAbsent:   []string{"category_slug"},
			wantArgs:     []interface{}{3},
		},
		{
			name:   "ingredients are ORed",
			filter: models.CatalogFilter{Ingredients: []string{"almond", "vanilla"}},
			wantContains: []string{
				"jsonb_array_elements_text(p.ingredients)",
				"ing ILIKE $1",
				"ing ILIKE $2",
				" OR ",
			},
			wantArgs: []interface{}{"%almond%", "%vanilla%"},
		},
		{
			name:         "collection exact match",
			filter:       models.CatalogFilter{Collection: "classics"},
			wantContains: []string{"p.collection = $1"},
			wantArgs:     []interface{}{"classics"},
		},
		{
			name:         "valid seasonal",
			filter:       models.CatalogFilter{Seasonal: "Christmas"},
			wantContains: []string{"p.seasonal = $1"},
			wantArgs:     []interface{}{"Christmas"},
		},
		{
			name:       "unknown seasonal is a no-op, not an empty set",
			filter:     models.CatalogFilter{Seasonal: "NotARealSeason"},
			wantAbsent: []string{"seasonal"},
			wantArgs:   nil,
		},
		{
			name:         "availability",
			filter:       models.CatalogFilter{IsAvailable: boolPtr(false)},
			wantContains: []string{"p.is_available = $1"},
			wantArgs:     []interface{}{false},
		},
		{
			name:         "price bounds are inclusive",
			filter:       models.CatalogFilter{MinPrice: floatPtr(5), MaxPrice: floatPtr(20)},
			wantContains: []string{"p.price >= $1", "p.price <= $2"},
			wantArgs:     []interface{}{5.0, 20.0},
		},
		{
			name: "combined filters keep placeholders in lockstep",
			filter: models.CatalogFilter{
				Search:      "tart",
				CategorySlug: "pastries",
				Ingredients: []string{"lemon"},
				Collection:  "summer",
				Seasonal:    "Easter",
				IsAvailable: boolPtr(true),
				MinPrice:    floatPtr(1),
				MaxPrice:    floatPtr(50),
			},
			wantContains: []string{
				"c.category_slug = $8",
				"ing ILIKE $9",
				"p.collection = $10",
				"p.seasonal = $11",
				"p.is_available = $12",
				"p.price >= $13",
				"p.price <= $14",
			},
			wantArgs: []interface{}{
				"%tart%", "%tart%", "%tart%", "%tart%", "%tart%", "%tart%", "%tart%",
				"pastries", "%lemon%", "summer", "Easter", true, 1.0, 50.0,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := buildCatalogWhere(tc.filter)
			clause := b.clause()

			if len(tc.wantArgs) == 0 {
				assert.Equal(t, "", clause)
			} else {
				assert.True(t, strings.HasPrefix(clause, " WHERE "))
			}
			for _, want := range tc.wantContains {
				assert.Contains(t, clause, want)
			}
			for _, absent := range tc.wantAbsent {
				assert.NotContains(t, clause, absent)
			}
			assert.Equal(t, tc.wantArgs, b.args)
			assertPlaceholdersMatchArgs(t, clause, b.args)
		})
	}
}

// The count query only carries the categories join, so the shared WHERE
// clause must never reference coupon or sales columns.
func TestCatalogWhereNeverReferencesNonFilterJoins(t *testing.T) {
	f := models.CatalogFilter{
		Search:      "x",
		CategoryID:  intPtr(1),
		Ingredients: []string{"a", "b"},
		Collection:  "c",
		Seasonal:    "Easter",
		IsAvailable: boolPtr(true),
		MinPrice:    floatPtr(0),
		MaxPrice:    floatPtr(9),
	}

	clause := buildCatalogWhere(f).clause()
	assert.NotContains(t, clause, "cp.")
	assert.NotContains(t, clause, "sales.")
	assert.NotContains(t, clause, "discount_amount")
}

func TestOrderClause(t *testing.T) {
	testCases := []struct {
		sort     string
		expected string
	}{
		{models.SortNewest, "p.created_at DESC"},
		{models.SortOldest, "p.created_at ASC"},
		{models.SortBestSelling, "sales.total_sold DESC NULLS LAST"},
		{models.SortDiscountHigh, "discount_amount DESC"},
		{models.SortDiscountLow, "discount_amount ASC"},
		{models.SortPriceHigh, "p.price DESC"},
		{models.SortPriceLow, "p.price ASC"},
		{models.SortAlphabetDesc, "p.name DESC"},
		{"", "p.name ASC"},
		{"garbage", "p.name ASC"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, orderClause(tc.sort), "sort %q", tc.sort)
	}
}

// Sanity checks on the shared query fragments: the coupon join must gate on
// the validity window at query time, and the discount must distinguish the
// two coupon types.
func TestCatalogJoinsEnforceCouponValidity(t *testing.T) {
	assert.Contains(t, catalogJoins, "cp.is_active = TRUE")
	assert.Contains(t, catalogJoins, "NOW() BETWEEN cp.valid_from AND cp.valid_until")
	assert.Contains(t, catalogJoins, "cp.applies_to_all = TRUE")
	assert.Contains(t, catalogJoins, "coupon_products")
	assert.Contains(t, catalogJoins, "coupon_categories")

	assert.Contains(t, productColumns, "WHEN cp.discount_type = 'percentage' THEN p.price * cp.discount_value / 100")
	assert.Contains(t, productColumns, "WHEN cp.discount_type = 'fixed_amount' THEN cp.discount_value")
	assert.Contains(t, productColumns, "COALESCE(MAX(CASE")
}

// Every non-aggregated selected column must appear in the GROUP BY.
func TestGroupByEnumeratesSelectedColumns(t *testing.T) {
	for _, col := range []string{
		"p.product_id", "p.name", "p.description", "p.price", "p.is_available",
		"p.category_id", "p.ingredients", "p.collection", "p.seasonal",
		"p.stock_quantity", "p.min_order_quantity", "p.image_url", "p.slug",
		"p.created_at", "c.name", "sales.total_sold",
	} {
		assert.Contains(t, catalogGroupBy, col)
	}
}
