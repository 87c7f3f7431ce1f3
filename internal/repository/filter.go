package repository

import (
	"strconv"
	"strings"

	"github.com/ovenlight/bakery-storefront/internal/models"
)

// whereBuilder collects AND-ed predicates together with their bound values.
// Placeholders are numbered as values are appended, so the clause text and
// the argument slice cannot drift apart.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// and appends one predicate. Every "?" in cond is rewritten, left to right,
// to the next $n placeholder; the number of "?" marks must equal len(vals).
func (b *whereBuilder) and(cond string, vals ...interface{}) {
	for _, v := range vals {
		b.args = append(b.args, v)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(b.args)), 1)
	}
	b.conds = append(b.conds, cond)
}

// bind appends one value outside the WHERE clause (LIMIT/OFFSET) and returns
// its placeholder.
func (b *whereBuilder) bind(v interface{}) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *whereBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// buildCatalogWhere turns a filter into the shared WHERE clause consumed by
// both the page query and the count query. Predicates only ever reference
// products (p) and categories (c); the coupon and sales joins add columns but
// never filter rows, which is what lets the count query omit them.
func buildCatalogWhere(f models.CatalogFilter) *whereBuilder {
	b := &whereBuilder{}

	if f.Search != "" {
		term := "%" + f.Search + "%"
		b.and(`(p.product_id::TEXT ILIKE ? OR p.name ILIKE ? OR p.description ILIKE ? OR p.ingredients::TEXT ILIKE ? OR p.collection ILIKE ? OR c.name ILIKE ? OR p.seasonal ILIKE ?)`,
			term, term, term, term, term, term, term)
	}

	// category_id wins over category_slug when both are present
	switch {
	case f.CategoryID != nil:
		b.and("p.category_id = ?", *f.CategoryID)
	case f.CategorySlug != "":
		b.and("c.category_slug = ?", f.CategorySlug)
	}

	if len(f.Ingredients) > 0 {
		parts := make([]string, 0, len(f.Ingredients))
		vals := make([]interface{}, 0, len(f.Ingredients))
		for _, ing := range f.Ingredients {
			parts = append(parts, "EXISTS (SELECT 1 FROM jsonb_array_elements_text(p.ingredients) AS ing WHERE ing ILIKE ?)")
			vals = append(vals, "%"+ing+"%")
		}
		b.and("("+strings.Join(parts, " OR ")+")", vals...)
	}

	if f.Collection != "" {
		b.and("p.collection = ?", f.Collection)
	}

	// an unknown season means "no seasonal filter", not "match nothing"
	if f.Seasonal != "" && models.IsValidSeason(f.Seasonal) {
		b.and("p.seasonal = ?", f.Seasonal)
	}

	if f.IsAvailable != nil {
		b.and("p.is_available = ?", *f.IsAvailable)
	}
	if f.MinPrice != nil {
		b.and("p.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.and("p.price <= ?", *f.MaxPrice)
	}

	return b
}

// orderClause maps a sort key to its ORDER BY expression. Unknown keys fall
// back to ascending alphabetical.
func orderClause(sort string) string {
	switch sort {
	case models.SortNewest:
		return "p.created_at DESC"
	case models.SortOldest:
		return "p.created_at ASC"
	case models.SortBestSelling:
		// products that never sold go last, not first
		return "sales.total_sold DESC NULLS LAST"
	case models.SortDiscountHigh:
		return "discount_amount DESC"
	case models.SortDiscountLow:
		return "discount_amount ASC"
	case models.SortPriceHigh:
		return "p.price DESC"
	case models.SortPriceLow:
		return "p.price ASC"
	case models.SortAlphabetDesc:
		return "p.name DESC"
	default:
		return "p.name ASC"
	}
}
