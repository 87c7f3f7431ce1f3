package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ovenlight/bakery-storefront/internal/models"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// productColumns is the shared projection for the page and detail queries.
// discount_amount is the best currently-valid coupon for the product: the
// coupon join below already restricts to active coupons inside their validity
// window whose scope covers the product, so MAX over the joined rows is the
// max over applicable coupons only.
const productColumns = `
	p.product_id, p.name, p.description, p.price, p.is_available, p.category_id,
	p.ingredients, p.collection, p.seasonal, p.stock_quantity, p.min_order_quantity,
	p.image_url, p.slug, p.created_at,
	c.name AS category_name,
	COALESCE(MAX(CASE
		WHEN cp.discount_type = 'percentage' THEN p.price * cp.discount_value / 100
		WHEN cp.discount_type = 'fixed_amount' THEN cp.discount_value
	END), 0) AS discount_amount,
	COALESCE(sales.total_sold, 0) AS total_sold`

const catalogJoins = `
	FROM products p
	LEFT JOIN categories c ON c.category_id = p.category_id
	LEFT JOIN coupons cp ON cp.is_active = TRUE
		AND NOW() BETWEEN cp.valid_from AND cp.valid_until
		AND (cp.applies_to_all = TRUE
			OR EXISTS (SELECT 1 FROM coupon_products x WHERE x.coupon_id = cp.coupon_id AND x.product_id = p.product_id)
			OR EXISTS (SELECT 1 FROM coupon_categories y WHERE y.coupon_id = cp.coupon_id AND y.category_id = p.category_id))
	LEFT JOIN (
		SELECT product_id, SUM(quantity) AS total_sold
		FROM order_items
		GROUP BY product_id
	) sales ON sales.product_id = p.product_id`

// every non-aggregated selected column, or Postgres rejects the MAX()
const catalogGroupBy = `
	GROUP BY p.product_id, p.name, p.description, p.price, p.is_available, p.category_id,
		p.ingredients, p.collection, p.seasonal, p.stock_quantity, p.min_order_quantity,
		p.image_url, p.slug, p.created_at, c.name, sales.total_sold`

// ListProducts runs the page query: filter, group, sort, paginate.
func (r *CatalogRepo) ListProducts(ctx context.Context, f models.CatalogFilter) ([]models.Product, error) {
	b := buildCatalogWhere(f)
	where := b.clause()
	limit := b.bind(f.Limit)
	offset := b.bind((f.Page - 1) * f.Limit)

	query := "SELECT" + productColumns + catalogJoins + where + catalogGroupBy +
		" ORDER BY " + orderClause(f.Sort) +
		" LIMIT " + limit + " OFFSET " + offset

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// CountProducts mirrors the page query's filters over the same WHERE clause.
// Only the categories join is kept: it is the only join the predicates can
// reference (search and category_slug), and the coupon/sales joins never
// filter rows.
func (r *CatalogRepo) CountProducts(ctx context.Context, f models.CatalogFilter) (int, error) {
	b := buildCatalogWhere(f)

	query := `SELECT COUNT(DISTINCT p.product_id)
	FROM products p
	LEFT JOIN categories c ON c.category_id = p.category_id` + b.clause()

	var total int
	if err := r.db.QueryRowContext(ctx, query, b.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// GetBySlug fetches a single product with the same enrichment as the listing.
func (r *CatalogRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	b := &whereBuilder{}
	b.and("p.slug = ?", slug)

	query := "SELECT" + productColumns + catalogJoins + b.clause() + catalogGroupBy

	row := r.db.QueryRowContext(ctx, query, b.args...)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return &p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s rowScanner) (models.Product, error) {
	var (
		p            models.Product
		categoryID   sql.NullInt64
		categoryName sql.NullString
		seasonal     sql.NullString
		ingredients  []byte
	)

	err := s.Scan(
		&p.ProductID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.IsAvailable,
		&categoryID,
		&ingredients,
		&p.Collection,
		&seasonal,
		&p.StockQuantity,
		&p.MinOrderQuantity,
		&p.ImageURL,
		&p.Slug,
		&p.CreatedAt,
		&categoryName,
		&p.DiscountAmount,
		&p.TotalSold,
	)
	if err != nil {
		return models.Product{}, err
	}

	if categoryID.Valid {
		id := int(categoryID.Int64)
		p.CategoryID = &id
	}
	if categoryName.Valid {
		p.CategoryName = categoryName.String
	}
	if seasonal.Valid {
		v := seasonal.String
		p.Seasonal = &v
	}
	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &p.Ingredients); err != nil {
			return models.Product{}, fmt.Errorf("decode ingredients: %w", err)
		}
	}
	return p, nil
}
