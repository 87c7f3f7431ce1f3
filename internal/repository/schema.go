package repository

import (
	"context"
	"database/sql"
	"fmt"
)

func productsSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			category_slug TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			category_id INT REFERENCES categories(category_id),
			ingredients JSONB NOT NULL DEFAULT '[]',
			collection TEXT NOT NULL DEFAULT '',
			seasonal TEXT,
			stock_quantity INT NOT NULL DEFAULT 0,
			min_order_quantity INT NOT NULL DEFAULT 1,
			image_url TEXT NOT NULL DEFAULT '',
			slug TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
}

func couponsSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS coupons (
			coupon_id SERIAL PRIMARY KEY,
			discount_type TEXT NOT NULL CHECK (discount_type IN ('percentage', 'fixed_amount')),
			discount_value NUMERIC(10,2) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			valid_from TIMESTAMPTZ NOT NULL,
			valid_until TIMESTAMPTZ NOT NULL,
			applies_to_all BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE IF NOT EXISTS coupon_products (
			coupon_id INT NOT NULL REFERENCES coupons(coupon_id),
			product_id INT NOT NULL REFERENCES products(product_id),
			PRIMARY KEY (coupon_id, product_id)
		);

		CREATE TABLE IF NOT EXISTS coupon_categories (
			coupon_id INT NOT NULL REFERENCES coupons(coupon_id),
			category_id INT NOT NULL REFERENCES categories(category_id),
			PRIMARY KEY (coupon_id, category_id)
		);
	`
}

func orderItemsSchema() string {
	return `
		CREATE TABLE IF NOT EXISTS order_items (
			order_item_id SERIAL PRIMARY KEY,
			product_id INT NOT NULL REFERENCES products(product_id),
			quantity INT NOT NULL CHECK (quantity > 0)
		);
	`
}

// EnsureSchema creates the catalog tables if they do not exist. Idempotent,
// run once at startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range []string{productsSchema(), couponsSchema(), orderItemsSchema()} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
