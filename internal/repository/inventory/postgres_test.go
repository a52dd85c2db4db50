package inventory

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"greenleaf-commerce/internal/domain"
	"greenleaf-commerce/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func seedInventory(ctx context.Context, t *testing.T, pool *pgxpool.Pool, quantity int) (variantID, locationID string) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE inventory, variants, products, locations, tenants RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	var tenantID, productID string
	if err := pool.QueryRow(ctx,
		`INSERT INTO tenants (name) VALUES ('Test Tenant') RETURNING id::text`).Scan(&tenantID); err != nil {
		t.Fatalf("insert tenant: %v", err)
	}
	if err := pool.QueryRow(ctx,
		`INSERT INTO locations (tenant_id, name) VALUES ($1, 'Main St') RETURNING id::text`,
		tenantID).Scan(&locationID); err != nil {
		t.Fatalf("insert location: %v", err)
	}
	if err := pool.QueryRow(ctx,
		`INSERT INTO products (tenant_id, name) VALUES ($1, 'Blue Dream') RETURNING id::text`,
		tenantID).Scan(&productID); err != nil {
		t.Fatalf("insert product: %v", err)
	}
	if err := pool.QueryRow(ctx,
		`INSERT INTO variants (product_id, name, sku, price, weight_grams) VALUES ($1, '3.5g', 'BD-35', 45.00, 3.5) RETURNING id::text`,
		productID).Scan(&variantID); err != nil {
		t.Fatalf("insert variant: %v", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO inventory (variant_id, location_id, quantity, low_stock_threshold) VALUES ($1, $2, $3, 5)`,
		variantID, locationID, quantity); err != nil {
		t.Fatalf("insert inventory: %v", err)
	}
	return variantID, locationID
}

func TestPostgres_AdjustClampsAtZero(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	variantID, locationID := seedInventory(ctx, t, pool, 5)

	repo := NewPostgres(pool)

	got, err := repo.Adjust(ctx, pool, variantID, locationID, -10)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got != 0 {
		t.Fatalf("quantity %d, want 0 after over-decrement", got)
	}

	got, err = repo.Adjust(ctx, pool, variantID, locationID, 3)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got != 3 {
		t.Fatalf("quantity %d, want 3 after restock", got)
	}
}

func TestPostgres_AdjustUnknownVariant(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	_, locationID := seedInventory(ctx, t, pool, 5)

	repo := NewPostgres(pool)
	_, err := repo.Adjust(ctx, pool, "00000000-0000-0000-0000-000000000000", locationID, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
