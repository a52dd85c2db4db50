package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type variantSeed struct {
	Product       string
	Name          string
	SKU           string
	Price         string
	WeightGrams   string
	BatchNumber   string
	LicenseNumber string
	Quantity      int
	Threshold     int
}

// Apply inserts demo data for manual testing: one tenant, one location, a
// customer of age, and a few variants with inventory. Idempotent via
// ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	tenantID, err := ensureTenant(ctx, pool, "Demo Dispensary Co")
	if err != nil {
		return fmt.Errorf("ensure tenant: %w", err)
	}

	locationID, err := ensureLocation(ctx, pool, tenantID, "Downtown", "America/New_York", "0.08875", "0.09")
	if err != nil {
		return fmt.Errorf("ensure location: %w", err)
	}

	if err := ensureCustomer(ctx, pool, tenantID, "Avery Doe", "avery@example.com"); err != nil {
		return fmt.Errorf("ensure customer: %w", err)
	}

	variants := []variantSeed{
		{
			Product:       "House Blend Flower",
			Name:          "3.5g jar",
			SKU:           "SKU-FLOWER-3_5",
			Price:         "45.00",
			WeightGrams:   "3.5",
			BatchNumber:   "B-2401",
			LicenseNumber: "LIC-0042",
			Quantity:      120,
			Threshold:     20,
		},
		{
			Product:       "House Blend Flower",
			Name:          "7g jar",
			SKU:           "SKU-FLOWER-7",
			Price:         "80.00",
			WeightGrams:   "7",
			BatchNumber:   "B-2401",
			LicenseNumber: "LIC-0042",
			Quantity:      60,
			Threshold:     10,
		},
		{
			Product:       "Citrus Gummies",
			Name:          "10-pack",
			SKU:           "SKU-GUMMY-10",
			Price:         "25.00",
			WeightGrams:   "1",
			BatchNumber:   "B-2407",
			LicenseNumber: "LIC-0042",
			Quantity:      200,
			Threshold:     30,
		},
	}

	for _, v := range variants {
		if err := upsertVariant(ctx, pool, tenantID, locationID, v); err != nil {
			return fmt.Errorf("upsert variant %s: %w", v.SKU, err)
		}
	}

	return nil
}

func ensureTenant(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	const q = `
INSERT INTO tenants (name, age_verification_required, medical_only, id_reverification_days, daily_limit_grams)
VALUES ($1, true, false, 90, 28.5)
ON CONFLICT DO NOTHING
RETURNING id::text
`
	var id string
	err := pool.QueryRow(ctx, q, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	// Already present; look it up.
	err = pool.QueryRow(ctx, `SELECT id::text FROM tenants WHERE name = $1 LIMIT 1`, name).Scan(&id)
	return id, err
}

func ensureLocation(ctx context.Context, pool *pgxpool.Pool, tenantID, name, tz, taxRate, exciseRate string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id::text FROM locations WHERE tenant_id = $1 AND name = $2`, tenantID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	const q = `
INSERT INTO locations (tenant_id, name, timezone, tax_rate, excise_tax_rate)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`
	err = pool.QueryRow(ctx, q, tenantID, name, tz, taxRate, exciseRate).Scan(&id)
	return id, err
}

func ensureCustomer(ctx context.Context, pool *pgxpool.Pool, tenantID, name, email string) error {
	const q = `
INSERT INTO customers (tenant_id, name, email, date_of_birth, last_id_verified_at)
VALUES ($1, $2, $3, now()::date - interval '30 years', now())
ON CONFLICT (tenant_id, email) DO NOTHING
`
	_, err := pool.Exec(ctx, q, tenantID, name, email)
	return err
}

func upsertVariant(ctx context.Context, pool *pgxpool.Pool, tenantID, locationID string, v variantSeed) error {
	var productID string
	err := pool.QueryRow(ctx, `SELECT id::text FROM products WHERE tenant_id = $1 AND name = $2`, tenantID, v.Product).Scan(&productID)
	if err != nil {
		if err = pool.QueryRow(ctx, `
INSERT INTO products (tenant_id, name) VALUES ($1, $2) RETURNING id::text
`, tenantID, v.Product).Scan(&productID); err != nil {
			return err
		}
	}

	const upsert = `
INSERT INTO variants (product_id, name, sku, price, weight_grams, batch_number, license_number)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (sku) DO UPDATE SET price = EXCLUDED.price
RETURNING id::text
`
	var variantID string
	if err := pool.QueryRow(ctx, upsert, productID, v.Name, v.SKU, v.Price, v.WeightGrams, v.BatchNumber, v.LicenseNumber).Scan(&variantID); err != nil {
		return err
	}

	const stock = `
INSERT INTO inventory (variant_id, location_id, quantity, low_stock_threshold)
VALUES ($1, $2, $3, $4)
ON CONFLICT (variant_id, location_id) DO UPDATE SET low_stock_threshold = EXCLUDED.low_stock_threshold
`
	_, err = pool.Exec(ctx, stock, variantID, locationID, v.Quantity, v.Threshold)
	return err
}
