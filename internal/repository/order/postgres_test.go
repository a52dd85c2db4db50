package order

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

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

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE deliveries, order_status_history, order_items, orders,
		order_number_sequences, compliance_logs, daily_reports, cart_items, carts,
		inventory, variants, products, customers, locations, tenants RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func seedTenant(ctx context.Context, t *testing.T, pool *pgxpool.Pool) (tenantID, locationID, customerID string) {
	t.Helper()
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
		`INSERT INTO customers (tenant_id, name, email) VALUES ($1, 'Dana', 'dana@example.com') RETURNING id::text`,
		tenantID).Scan(&customerID); err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	return tenantID, locationID, customerID
}

func TestPostgres_CreateAndGetByID(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)
	tenantID, locationID, customerID := seedTenant(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	o := &domain.Order{
		OrderNumber:     "ORD-20250601-0001",
		TenantID:        tenantID,
		LocationID:      locationID,
		CustomerID:      customerID,
		Subtotal:        decimal.RequireFromString("90.00"),
		Tax:             decimal.RequireFromString("7.99"),
		ExciseTax:       decimal.RequireFromString("8.10"),
		Discount:        decimal.Zero,
		Total:           decimal.RequireFromString("106.09"),
		FulfillmentType: domain.FulfillmentPickup,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		ContactName:     "Dana",
		ContactEmail:    "dana@example.com",
	}
	if err := repo.Create(ctx, pool, o); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if o.ID == "" {
		t.Fatal("expected generated order id")
	}

	items := []domain.OrderItem{{
		OrderID:     o.ID,
		ProductID:   "11111111-1111-1111-1111-111111111111",
		VariantID:   "22222222-2222-2222-2222-222222222222",
		ProductName: "Blue Dream",
		VariantName: "3.5g",
		UnitPrice:   decimal.RequireFromString("45.00"),
		Quantity:    2,
		LineTotal:   decimal.RequireFromString("90.00"),
		WeightGrams: decimal.RequireFromString("3.5"),
	}}
	if err := repo.InsertItems(ctx, pool, items); err != nil {
		t.Fatalf("insert items: %v", err)
	}
	if err := repo.InsertHistory(ctx, pool, &domain.OrderStatusHistory{
		OrderID:  o.ID,
		ToStatus: domain.OrderStatusPending,
		Actor:    customerID,
		Note:     "Order placed",
	}); err != nil {
		t.Fatalf("insert history: %v", err)
	}

	got, err := repo.GetByID(ctx, tenantID, o.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.OrderNumber != "ORD-20250601-0001" {
		t.Fatalf("unexpected order number %q", got.OrderNumber)
	}
	if !got.Total.Equal(decimal.RequireFromString("106.09")) {
		t.Fatalf("unexpected total %s", got.Total)
	}
	if len(got.Items) != 1 || got.Items[0].ProductName != "Blue Dream" {
		t.Fatalf("unexpected items %+v", got.Items)
	}
	if len(got.StatusHistory) != 1 || got.StatusHistory[0].FromStatus != nil {
		t.Fatalf("unexpected history %+v", got.StatusHistory)
	}
}

func TestPostgres_NextSequence(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)
	_, locationID, _ := seedTenant(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	day := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	for want := 1; want <= 3; want++ {
		got, err := repo.NextSequence(ctx, pool, locationID, day)
		if err != nil {
			t.Fatalf("next sequence: %v", err)
		}
		if got != want {
			t.Fatalf("sequence %d, want %d", got, want)
		}
	}

	// A new calendar day starts over at 1.
	got, err := repo.NextSequence(ctx, pool, locationID, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("next sequence: %v", err)
	}
	if got != 1 {
		t.Fatalf("sequence %d, want 1 on new day", got)
	}
}
