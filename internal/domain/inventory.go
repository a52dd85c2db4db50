package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant is a sellable unit of a product, carrying the regulatory
// identifiers that must be snapshotted onto order items.
type Variant struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	WeightGrams   decimal.Decimal `json:"weightGrams"`
	BatchNumber   string          `json:"batchNumber,omitempty"`
	LicenseNumber string          `json:"licenseNumber,omitempty"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// InventoryRecord is the authoritative on-hand quantity for one variant at
// one location. Quantity moves only through signed adjustments and is floored
// at zero.
type InventoryRecord struct {
	ID                string    `json:"id"`
	VariantID         string    `json:"variantId"`
	LocationID        string    `json:"locationId"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// LowStockVariant pairs a variant with its on-hand quantity for the
// low-stock listing.
type LowStockVariant struct {
	Variant   Variant `json:"variant"`
	Quantity  int     `json:"quantity"`
	Threshold int     `json:"threshold"`
}
