package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location is one selling location (dispensary) under a tenant. It is the
// scope for inventory, order numbering, purchase limits and tax rates.
type Location struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"-"`
	Name          string          `json:"name"`
	Timezone      string          `json:"timezone"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	ExciseTaxRate decimal.Decimal `json:"exciseTaxRate"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Local returns the location's time zone, falling back to UTC when the
// configured zone name does not resolve.
func (l *Location) Local() *time.Location {
	if l.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
