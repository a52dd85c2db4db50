package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Compliance log event types.
const (
	ComplianceEventSale         = "sale"
	ComplianceEventDenial       = "compliance_denial"
	ComplianceEventStatusChange = "status_change"
	ComplianceEventAdjustment   = "inventory_adjustment"
)

// ComplianceLog is one append-only regulatory audit entry. Never mutated.
type ComplianceLog struct {
	ID         string         `json:"id"`
	LocationID string         `json:"locationId"`
	EventType  string         `json:"eventType"`
	Details    map[string]any `json:"details,omitempty"`
	Actor      *string        `json:"actor,omitempty"`
	OrderID    *string        `json:"orderId,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// TenantPolicy is the per-tenant regulatory configuration consulted before a
// sale. DailyLimitGrams is nil when the tenant has no daily purchase limit.
type TenantPolicy struct {
	TenantID                string           `json:"tenantId"`
	AgeVerificationRequired bool             `json:"ageVerificationRequired"`
	MedicalOnly             bool             `json:"medicalOnly"`
	IDReverificationDays    int              `json:"idReverificationDays"`
	DailyLimitGrams         *decimal.Decimal `json:"dailyLimitGrams,omitempty"`
}

// MinimumAge is 21, or 18 when the tenant is medical-only.
func (p TenantPolicy) MinimumAge() int {
	if p.MedicalOnly {
		return 18
	}
	return 21
}

// DailyReport is the idempotent per-(location, date) compliance aggregate.
// Regenerating overwrites the prior report for the same key.
type DailyReport struct {
	ID              string          `json:"id"`
	LocationID      string          `json:"locationId"`
	ReportDate      time.Time       `json:"reportDate"`
	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalTax        decimal.Decimal `json:"totalTax"`
	TotalExciseTax  decimal.Decimal `json:"totalExciseTax"`
	ItemsSold       int             `json:"itemsSold"`
	UniqueCustomers int             `json:"uniqueCustomers"`
	Cancellations   int             `json:"cancellations"`
	RefundedAmount  decimal.Decimal `json:"refundedAmount"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}
