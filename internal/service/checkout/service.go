package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
	"greenleaf-commerce/internal/service/ordernumber"
	"greenleaf-commerce/internal/service/tax"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type cartRepo interface {
	Snapshot(ctx context.Context, tenantID, customerID, locationID string) (*domain.Cart, error)
	Clear(ctx context.Context, q db.Querier, customerID, locationID string) error
}

type catalogRepo interface {
	GetVariant(ctx context.Context, variantID string) (*domain.Variant, error)
}

type orderRepo interface {
	Create(ctx context.Context, q db.Querier, o *domain.Order) error
	InsertItems(ctx context.Context, q db.Querier, items []domain.OrderItem) error
	InsertHistory(ctx context.Context, q db.Querier, h *domain.OrderStatusHistory) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Order, error)
}

type inventoryRepo interface {
	Adjust(ctx context.Context, q db.Querier, variantID, locationID string, delta int) (int, error)
}

type locationRepo interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.Location, error)
}

type deliveryRepo interface {
	Create(ctx context.Context, q db.Querier, orderID string) (*domain.Delivery, error)
}

type complianceGate interface {
	Authorize(ctx context.Context, tenantID, customerID, locationID string, requestedGrams decimal.Decimal) error
	LogEvent(ctx context.Context, locationID, eventType string, details map[string]any, actor, orderID *string) (*domain.ComplianceLog, error)
}

// Service converts a mutable cart into an immutable, audited order inside one
// transaction: totals, order number, order + item snapshots, inventory
// decrements and the initial history row all commit or roll back together.
type Service struct {
	tx         db.TxRunner
	carts      cartRepo
	catalog    catalogRepo
	orders     orderRepo
	inventory  inventoryRepo
	locations  locationRepo
	deliveries deliveryRepo
	compliance complianceGate
	numbers    *ordernumber.Generator
	logger     *zap.Logger
	now        func() time.Time
}

func New(
	tx db.TxRunner,
	carts cartRepo,
	catalog catalogRepo,
	orders orderRepo,
	inventory inventoryRepo,
	locations locationRepo,
	deliveries deliveryRepo,
	compliance complianceGate,
	numbers *ordernumber.Generator,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tx:         tx,
		carts:      carts,
		catalog:    catalog,
		orders:     orders,
		inventory:  inventory,
		locations:  locations,
		deliveries: deliveries,
		compliance: compliance,
		numbers:    numbers,
		logger:     logger,
		now:        time.Now,
	}
}

// Input is the checkout request. Phone and delivery address are required for
// delivery fulfillment.
type Input struct {
	LocationID      string
	FulfillmentType domain.FulfillmentType
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	DeliveryAddress string
	Discount        decimal.Decimal
}

func (in Input) validate() error {
	if strings.TrimSpace(in.LocationID) == "" {
		return domain.NewValidationError("locationId", "required")
	}
	if !in.FulfillmentType.IsValid() {
		return domain.NewValidationError("fulfillmentType", "must be pickup or delivery")
	}
	if strings.TrimSpace(in.ContactName) == "" {
		return domain.NewValidationError("contactName", "required")
	}
	if strings.TrimSpace(in.ContactEmail) == "" {
		return domain.NewValidationError("contactEmail", "required")
	}
	if in.FulfillmentType == domain.FulfillmentDelivery {
		if strings.TrimSpace(in.ContactPhone) == "" {
			return domain.NewValidationError("contactPhone", "required for delivery")
		}
		if strings.TrimSpace(in.DeliveryAddress) == "" {
			return domain.NewValidationError("deliveryAddress", "required for delivery")
		}
	}
	if in.Discount.IsNegative() {
		return domain.NewValidationError("discount", "must not be negative")
	}
	return nil
}

// Checkout runs the full checkout workflow and returns the persisted order
// with its items and status history.
func (s *Service) Checkout(ctx context.Context, tenantID, customerID string, in Input) (*domain.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	loc, err := s.locations.GetByID(ctx, tenantID, in.LocationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("locationId", "unknown selling location")
		}
		return nil, fmt.Errorf("load location: %w", err)
	}

	cart, err := s.carts.Snapshot(ctx, tenantID, customerID, in.LocationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, fmt.Errorf("snapshot cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Resolve variants up front so display names and regulatory identifiers
	// are frozen onto the items, and so the requested weight is known for
	// the compliance pre-check.
	items := make([]domain.OrderItem, 0, len(cart.Items))
	requestedGrams := decimal.Zero
	for _, line := range cart.Items {
		variant, err := s.catalog.GetVariant(ctx, line.VariantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("variantId", fmt.Sprintf("unknown variant %s", line.VariantID))
			}
			return nil, fmt.Errorf("load variant %s: %w", line.VariantID, err)
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		items = append(items, domain.OrderItem{
			ProductID:     variant.ProductID,
			VariantID:     variant.ID,
			ProductName:   variant.ProductName,
			VariantName:   variant.Name,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			LineTotal:     line.UnitPrice.Mul(qty).Round(2),
			WeightGrams:   variant.WeightGrams,
			BatchNumber:   variant.BatchNumber,
			LicenseNumber: variant.LicenseNumber,
		})
		requestedGrams = requestedGrams.Add(variant.WeightGrams.Mul(qty))
	}

	if err := s.compliance.Authorize(ctx, tenantID, customerID, in.LocationID, requestedGrams); err != nil {
		return nil, err
	}

	subtotal := cart.Subtotal()
	taxAmount, excise := tax.Compute(subtotal, loc.TaxRate, loc.ExciseTaxRate)
	total := tax.Total(subtotal, taxAmount, excise, in.Discount)
	if total.IsNegative() {
		return nil, domain.NewValidationError("discount", "exceeds order total")
	}

	order := &domain.Order{
		TenantID:        tenantID,
		LocationID:      in.LocationID,
		CustomerID:      customerID,
		Subtotal:        subtotal,
		Tax:             taxAmount,
		ExciseTax:       excise,
		Discount:        in.Discount,
		Total:           total,
		FulfillmentType: in.FulfillmentType,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		ContactName:     in.ContactName,
		ContactEmail:    in.ContactEmail,
		ContactPhone:    in.ContactPhone,
		DeliveryAddress: in.DeliveryAddress,
	}

	err = s.tx.RunTx(ctx, func(q db.Querier) error {
		day := s.now().In(loc.Local())
		number, err := s.numbers.Next(ctx, q, in.LocationID, day)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if err := s.orders.Create(ctx, q, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.orders.InsertItems(ctx, q, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		// Inventory moves only after the items are durably tied to the
		// order, so a crash here is recoverable from the item rows.
		for _, item := range items {
			if _, err := s.inventory.Adjust(ctx, q, item.VariantID, in.LocationID, -item.Quantity); err != nil {
				return fmt.Errorf("adjust inventory for variant %s: %w", item.VariantID, err)
			}
		}
		if err := s.orders.InsertHistory(ctx, q, &domain.OrderStatusHistory{
			OrderID:  order.ID,
			ToStatus: domain.OrderStatusPending,
			Actor:    customerID,
			Note:     "Order placed",
		}); err != nil {
			return fmt.Errorf("record initial status: %w", err)
		}
		if in.FulfillmentType == domain.FulfillmentDelivery {
			if _, err := s.deliveries.Create(ctx, q, order.ID); err != nil {
				return fmt.Errorf("create delivery record: %w", err)
			}
		}
		if err := s.carts.Clear(ctx, q, customerID, in.LocationID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, best-effort: a regulator-facing log failure must never
	// roll back a financial transaction that already succeeded.
	s.logSale(ctx, order, items)

	return s.orders.GetByID(ctx, tenantID, order.ID)
}

func (s *Service) logSale(ctx context.Context, order *domain.Order, items []domain.OrderItem) {
	lines := make([]map[string]any, 0, len(items))
	for _, item := range items {
		lines = append(lines, map[string]any{
			"variant_id": item.VariantID,
			"name":       item.ProductName + " " + item.VariantName,
			"quantity":   item.Quantity,
			"line_total": item.LineTotal.String(),
		})
	}
	details := map[string]any{
		"order_number": order.OrderNumber,
		"subtotal":     order.Subtotal.String(),
		"tax":          order.Tax.String(),
		"excise_tax":   order.ExciseTax.String(),
		"total":        order.Total.String(),
		"items":        lines,
	}
	actor := order.CustomerID
	if _, err := s.compliance.LogEvent(ctx, order.LocationID, domain.ComplianceEventSale, details, &actor, &order.ID); err != nil {
		s.logger.Error("post-commit sale audit log failed",
			zap.String("order_id", order.ID),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}
}
