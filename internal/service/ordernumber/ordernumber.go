package ordernumber

import (
	"context"
	"fmt"
	"time"

	"greenleaf-commerce/internal/db"
)

// SequenceStore hands out per-(location, day) sequence values. The store must
// be atomic under concurrent checkouts; counting existing orders is not.
type SequenceStore interface {
	NextSequence(ctx context.Context, q db.Querier, locationID string, day time.Time) (int, error)
}

// Generator produces human-readable order numbers, unique per selling
// location and calendar day.
type Generator struct {
	seq SequenceStore
}

func New(seq SequenceStore) *Generator {
	return &Generator{seq: seq}
}

// Next returns the next order number for the location on the given day.
func (g *Generator) Next(ctx context.Context, q db.Querier, locationID string, day time.Time) (string, error) {
	n, err := g.seq.NextSequence(ctx, q, locationID, day)
	if err != nil {
		return "", fmt.Errorf("next order sequence: %w", err)
	}
	return Format(day, n), nil
}

// Format renders an order number as ORD-YYYYMMDD-NNNN.
func Format(day time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), seq)
}
