package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
		OrderStatusPreparing:      {OrderStatusReadyForPickup, OrderStatusOutForDelivery, OrderStatusCancelled},
		OrderStatusReadyForPickup: {OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusOutForDelivery: {OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusCompleted:      {OrderStatusRefunded},
		OrderStatusCancelled:      {},
		OrderStatusRefunded:       {},
	}

	all := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReadyForPickup, OrderStatusOutForDelivery,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded,
	}

	// Exhaustive: every (from, to) pair matches the table exactly.
	for from, targets := range allowed {
		allowedSet := map[OrderStatus]bool{}
		for _, to := range targets {
			allowedSet[to] = true
		}
		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equalf(t, allowedSet[to], got, "%s -> %s", from, to)
		}
	}
}

func TestOrderStatusPreparingCannotComplete(t *testing.T) {
	assert.False(t, OrderStatusPreparing.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusPreparing.CanTransitionTo(OrderStatusReadyForPickup))
	assert.True(t, OrderStatusPreparing.CanTransitionTo(OrderStatusOutForDelivery))
	assert.True(t, OrderStatusPreparing.CanTransitionTo(OrderStatusCancelled))
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.True(t, OrderStatusRefunded.IsTerminal())
	assert.False(t, OrderStatusCompleted.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusReadyForPickup.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestFulfillmentTypeIsValid(t *testing.T) {
	assert.True(t, FulfillmentPickup.IsValid())
	assert.True(t, FulfillmentDelivery.IsValid())
	assert.False(t, FulfillmentType("mail").IsValid())
}
