package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryStatusForwardOnly(t *testing.T) {
	assert.True(t, DeliveryStatusPending.CanTransitionTo(DeliveryStatusAssigned))
	assert.True(t, DeliveryStatusAssigned.CanTransitionTo(DeliveryStatusPickedUp))
	assert.True(t, DeliveryStatusPickedUp.CanTransitionTo(DeliveryStatusInTransit))
	assert.True(t, DeliveryStatusInTransit.CanTransitionTo(DeliveryStatusArriving))
	assert.True(t, DeliveryStatusArriving.CanTransitionTo(DeliveryStatusDelivered))

	// No skipping steps, no going backwards.
	assert.False(t, DeliveryStatusPending.CanTransitionTo(DeliveryStatusPickedUp))
	assert.False(t, DeliveryStatusAssigned.CanTransitionTo(DeliveryStatusDelivered))
	assert.False(t, DeliveryStatusInTransit.CanTransitionTo(DeliveryStatusAssigned))
}

func TestDeliveryStatusCancellation(t *testing.T) {
	assert.True(t, DeliveryStatusPending.CanTransitionTo(DeliveryStatusCancelled))
	assert.True(t, DeliveryStatusArriving.CanTransitionTo(DeliveryStatusCancelled))

	// Terminal states stay terminal.
	assert.False(t, DeliveryStatusDelivered.CanTransitionTo(DeliveryStatusCancelled))
	assert.False(t, DeliveryStatusCancelled.CanTransitionTo(DeliveryStatusPending))
	assert.False(t, DeliveryStatusCancelled.CanTransitionTo(DeliveryStatusCancelled))
}

func TestDeliveryStatusTerminal(t *testing.T) {
	assert.True(t, DeliveryStatusDelivered.IsTerminal())
	assert.True(t, DeliveryStatusCancelled.IsTerminal())
	assert.False(t, DeliveryStatusArriving.IsTerminal())
}

func TestDeliveryStatusIsValid(t *testing.T) {
	assert.True(t, DeliveryStatusPending.IsValid())
	assert.True(t, DeliveryStatusCancelled.IsValid())
	assert.False(t, DeliveryStatus("lost").IsValid())
}
