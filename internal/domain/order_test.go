package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending, OrderStatusAccepted, OrderStatusDelivered,
		OrderStatusPaid, OrderStatusCancelled,
	}

	legal := map[OrderStatus][]OrderStatus{
		OrderStatusPending:   {OrderStatusAccepted, OrderStatusCancelled},
		OrderStatusAccepted:  {OrderStatusDelivered},
		OrderStatusDelivered: {OrderStatusPaid},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, n := range legal[from] {
				if n == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, OrderStatusPaid.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusAccepted.Terminal())
	assert.False(t, OrderStatusDelivered.Terminal())
}

func TestPaymentBlockedReason(t *testing.T) {
	assert.Equal(t, "order is not yet accepted by the chef", PaymentBlockedReason(OrderStatusPending))
	assert.Equal(t, "order is accepted but not delivered yet", PaymentBlockedReason(OrderStatusAccepted))
	assert.Equal(t, "order is cancelled, payment not allowed", PaymentBlockedReason(OrderStatusCancelled))
	assert.Equal(t, "order is already paid", PaymentBlockedReason(OrderStatusPaid))
	assert.Equal(t, "payment not allowed for this order", PaymentBlockedReason("garbage"))
}
