package order

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

func TestValidTransitionTable(t *testing.T) {
	allowed := map[string]map[string]bool{
		domain.OrderPending:    {domain.OrderProcessing: true, domain.OrderCancelled: true},
		domain.OrderProcessing: {domain.OrderConfirmed: true, domain.OrderCancelled: true},
		domain.OrderConfirmed:  {domain.OrderShipped: true, domain.OrderCancelled: true},
		domain.OrderShipped:    {domain.OrderDelivered: true},
		domain.OrderDelivered:  {domain.OrderRefunded: true},
		domain.OrderCancelled:  {},
		domain.OrderRefunded:   {},
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			want := allowed[from][to]
			assert.Equal(t, want, ValidTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestReflexiveTransitionsRejected(t *testing.T) {
	for _, s := range AllStatuses {
		assert.False(t, ValidTransition(s, s), "%s -> %s must be rejected", s, s)
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	assert.False(t, ValidTransition("bogus", domain.OrderShipped))
	assert.False(t, ValidTransition(domain.OrderPending, "bogus"))
	assert.False(t, IsKnownStatus("bogus"))
	assert.True(t, IsKnownStatus(domain.OrderPending))
}

func TestApplyTransitionShippedRequiresTracking(t *testing.T) {
	o := &domain.Order{FulfillmentStatus: domain.OrderConfirmed}
	err := ApplyTransition(o, domain.OrderShipped, "  ", time.Now())
	assert.ErrorIs(t, err, ErrTrackingRequired)
	assert.Equal(t, domain.OrderConfirmed, o.FulfillmentStatus)
	assert.True(t, o.ShippedAt.IsZero())
}

func TestApplyTransitionShippedStampsTracking(t *testing.T) {
	now := time.Now()
	o := &domain.Order{FulfillmentStatus: domain.OrderConfirmed}
	err := ApplyTransition(o, domain.OrderShipped, " TRK-001 ", now)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, o.FulfillmentStatus)
	assert.Equal(t, "TRK-001", o.TrackingNumber)
	assert.Equal(t, now, o.ShippedAt)
}

func TestApplyTransitionTimestampsStampOnce(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	o := &domain.Order{FulfillmentStatus: domain.OrderShipped, ShippedAt: first, DeliveredAt: first}
	err := ApplyTransition(o, domain.OrderDelivered, "", later)
	assert.NoError(t, err)
	// DeliveredAt was already set; it must not move.
	assert.Equal(t, first, o.DeliveredAt)
	assert.Equal(t, later, o.UpdatedAt)
}

func TestApplyTransitionRefundedFlipsPayment(t *testing.T) {
	now := time.Now()
	o := &domain.Order{
		FulfillmentStatus: domain.OrderDelivered,
		PaymentStatus:     domain.PaymentPaid,
	}
	err := ApplyTransition(o, domain.OrderRefunded, "", now)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderRefunded, o.FulfillmentStatus)
	assert.Equal(t, domain.PaymentRefunded, o.PaymentStatus)
	assert.Equal(t, now, o.RefundedAt)
}

func TestApplyTransitionInvalidLeavesOrderUntouched(t *testing.T) {
	o := &domain.Order{FulfillmentStatus: domain.OrderDelivered, PaymentStatus: domain.PaymentPaid}
	err := ApplyTransition(o, domain.OrderProcessing, "", time.Now())
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, domain.OrderDelivered, o.FulfillmentStatus)
	assert.Equal(t, domain.PaymentPaid, o.PaymentStatus)
	assert.True(t, o.UpdatedAt.IsZero())
}
