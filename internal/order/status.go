package order

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

// statusTransitions is the directed fulfillment graph. Terminal states map
// to an empty set. There are no edges back to earlier states.
var statusTransitions = map[string][]string{
	domain.OrderPending:    {domain.OrderProcessing, domain.OrderCancelled},
	domain.OrderProcessing: {domain.OrderConfirmed, domain.OrderCancelled},
	domain.OrderConfirmed:  {domain.OrderShipped, domain.OrderCancelled},
	domain.OrderShipped:    {domain.OrderDelivered},
	domain.OrderDelivered:  {domain.OrderRefunded},
	domain.OrderCancelled:  {},
	domain.OrderRefunded:   {},
}

// AllStatuses lists every fulfillment status in lifecycle order
var AllStatuses = []string{
	domain.OrderPending,
	domain.OrderProcessing,
	domain.OrderConfirmed,
	domain.OrderShipped,
	domain.OrderDelivered,
	domain.OrderCancelled,
	domain.OrderRefunded,
}

// IsKnownStatus reports whether s is a defined fulfillment status
func IsKnownStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// ValidTransition reports whether current -> next is an allowed edge.
// Reflexive pairs are always rejected.
func ValidTransition(current, next string) bool {
	if current == next {
		return false
	}
	allowed, ok := statusTransitions[current]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

var (
	ErrInvalidTransition = errors.New("invalid fulfillment status transition")
	ErrTrackingRequired  = errors.New("tracking number is required to mark an order shipped")
)

// ApplyTransition moves o to next, stamping the per-status timestamp the
// first time that status is reached. The order is mutated in place and the
// caller persists it; on error nothing is touched.
func ApplyTransition(o *domain.Order, next string, trackingNumber string, now time.Time) error {
	if !ValidTransition(o.FulfillmentStatus, next) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", o.FulfillmentStatus, next)
	}
	if next == domain.OrderShipped && strings.TrimSpace(trackingNumber) == "" {
		return ErrTrackingRequired
	}

	o.FulfillmentStatus = next
	o.UpdatedAt = now

	switch next {
	case domain.OrderConfirmed:
		if o.ConfirmedAt.IsZero() {
			o.ConfirmedAt = now
		}
	case domain.OrderShipped:
		o.TrackingNumber = strings.TrimSpace(trackingNumber)
		if o.ShippedAt.IsZero() {
			o.ShippedAt = now
		}
	case domain.OrderDelivered:
		if o.DeliveredAt.IsZero() {
			o.DeliveredAt = now
		}
	case domain.OrderCancelled:
		if o.CancelledAt.IsZero() {
			o.CancelledAt = now
		}
	case domain.OrderRefunded:
		if o.RefundedAt.IsZero() {
			o.RefundedAt = now
		}
		o.PaymentStatus = domain.PaymentRefunded
	}
	return nil
}
