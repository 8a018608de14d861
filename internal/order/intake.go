package order

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

// TotalTolerance is the absolute currency tolerance when comparing the
// recomputed subtotal against the submitted total.
const TotalTolerance = 0.01

// IntakeRequest is the storefront checkout payload before persistence.
// CustomerId is never taken from the client; the handler sets it from a
// verified session and guests stay at zero.
type IntakeRequest struct {
	CustomerId      int64               `json:"-"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	CustomerPhone   string              `json:"customer_phone"`
	Items           []domain.OrderItem  `json:"items"`
	ShippingAddress domain.OrderAddress `json:"shipping_address"`
	BillingAddress  domain.OrderAddress `json:"billing_address"`
	DiscountCode    string              `json:"discount_code"`
	DiscountAmount  float64             `json:"discount_amount"`
	Total           float64             `json:"total"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentIntentId string              `json:"payment_intent_id"`
	Notes           string              `json:"notes"`
}

var (
	ErrMissingCustomer = errors.New("customer name and contact are required")
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrBadItem         = errors.New("order item has invalid quantity, weight or price")
	ErrBadAddress      = errors.New("shipping address is incomplete")
	ErrNoPayment       = errors.New("payment method is required")
	ErrTotalMismatch   = errors.New("submitted total does not match line items")
)

// LineAmount computes a single line's contribution to the subtotal
func LineAmount(it domain.OrderItem) float64 {
	return it.PricePerUnit * it.Weight * (1 - it.LineDiscount) * float64(it.Quantity)
}

// Subtotal recomputes the order subtotal from its line items
func Subtotal(items []domain.OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += LineAmount(it)
	}
	return sum
}

func addressComplete(a domain.OrderAddress) bool {
	return strings.TrimSpace(a.Line1) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.Postal) != "" &&
		strings.TrimSpace(a.Country) != ""
}

// ValidateIntake checks the checkout payload and returns the independently
// recomputed subtotal. The submitted total is only trusted when it matches
// subtotal - discount within TotalTolerance, which blocks client-side total
// manipulation.
func ValidateIntake(req *IntakeRequest) (float64, error) {
	if strings.TrimSpace(req.CustomerName) == "" ||
		(strings.TrimSpace(req.CustomerEmail) == "" && strings.TrimSpace(req.CustomerPhone) == "") {
		return 0, ErrMissingCustomer
	}
	if len(req.Items) == 0 {
		return 0, ErrNoItems
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 || it.Weight <= 0 || it.PricePerUnit < 0 ||
			it.LineDiscount < 0 || it.LineDiscount >= 1 {
			return 0, ErrBadItem
		}
	}
	if !addressComplete(req.ShippingAddress) {
		return 0, ErrBadAddress
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return 0, ErrNoPayment
	}

	subtotal := Subtotal(req.Items)
	if math.Abs(subtotal-(req.Total-req.DiscountAmount)) > TotalTolerance {
		return 0, ErrTotalMismatch
	}
	return subtotal, nil
}

// InitialStatus picks the fulfillment status a new order starts in based on
// how payment concluded at intake time.
func InitialStatus(paymentMethod, paymentStatus string) string {
	switch {
	case paymentStatus == domain.PaymentPaid:
		return domain.OrderConfirmed
	case paymentMethod == "cod":
		return domain.OrderProcessing
	default:
		return domain.OrderPending
	}
}
