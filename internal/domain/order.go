package domain

import (
	"time"
)

// Fulfillment statuses
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderConfirmed  = "confirmed"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

// Payment statuses
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// OrderItem is a denormalized line item snapshot stored in the order's
// items JSON column. Weight is in kilograms.
type OrderItem struct {
	ProductId    int64   `json:"product_id,string"`
	Name         string  `json:"name"`
	Flavor       string  `json:"flavor,omitempty"`
	PricePerUnit float64 `json:"price_per_unit"`
	Weight       float64 `json:"weight"`
	Quantity     int     `json:"quantity"`
	LineDiscount float64 `json:"line_discount"`
}

type OrderAddress struct {
	Name    string `json:"name"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

type Order struct {
	ID         int64  `json:"id,string" form:"id"`
	OrderNo    string `gorm:"uniqueIndex" json:"order_no" form:"order_no"`
	CustomerId int64  `gorm:"index" json:"customer_id,string" form:"customer_id"`

	// Guest contact, also kept for registered customers as a snapshot
	CustomerName  string `json:"customer_name" form:"customer_name"`
	CustomerEmail string `gorm:"index" json:"customer_email" form:"customer_email"`
	CustomerPhone string `json:"customer_phone" form:"customer_phone"`

	// Items and addresses are serialized JSON snapshots
	Items           string `json:"items"`
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`

	Subtotal       float64 `json:"subtotal"`
	DiscountCode   string  `json:"discount_code"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`

	FulfillmentStatus string `gorm:"index" json:"fulfillment_status"`
	PaymentStatus     string `gorm:"index" json:"payment_status"`
	PaymentMethod     string `json:"payment_method"`
	PaymentIntentId   string `json:"payment_intent_id"`
	TrackingNumber    string `json:"tracking_number"`
	Notes             string `json:"notes"`

	ConfirmedAt time.Time `json:"confirmed_at"`
	ShippedAt   time.Time `json:"shipped_at"`
	DeliveredAt time.Time `json:"delivered_at"`
	CancelledAt time.Time `json:"cancelled_at"`
	RefundedAt  time.Time `json:"refunded_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "store_order"
}
