package domain

import (
	"time"
)

// Analytics event types
const (
	EventPageView    = "page_view"
	EventProductView = "product_view"
	EventAddToCart   = "add_to_cart"
	EventCheckout    = "checkout_start"
	EventPurchase    = "purchase"
)

// AnalyticsEvent is an append-only behavioral log row
type AnalyticsEvent struct {
	ID        int64     `json:"id,string" form:"id"`
	EventType string    `gorm:"index" json:"event_type" form:"event_type"`
	ProductId int64     `gorm:"index" json:"product_id,string" form:"product_id"`
	Page      string    `json:"page" form:"page"`
	SessionId string    `gorm:"index" json:"session_id" form:"session_id"`
	Duration  float64   `json:"duration" form:"duration"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_event"
}
