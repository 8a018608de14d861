package domain

import (
	"time"
)

// Discount types
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type DiscountCode struct {
	ID                int64     `json:"id,string" form:"id"`
	Code              string    `gorm:"uniqueIndex" json:"code" form:"code"`
	Type              string    `json:"type" form:"type"`
	Value             float64   `json:"value" form:"value"`
	MinPurchaseAmount float64   `json:"min_purchase_amount" form:"min_purchase_amount"`
	MaxDiscountAmount *float64  `json:"max_discount_amount" form:"max_discount_amount"`
	UsageLimit        int64     `json:"usage_limit" form:"usage_limit"`
	TimesUsed         int64     `json:"times_used" form:"times_used"`
	ValidFrom         time.Time `json:"valid_from" form:"valid_from"`
	ValidUntil        time.Time `json:"valid_until" form:"valid_until"`
	Status            string    `gorm:"index" json:"status" form:"status"`
	Remark            string    `json:"remark" form:"remark"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (DiscountCode) TableName() string {
	return "discount_code"
}
