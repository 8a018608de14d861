// Package discount evaluates discount codes against a cart subtotal.
// Business rejections are never errors: the caller always receives a
// Result carrying a validity flag and a reason.
package discount

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/pkg/common"
)

// Rejection reasons
const (
	ReasonNotFound    = "code_not_found"
	ReasonNotStarted  = "code_not_started"
	ReasonExpired     = "code_expired"
	ReasonUsedUp      = "usage_limit_reached"
	ReasonMinPurchase = "min_purchase_not_met"
)

type Result struct {
	Valid  bool    `json:"valid"`
	Code   string  `json:"code"`
	Reason string  `json:"reason,omitempty"`
	Amount float64 `json:"amount"`
}

func rejected(code, reason string) Result {
	return Result{Valid: false, Code: code, Reason: reason}
}

// Amount computes the discount for dc on subtotal: percentage discounts are
// subtotal*value/100 capped by max_discount_amount when present, fixed
// discounts use value directly. The final amount never exceeds subtotal.
func Amount(dc *domain.DiscountCode, subtotal float64) float64 {
	var amount float64
	switch dc.Type {
	case domain.DiscountPercentage:
		amount = subtotal * dc.Value / 100
		if dc.MaxDiscountAmount != nil && amount > *dc.MaxDiscountAmount {
			amount = *dc.MaxDiscountAmount
		}
	case domain.DiscountFixed:
		amount = dc.Value
	}
	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

// Evaluate runs the validation pipeline in order; the first failure wins.
func Evaluate(dc *domain.DiscountCode, subtotal float64, now time.Time) Result {
	if dc == nil {
		return rejected("", ReasonNotFound)
	}
	if now.Before(dc.ValidFrom) {
		return rejected(dc.Code, ReasonNotStarted)
	}
	if now.After(dc.ValidUntil) {
		return rejected(dc.Code, ReasonExpired)
	}
	if dc.UsageLimit > 0 && dc.TimesUsed >= dc.UsageLimit {
		return rejected(dc.Code, ReasonUsedUp)
	}
	if dc.MinPurchaseAmount > 0 && subtotal < dc.MinPurchaseAmount {
		return rejected(dc.Code, ReasonMinPurchase)
	}
	return Result{Valid: true, Code: dc.Code, Amount: Amount(dc, subtotal)}
}

// Service looks up and redeems discount codes
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Lookup finds an active code, matching case-insensitively by upper-casing
func (s *Service) Lookup(code string) (*domain.DiscountCode, error) {
	var dc domain.DiscountCode
	err := s.db.Where("code = ? AND status = ?",
		strings.ToUpper(strings.TrimSpace(code)), common.ENABLED).First(&dc).Error
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

// Check evaluates code against subtotal at the current time
func (s *Service) Check(code string, subtotal float64, now time.Time) Result {
	dc, err := s.Lookup(code)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("discount lookup failed", zap.String("code", code), zap.Error(err))
		}
		return rejected(strings.ToUpper(strings.TrimSpace(code)), ReasonNotFound)
	}
	return Evaluate(dc, subtotal, now)
}

// Redeem increments times_used after an order carrying the code is accepted
func (s *Service) Redeem(code string) error {
	return s.db.Model(&domain.DiscountCode{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		UpdateColumn("times_used", gorm.Expr("times_used + 1")).Error
}
