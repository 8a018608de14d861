package order

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/discount"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/pkg/common"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PaymentChecker reports the processor-side status of a payment intent
type PaymentChecker interface {
	IntentStatus(ctx context.Context, intentID string) (string, error)
}

// Notifier is told about fulfillment milestones worth a customer email
type Notifier interface {
	OrderStatusChanged(o *domain.Order)
}

var ErrDiscountMismatch = errors.New("submitted discount amount does not match code evaluation")

// Service owns order intake and fulfillment updates
type Service struct {
	db        *gorm.DB
	discounts *discount.Service
	payments  PaymentChecker
	notifier  Notifier
}

func NewService(db *gorm.DB, discounts *discount.Service, payments PaymentChecker, notifier Notifier) *Service {
	return &Service{db: db, discounts: discounts, payments: payments, notifier: notifier}
}

// Create validates the intake payload, re-evaluates any discount code
// server-side and persists the order. The returned order carries its
// initial fulfillment status per InitialStatus.
func (s *Service) Create(ctx context.Context, req *IntakeRequest) (*domain.Order, error) {
	subtotal, err := ValidateIntake(req)
	if err != nil {
		return nil, err
	}

	discountAmount := 0.0
	discountCode := ""
	if strings.TrimSpace(req.DiscountCode) != "" {
		res := s.discounts.Check(req.DiscountCode, subtotal, time.Now())
		if !res.Valid {
			return nil, errors.Wrap(ErrDiscountMismatch, res.Reason)
		}
		if math.Abs(res.Amount-req.DiscountAmount) > TotalTolerance {
			return nil, ErrDiscountMismatch
		}
		discountAmount = res.Amount
		discountCode = res.Code
	} else if req.DiscountAmount != 0 {
		return nil, ErrDiscountMismatch
	}

	paymentStatus := domain.PaymentPending
	if req.PaymentIntentId != "" && s.payments != nil {
		status, err := s.payments.IntentStatus(ctx, req.PaymentIntentId)
		if err != nil {
			return nil, errors.Wrap(err, "verify payment intent")
		}
		if status == "succeeded" {
			paymentStatus = domain.PaymentPaid
		}
	}

	itemsJSON, err := json.MarshalToString(req.Items)
	if err != nil {
		return nil, errors.Wrap(err, "marshal order items")
	}
	shipJSON, _ := json.MarshalToString(req.ShippingAddress)
	billJSON, _ := json.MarshalToString(req.BillingAddress)

	now := time.Now()
	o := &domain.Order{
		ID:                common.UUIDint64(),
		OrderNo:           fmt.Sprintf("PP%s", common.UUID()),
		CustomerId:        req.CustomerId,
		CustomerName:      strings.TrimSpace(req.CustomerName),
		CustomerEmail:     strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone:     strings.TrimSpace(req.CustomerPhone),
		Items:             itemsJSON,
		ShippingAddress:   shipJSON,
		BillingAddress:    billJSON,
		Subtotal:          subtotal,
		DiscountCode:      discountCode,
		DiscountAmount:    discountAmount,
		Total:             req.Total,
		FulfillmentStatus: InitialStatus(req.PaymentMethod, paymentStatus),
		PaymentStatus:     paymentStatus,
		PaymentMethod:     req.PaymentMethod,
		PaymentIntentId:   req.PaymentIntentId,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if o.FulfillmentStatus == domain.OrderConfirmed {
		o.ConfirmedAt = now
	}

	if err := s.db.Create(o).Error; err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if discountCode != "" {
		if err := s.discounts.Redeem(discountCode); err != nil {
			zap.L().Error("failed to redeem discount code",
				zap.String("code", discountCode), zap.String("order_no", o.OrderNo), zap.Error(err))
		}
	}
	return o, nil
}

// UpdateStatus loads the order, applies the transition and persists the
// result. Rejected transitions leave the stored row untouched.
func (s *Service) UpdateStatus(id int64, next string, trackingNumber string) (*domain.Order, error) {
	var o domain.Order
	if err := s.db.Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}

	if err := ApplyTransition(&o, next, trackingNumber, time.Now()); err != nil {
		return nil, err
	}

	if err := s.db.Save(&o).Error; err != nil {
		return nil, errors.Wrap(err, "persist status update")
	}

	if s.notifier != nil && (next == domain.OrderShipped || next == domain.OrderDelivered) {
		s.notifier.OrderStatusChanged(&o)
	}
	return &o, nil
}

// LookupByNo fetches an order by order number, optionally pinned to the
// contact that placed it (guest lookups must supply the matching contact).
func (s *Service) LookupByNo(orderNo, contact string) (*domain.Order, error) {
	var o domain.Order
	q := s.db.Where("order_no = ?", strings.TrimSpace(orderNo))
	if contact != "" {
		c := strings.ToLower(strings.TrimSpace(contact))
		q = q.Where("customer_email = ? OR customer_phone = ?", c, contact)
	}
	if err := q.First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ParseItems decodes the denormalized items JSON of an order
func ParseItems(o *domain.Order) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	if err := json.UnmarshalFromString(o.Items, &items); err != nil {
		return nil, errors.Wrap(err, "decode order items")
	}
	return items, nil
}
