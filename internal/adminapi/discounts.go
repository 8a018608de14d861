package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/pkg/common"
)

func registerDiscountRoutes(g *echo.Group) {
	g.GET("/discounts", listDiscounts)
	g.GET("/discounts/:id", getDiscount)
	g.POST("/discounts", createDiscount)
	g.PUT("/discounts/:id", updateDiscount)
	g.DELETE("/discounts/:id", deleteDiscount)
}

type discountPayload struct {
	Code              string   `json:"code"`
	Type              string   `json:"type"`
	Value             float64  `json:"value"`
	MinPurchaseAmount float64  `json:"min_purchase_amount"`
	MaxDiscountAmount *float64 `json:"max_discount_amount"`
	UsageLimit        int64    `json:"usage_limit"`
	ValidFrom         string   `json:"valid_from"`
	ValidUntil        string   `json:"valid_until"`
	Status            string   `json:"status"`
	Remark            string   `json:"remark"`
}

func (p *discountPayload) validate() (time.Time, time.Time, error) {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if p.Code == "" {
		return time.Time{}, time.Time{}, errors.New("code is required")
	}
	if p.Type != domain.DiscountPercentage && p.Type != domain.DiscountFixed {
		return time.Time{}, time.Time{}, errors.New("type must be 'percentage' or 'fixed'")
	}
	if p.Value <= 0 {
		return time.Time{}, time.Time{}, errors.New("value must be positive")
	}
	if p.Type == domain.DiscountPercentage && p.Value > 100 {
		return time.Time{}, time.Time{}, errors.New("percentage value must not exceed 100")
	}
	from, err := time.Parse(time.RFC3339, p.ValidFrom)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("valid_from must be RFC3339")
	}
	until, err := time.Parse(time.RFC3339, p.ValidUntil)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("valid_until must be RFC3339")
	}
	if until.Before(from) {
		return time.Time{}, time.Time{}, errors.New("valid_until precedes valid_from")
	}
	return from, until, nil
}

func listDiscounts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.DiscountCode{})
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query discount codes", nil)
	}
	var rows []domain.DiscountCode
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query discount codes", nil)
	}
	return paged(c, rows, total, page, pageSize)
}

func getDiscount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid discount ID", nil)
	}
	var dc domain.DiscountCode
	if err := GetDB(c).Where("id = ?", id).First(&dc).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "DISCOUNT_NOT_FOUND", "Discount code not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query discount code", nil)
	}
	return ok(c, dc)
}

func createDiscount(c echo.Context) error {
	var payload discountPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse discount code", nil)
	}
	from, until, err := payload.validate()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	var dup int64
	GetDB(c).Model(&domain.DiscountCode{}).Where("code = ?", payload.Code).Count(&dup)
	if dup > 0 {
		return fail(c, http.StatusConflict, "DUPLICATE_CODE", "A discount code with this code already exists", nil)
	}

	now := time.Now()
	dc := domain.DiscountCode{
		ID:                common.UUIDint64(),
		Code:              payload.Code,
		Type:              payload.Type,
		Value:             payload.Value,
		MinPurchaseAmount: payload.MinPurchaseAmount,
		MaxDiscountAmount: payload.MaxDiscountAmount,
		UsageLimit:        payload.UsageLimit,
		ValidFrom:         from,
		ValidUntil:        until,
		Status:            common.EmptyOr(payload.Status, common.ENABLED),
		Remark:            payload.Remark,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := GetDB(c).Create(&dc).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create discount code", nil)
	}
	return ok(c, dc)
}

func updateDiscount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid discount ID", nil)
	}
	var dc domain.DiscountCode
	if err := GetDB(c).Where("id = ?", id).First(&dc).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "DISCOUNT_NOT_FOUND", "Discount code not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query discount code", nil)
	}

	var payload discountPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse discount code", nil)
	}
	from, until, err := payload.validate()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
	if payload.Code != dc.Code {
		var dup int64
		GetDB(c).Model(&domain.DiscountCode{}).
			Where("code = ? AND id != ?", payload.Code, id).Count(&dup)
		if dup > 0 {
			return fail(c, http.StatusConflict, "DUPLICATE_CODE", "Another discount code with this code already exists", nil)
		}
	}

	dc.Code = payload.Code
	dc.Type = payload.Type
	dc.Value = payload.Value
	dc.MinPurchaseAmount = payload.MinPurchaseAmount
	dc.MaxDiscountAmount = payload.MaxDiscountAmount
	dc.UsageLimit = payload.UsageLimit
	dc.ValidFrom = from
	dc.ValidUntil = until
	dc.Status = common.EmptyOr(payload.Status, dc.Status)
	dc.Remark = payload.Remark
	dc.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&dc).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update discount code", nil)
	}
	return ok(c, dc)
}

func deleteDiscount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid discount ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.DiscountCode{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete discount code", nil)
	}
	return ok(c, map[string]interface{}{"id": id})
}
