package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/order"
)

func registerOrderRoutes(g *echo.Group) {
	g.GET("/orders", listOrders)
	g.GET("/orders/:id", getOrder)
	g.PUT("/orders/:id/status", updateOrderStatus)
}

func listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// Sorting: whitelist allowed columns to avoid SQL injection
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	sortOrder := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}
	allowed := map[string]string{
		"id":         "id",
		"order_no":   "order_no",
		"total":      "total",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, okCol := allowed[sortField]
	if !okCol {
		sortCol = "created_at"
	}

	db := GetDB(c).Model(&domain.Order{})
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		if !order.IsKnownStatus(status) {
			return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown fulfillment status", status)
		}
		db = db.Where("fulfillment_status = ?", status)
	}
	if ps := strings.TrimSpace(c.QueryParam("payment_status")); ps != "" {
		db = db.Where("payment_status = ?", ps)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(order_no) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(customer_name) LIKE ?",
			like, like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}

	var rows []domain.Order
	if err := db.Order(sortCol + " " + sortOrder).
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}
	return paged(c, rows, total, page, pageSize)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var o domain.Order
	if err := GetDB(c).Where("id = ?", id).First(&o).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", nil)
	}
	return ok(c, o)
}

type statusPayload struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

func updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status update", nil)
	}
	if !order.IsKnownStatus(payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown fulfillment status", payload.Status)
	}

	o, err := GetApp(c).OrderService().UpdateStatus(id, payload.Status, payload.TrackingNumber)
	switch {
	case err == nil:
		if o.FulfillmentStatus == domain.OrderRefunded && o.PaymentIntentId != "" {
			if _, rerr := GetApp(c).PaymentClient().CreateRefund(
				c.Request().Context(), o.PaymentIntentId, 0); rerr != nil {
				zap.L().Error("processor refund failed",
					zap.String("order_no", o.OrderNo), zap.Error(rerr))
			}
		}
		return ok(c, o)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	case errors.Is(err, order.ErrInvalidTransition):
		return fail(c, http.StatusBadRequest, "INVALID_TRANSITION", "Status transition not allowed", payload.Status)
	case errors.Is(err, order.ErrTrackingRequired):
		return fail(c, http.StatusBadRequest, "TRACKING_REQUIRED", "Tracking number is required for shipped", nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order status", nil)
	}
}
