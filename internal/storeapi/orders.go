package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/order"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/webserver"
)

func registerOrderRoutes(pub *echo.Group) {
	pub.POST("/orders", createOrder)
	pub.GET("/orders/:no", lookupOrder)
}

// createOrder serves checkout for both guests and logged-in customers.
// A valid bearer token links the order to the customer; guests check out
// with contact details only.
func createOrder(c echo.Context) error {
	var req order.IntakeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", nil)
	}

	if token := webserver.BearerToken(c); token != "" {
		if cust, err := GetApp(c).AuthService().Verify(token); err == nil {
			req.CustomerId = cust.ID
		}
	}

	o, err := GetApp(c).OrderService().Create(c.Request().Context(), &req)
	switch {
	case err == nil:
		return ok(c, o)
	case errors.Is(err, order.ErrMissingCustomer),
		errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrBadItem),
		errors.Is(err, order.ErrBadAddress),
		errors.Is(err, order.ErrNoPayment):
		return fail(c, http.StatusBadRequest, "INVALID_ORDER", err.Error(), nil)
	case errors.Is(err, order.ErrTotalMismatch):
		return fail(c, http.StatusBadRequest, "TOTAL_MISMATCH", err.Error(), nil)
	case errors.Is(err, order.ErrDiscountMismatch):
		return fail(c, http.StatusBadRequest, "DISCOUNT_MISMATCH", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "ORDER_ERROR", "Failed to create order", nil)
	}
}

// lookupOrder lets a guest retrieve an order by number. The contact query
// value must match the email or phone the order was placed with.
func lookupOrder(c echo.Context) error {
	contact := c.QueryParam("contact")
	if contact == "" {
		return fail(c, http.StatusBadRequest, "CONTACT_REQUIRED", "Contact email or phone is required", nil)
	}

	o, err := GetApp(c).OrderService().LookupByNo(c.Param("no"), contact)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", nil)
	}
	return ok(c, o)
}
