package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(pub *echo.Group) {
	pub.POST("/payment/intents", createPaymentIntent)
}

type intentPayload struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// createPaymentIntent proxies intent creation to the processor so the
// secret key never reaches the browser. The client receives the intent's
// client_secret plus the publishable key to finish the flow.
func createPaymentIntent(c echo.Context) error {
	var payload intentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse payload", nil)
	}
	if payload.Amount <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be positive", nil)
	}

	actx := GetApp(c)
	currency := payload.Currency
	if currency == "" {
		currency = actx.Config().Payment.Currency
	}

	intent, err := actx.PaymentClient().CreateIntent(
		c.Request().Context(), payload.Amount, currency, payload.Metadata)
	if err != nil {
		return fail(c, http.StatusBadGateway, "PAYMENT_ERROR", "Payment processor request failed", nil)
	}
	return ok(c, map[string]interface{}{
		"intent_id":       intent.ID,
		"client_secret":   intent.ClientSecret,
		"status":          intent.Status,
		"publishable_key": actx.Config().Payment.PublishableKey,
	})
}
