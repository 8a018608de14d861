package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

func validRequest() *IntakeRequest {
	return &IntakeRequest{
		CustomerName:  "Jamie Tan",
		CustomerEmail: "jamie@example.com",
		Items: []domain.OrderItem{
			{ProductId: 1, Name: "Pea Protein", Flavor: "vanilla",
				PricePerUnit: 25.0, Weight: 1.0, Quantity: 2, LineDiscount: 0},
		},
		ShippingAddress: domain.OrderAddress{
			Line1: "1 Orchard Rd", City: "Singapore", Postal: "238801", Country: "SG",
		},
		Total:         50.0,
		PaymentMethod: "card",
	}
}

func TestSubtotalComputation(t *testing.T) {
	items := []domain.OrderItem{
		{PricePerUnit: 25.0, Weight: 1.0, Quantity: 2, LineDiscount: 0},
		{PricePerUnit: 40.0, Weight: 0.5, Quantity: 1, LineDiscount: 0.1},
	}
	// 25*1*2 + 40*0.5*0.9 = 50 + 18
	assert.InDelta(t, 68.0, Subtotal(items), 1e-9)
}

func TestValidateIntakeAccepted(t *testing.T) {
	req := validRequest()
	subtotal, err := ValidateIntake(req)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, subtotal, 1e-9)
}

func TestValidateIntakeWithinTolerance(t *testing.T) {
	req := validRequest()
	// Recomputed 50.00 against a submitted 49.995 is inside the tolerance.
	req.Total = 49.995
	_, err := ValidateIntake(req)
	assert.NoError(t, err)
}

func TestValidateIntakeBeyondTolerance(t *testing.T) {
	req := validRequest()
	req.Total = 50.02
	_, err := ValidateIntake(req)
	assert.ErrorIs(t, err, ErrTotalMismatch)
}

func TestValidateIntakeDiscountShiftsTotal(t *testing.T) {
	req := validRequest()
	req.DiscountCode = "WELCOME10"
	req.DiscountAmount = 5.0
	req.Total = 45.0
	subtotal, err := ValidateIntake(req)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, subtotal, 1e-9)
}

func TestValidateIntakeMissingContact(t *testing.T) {
	req := validRequest()
	req.CustomerEmail = ""
	req.CustomerPhone = ""
	_, err := ValidateIntake(req)
	assert.ErrorIs(t, err, ErrMissingCustomer)
}

func TestValidateIntakePhoneOnlyContactAccepted(t *testing.T) {
	req := validRequest()
	req.CustomerEmail = ""
	req.CustomerPhone = "+6591234567"
	_, err := ValidateIntake(req)
	assert.NoError(t, err)
}

func TestValidateIntakeNoItems(t *testing.T) {
	req := validRequest()
	req.Items = nil
	_, err := ValidateIntake(req)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestValidateIntakeBadItem(t *testing.T) {
	cases := []domain.OrderItem{
		{PricePerUnit: 25, Weight: 1, Quantity: 0},
		{PricePerUnit: 25, Weight: 0, Quantity: 1},
		{PricePerUnit: -1, Weight: 1, Quantity: 1},
		{PricePerUnit: 25, Weight: 1, Quantity: 1, LineDiscount: 1.0},
		{PricePerUnit: 25, Weight: 1, Quantity: 1, LineDiscount: -0.1},
	}
	for i, it := range cases {
		req := validRequest()
		req.Items = []domain.OrderItem{it}
		_, err := ValidateIntake(req)
		assert.ErrorIs(t, err, ErrBadItem, "case %d", i)
	}
}

func TestValidateIntakeIncompleteAddress(t *testing.T) {
	req := validRequest()
	req.ShippingAddress.Postal = ""
	_, err := ValidateIntake(req)
	assert.ErrorIs(t, err, ErrBadAddress)
}

func TestValidateIntakeMissingPayment(t *testing.T) {
	req := validRequest()
	req.PaymentMethod = " "
	_, err := ValidateIntake(req)
	assert.ErrorIs(t, err, ErrNoPayment)
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, domain.OrderConfirmed, InitialStatus("card", domain.PaymentPaid))
	assert.Equal(t, domain.OrderProcessing, InitialStatus("cod", domain.PaymentPending))
	assert.Equal(t, domain.OrderPending, InitialStatus("card", domain.PaymentPending))
}
