package discount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

func activeCode() *domain.DiscountCode {
	return &domain.DiscountCode{
		Code:       "SAVE15",
		Type:       domain.DiscountPercentage,
		Value:      15,
		ValidFrom:  time.Now().Add(-24 * time.Hour),
		ValidUntil: time.Now().Add(24 * time.Hour),
	}
}

func TestAmountPercentage(t *testing.T) {
	dc := activeCode()
	assert.InDelta(t, 15.0, Amount(dc, 100), 1e-9)
}

func TestAmountPercentageCapped(t *testing.T) {
	dc := activeCode()
	maxAmount := 10.0
	dc.MaxDiscountAmount = &maxAmount
	assert.InDelta(t, 10.0, Amount(dc, 100), 1e-9)
}

func TestAmountFixed(t *testing.T) {
	dc := activeCode()
	dc.Type = domain.DiscountFixed
	dc.Value = 20
	assert.InDelta(t, 20.0, Amount(dc, 100), 1e-9)
}

func TestAmountNeverExceedsSubtotal(t *testing.T) {
	dc := activeCode()
	dc.Type = domain.DiscountFixed
	dc.Value = 80
	assert.InDelta(t, 50.0, Amount(dc, 50), 1e-9)
}

func TestEvaluateNilCode(t *testing.T) {
	res := Evaluate(nil, 100, time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonNotFound, res.Reason)
}

func TestEvaluateNotStarted(t *testing.T) {
	dc := activeCode()
	dc.ValidFrom = time.Now().Add(time.Hour)
	res := Evaluate(dc, 100, time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonNotStarted, res.Reason)
}

func TestEvaluateExpired(t *testing.T) {
	dc := activeCode()
	dc.ValidUntil = time.Now().Add(-time.Hour)
	res := Evaluate(dc, 100, time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonExpired, res.Reason)
}

func TestEvaluateUsageLimitReached(t *testing.T) {
	dc := activeCode()
	dc.UsageLimit = 5
	dc.TimesUsed = 5
	res := Evaluate(dc, 100, time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonUsedUp, res.Reason)
}

func TestEvaluateMinPurchaseNotMet(t *testing.T) {
	dc := activeCode()
	dc.MinPurchaseAmount = 500
	res := Evaluate(dc, 100, time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonMinPurchase, res.Reason)
}

// Expiry is checked before the usage limit, so a code failing both reports
// the expiry reason.
func TestEvaluateFirstFailureWins(t *testing.T) {
	dc := activeCode()
	dc.ValidUntil = time.Now().Add(-time.Hour)
	dc.UsageLimit = 1
	dc.TimesUsed = 1
	res := Evaluate(dc, 100, time.Now())
	assert.Equal(t, ReasonExpired, res.Reason)
}

func TestEvaluateValid(t *testing.T) {
	dc := activeCode()
	res := Evaluate(dc, 200, time.Now())
	assert.True(t, res.Valid)
	assert.Equal(t, "SAVE15", res.Code)
	assert.InDelta(t, 30.0, res.Amount, 1e-9)
	assert.Empty(t, res.Reason)
}
