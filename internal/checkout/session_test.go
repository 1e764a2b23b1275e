package checkout

import (
	"testing"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWithCart() *Session {
	s := NewSession("sess-1")
	s.Cart.Lines = []model.CartLine{{
		LineID:    "l1",
		ProductID: 1,
		UnitPrice: decimal.NewFromInt(25),
		Quantity:  1,
	}}
	return s
}

func fillShipping(s *Session) {
	s.Email = "fan@example.com"
	s.ShippingAddr = model.Address{
		Name:       "Alex Fan",
		Line1:      "1 Main St",
		City:       "Portland",
		PostalCode: "97201",
		Country:    "US",
	}
	s.ShippingMethod = "standard"
}

func TestAdvanceHappyPath(t *testing.T) {
	s := sessionWithCart()
	require.Equal(t, StepCart, s.CurrentStep)

	require.NoError(t, s.Advance())
	assert.Equal(t, StepShipping, s.CurrentStep)

	fillShipping(s)
	require.NoError(t, s.Advance())
	assert.Equal(t, StepPayment, s.CurrentStep)

	s.PaymentPaid = true
	require.NoError(t, s.Advance())
	assert.Equal(t, StepConfirmation, s.CurrentStep)
}

func TestAdvanceEmptyCartBlocked(t *testing.T) {
	s := NewSession("sess-empty")
	assert.ErrorIs(t, s.Advance(), ErrStepIncomplete)
	assert.Equal(t, StepCart, s.CurrentStep)
}

func TestAdvanceShippingIncomplete(t *testing.T) {
	s := sessionWithCart()
	require.NoError(t, s.Advance())

	// no address / method yet
	assert.ErrorIs(t, s.Advance(), ErrStepIncomplete)
	assert.Equal(t, StepShipping, s.CurrentStep)

	// address without method is still incomplete
	s.Email = "fan@example.com"
	s.ShippingAddr = model.Address{Name: "A", Line1: "1", City: "C", PostalCode: "1", Country: "US"}
	assert.ErrorIs(t, s.Advance(), ErrStepIncomplete)

	s.ShippingMethod = "standard"
	assert.NoError(t, s.Advance())
}

func TestGoToCannotSkipForward(t *testing.T) {
	s := sessionWithCart()

	// cart -> payment skips shipping
	assert.ErrorIs(t, s.GoTo(StepPayment), ErrStepNotAccessible)
	assert.Equal(t, StepCart, s.CurrentStep)

	// cart -> confirmation even worse
	assert.ErrorIs(t, s.GoTo(StepConfirmation), ErrStepNotAccessible)
}

func TestGoToNextReachableStep(t *testing.T) {
	s := sessionWithCart()

	// immediate next step is reachable when the current one is complete
	require.NoError(t, s.GoTo(StepShipping))
	assert.Equal(t, StepShipping, s.CurrentStep)
	assert.True(t, s.completed(StepCart))
}

func TestGoToBackwardToCompletedStep(t *testing.T) {
	s := sessionWithCart()
	require.NoError(t, s.Advance())
	fillShipping(s)
	require.NoError(t, s.Advance())
	require.Equal(t, StepPayment, s.CurrentStep)

	// backward to any completed step is fine
	require.NoError(t, s.GoTo(StepCart))
	assert.Equal(t, StepCart, s.CurrentStep)

	// and forward again over completed ground
	require.NoError(t, s.GoTo(StepShipping))
	assert.Equal(t, StepShipping, s.CurrentStep)
}

func TestConfirmationIsTerminal(t *testing.T) {
	s := sessionWithCart()
	require.NoError(t, s.Advance())
	fillShipping(s)
	require.NoError(t, s.Advance())
	s.PaymentPaid = true
	require.NoError(t, s.Advance())
	require.Equal(t, StepConfirmation, s.CurrentStep)

	assert.ErrorIs(t, s.Advance(), ErrCheckoutFinished)
	assert.ErrorIs(t, s.GoTo(StepCart), ErrCheckoutFinished)
	assert.ErrorIs(t, s.GoTo(StepPayment), ErrCheckoutFinished)
}

func TestRestartResetsFlow(t *testing.T) {
	s := sessionWithCart()
	require.NoError(t, s.Advance())
	fillShipping(s)
	require.NoError(t, s.Advance())
	s.PaymentPaid = true
	require.NoError(t, s.Advance())

	s.Restart()
	assert.Equal(t, StepCart, s.CurrentStep)
	assert.Empty(t, s.CompletedSteps)
	assert.False(t, s.PaymentPaid)
	assert.Empty(t, s.ShippingMethod)
	// cart contents survive a restart
	assert.Len(t, s.Cart.Lines, 1)
}

func TestFinishFromEarlierStep(t *testing.T) {
	s := sessionWithCart()
	require.NoError(t, s.Advance())
	fillShipping(s)
	require.NoError(t, s.Advance())
	require.Equal(t, StepPayment, s.CurrentStep)

	// the shopper navigated back while the charge was in flight
	require.NoError(t, s.GoTo(StepShipping))

	s.Finish()
	assert.Equal(t, StepConfirmation, s.CurrentStep)
	assert.True(t, s.completed(StepCart))
	assert.True(t, s.completed(StepShipping))
	assert.True(t, s.completed(StepPayment))

	// confirmation stays terminal
	assert.ErrorIs(t, s.Advance(), ErrCheckoutFinished)
	assert.ErrorIs(t, s.GoTo(StepPayment), ErrCheckoutFinished)
}

func TestGoToUnknownStep(t *testing.T) {
	s := sessionWithCart()
	assert.ErrorIs(t, s.GoTo(Step("billing")), ErrStepNotAccessible)
}
