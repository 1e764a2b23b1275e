package pricing

import (
	"testing"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testCalculator() Calculator {
	return NewCalculator(dec("0.08"), dec("75.00"))
}

func cartWith(lines ...model.CartLine) *model.Cart {
	return &model.Cart{Lines: lines}
}

func line(unit string, qty int) model.CartLine {
	return model.CartLine{LineID: "l1", ProductID: 1, UnitPrice: dec(unit), Quantity: qty}
}

func standardShipping() *model.ShippingMethod {
	return &model.ShippingMethod{MethodID: 1, Code: "standard", Name: "Standard", Cost: dec("5.00"), Active: true}
}

func TestQuoteSingleItemWithShippingAndTax(t *testing.T) {
	// $25 item, $5 standard shipping, 8% tax on (25+5) = $2.40
	c := testCalculator()
	totals := c.Quote(cartWith(line("25.00", 1)), standardShipping(), nil, time.Now())

	assert.True(t, totals.Subtotal.Equal(dec("25.00")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Shipping.Equal(dec("5.00")), "shipping %s", totals.Shipping)
	assert.True(t, totals.Tax.Equal(dec("2.40")), "tax %s", totals.Tax)
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(dec("32.40")), "total %s", totals.Total)
}

func TestQuoteSubtotalIsSumOfLineTotals(t *testing.T) {
	c := testCalculator()
	cart := cartWith(
		model.CartLine{LineID: "a", ProductID: 1, UnitPrice: dec("12.50"), Quantity: 2},
		model.CartLine{LineID: "b", ProductID: 2, UnitPrice: dec("30.00"), Quantity: 1},
	)
	totals := c.Quote(cart, standardShipping(), nil, time.Now())
	assert.True(t, totals.Subtotal.Equal(dec("55.00")))

	// changing a quantity recomputes deterministically
	cart.Lines[0].Quantity = 3
	totals = c.Quote(cart, standardShipping(), nil, time.Now())
	assert.True(t, totals.Subtotal.Equal(dec("67.50")))
}

func TestQuoteTotalIdentityHolds(t *testing.T) {
	c := testCalculator()
	promo := &model.PromoCode{Code: "TEST10", Kind: model.PromoKindPercent, Value: dec("10"), Active: true}
	totals := c.Quote(cartWith(line("40.00", 2)), standardShipping(), promo, time.Now())

	sum := totals.Subtotal.Add(totals.Shipping).Add(totals.Tax).Sub(totals.Discount)
	assert.True(t, totals.Total.Equal(sum))
	assert.False(t, totals.Total.IsNegative())
}

func TestQuoteFreeShippingThreshold(t *testing.T) {
	c := testCalculator()

	totals := c.Quote(cartWith(line("80.00", 1)), standardShipping(), nil, time.Now())
	assert.True(t, totals.Shipping.IsZero(), "subtotal above threshold ships free")

	totals = c.Quote(cartWith(line("74.99", 1)), standardShipping(), nil, time.Now())
	assert.True(t, totals.Shipping.Equal(dec("5.00")))
}

func TestQuotePercentPromo(t *testing.T) {
	// TEST10: 10% off, no minimum. $100 subtotal -> $10 discount.
	c := testCalculator()
	promo := &model.PromoCode{Code: "TEST10", Kind: model.PromoKindPercent, Value: dec("10"), Active: true}
	totals := c.Quote(cartWith(line("100.00", 1)), standardShipping(), promo, time.Now())

	assert.True(t, totals.Discount.Equal(dec("10.00")), "discount %s", totals.Discount)
	// free shipping kicks in at $75, so tax = 8% of 100 = 8.00, total = 98.00
	assert.True(t, totals.Shipping.IsZero())
	assert.True(t, totals.Tax.Equal(dec("8.00")))
	assert.True(t, totals.Total.Equal(dec("98.00")), "total %s", totals.Total)
}

func TestQuoteFixedPromoCappedAtSubtotal(t *testing.T) {
	c := testCalculator()
	promo := &model.PromoCode{Code: "BIGOFF", Kind: model.PromoKindFixed, Value: dec("50.00"), Active: true}
	totals := c.Quote(cartWith(line("20.00", 1)), standardShipping(), promo, time.Now())

	assert.True(t, totals.Discount.Equal(dec("20.00")), "fixed discount capped at subtotal")
	assert.False(t, totals.Total.IsNegative())
}

func TestValidatePromo(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		promo   *model.PromoCode
		sub     string
		wantErr bool
	}{
		{"nil promo", nil, "100.00", true},
		{"inactive", &model.PromoCode{Code: "X", Kind: model.PromoKindPercent, Value: dec("10")}, "100.00", true},
		{"expired", &model.PromoCode{Code: "X", Kind: model.PromoKindPercent, Value: dec("10"), Active: true, ExpiresAt: &past}, "100.00", true},
		{"below minimum", &model.PromoCode{Code: "X", Kind: model.PromoKindFixed, Value: dec("5"), MinSubtotal: dec("50"), Active: true}, "40.00", true},
		{"ok", &model.PromoCode{Code: "TEST10", Kind: model.PromoKindPercent, Value: dec("10"), Active: true}, "100.00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePromo(tt.promo, dec(tt.sub), now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPromoInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteInvalidPromoAppliesZeroDiscount(t *testing.T) {
	c := testCalculator()
	expired := time.Now().Add(-time.Hour)
	promo := &model.PromoCode{Code: "OLD", Kind: model.PromoKindPercent, Value: dec("10"), Active: true, ExpiresAt: &expired}

	totals := c.Quote(cartWith(line("25.00", 1)), standardShipping(), promo, time.Now())
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(dec("32.40")))
}

func TestQuoteIdempotent(t *testing.T) {
	c := testCalculator()
	cart := cartWith(line("19.99", 3), line("45.00", 1))
	promo := &model.PromoCode{Code: "TEST10", Kind: model.PromoKindPercent, Value: dec("10"), Active: true}
	at := time.Now()

	first := c.Quote(cart, standardShipping(), promo, at)
	second := c.Quote(cart, standardShipping(), promo, at)

	require.True(t, first.Subtotal.Equal(second.Subtotal))
	require.True(t, first.Shipping.Equal(second.Shipping))
	require.True(t, first.Tax.Equal(second.Tax))
	require.True(t, first.Discount.Equal(second.Discount))
	require.True(t, first.Total.Equal(second.Total))
}

func TestQuoteEmptyCart(t *testing.T) {
	c := testCalculator()
	totals := c.Quote(&model.Cart{}, nil, nil, time.Now())
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Shipping.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestPromoValidateRules(t *testing.T) {
	assert.Error(t, model.PromoCode{Code: "X", Kind: "bogus", Value: dec("10")}.Validate())
	assert.Error(t, model.PromoCode{Code: "X", Kind: model.PromoKindPercent, Value: dec("120")}.Validate())
	assert.Error(t, model.PromoCode{Code: "X", Kind: model.PromoKindFixed, Value: dec("-1")}.Validate())
	assert.NoError(t, model.PromoCode{Code: "X", Kind: model.PromoKindPercent, Value: dec("10")}.Validate())
}
