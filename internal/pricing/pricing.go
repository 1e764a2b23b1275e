package pricing

import (
	"errors"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/shopspring/decimal"
)

var ErrPromoInvalid = errors.New("promo code is not valid")

// Calculator derives order totals from cart contents, a shipping method and
// an optional promo code. It holds only policy values and is safe to share.
type Calculator struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

func NewCalculator(taxRate, freeShippingThreshold decimal.Decimal) Calculator {
	return Calculator{TaxRate: taxRate, FreeShippingThreshold: freeShippingThreshold}
}

// ValidatePromo checks a promo rule against the subtotal at the given time.
// A nil promo, inactive/expired code or unmet minimum fails with ErrPromoInvalid.
func ValidatePromo(p *model.PromoCode, subtotal decimal.Decimal, now time.Time) error {
	if p == nil || !p.Usable(now) {
		return ErrPromoInvalid
	}
	if subtotal.LessThan(p.MinSubtotal) {
		return ErrPromoInvalid
	}
	return nil
}

// discount computes the promo deduction on the subtotal. Caller has already
// validated the promo.
func discount(p *model.PromoCode, subtotal decimal.Decimal) decimal.Decimal {
	switch p.Kind {
	case model.PromoKindPercent:
		return subtotal.Mul(p.Value).Div(decimal.NewFromInt(100)).Round(2)
	case model.PromoKindFixed:
		if p.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return p.Value
	}
	return decimal.Zero
}

// Quote recomputes the full totals breakdown. It is pure: the same inputs
// always produce the same output, and nothing is cached between calls.
//
//	subtotal = sum(unit price * quantity)
//	shipping = method cost, or zero at/above the free-shipping threshold
//	tax      = rate * (subtotal + shipping), rounded to cents
//	total    = subtotal + shipping + tax - discount, floored at zero
func (c Calculator) Quote(cart *model.Cart, method *model.ShippingMethod, promo *model.PromoCode, now time.Time) model.Totals {
	subtotal := cart.Subtotal()

	shipping := decimal.Zero
	if method != nil {
		shipping = method.Cost
	}
	if len(cart.Lines) > 0 && subtotal.GreaterThanOrEqual(c.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Add(shipping).Mul(c.TaxRate).Round(2)

	disc := decimal.Zero
	if promo != nil && ValidatePromo(promo, subtotal, now) == nil {
		disc = discount(promo, subtotal)
	}

	total := subtotal.Add(shipping).Add(tax).Sub(disc)
	if total.IsNegative() {
		// discount never pushes the order below zero
		disc = subtotal.Add(shipping).Add(tax)
		total = decimal.Zero
	}

	return model.Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: disc,
		Total:    total,
	}
}
