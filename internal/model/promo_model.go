package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Promo rule kinds. The kind tag decides how Value is interpreted:
// percent  -> Value is a percentage (10 = 10% off the subtotal)
// fixed    -> Value is a flat amount off
const (
	PromoKindPercent = "percent"
	PromoKindFixed   = "fixed"
)

// PromoCode is a discount rule from the promocodes table.
type PromoCode struct {
	PromoID     int64           `json:"promoid"`
	Code        string          `json:"code"`
	Kind        string          `json:"kind"`
	Value       decimal.Decimal `json:"value"`
	MinSubtotal decimal.Decimal `json:"minsubtotal"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	Active      bool            `json:"active"`
}

// Validate rejects malformed rules at load time rather than trusting them
// when a discount is computed.
func (p PromoCode) Validate() error {
	switch p.Kind {
	case PromoKindPercent:
		if p.Value.LessThanOrEqual(decimal.Zero) || p.Value.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("promo %q: percent value must be in (0, 100]", p.Code)
		}
	case PromoKindFixed:
		if p.Value.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("promo %q: fixed value must be positive", p.Code)
		}
	default:
		return fmt.Errorf("promo %q: unknown kind %q", p.Code, p.Kind)
	}
	if p.MinSubtotal.IsNegative() {
		return fmt.Errorf("promo %q: negative minimum subtotal", p.Code)
	}
	return nil
}

// Usable reports whether the code can be applied at the given time.
func (p PromoCode) Usable(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return false
	}
	return true
}
