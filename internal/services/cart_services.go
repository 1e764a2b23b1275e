package services

import (
	"context"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/cache"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/checkout"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/pricing"

	"github.com/google/uuid"
)

// CartService owns the session cart: line mutations, promo application and
// the totals view. Every mutation saves the session back to the store before
// returning, so a reload never loses the cart.
type CartService struct {
	Sessions cache.SessionStore
	Catalog  ProductCatalog
	Promos   PromoLookup
	Shipping ShippingLookup
	Calc     pricing.Calculator
}

func NewCartService(sessions cache.SessionStore, catalog ProductCatalog, promos PromoLookup, shipping ShippingLookup, calc pricing.Calculator) *CartService {
	return &CartService{
		Sessions: sessions,
		Catalog:  catalog,
		Promos:   promos,
		Shipping: shipping,
		Calc:     calc,
	}
}

// Load fetches the session for sessionID, creating a fresh one when the id
// is empty or the stored session has expired.
func (s *CartService) Load(ctx context.Context, sessionID string) (*checkout.Session, error) {
	if sessionID == "" {
		return checkout.NewSession(uuid.NewString()), nil
	}
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		if err == cache.ErrSessionNotFound {
			return checkout.NewSession(sessionID), nil
		}
		return nil, err
	}
	return sess, nil
}

// Add appends a line, or merges into an existing line for the same
// product+variant by incrementing its quantity.
func (s *CartService) Add(ctx context.Context, sessionID string, productID int64, variantID *int64, qty int) (*checkout.Session, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	sess, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	p, err := s.Catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, ErrProductUnavailable
	}

	var variant *model.ProductVariant
	if variantID != nil {
		variant, err = s.Catalog.GetVariant(ctx, productID, *variantID)
		if err != nil {
			return nil, err
		}
		if !variant.InStock {
			return nil, ErrProductUnavailable
		}
	}

	// merge with an existing line for the same product+variant
	for i := range sess.Cart.Lines {
		l := &sess.Cart.Lines[i]
		if l.ProductID == productID && int64PtrEq(l.VariantID, variantID) {
			l.Quantity += qty
			return sess, s.Sessions.Save(ctx, sess)
		}
	}

	line := model.CartLine{
		LineID:    uuid.NewString(),
		ProductID: productID,
		VariantID: variantID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice(variant),
		Quantity:  qty,
	}
	if variant != nil {
		line.VariantName = variant.Name
	}
	sess.Cart.Lines = append(sess.Cart.Lines, line)

	return sess, s.Sessions.Save(ctx, sess)
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, qty int) (*checkout.Session, error) {
	if qty < 0 {
		return nil, ErrInvalidQuantity
	}

	sess, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if qty == 0 {
		return s.remove(ctx, sess, lineID)
	}

	line := sess.Cart.FindLine(lineID)
	if line == nil {
		return nil, ErrLineNotFound
	}
	line.Quantity = qty

	return sess, s.Sessions.Save(ctx, sess)
}

// Remove deletes a line unconditionally.
func (s *CartService) Remove(ctx context.Context, sessionID, lineID string) (*checkout.Session, error) {
	sess, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.remove(ctx, sess, lineID)
}

func (s *CartService) remove(ctx context.Context, sess *checkout.Session, lineID string) (*checkout.Session, error) {
	for i, l := range sess.Cart.Lines {
		if l.LineID == lineID {
			sess.Cart.Lines = append(sess.Cart.Lines[:i], sess.Cart.Lines[i+1:]...)
			return sess, s.Sessions.Save(ctx, sess)
		}
	}
	return nil, ErrLineNotFound
}

// Clear empties the cart and drops any applied promo.
func (s *CartService) Clear(ctx context.Context, sessionID string) (*checkout.Session, error) {
	sess, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Cart.Lines = nil
	sess.Cart.PromoCode = ""
	return sess, s.Sessions.Save(ctx, sess)
}

// ApplyPromo validates the code against the current subtotal and stores it
// on the cart. Unknown, expired or ineligible codes fail with
// pricing.ErrPromoInvalid and leave the cart's promo untouched.
func (s *CartService) ApplyPromo(ctx context.Context, sessionID, code string) (*checkout.Session, error) {
	sess, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	promo, err := s.Promos.GetByCode(ctx, code)
	if err != nil {
		return nil, pricing.ErrPromoInvalid
	}
	if err := pricing.ValidatePromo(promo, sess.Cart.Subtotal(), time.Now()); err != nil {
		return nil, err
	}

	sess.Cart.PromoCode = promo.Code
	return sess, s.Sessions.Save(ctx, sess)
}

// Quote recomputes totals for the session's cart, shipping method and promo.
// It is re-run on every read; nothing is cached.
func (s *CartService) Quote(ctx context.Context, sess *checkout.Session) (model.Totals, error) {
	var method *model.ShippingMethod
	if sess.ShippingMethod != "" {
		m, err := s.Shipping.GetByCode(ctx, sess.ShippingMethod)
		if err != nil {
			return model.Totals{}, err
		}
		method = m
	}

	var promo *model.PromoCode
	if sess.Cart.PromoCode != "" {
		p, err := s.Promos.GetByCode(ctx, sess.Cart.PromoCode)
		if err == nil {
			promo = p
		}
	}

	return s.Calc.Quote(&sess.Cart, method, promo, time.Now()), nil
}

// View assembles the API response for GET /cart.
func (s *CartService) View(ctx context.Context, sess *checkout.Session) (*model.CartResponse, error) {
	totals, err := s.Quote(ctx, sess)
	if err != nil {
		return nil, err
	}

	items := make([]model.CartItemView, 0, len(sess.Cart.Lines))
	for _, l := range sess.Cart.Lines {
		items = append(items, model.CartItemView{
			LineID:      l.LineID,
			ProductID:   l.ProductID,
			VariantID:   l.VariantID,
			Name:        l.Name,
			VariantName: l.VariantName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   l.LineTotal(),
		})
	}

	return &model.CartResponse{
		Items:  items,
		Promo:  sess.Cart.PromoCode,
		Totals: totals,
	}, nil
}

func int64PtrEq(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
