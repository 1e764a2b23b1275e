package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/cache"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/checkout"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionStore struct {
	mu   sync.Mutex
	data map[string]*checkout.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{data: map[string]*checkout.Session{}}
}

func (m *memSessionStore) Get(_ context.Context, id string) (*checkout.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok {
		return nil, cache.ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessionStore) Save(_ context.Context, s *checkout.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = s
	return nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type stubCatalog struct {
	products map[int64]*model.Product
	variants map[int64]*model.ProductVariant
}

func (s *stubCatalog) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductUnavailable
	}
	return p, nil
}

func (s *stubCatalog) GetVariant(_ context.Context, _, variantID int64) (*model.ProductVariant, error) {
	v, ok := s.variants[variantID]
	if !ok {
		return nil, ErrProductUnavailable
	}
	return v, nil
}

type stubPromos struct {
	codes map[string]*model.PromoCode
}

func (s *stubPromos) GetByCode(_ context.Context, code string) (*model.PromoCode, error) {
	p, ok := s.codes[code]
	if !ok {
		return nil, pricing.ErrPromoInvalid
	}
	return p, nil
}

type stubShipping struct {
	methods map[string]*model.ShippingMethod
}

func (s *stubShipping) ListActive(_ context.Context) ([]model.ShippingMethod, error) {
	var out []model.ShippingMethod
	for _, m := range s.methods {
		out = append(out, *m)
	}
	return out, nil
}

func (s *stubShipping) GetByCode(_ context.Context, code string) (*model.ShippingMethod, error) {
	m, ok := s.methods[code]
	if !ok {
		return nil, errors.New("shipping method not found")
	}
	return m, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newTestCartService() *CartService {
	override := dec("30.00")
	catalog := &stubCatalog{
		products: map[int64]*model.Product{
			1: {ProductID: 1, Slug: "tour-tee", Name: "Tour Tee", BasePrice: dec("25.00"), Active: true},
			2: {ProductID: 2, Slug: "old-poster", Name: "Old Poster", BasePrice: dec("10.00"), Active: false},
		},
		variants: map[int64]*model.ProductVariant{
			11: {VariantID: 11, ProductID: 1, Name: "XL", SKU: "TEE-XL", PriceOverride: &override, InStock: true},
			12: {VariantID: 12, ProductID: 1, Name: "S", SKU: "TEE-S", InStock: false},
		},
	}
	promos := &stubPromos{codes: map[string]*model.PromoCode{
		"TEST10": {Code: "TEST10", Kind: model.PromoKindPercent, Value: dec("10"), Active: true},
	}}
	shipping := &stubShipping{methods: map[string]*model.ShippingMethod{
		"standard": {MethodID: 1, Code: "standard", Name: "Standard", Cost: dec("5.00"), Active: true},
	}}

	return NewCartService(newMemSessionStore(), catalog, promos, shipping, pricing.Calculator{
		TaxRate:               dec("0.08"),
		FreeShippingThreshold: dec("75.00"),
	})
}

func TestCartAddCreatesSessionAndLine(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	sess, err := svc.Add(ctx, "", 1, nil, 2)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	require.Len(t, sess.Cart.Lines, 1)

	line := sess.Cart.Lines[0]
	assert.Equal(t, int64(1), line.ProductID)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(dec("25.00")))

	// session survived the save
	reloaded, err := svc.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Cart.Lines, 1)
}

func TestCartAddMergesSameProductAndVariant(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	sess, err := svc.Add(ctx, "", 1, nil, 1)
	require.NoError(t, err)
	sess, err = svc.Add(ctx, sess.ID, 1, nil, 2)
	require.NoError(t, err)

	require.Len(t, sess.Cart.Lines, 1)
	assert.Equal(t, 3, sess.Cart.Lines[0].Quantity)

	// a different variant gets its own line
	variantID := int64(11)
	sess, err = svc.Add(ctx, sess.ID, 1, &variantID, 1)
	require.NoError(t, err)
	require.Len(t, sess.Cart.Lines, 2)
	assert.True(t, sess.Cart.Lines[1].UnitPrice.Equal(dec("30.00")), "variant price override applies")
}

func TestCartAddRejectsBadInput(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "", 1, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Add(ctx, "", 2, nil, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	outOfStock := int64(12)
	_, err = svc.Add(ctx, "", 1, &outOfStock, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartUpdateQuantity(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	sess, err := svc.Add(ctx, "", 1, nil, 1)
	require.NoError(t, err)
	lineID := sess.Cart.Lines[0].LineID

	sess, err = svc.UpdateQuantity(ctx, sess.ID, lineID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, sess.Cart.Lines[0].Quantity)

	// zero removes the line
	sess, err = svc.UpdateQuantity(ctx, sess.ID, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, sess.Cart.Lines)

	_, err = svc.UpdateQuantity(ctx, sess.ID, "nope", 1)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestCartApplyPromo(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	sess, err := svc.Add(ctx, "", 1, nil, 1)
	require.NoError(t, err)

	sess, err = svc.ApplyPromo(ctx, sess.ID, "TEST10")
	require.NoError(t, err)
	assert.Equal(t, "TEST10", sess.Cart.PromoCode)

	_, err = svc.ApplyPromo(ctx, sess.ID, "NOPE")
	assert.ErrorIs(t, err, pricing.ErrPromoInvalid)
	// failed apply left the previous code in place
	reloaded, err := svc.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "TEST10", reloaded.Cart.PromoCode)
}

func TestCartViewTotals(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	// 1x $25 tee, standard shipping $5, 8% tax on $30 = $2.40
	sess, err := svc.Add(ctx, "", 1, nil, 1)
	require.NoError(t, err)
	sess.ShippingMethod = "standard"

	view, err := svc.View(ctx, sess)
	require.NoError(t, err)

	assert.True(t, view.Totals.Subtotal.Equal(dec("25.00")))
	assert.True(t, view.Totals.Shipping.Equal(dec("5.00")))
	assert.True(t, view.Totals.Tax.Equal(dec("2.40")))
	assert.True(t, view.Totals.Total.Equal(dec("32.40")))
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].LineTotal.Equal(dec("25.00")))
}

func TestCartClear(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	sess, err := svc.Add(ctx, "", 1, nil, 2)
	require.NoError(t, err)
	_, err = svc.ApplyPromo(ctx, sess.ID, "TEST10")
	require.NoError(t, err)

	sess, err = svc.Clear(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, sess.Cart.Lines)
	assert.Empty(t, sess.Cart.PromoCode)
}
