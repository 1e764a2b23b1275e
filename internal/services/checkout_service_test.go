package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCustomers struct {
	byAuth map[int64]*model.Customer
}

func (s *stubCustomers) GetByAuthID(_ context.Context, authID int64) (*model.Customer, error) {
	c, ok := s.byAuth[authID]
	if !ok {
		return nil, errors.New("customer not found")
	}
	return c, nil
}

func newTestCheckoutService(customers *stubCustomers) (*CheckoutService, *CartService) {
	cart := newTestCartService()
	shipping := &stubShipping{methods: map[string]*model.ShippingMethod{
		"standard": {MethodID: 1, Code: "standard", Name: "Standard", Cost: dec("5.00"), Active: true},
	}}
	return NewCheckoutService(cart.Sessions, cart, shipping, customers), cart
}

func shippingAddr() model.Address {
	return model.Address{
		Name: "Alex Fan", Line1: "1 Main St", City: "Portland",
		PostalCode: "97201", Country: "US",
	}
}

func TestSetShippingLinksSignedInCustomer(t *testing.T) {
	customers := &stubCustomers{byAuth: map[int64]*model.Customer{
		7: {CustomerID: 42, AuthID: 7, Email: "fan@example.com"},
	}}
	svc, cart := newTestCheckoutService(customers)
	ctx := context.Background()

	sess, err := cart.Add(ctx, "", 1, nil, 1)
	require.NoError(t, err)

	authID := int64(7)
	_, err = svc.SetShipping(ctx, sess.ID, "fan@example.com", shippingAddr(), model.Address{}, "standard", &authID)
	require.NoError(t, err)

	reloaded, err := cart.Load(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.CustomerID)
	assert.Equal(t, int64(42), *reloaded.CustomerID)
	// billing fell back to shipping
	assert.Equal(t, shippingAddr(), reloaded.BillingAddr)
}

func TestSetShippingGuestStaysUnlinked(t *testing.T) {
	svc, cart := newTestCheckoutService(&stubCustomers{})
	ctx := context.Background()

	sess, err := cart.Add(ctx, "", 1, nil, 1)
	require.NoError(t, err)

	_, err = svc.SetShipping(ctx, sess.ID, "guest@example.com", shippingAddr(), model.Address{}, "standard", nil)
	require.NoError(t, err)

	reloaded, err := cart.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CustomerID)
}

func TestSetShippingUnknownAccountStaysUnlinked(t *testing.T) {
	svc, cart := newTestCheckoutService(&stubCustomers{})
	ctx := context.Background()

	sess, err := cart.Add(ctx, "", 1, nil, 1)
	require.NoError(t, err)

	// a token for an account with no customer row does not break checkout
	authID := int64(99)
	_, err = svc.SetShipping(ctx, sess.ID, "fan@example.com", shippingAddr(), model.Address{}, "standard", &authID)
	require.NoError(t, err)

	reloaded, err := cart.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CustomerID)
}

func TestSetShippingRejectsIncompleteAddress(t *testing.T) {
	svc, cart := newTestCheckoutService(&stubCustomers{})
	ctx := context.Background()

	sess, err := cart.Add(ctx, "", 1, nil, 1)
	require.NoError(t, err)

	_, err = svc.SetShipping(ctx, sess.ID, "fan@example.com", model.Address{Name: "Alex"}, model.Address{}, "standard", nil)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
