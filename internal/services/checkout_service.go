package services

import (
	"context"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/cache"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/checkout"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
)

// CheckoutService drives the step flow on top of the session state machine.
type CheckoutService struct {
	Sessions  cache.SessionStore
	Cart      *CartService
	Shipping  ShippingLookup
	Customers CustomerLookup
}

func NewCheckoutService(sessions cache.SessionStore, cart *CartService, shipping ShippingLookup, customers CustomerLookup) *CheckoutService {
	return &CheckoutService{Sessions: sessions, Cart: cart, Shipping: shipping, Customers: customers}
}

// CheckoutState is the session projection returned to the client.
type CheckoutState struct {
	SessionID      string              `json:"sessionid"`
	CurrentStep    checkout.Step       `json:"currentstep"`
	CompletedSteps []checkout.Step     `json:"completedsteps"`
	Cart           *model.CartResponse `json:"cart"`
	Email          string              `json:"email,omitempty"`
	ShippingAddr   model.Address       `json:"shippingaddress"`
	ShippingMethod string              `json:"shippingmethod,omitempty"`
	OrderNumber    string              `json:"ordernumber,omitempty"`
}

func (s *CheckoutService) state(ctx context.Context, sess *checkout.Session) (*CheckoutState, error) {
	view, err := s.Cart.View(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &CheckoutState{
		SessionID:      sess.ID,
		CurrentStep:    sess.CurrentStep,
		CompletedSteps: sess.CompletedSteps,
		Cart:           view,
		Email:          sess.Email,
		ShippingAddr:   sess.ShippingAddr,
		ShippingMethod: sess.ShippingMethod,
		OrderNumber:    sess.OrderNumber,
	}, nil
}

// State returns the current checkout state with fresh totals.
func (s *CheckoutService) State(ctx context.Context, sessionID string) (*CheckoutState, error) {
	sess, err := s.Cart.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(ctx, sess)
}

// Advance completes the current step and moves forward.
func (s *CheckoutService) Advance(ctx context.Context, sessionID string) (*CheckoutState, error) {
	sess, err := s.Cart.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Advance(); err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.state(ctx, sess)
}

// GoTo navigates to a completed step or the next reachable one.
func (s *CheckoutService) GoTo(ctx context.Context, sessionID string, step checkout.Step) (*CheckoutState, error) {
	sess, err := s.Cart.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.GoTo(step); err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.state(ctx, sess)
}

// Restart resets the flow back to the cart step.
func (s *CheckoutService) Restart(ctx context.Context, sessionID string) (*CheckoutState, error) {
	sess, err := s.Cart.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Restart()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.state(ctx, sess)
}

// SetShipping records the contact email, addresses and shipping method
// collected on the shipping step. The billing address falls back to the
// shipping address when absent. When the shopper is signed in, authID links
// the session to their customer row so the order lands in their history.
func (s *CheckoutService) SetShipping(ctx context.Context, sessionID, email string, shipping, billing model.Address, methodCode string, authID *int64) (*CheckoutState, error) {
	sess, err := s.Cart.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if email == "" || !shipping.Complete() {
		return nil, ErrInvalidAddress
	}
	if _, err := s.Shipping.GetByCode(ctx, methodCode); err != nil {
		return nil, err
	}

	if !billing.Complete() {
		billing = shipping
	}

	sess.Email = email
	sess.ShippingAddr = shipping
	sess.BillingAddr = billing
	sess.ShippingMethod = methodCode

	if authID != nil {
		cust, err := s.Customers.GetByAuthID(ctx, *authID)
		if err == nil {
			sess.CustomerID = &cust.CustomerID
		}
	}

	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.state(ctx, sess)
}
