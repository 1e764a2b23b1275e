package checkout

import (
	"errors"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
)

var (
	ErrStepIncomplete    = errors.New("current step is incomplete")
	ErrStepNotAccessible = errors.New("step is not accessible")
	ErrCheckoutFinished  = errors.New("checkout already reached confirmation")
)

// Step is one stage of the checkout flow.
type Step string

const (
	StepCart         Step = "cart"
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// steps in forward order
var order = []Step{StepCart, StepShipping, StepPayment, StepConfirmation}

func (s Step) Valid() bool {
	for _, st := range order {
		if st == s {
			return true
		}
	}
	return false
}

func (s Step) index() int {
	for i, st := range order {
		if st == s {
			return i
		}
	}
	return -1
}

// next returns the step after s, or s itself at the end of the flow.
func (s Step) next() Step {
	i := s.index()
	if i < 0 || i == len(order)-1 {
		return s
	}
	return order[i+1]
}

func (s Step) String() string { return string(s) }

// Session is the full checkout-session state persisted alongside the cart.
// It tracks where the shopper is in the flow and the data each step collects.
type Session struct {
	ID             string        `json:"id"`
	CurrentStep    Step          `json:"currentstep"`
	CompletedSteps []Step        `json:"completedsteps"`
	Cart           model.Cart    `json:"cart"`
	CustomerID     *int64        `json:"customerid,omitempty"`
	Email          string        `json:"email,omitempty"`
	ShippingAddr   model.Address `json:"shippingaddress"`
	BillingAddr    model.Address `json:"billingaddress"`
	ShippingMethod string        `json:"shippingmethod,omitempty"`
	CheckoutRef    string        `json:"checkoutref,omitempty"`
	PaymentPending bool          `json:"paymentpending"`
	PaymentPaid    bool          `json:"paymentpaid"`
	OrderNumber    string        `json:"ordernumber,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewSession starts a fresh session at the cart step.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:          id,
		CurrentStep: StepCart,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *Session) completed(step Step) bool {
	for _, c := range s.CompletedSteps {
		if c == step {
			return true
		}
	}
	return false
}

func (s *Session) markCompleted(step Step) {
	if !s.completed(step) {
		s.CompletedSteps = append(s.CompletedSteps, step)
	}
}

// stepComplete reports whether the current step has the data it requires.
func (s *Session) stepComplete() bool {
	switch s.CurrentStep {
	case StepCart:
		return len(s.Cart.Lines) > 0
	case StepShipping:
		return s.ShippingAddr.Complete() && s.ShippingMethod != "" && s.Email != ""
	case StepPayment:
		return s.PaymentPaid
	}
	return false
}

// Advance marks the current step completed and moves to the next one.
// Fails with ErrStepIncomplete if the current step's required data is
// missing, and ErrCheckoutFinished once confirmation has been reached.
func (s *Session) Advance() error {
	if s.CurrentStep == StepConfirmation {
		return ErrCheckoutFinished
	}
	if !s.stepComplete() {
		return ErrStepIncomplete
	}
	s.markCompleted(s.CurrentStep)
	s.CurrentStep = s.CurrentStep.next()
	s.UpdatedAt = time.Now()
	return nil
}

// GoTo navigates to step. Only completed steps and the immediate next
// reachable step are allowed; forward skips fail with ErrStepNotAccessible.
// Confirmation is terminal: no navigation away from it except Restart.
func (s *Session) GoTo(step Step) error {
	if !step.Valid() {
		return ErrStepNotAccessible
	}
	if s.CurrentStep == StepConfirmation {
		return ErrCheckoutFinished
	}
	if step == s.CurrentStep {
		return nil
	}
	if s.completed(step) {
		s.CurrentStep = step
		s.UpdatedAt = time.Now()
		return nil
	}
	// the next reachable step requires the current one to be done
	if step == s.CurrentStep.next() && s.stepComplete() {
		s.markCompleted(s.CurrentStep)
		s.CurrentStep = step
		s.UpdatedAt = time.Now()
		return nil
	}
	return ErrStepNotAccessible
}

// Finish jumps straight to confirmation once payment settles. The shopper
// may have navigated back to any completed step while the charge was in
// flight, so this does not assume the session sits on the payment step.
func (s *Session) Finish() {
	s.markCompleted(StepCart)
	s.markCompleted(StepShipping)
	s.markCompleted(StepPayment)
	s.CurrentStep = StepConfirmation
	s.UpdatedAt = time.Now()
}

// Restart resets the flow to the cart step and clears all progress.
// The cart itself is left alone; callers clear it on successful orders.
func (s *Session) Restart() {
	s.CurrentStep = StepCart
	s.CompletedSteps = nil
	s.ShippingAddr = model.Address{}
	s.BillingAddr = model.Address{}
	s.ShippingMethod = ""
	s.CheckoutRef = ""
	s.PaymentPending = false
	s.PaymentPaid = false
	s.OrderNumber = ""
	s.UpdatedAt = time.Now()
}
