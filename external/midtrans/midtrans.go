package midtrans

import (
	"crypto/sha512"
	"encoding/hex"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// Status is the normalized gateway outcome.
type Status string

const (
	StatusSucceeded      Status = "succeeded"
	StatusRequiresAction Status = "requires_action"
	StatusFailed         Status = "failed"
)

// ErrorReason buckets gateway failures into the categories the UI surfaces.
type ErrorReason string

const (
	ReasonCardError       ErrorReason = "card_error"
	ReasonValidationError ErrorReason = "validation_error"
	ReasonAPIError        ErrorReason = "api_error"
	ReasonNetworkError    ErrorReason = "network_error"
)

// Result is a provider-independent view of a gateway notification.
type Result struct {
	Status        Status
	TransactionID string
	Reason        ErrorReason
}

// PaymentSession is what the hosted payment page needs on the client side.
type PaymentSession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Gateway wraps the Snap client. It only ever handles tokens and references
// issued by the gateway; raw card data never passes through here.
type Gateway struct {
	snap      *snap.Client
	serverKey string
}

func NewGateway(serverKey string, production bool) *Gateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(serverKey, env)

	return &Gateway{snap: &client, serverKey: serverKey}
}

// CreateTransaction opens a hosted payment session for the given checkout
// reference and amount, returning the snap token and redirect URL.
func (g *Gateway) CreateTransaction(ref string, grossAmount int64, email string) (*PaymentSession, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  ref,
			GrossAmt: grossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: email,
		},
	}

	resp, snapErr := g.snap.CreateTransaction(req)
	if snapErr != nil {
		return nil, snapErr
	}
	return &PaymentSession{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// VerifySignature checks the webhook signature:
// sha512(order_id + status_code + gross_amount + server key).
func (g *Gateway) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	raw := orderID + statusCode + grossAmount + g.serverKey
	hash := sha512.Sum512([]byte(raw))
	expected := hex.EncodeToString(hash[:])

	return expected == signature
}

// Normalize maps the gateway's transaction/fraud status pair onto the three
// outcomes callers care about. "pending" is an intermediate state, not a
// failure: the shopper is still inside the hosted flow (e.g. 3-D Secure)
// and a later notification resolves it.
func Normalize(transactionStatus, fraudStatus, transactionID string) Result {
	switch transactionStatus {
	case "settlement":
		return Result{Status: StatusSucceeded, TransactionID: transactionID}
	case "capture":
		if fraudStatus == "accept" {
			return Result{Status: StatusSucceeded, TransactionID: transactionID}
		}
		return Result{Status: StatusRequiresAction, TransactionID: transactionID}
	case "pending", "authorize":
		return Result{Status: StatusRequiresAction, TransactionID: transactionID}
	case "deny":
		return Result{Status: StatusFailed, TransactionID: transactionID, Reason: ReasonCardError}
	case "cancel", "expire":
		return Result{Status: StatusFailed, TransactionID: transactionID, Reason: ReasonCardError}
	}
	return Result{Status: StatusFailed, TransactionID: transactionID, Reason: ReasonAPIError}
}

// NormalizeError buckets a CreateTransaction failure.
func NormalizeError(err error) ErrorReason {
	mErr, ok := err.(*midtrans.Error)
	if !ok {
		return ReasonNetworkError
	}
	switch {
	case mErr.RawError != nil && mErr.StatusCode == 0:
		return ReasonNetworkError
	case mErr.StatusCode >= 400 && mErr.StatusCode < 500:
		return ReasonValidationError
	default:
		return ReasonAPIError
	}
}
