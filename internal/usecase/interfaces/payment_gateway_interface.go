package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the Mercado Pago direct charge.
//
// The caller passes the provider payload through and keeps the provider response
// for traceability.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}

// CheckoutForm is what the browser posts to the hosted card checkout.
type CheckoutForm struct {
	MerchantID string `json:"merchant_id"`
	OrderID    string `json:"order_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Hash       string `json:"hash"`
}

// CheckoutNotification is the server-to-server callback of the card checkout.
type CheckoutNotification struct {
	MerchantID string
	OrderID    string
	PaymentID  string
	Amount     string
	Currency   string
	StatusCode string
	Signature  string
}

// ICheckoutSigner signs outgoing checkout forms and verifies callbacks with the
// merchant secret.
type ICheckoutSigner interface {
	Sign(orderID string, amount float64) CheckoutForm
	Verify(n CheckoutNotification) bool
}
