package response

import (
	"encoding/json"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase"
	"proassignment/internal/usecase/interfaces"
)

type CheckoutResponse struct {
	MerchantID string `json:"merchant_id"`
	OrderID    string `json:"order_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Hash       string `json:"hash"`
}

func FromCheckoutForm(f interfaces.CheckoutForm) CheckoutResponse {
	return CheckoutResponse{
		MerchantID: f.MerchantID,
		OrderID:    f.OrderID,
		Amount:     f.Amount,
		Currency:   f.Currency,
		Hash:       f.Hash,
	}
}

type PaymentOutcomeResponse struct {
	OrderID  string `json:"order_id"`
	Target   string `json:"target"`
	TargetID string `json:"target_id"`
	State    string `json:"state,omitempty"`
	Ignored  bool   `json:"ignored"`
}

func FromPaymentOutcome(o usecase.PaymentOutcome) PaymentOutcomeResponse {
	return PaymentOutcomeResponse{
		OrderID:  o.OrderID,
		Target:   o.Target,
		TargetID: o.TargetID,
		State:    string(o.State),
		Ignored:  o.Ignored,
	}
}

type ChargeResponse struct {
	Assignment        AssignmentResponse `json:"assignment"`
	ProviderPaymentID string             `json:"provider_payment_id"`
	ProviderStatus    string             `json:"provider_status"`
	ProviderResponse  json.RawMessage    `json:"provider_response,omitempty"`
}

func FromChargeResult(r usecase.ChargeResult, viewer entities.Viewer) ChargeResponse {
	return ChargeResponse{
		Assignment:        FromAssignment(r.Assignment, viewer),
		ProviderPaymentID: r.ProviderPaymentID,
		ProviderStatus:    r.ProviderStatus,
		ProviderResponse:  r.ProviderResponse,
	}
}
