package request

import (
	"strings"

	"proassignment/internal/usecase/interfaces"
)

// CheckoutNotifyForm is the form-encoded server callback of the card checkout.
type CheckoutNotifyForm struct {
	MerchantID string `form:"merchant_id" binding:"required"`
	OrderID    string `form:"order_id" binding:"required"`
	PaymentID  string `form:"payment_id"`
	Amount     string `form:"payhere_amount" binding:"required"`
	Currency   string `form:"payhere_currency" binding:"required"`
	StatusCode string `form:"status_code" binding:"required"`
	Signature  string `form:"md5sig" binding:"required"`
}

func (f CheckoutNotifyForm) ToNotification() interfaces.CheckoutNotification {
	return interfaces.CheckoutNotification{
		MerchantID: strings.TrimSpace(f.MerchantID),
		OrderID:    strings.TrimSpace(f.OrderID),
		PaymentID:  strings.TrimSpace(f.PaymentID),
		Amount:     strings.TrimSpace(f.Amount),
		Currency:   strings.TrimSpace(f.Currency),
		StatusCode: strings.TrimSpace(f.StatusCode),
		Signature:  strings.TrimSpace(f.Signature),
	}
}
