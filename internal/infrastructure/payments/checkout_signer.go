package payments

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"proassignment/internal/config"
	"proassignment/internal/usecase/interfaces"
)

// CheckoutSigner implements the hosted card checkout hashing scheme:
//
//	hash   = UPPER(MD5(merchant_id + order_id + amount + currency + UPPER(MD5(secret))))
//	md5sig = UPPER(MD5(merchant_id + order_id + amount + currency + status_code + UPPER(MD5(secret))))
type CheckoutSigner struct {
	merchantID string
	secretHash string
	currency   string
}

var _ interfaces.ICheckoutSigner = (*CheckoutSigner)(nil)

// NewCheckoutSigner returns nil when the merchant is not configured, which the
// payment use case reports as ErrPaymentNotConfigured.
func NewCheckoutSigner(cfg config.GatewayConfig) *CheckoutSigner {
	if !cfg.CheckoutEnabled() {
		return nil
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "LKR"
	}
	return &CheckoutSigner{
		merchantID: cfg.MerchantID,
		secretHash: upperMD5(cfg.MerchantSecret),
		currency:   currency,
	}
}

func (s *CheckoutSigner) Sign(orderID string, amount float64) interfaces.CheckoutForm {
	formatted := FormatAmount(amount)
	return interfaces.CheckoutForm{
		MerchantID: s.merchantID,
		OrderID:    orderID,
		Amount:     formatted,
		Currency:   s.currency,
		Hash:       upperMD5(s.merchantID + orderID + formatted + s.currency + s.secretHash),
	}
}

func (s *CheckoutSigner) Verify(n interfaces.CheckoutNotification) bool {
	if n.MerchantID != s.merchantID {
		return false
	}
	want := upperMD5(n.MerchantID + n.OrderID + n.Amount + n.Currency + n.StatusCode + s.secretHash)
	got := strings.ToUpper(strings.TrimSpace(n.Signature))
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// FormatAmount renders an amount with two decimals, the way the checkout expects it.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func upperMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
