package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidSignature               = errors.New("invalid payment signature")
	ErrUnknownOrder                   = errors.New("unknown order id")
	ErrPaymentNotConfigured           = errors.New("payment gateway not configured")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// Order id prefixes of the hosted card checkout.
const (
	OrderPrefixAssignment = "ASSIGN_"
	OrderPrefixPaysheet   = "PAYSHEET_"
)

const (
	checkoutStatusSuccess = 2
	checkoutStatusPending = 0
)

// PaymentOutcome describes what a gateway callback changed.
type PaymentOutcome struct {
	OrderID  string                `json:"order_id"`
	Target   string                `json:"target"`
	TargetID string                `json:"target_id"`
	State    entities.PaymentState `json:"state,omitempty"`
	Ignored  bool                  `json:"ignored"`
}

type ChargeResult struct {
	Assignment        entities.Assignment `json:"assignment"`
	ProviderPaymentID string              `json:"provider_payment_id"`
	ProviderStatus    string              `json:"provider_status"`
	ProviderResponse  json.RawMessage     `json:"provider_response,omitempty"`
}

// PaymentOptions tunes the Mercado Pago charge. Sandbox payer values are only
// applied with a TEST- access token.
type PaymentOptions struct {
	Mock            bool
	SandboxToken    bool
	TestPayerEmail  string
	TestPayerUserID string
}

// IPaymentUseCase handles card payments of assignments and paysheet payouts.

type IPaymentUseCase interface {
	CheckoutAssignment(ctx context.Context, viewer entities.Viewer, assignmentID string) (interfaces.CheckoutForm, error)
	CheckoutPaysheet(ctx context.Context, viewer entities.Viewer, paysheetID string) (interfaces.CheckoutForm, error)
	HandleNotification(ctx context.Context, n interfaces.CheckoutNotification) (PaymentOutcome, error)
	ChargeAssignment(ctx context.Context, viewer entities.Viewer, assignmentID string, mpPayload json.RawMessage) (ChargeResult, error)
}

type PaymentUseCase struct {
	lifecycle IAssignmentUseCase
	ledger    IPaysheetUseCase
	signer    interfaces.ICheckoutSigner
	gateway   interfaces.IPaymentGateway
	opts      PaymentOptions
	now       func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(lifecycle IAssignmentUseCase, ledger IPaysheetUseCase, signer interfaces.ICheckoutSigner, gateway interfaces.IPaymentGateway, opts PaymentOptions) *PaymentUseCase {
	return &PaymentUseCase{
		lifecycle: lifecycle,
		ledger:    ledger,
		signer:    signer,
		gateway:   gateway,
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentUseCase) CheckoutAssignment(ctx context.Context, viewer entities.Viewer, assignmentID string) (interfaces.CheckoutForm, error) {
	if u.signer == nil {
		return interfaces.CheckoutForm{}, ErrPaymentNotConfigured
	}
	a, err := u.lifecycle.Get(ctx, viewer, assignmentID)
	if err != nil {
		return interfaces.CheckoutForm{}, err
	}
	if !isOwner(viewer, a) {
		return interfaces.CheckoutForm{}, ErrForbidden
	}
	if a.Status != entities.StatusPriceAccepted {
		return interfaces.CheckoutForm{}, ErrInvalidTransition
	}

	orderID := fmt.Sprintf("%s%s_%d", OrderPrefixAssignment, a.ID, u.now().Unix())
	pending := entities.PaymentInfo{Method: entities.PaymentMethodCard, Status: entities.PaymentStatePending, Reference: orderID}
	if _, err := u.lifecycle.ApplyPaymentResult(ctx, a.ID, pending); err != nil {
		return interfaces.CheckoutForm{}, err
	}
	log.Printf("[payment][usecase] checkout created order_id=%s amount=%.2f", orderID, a.ClientPrice)
	return u.signer.Sign(orderID, a.ClientPrice), nil
}

func (u *PaymentUseCase) CheckoutPaysheet(ctx context.Context, viewer entities.Viewer, paysheetID string) (interfaces.CheckoutForm, error) {
	if u.signer == nil {
		return interfaces.CheckoutForm{}, ErrPaymentNotConfigured
	}
	if !viewer.IsAdmin() {
		return interfaces.CheckoutForm{}, ErrForbidden
	}
	p, err := u.ledger.Get(ctx, viewer, paysheetID)
	if err != nil {
		return interfaces.CheckoutForm{}, err
	}
	if p.IsPaid() {
		return interfaces.CheckoutForm{}, ErrPaysheetAlreadyPaid
	}

	orderID := fmt.Sprintf("%s%s_%d", OrderPrefixPaysheet, p.ID, u.now().Unix())
	if _, err := u.ledger.RecordPaymentState(ctx, p.ID, entities.PaymentStatePending, orderID); err != nil {
		return interfaces.CheckoutForm{}, err
	}
	log.Printf("[payment][usecase] payout checkout created order_id=%s amount=%s", orderID, p.Amount.StringFixed(2))
	return u.signer.Sign(orderID, p.Amount.InexactFloat64()), nil
}

func (u *PaymentUseCase) HandleNotification(ctx context.Context, n interfaces.CheckoutNotification) (PaymentOutcome, error) {
	log.Printf("[payment][usecase] notification start order_id=%q status_code=%q", n.OrderID, n.StatusCode)
	if u.signer == nil {
		return PaymentOutcome{}, ErrPaymentNotConfigured
	}
	if !u.signer.Verify(n) {
		log.Printf("[payment][usecase] signature mismatch order_id=%q", n.OrderID)
		return PaymentOutcome{}, ErrInvalidSignature
	}
	target, targetID, ok := ParseOrderID(n.OrderID)
	if !ok {
		return PaymentOutcome{}, ErrUnknownOrder
	}
	out := PaymentOutcome{OrderID: n.OrderID, Target: target, TargetID: targetID}

	code, err := strconv.Atoi(strings.TrimSpace(n.StatusCode))
	if err != nil || code == checkoutStatusPending || (code > 0 && code != checkoutStatusSuccess) {
		out.Ignored = true
		return out, nil
	}
	out.State = entities.PaymentStateFailed
	if code == checkoutStatusSuccess {
		out.State = entities.PaymentStatePaid
	}
	reference := strings.TrimSpace(n.PaymentID)
	if reference == "" {
		reference = n.OrderID
	}

	switch target {
	case "assignment":
		info := entities.PaymentInfo{Method: entities.PaymentMethodCard, Status: out.State, Reference: reference}
		_, err := u.lifecycle.ApplyPaymentResult(ctx, targetID, info)
		if errors.Is(err, ErrAssignmentAlreadyPaid) {
			log.Printf("[payment][usecase] late result ignored order_id=%s state=%s", n.OrderID, out.State)
			out.Ignored = true
			return out, nil
		}
		if err != nil {
			return PaymentOutcome{}, err
		}
	case "paysheet":
		_, err := u.ledger.RecordPaymentState(ctx, targetID, out.State, reference)
		if errors.Is(err, ErrPaysheetAlreadyPaid) {
			out.Ignored = true
			return out, nil
		}
		if err != nil {
			return PaymentOutcome{}, err
		}
	}
	log.Printf("[payment][usecase] notification applied order_id=%s target=%s state=%s", n.OrderID, target, out.State)
	return out, nil
}

// ParseOrderID splits "ASSIGN_<id>_<ts>" and "PAYSHEET_<id>_<ts>".
func ParseOrderID(orderID string) (target, id string, ok bool) {
	var rest string
	switch {
	case strings.HasPrefix(orderID, OrderPrefixAssignment):
		target, rest = "assignment", strings.TrimPrefix(orderID, OrderPrefixAssignment)
	case strings.HasPrefix(orderID, OrderPrefixPaysheet):
		target, rest = "paysheet", strings.TrimPrefix(orderID, OrderPrefixPaysheet)
	default:
		return "", "", false
	}
	i := strings.LastIndex(rest, "_")
	if i <= 0 {
		return "", "", false
	}
	if _, err := strconv.ParseInt(rest[i+1:], 10, 64); err != nil {
		return "", "", false
	}
	return target, rest[:i], true
}

// ChargeAssignment charges the client price through Mercado Pago. The stored
// price always overrides transaction_amount in the payload.
func (u *PaymentUseCase) ChargeAssignment(ctx context.Context, viewer entities.Viewer, assignmentID string, mpPayload json.RawMessage) (ChargeResult, error) {
	log.Printf("[payment][usecase] charge start assignment_id=%q payload_len=%d", assignmentID, len(mpPayload))
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured assignment_id=%s", assignmentID)
		return ChargeResult{}, ErrPaymentNotConfigured
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.opts.Mock {
			log.Printf("[payment][usecase] invalid payload assignment_id=%s", assignmentID)
			return ChargeResult{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}

	a, err := u.lifecycle.Get(ctx, viewer, assignmentID)
	if err != nil {
		return ChargeResult{}, err
	}
	if !isOwner(viewer, a) {
		return ChargeResult{}, ErrForbidden
	}
	if a.Status != entities.StatusPriceAccepted {
		return ChargeResult{}, ErrInvalidTransition
	}
	orderID := fmt.Sprintf("%s%s_%d", OrderPrefixAssignment, a.ID, u.now().Unix())

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		if !u.opts.Mock {
			return ChargeResult{}, ErrInvalidMPPayload
		}
		reqMap = map[string]any{}
	}
	if !u.opts.Mock {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Printf("[payment][usecase] missing payment_method_id assignment_id=%s", a.ID)
			return ChargeResult{}, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Printf("[payment][usecase] missing/invalid payer assignment_id=%s", a.ID)
			return ChargeResult{}, ErrInvalidMPPayload
		}
	}
	reqMap["external_reference"] = orderID
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Assignment %s", a.Title)
	}
	reqMap["transaction_amount"] = a.ClientPrice
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return ChargeResult{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed assignment_id=%s err=%v", a.ID, err)
		return ChargeResult{}, mapGatewayError(err)
	}
	log.Printf("[payment][usecase] payment gateway success assignment_id=%s provider_payment_id=%s provider_status=%s", a.ID, providerPaymentID, providerStatus)

	info := entities.PaymentInfo{Method: entities.PaymentMethodMercadoPago, Status: providerState(providerStatus), Reference: providerPaymentID}
	updated, err := u.lifecycle.ApplyPaymentResult(ctx, a.ID, info)
	if err != nil {
		log.Printf("[payment][usecase] apply result failed assignment_id=%s provider_payment_id=%s err=%v", a.ID, providerPaymentID, err)
		return ChargeResult{}, err
	}
	return ChargeResult{
		Assignment:        updated,
		ProviderPaymentID: providerPaymentID,
		ProviderStatus:    providerStatus,
		ProviderResponse:  providerResp,
	}, nil
}

func providerState(status string) entities.PaymentState {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatePaid
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStateFailed
	}
	return entities.PaymentStatePending
}

func mapGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *PaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox either payer.id or payer.email is accepted.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if u.opts.TestPayerEmail != "" {
			payer["email"] = u.opts.TestPayerEmail
		} else if u.opts.SandboxToken {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func (u *PaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	if !u.opts.SandboxToken || u.opts.TestPayerUserID == "" || u.opts.TestPayerEmail == "" {
		return
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.opts.TestPayerUserID {
		return
	}
	payer["email"] = u.opts.TestPayerEmail
	delete(payer, "id")
	log.Printf("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}
