package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	request "proassignment/internal/adapter/http/dto/request"
	response "proassignment/internal/adapter/http/dto/response"
	"proassignment/internal/usecase"
	"proassignment/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// PaymentHandler handles the hosted card checkout and Mercado Pago charges.
type PaymentHandler struct {
	usecase  usecase.IPaymentUseCase
	mockMode bool
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, mockMode bool) *PaymentHandler {
	return &PaymentHandler{usecase: uc, mockMode: mockMode}
}

// CheckoutAssignment returns the signed form the client posts to the checkout page.
func (h *PaymentHandler) CheckoutAssignment(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id := c.Param("id")
	log.Printf("[payment][handler] checkout start assignment_id=%s", id)

	form, err := h.usecase.CheckoutAssignment(c.Request.Context(), v, id)
	if err != nil {
		log.Printf("[payment][handler] checkout failed assignment_id=%s err=%v", id, err)
		renderError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutForm(form))
}

func (h *PaymentHandler) CheckoutPaysheet(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id := c.Param("id")
	log.Printf("[payment][handler] payout checkout start paysheet_id=%s", id)

	form, err := h.usecase.CheckoutPaysheet(c.Request.Context(), v, id)
	if err != nil {
		log.Printf("[payment][handler] payout checkout failed paysheet_id=%s err=%v", id, err)
		renderError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutForm(form))
}

// Notify receives the form-encoded server callback of the checkout.
func (h *PaymentHandler) Notify(c *gin.Context) {
	var form request.CheckoutNotifyForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("[payment][handler] notify invalid form err=%v", err)
		renderError(c, errInvalidRequest)
		return
	}

	outcome, err := h.usecase.HandleNotification(c.Request.Context(), form.ToNotification())
	if err != nil {
		log.Printf("[payment][handler] notify failed order_id=%s err=%v", form.OrderID, err)
		renderError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentOutcome(outcome))
}

// Charge charges an assignment's client price through Mercado Pago. The body
// is the provider payload, bare or wrapped in {"mp_payload": ...}.
func (h *PaymentHandler) Charge(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id := c.Param("id")
	log.Printf("[payment][handler] charge start assignment_id=%s", id)

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			log.Printf("[payment][handler] invalid payload assignment_id=%s err=%v", id, err)
			renderError(c, errInvalidRequest)
			return
		}
		log.Printf("[payment][handler] payload invalid in mock mode; fallback to empty payload assignment_id=%s err=%v", id, err)
		mpPayload = json.RawMessage("{}")
	}

	result, err := h.usecase.ChargeAssignment(c.Request.Context(), v, id, mpPayload)
	if err != nil {
		log.Printf("[payment][handler] charge failed assignment_id=%s err=%v", id, err)
		renderError(c, mapPaymentError(err))
		return
	}
	log.Printf("[payment][handler] charge success assignment_id=%s provider_payment_id=%s status=%s", id, result.ProviderPaymentID, result.ProviderStatus)
	c.JSON(http.StatusOK, response.FromChargeResult(result, v))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if trimmed := strings.TrimSpace(string(wrapped)); trimmed == "" || trimmed == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidSignature):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Payment signature does not match", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownOrder):
		return pkg.NewDomainErrorSimple("UNKNOWN_ORDER", "Unknown order id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_CONFIGURED", "Card payments are not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaysheetAlreadyPaid):
		return pkg.NewDomainErrorSimple("PAYSHEET_ALREADY_PAID", "Paysheet already paid", http.StatusConflict)
	default:
		return mapCommonError(err)
	}
}
