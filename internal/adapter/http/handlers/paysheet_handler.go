package handlers

import (
	"errors"
	"net/http"

	request "proassignment/internal/adapter/http/dto/request"
	response "proassignment/internal/adapter/http/dto/response"
	"proassignment/internal/usecase"
	"proassignment/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// PaysheetHandler serves the earnings ledger views. The kind query parameter
// selects writer (default) or admin sheets.
type PaysheetHandler struct {
	usecase usecase.IPaysheetUseCase
}

func NewPaysheetHandler(uc usecase.IPaysheetUseCase) *PaysheetHandler {
	return &PaysheetHandler{usecase: uc}
}

func (h *PaysheetHandler) List(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	sheets, err := h.usecase.ListPaysheets(c.Request.Context(), v, request.ResolveKind(c.Query("kind")))
	if err != nil {
		renderError(c, mapPaysheetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaysheets(sheets))
}

func (h *PaysheetHandler) Get(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	p, err := h.usecase.Get(c.Request.Context(), v, c.Param("id"))
	if err != nil {
		renderError(c, mapPaysheetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaysheet(p))
}

func (h *PaysheetHandler) IndividualPayments(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	lines, err := h.usecase.IndividualPayments(c.Request.Context(), v, request.ResolveKind(c.Query("kind")))
	if err != nil {
		renderError(c, mapPaysheetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromIndividualPayments(lines))
}

func (h *PaysheetHandler) Summary(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	summary, err := h.usecase.MonthlySummary(c.Request.Context(), v, request.ResolveKind(c.Query("kind")))
	if err != nil {
		renderError(c, mapPaysheetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPeriodSummaries(summary))
}

// Generate backfills writer sheets for paid assignments missing from the ledger.
func (h *PaysheetHandler) Generate(c *gin.Context) {
	result, err := h.usecase.GeneratePaysheets(c.Request.Context())
	if err != nil {
		log.Printf("[paysheet][handler] generate failed err=%v", err)
		renderError(c, mapPaysheetError(err))
		return
	}
	log.Printf("[paysheet][handler] generate success processed=%d created=%d updated=%d skipped=%d", result.Processed, result.Created, result.Updated, result.Skipped)
	c.JSON(http.StatusOK, result)
}

func (h *PaysheetHandler) MarkPaid(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	var payload request.MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			renderError(c, errInvalidRequest)
			return
		}
	}
	p, err := h.usecase.MarkPaid(c.Request.Context(), v, c.Param("id"), payload.Reference)
	if err != nil {
		log.Printf("[paysheet][handler] mark-paid failed paysheet_id=%s err=%v", c.Param("id"), err)
		renderError(c, mapPaysheetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaysheet(p))
}

func mapPaysheetError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaysheetKind):
		return pkg.NewDomainErrorSimple("INVALID_KIND", "kind must be writer or admin", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaysheetAlreadyPaid):
		return pkg.NewDomainErrorSimple("PAYSHEET_ALREADY_PAID", "Paysheet already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrNoProfitOwner):
		return pkg.NewDomainErrorSimple("NO_PROFIT_OWNER", "No admin account holds the profit ledger", http.StatusConflict)
	default:
		return mapCommonError(err)
	}
}
