package response

import (
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase"

	"github.com/shopspring/decimal"
)

type PaysheetResponse struct {
	ID               string     `json:"id"`
	Kind             string     `json:"kind"`
	OwnerID          string     `json:"owner_id"`
	Period           string     `json:"period"`
	Amount           float64    `json:"amount"`
	Status           string     `json:"status"`
	Assignments      []string   `json:"assignments"`
	PaymentStatus    string     `json:"payment_status,omitempty"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func FromPaysheet(p entities.Paysheet) PaysheetResponse {
	ids := p.AssignmentIDs
	if ids == nil {
		ids = []string{}
	}
	return PaysheetResponse{
		ID:               p.ID,
		Kind:             string(p.Kind),
		OwnerID:          p.OwnerID,
		Period:           p.Period,
		Amount:           money(p.Amount),
		Status:           string(p.Status),
		Assignments:      ids,
		PaymentStatus:    string(p.PaymentStatus),
		PaymentReference: p.PaymentReference,
		PaidAt:           p.PaidAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func FromPaysheets(list []entities.Paysheet) []PaysheetResponse {
	out := make([]PaysheetResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromPaysheet(p))
	}
	return out
}

type IndividualPaymentResponse struct {
	AssignmentID string  `json:"assignment_id"`
	Title        string  `json:"title"`
	OwnerID      string  `json:"owner_id"`
	Period       string  `json:"period"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	PaysheetID   string  `json:"paysheet_id,omitempty"`
}

func FromIndividualPayments(list []usecase.IndividualPayment) []IndividualPaymentResponse {
	out := make([]IndividualPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, IndividualPaymentResponse{
			AssignmentID: p.AssignmentID,
			Title:        p.Title,
			OwnerID:      p.OwnerID,
			Period:       p.Period,
			Amount:       money(p.Amount),
			Status:       string(p.Status),
			PaysheetID:   p.PaysheetID,
		})
	}
	return out
}

type PeriodSummaryResponse struct {
	Period  string  `json:"period"`
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Due     float64 `json:"due"`
	Pending float64 `json:"pending"`
	Count   int     `json:"count"`
}

func FromPeriodSummaries(list []usecase.PeriodSummary) []PeriodSummaryResponse {
	out := make([]PeriodSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, PeriodSummaryResponse{
			Period:  s.Period,
			Total:   money(s.Total),
			Paid:    money(s.Paid),
			Due:     money(s.Due),
			Pending: money(s.Pending),
			Count:   s.Count,
		})
	}
	return out
}

// money rounds for display only; stored amounts keep full precision.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
