package usecase

import (
	"sort"
	"time"

	"proassignment/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IndividualPayment is the per-assignment line of the payments view. Status
// is derived from whichever sheet lists the assignment, never stored.
type IndividualPayment struct {
	AssignmentID string                  `json:"assignment_id"`
	Title        string                  `json:"title"`
	OwnerID      string                  `json:"owner_id"`
	Period       string                  `json:"period"`
	Amount       decimal.Decimal         `json:"amount"`
	Status       entities.PaysheetStatus `json:"status"`
	PaysheetID   string                  `json:"paysheet_id,omitempty"`
}

type PeriodSummary struct {
	Period  string          `json:"period"`
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Due     decimal.Decimal `json:"due"`
	Pending decimal.Decimal `json:"pending"`
	Count   int             `json:"count"`
}

// DerivePaymentStatuses maps every assignment with a positive contribution of
// the given kind to the status of the sheet that lists it. Assignments no
// sheet lists yet are Pending.
func DerivePaymentStatuses(assignments []entities.Assignment, sheets []entities.Paysheet, kind entities.PaysheetKind) []IndividualPayment {
	byAssignment := make(map[string]entities.Paysheet, len(sheets))
	for _, p := range sheets {
		if p.Kind != kind {
			continue
		}
		for _, id := range p.AssignmentIDs {
			// A paid sheet wins over an open one listing the same id.
			if prev, ok := byAssignment[id]; ok && prev.IsPaid() {
				continue
			}
			byAssignment[id] = p
		}
	}

	out := make([]IndividualPayment, 0, len(assignments))
	for _, a := range assignments {
		amount := entities.Contribution(a, kind)
		if !amount.IsPositive() {
			continue
		}
		line := IndividualPayment{
			AssignmentID: a.ID,
			Title:        a.Title,
			Period:       entities.PeriodOf(a.EarningsReference(a.UpdatedAt)),
			Amount:       amount.Round(2),
			Status:       entities.PaysheetStatusPending,
		}
		if kind == entities.PaysheetKindWriter {
			line.OwnerID = a.WriterID
		}
		if p, ok := byAssignment[a.ID]; ok {
			line.Status = p.Status
			line.PaysheetID = p.ID
			line.Period = p.Period
			line.OwnerID = p.OwnerID
		}
		out = append(out, line)
	}
	return out
}

// SummarizeByPeriod totals sheets per period, newest period first.
func SummarizeByPeriod(sheets []entities.Paysheet) []PeriodSummary {
	byPeriod := map[string]*PeriodSummary{}
	for _, p := range sheets {
		s, ok := byPeriod[p.Period]
		if !ok {
			s = &PeriodSummary{Period: p.Period}
			byPeriod[p.Period] = s
		}
		s.Total = s.Total.Add(p.Amount)
		s.Count += len(p.AssignmentIDs)
		switch p.Status {
		case entities.PaysheetStatusPaid:
			s.Paid = s.Paid.Add(p.Amount)
		case entities.PaysheetStatusDue:
			s.Due = s.Due.Add(p.Amount)
		default:
			s.Pending = s.Pending.Add(p.Amount)
		}
	}

	out := make([]PeriodSummary, 0, len(byPeriod))
	for _, s := range byPeriod {
		s.Total = s.Total.Round(2)
		s.Paid = s.Paid.Round(2)
		s.Due = s.Due.Round(2)
		s.Pending = s.Pending.Round(2)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := parsePeriod(out[i].Period), parsePeriod(out[j].Period)
		if ti.Equal(tj) {
			return out[i].Period < out[j].Period
		}
		return ti.After(tj)
	})
	return out
}

func parsePeriod(period string) time.Time {
	t, err := time.Parse("January 2006", period)
	if err != nil {
		return time.Time{}
	}
	return t
}
