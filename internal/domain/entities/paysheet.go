package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PaysheetKind string

const (
	PaysheetKindWriter PaysheetKind = "writer"
	PaysheetKindAdmin  PaysheetKind = "admin"
)

func (k PaysheetKind) Valid() bool {
	return k == PaysheetKindWriter || k == PaysheetKindAdmin
}

// PaysheetStatus moves Pending → Due → Paid. Pending means the work behind at
// least one contribution is not approved yet.
type PaysheetStatus string

const (
	PaysheetStatusPending PaysheetStatus = "Pending"
	PaysheetStatusDue     PaysheetStatus = "Due"
	PaysheetStatusPaid    PaysheetStatus = "Paid"
)

// Paysheet is a monthly ledger entry of one owner and kind.
//
// Storage model (DynamoDB):
//   - PK: id ("<ledger_key>#<n>", n counts sheets already opened for the key)
//   - GSI ledger_key-index: ledger_key
//   - GSI owner_id-index: owner_id
//   - GSI kind-index: kind
//
// Version is bumped on every contribution and guards concurrent appends.
type Paysheet struct {
	ID               string          `json:"id"`
	Kind             PaysheetKind    `json:"kind"`
	OwnerID          string          `json:"owner_id"`
	Period           string          `json:"period"`
	Amount           decimal.Decimal `json:"amount"`
	Status           PaysheetStatus  `json:"status"`
	AssignmentIDs    []string        `json:"assignments"`
	PaymentStatus    PaymentState    `json:"payment_status,omitempty"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	Version          int64           `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (p Paysheet) LedgerKey() string {
	return LedgerKey(p.Kind, p.OwnerID, p.Period)
}

func (p Paysheet) IsPaid() bool {
	return p.Status == PaysheetStatusPaid
}

func (p Paysheet) Contains(assignmentID string) bool {
	for _, id := range p.AssignmentIDs {
		if id == assignmentID {
			return true
		}
	}
	return false
}

// LedgerKey is the grouping key shared by every sheet of (kind, owner, period).
func LedgerKey(kind PaysheetKind, ownerID, period string) string {
	return fmt.Sprintf("%s#%s#%s", kind, ownerID, period)
}

// PeriodOf renders the "Month Year" grouping key in UTC.
func PeriodOf(t time.Time) string {
	return t.UTC().Format("January 2006")
}

// Contribution is what an assignment adds to a sheet of the given kind:
// the writer price for writers, the client/writer spread for the admin.
// A non-positive result means nothing is recorded.
func Contribution(a Assignment, kind PaysheetKind) decimal.Decimal {
	switch kind {
	case PaysheetKindWriter:
		return decimal.NewFromFloat(a.WriterPrice)
	case PaysheetKindAdmin:
		if a.ClientPrice <= 0 || a.WriterPrice <= 0 {
			return decimal.Zero
		}
		return decimal.NewFromFloat(a.ClientPrice).Sub(decimal.NewFromFloat(a.WriterPrice))
	}
	return decimal.Zero
}
