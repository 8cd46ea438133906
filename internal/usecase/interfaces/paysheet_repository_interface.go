package interfaces

import (
	"context"
	"time"

	"proassignment/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// PaysheetContribution is one assignment's share written into a sheet.
// LinkAssignment also stores the sheet id on the assignment in the same transaction.
type PaysheetContribution struct {
	AssignmentID   string
	Amount         decimal.Decimal
	Status         entities.PaysheetStatus
	LinkAssignment bool
}

// PaysheetMove takes one contribution off From and puts it on To. To is
// created when Create is set, otherwise the contribution is appended on top of
// To.Version. A From sheet left without assignments is deleted.
type PaysheetMove struct {
	From         entities.Paysheet
	To           entities.Paysheet
	Create       bool
	Contribution PaysheetContribution
}

// IPaysheetRepository abstracts DynamoDB persistence for Paysheet.
//
// Create and Append are conditional writes. Create fails when the id is taken,
// Append when the stored version differs from p.Version, the sheet was paid
// meanwhile or it already lists the assignment. Both report that by returning a
// zero Paysheet and no error. Move writes both sheets and the back-reference in
// one transaction under the same conditions, with From checked at its version.
// LinkAssignment only sets the back-reference.

type IPaysheetRepository interface {
	GetByID(ctx context.Context, id string) (entities.Paysheet, error)
	ListByOwner(ctx context.Context, kind entities.PaysheetKind, ownerID string) ([]entities.Paysheet, error)
	ListByKind(ctx context.Context, kind entities.PaysheetKind) ([]entities.Paysheet, error)
	ListByLedgerKey(ctx context.Context, ledgerKey string) ([]entities.Paysheet, error)
	Create(ctx context.Context, p entities.Paysheet, c PaysheetContribution) (entities.Paysheet, error)
	Append(ctx context.Context, p entities.Paysheet, c PaysheetContribution) (entities.Paysheet, error)
	Move(ctx context.Context, move PaysheetMove) (entities.Paysheet, error)
	LinkAssignment(ctx context.Context, paysheetID, assignmentID string) error
	UpdateStatus(ctx context.Context, id string, status entities.PaysheetStatus) (entities.Paysheet, error)
	UpdatePayment(ctx context.Context, id string, state entities.PaymentState, reference string, paidAt *time.Time) (entities.Paysheet, error)
}
