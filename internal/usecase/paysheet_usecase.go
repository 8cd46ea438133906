package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
)

var (
	ErrPaysheetNotFound    = errors.New("paysheet not found")
	ErrPaysheetAlreadyPaid = errors.New("paysheet already paid")
	ErrInvalidPaysheetKind = errors.New("invalid paysheet kind")
	ErrLedgerConflict      = errors.New("ledger entry kept changing, giving up")
	ErrNoProfitOwner       = errors.New("no admin available to hold profit")
)

const (
	EventPaysheetUpdated = "paysheet:updated"
	maxUpsertAttempts    = 5
)

// GenerateResult summarises a backfill pass.
type GenerateResult struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
}

// IPaysheetUseCase is the earnings ledger.
//
// Contributions are idempotent per assignment: once any sheet of an owner and
// kind lists an assignment, repeating the upsert only moves that sheet's status.

type IPaysheetUseCase interface {
	UpsertWriterContribution(ctx context.Context, a entities.Assignment, status entities.PaysheetStatus) (entities.Paysheet, error)
	UpsertAdminContribution(ctx context.Context, a entities.Assignment) (entities.Paysheet, error)
	SetWriterStatusForAssignment(ctx context.Context, a entities.Assignment, status entities.PaysheetStatus) (entities.Paysheet, error)

	Get(ctx context.Context, viewer entities.Viewer, id string) (entities.Paysheet, error)
	ListPaysheets(ctx context.Context, viewer entities.Viewer, kind entities.PaysheetKind) ([]entities.Paysheet, error)
	IndividualPayments(ctx context.Context, viewer entities.Viewer, kind entities.PaysheetKind) ([]IndividualPayment, error)
	MonthlySummary(ctx context.Context, viewer entities.Viewer, kind entities.PaysheetKind) ([]PeriodSummary, error)
	GeneratePaysheets(ctx context.Context) (GenerateResult, error)
	MarkPaid(ctx context.Context, viewer entities.Viewer, id, reference string) (entities.Paysheet, error)
	RecordPaymentState(ctx context.Context, id string, state entities.PaymentState, reference string) (entities.Paysheet, error)
}

type PaysheetUseCase struct {
	repo          interfaces.IPaysheetRepository
	assignments   interfaces.IAssignmentRepository
	users         interfaces.IUserRepository
	notifier      INotificationUseCase
	events        interfaces.IEventSink
	effects       interfaces.IEffectDispatcher
	profitAdminID string
	now           func() time.Time
}

var _ IPaysheetUseCase = (*PaysheetUseCase)(nil)

type PaysheetDeps struct {
	Repo        interfaces.IPaysheetRepository
	Assignments interfaces.IAssignmentRepository
	Users       interfaces.IUserRepository
	Notifier    INotificationUseCase
	Events      interfaces.IEventSink
	Effects     interfaces.IEffectDispatcher
	// ProfitAdminID pins the owner of admin sheets. Empty means the earliest admin.
	ProfitAdminID string
}

func NewPaysheetUseCase(d PaysheetDeps) *PaysheetUseCase {
	return &PaysheetUseCase{
		repo:          d.Repo,
		assignments:   d.Assignments,
		users:         d.Users,
		notifier:      d.Notifier,
		events:        d.Events,
		effects:       d.Effects,
		profitAdminID: strings.TrimSpace(d.ProfitAdminID),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type upsertOutcome int

const (
	upsertSkipped upsertOutcome = iota
	upsertExisting
	upsertAppended
	upsertCreated
	upsertMoved
)

func (u *PaysheetUseCase) UpsertWriterContribution(ctx context.Context, a entities.Assignment, status entities.PaysheetStatus) (entities.Paysheet, error) {
	if !a.HasWriter() {
		return entities.Paysheet{}, nil
	}
	p, _, err := u.upsert(ctx, entities.PaysheetKindWriter, a.WriterID, a, status, true)
	return p, err
}

func (u *PaysheetUseCase) UpsertAdminContribution(ctx context.Context, a entities.Assignment) (entities.Paysheet, error) {
	if !entities.Contribution(a, entities.PaysheetKindAdmin).IsPositive() {
		log.Printf("[paysheet][usecase] admin profit skipped assignment_id=%s client_price=%.2f writer_price=%.2f", a.ID, a.ClientPrice, a.WriterPrice)
		return entities.Paysheet{}, nil
	}
	owner, err := u.profitOwner(ctx)
	if err != nil {
		return entities.Paysheet{}, err
	}
	p, _, err := u.upsert(ctx, entities.PaysheetKindAdmin, owner, a, entities.PaysheetStatusDue, false)
	return p, err
}

func (u *PaysheetUseCase) upsert(
	ctx context.Context,
	kind entities.PaysheetKind,
	ownerID string,
	a entities.Assignment,
	status entities.PaysheetStatus,
	link bool,
) (entities.Paysheet, upsertOutcome, error) {
	amount := entities.Contribution(a, kind)
	if !amount.IsPositive() {
		return entities.Paysheet{}, upsertSkipped, nil
	}

	period := entities.PeriodOf(a.EarningsReference(u.now()))
	key := entities.LedgerKey(kind, ownerID, period)
	c := interfaces.PaysheetContribution{AssignmentID: a.ID, Amount: amount, Status: status, LinkAssignment: link}

	for attempt := 1; attempt <= maxUpsertAttempts; attempt++ {
		existing, err := u.sheetContaining(ctx, kind, ownerID, a.ID)
		if err != nil {
			return entities.Paysheet{}, upsertSkipped, err
		}
		if existing.ID != "" && !misplaced(existing, a, period) {
			p, err := u.applyExisting(ctx, existing, a, status, link)
			return p, upsertExisting, err
		}

		sheets, err := u.repo.ListByLedgerKey(ctx, key)
		if err != nil {
			return entities.Paysheet{}, upsertSkipped, err
		}
		open := openSheet(sheets)

		if existing.ID != "" {
			move := interfaces.PaysheetMove{From: existing, To: open, Contribution: c}
			if open.ID == "" {
				move.To = newSheet(key, kind, ownerID, period, sheets, c, u.now())
				move.Create = true
			}
			saved, err := u.repo.Move(ctx, move)
			if err != nil {
				return entities.Paysheet{}, upsertSkipped, err
			}
			if saved.ID != "" {
				log.Printf("[paysheet][usecase] contribution moved from=%s to=%s assignment_id=%s amount=%s", existing.ID, saved.ID, a.ID, amount.StringFixed(2))
				u.announce(ctx, saved)
				return saved, upsertMoved, nil
			}
			log.Printf("[paysheet][usecase] move lost race from=%s attempt=%d", existing.ID, attempt)
			continue
		}

		if open.ID != "" {
			saved, err := u.repo.Append(ctx, open, c)
			if err != nil {
				return entities.Paysheet{}, upsertSkipped, err
			}
			if saved.ID != "" {
				log.Printf("[paysheet][usecase] contribution appended paysheet_id=%s assignment_id=%s amount=%s", saved.ID, a.ID, amount.StringFixed(2))
				u.announce(ctx, saved)
				return saved, upsertAppended, nil
			}
			log.Printf("[paysheet][usecase] append lost race paysheet_id=%s attempt=%d", open.ID, attempt)
			continue
		}

		sheet := newSheet(key, kind, ownerID, period, sheets, c, u.now())
		saved, err := u.repo.Create(ctx, sheet, c)
		if err != nil {
			return entities.Paysheet{}, upsertSkipped, err
		}
		if saved.ID != "" {
			log.Printf("[paysheet][usecase] paysheet created paysheet_id=%s assignment_id=%s amount=%s", saved.ID, a.ID, amount.StringFixed(2))
			u.announce(ctx, saved)
			return saved, upsertCreated, nil
		}
		log.Printf("[paysheet][usecase] create lost race paysheet_id=%s attempt=%d", sheet.ID, attempt)
	}
	return entities.Paysheet{}, upsertSkipped, ErrLedgerConflict
}

// misplaced reports an unpaid sheet whose period no longer matches the
// completion month of the assignment. Before completion the period is a guess.
func misplaced(p entities.Paysheet, a entities.Assignment, period string) bool {
	if p.IsPaid() || a.CompletedAt == nil || a.CompletedAt.IsZero() {
		return false
	}
	return p.Period != period
}

func newSheet(key string, kind entities.PaysheetKind, ownerID, period string, sheets []entities.Paysheet, c interfaces.PaysheetContribution, now time.Time) entities.Paysheet {
	return entities.Paysheet{
		ID:            nextSheetID(key, sheets),
		Kind:          kind,
		OwnerID:       ownerID,
		Period:        period,
		Amount:        c.Amount,
		Status:        c.Status,
		AssignmentIDs: []string{c.AssignmentID},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// nextSheetID numbers sheets of a ledger key as key#1, key#2, ... Emptied
// sheets are deleted, so the highest suffix is used rather than the count.
func nextSheetID(key string, sheets []entities.Paysheet) string {
	n := 0
	for _, p := range sheets {
		i := strings.LastIndex(p.ID, "#")
		if i < 0 {
			continue
		}
		if v, err := strconv.Atoi(p.ID[i+1:]); err == nil && v > n {
			n = v
		}
	}
	if n < len(sheets) {
		n = len(sheets)
	}
	return fmt.Sprintf("%s#%d", key, n+1)
}

// applyExisting handles a sheet that already lists the assignment: the amount
// stays, only the status moves and the back-reference is repaired.
func (u *PaysheetUseCase) applyExisting(ctx context.Context, p entities.Paysheet, a entities.Assignment, status entities.PaysheetStatus, link bool) (entities.Paysheet, error) {
	if link && a.PaysheetID != p.ID {
		if err := u.repo.LinkAssignment(ctx, p.ID, a.ID); err != nil {
			return entities.Paysheet{}, err
		}
	}
	if p.IsPaid() || p.Status == status {
		return p, nil
	}
	updated, err := u.repo.UpdateStatus(ctx, p.ID, status)
	if err != nil {
		return entities.Paysheet{}, err
	}
	if updated.ID == "" {
		// Paid in the meantime.
		return p, nil
	}
	u.announce(ctx, updated)
	return updated, nil
}

func (u *PaysheetUseCase) SetWriterStatusForAssignment(ctx context.Context, a entities.Assignment, status entities.PaysheetStatus) (entities.Paysheet, error) {
	if !a.HasWriter() {
		return entities.Paysheet{}, nil
	}
	var sheet entities.Paysheet
	if a.PaysheetID != "" {
		p, err := u.repo.GetByID(ctx, a.PaysheetID)
		if err != nil {
			return entities.Paysheet{}, err
		}
		if p.Contains(a.ID) {
			sheet = p
		}
	}
	if sheet.ID == "" {
		p, err := u.sheetContaining(ctx, entities.PaysheetKindWriter, a.WriterID, a.ID)
		if err != nil {
			return entities.Paysheet{}, err
		}
		sheet = p
	}
	if sheet.ID == "" {
		log.Printf("[paysheet][usecase] no writer sheet to update assignment_id=%s", a.ID)
		return entities.Paysheet{}, nil
	}
	return u.applyExisting(ctx, sheet, a, status, false)
}

func (u *PaysheetUseCase) sheetContaining(ctx context.Context, kind entities.PaysheetKind, ownerID, assignmentID string) (entities.Paysheet, error) {
	sheets, err := u.repo.ListByOwner(ctx, kind, ownerID)
	if err != nil {
		return entities.Paysheet{}, err
	}
	for _, p := range sheets {
		if p.Contains(assignmentID) {
			return p, nil
		}
	}
	return entities.Paysheet{}, nil
}

// openSheet picks the unpaid sheet of a ledger key. When a race left more
// than one, the oldest wins so every writer converges on the same document.
func openSheet(sheets []entities.Paysheet) entities.Paysheet {
	var open entities.Paysheet
	for _, p := range sheets {
		if p.IsPaid() {
			continue
		}
		if open.ID == "" || p.CreatedAt.Before(open.CreatedAt) || (p.CreatedAt.Equal(open.CreatedAt) && p.ID < open.ID) {
			open = p
		}
	}
	return open
}

func (u *PaysheetUseCase) profitOwner(ctx context.Context) (string, error) {
	if u.profitAdminID != "" {
		return u.profitAdminID, nil
	}
	admins, err := u.users.ListByRole(ctx, entities.RoleAdmin)
	if err != nil {
		return "", err
	}
	if len(admins) == 0 {
		return "", ErrNoProfitOwner
	}
	sort.Slice(admins, func(i, j int) bool {
		if admins[i].CreatedAt.Equal(admins[j].CreatedAt) {
			return admins[i].ID < admins[j].ID
		}
		return admins[i].CreatedAt.Before(admins[j].CreatedAt)
	})
	return admins[0].ID, nil
}

func (u *PaysheetUseCase) announce(ctx context.Context, p entities.Paysheet) {
	if u.events == nil {
		return
	}
	u.events.Notify(ctx, p.OwnerID, EventPaysheetUpdated, map[string]string{"paysheet_id": p.ID})
}

func (u *PaysheetUseCase) Get(ctx context.Context, viewer entities.Viewer, id string) (entities.Paysheet, error) {
	p, err := u.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return entities.Paysheet{}, err
	}
	if p.ID == "" {
		return entities.Paysheet{}, ErrPaysheetNotFound
	}
	if !viewer.IsAdmin() && p.OwnerID != viewer.UserID {
		return entities.Paysheet{}, ErrForbidden
	}
	return p, nil
}

func (u *PaysheetUseCase) ListPaysheets(ctx context.Context, viewer entities.Viewer, kind entities.PaysheetKind) ([]entities.Paysheet, error) {
	kind, err := resolveKind(viewer, kind)
	if err != nil {
		return nil, err
	}
	var sheets []entities.Paysheet
	if viewer.IsAdmin() {
		sheets, err = u.repo.ListByKind(ctx, kind)
	} else {
		sheets, err = u.repo.ListByOwner(ctx, kind, viewer.UserID)
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sheets, func(i, j int) bool { return sheets[i].CreatedAt.After(sheets[j].CreatedAt) })
	return sheets, nil
}

func (u *PaysheetUseCase) IndividualPayments(ctx context.Context, viewer entities.Viewer, kind entities.PaysheetKind) ([]IndividualPayment, error) {
	kind, err := resolveKind(viewer, kind)
	if err != nil {
		return nil, err
	}
	sheets, err := u.ListPaysheets(ctx, viewer, kind)
	if err != nil {
		return nil, err
	}
	filter := interfaces.AssignmentFilter{}
	if !viewer.IsAdmin() {
		filter.WriterID = viewer.UserID
	}
	assignments, err := u.assignments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return DerivePaymentStatuses(assignments, sheets, kind), nil
}

func (u *PaysheetUseCase) MonthlySummary(ctx context.Context, viewer entities.Viewer, kind entities.PaysheetKind) ([]PeriodSummary, error) {
	sheets, err := u.ListPaysheets(ctx, viewer, kind)
	if err != nil {
		return nil, err
	}
	return SummarizeByPeriod(sheets), nil
}

// GeneratePaysheets credits every closed assignment that never reached a
// writer sheet, for instance because an inline ledger effect failed.
func (u *PaysheetUseCase) GeneratePaysheets(ctx context.Context) (GenerateResult, error) {
	paid, err := u.assignments.List(ctx, interfaces.AssignmentFilter{Status: entities.StatusPaid})
	if err != nil {
		return GenerateResult{}, err
	}

	type group struct {
		writerID string
		period   string
	}
	groups := map[group][]entities.Assignment{}
	var order []group
	for _, a := range paid {
		if !a.HasWriter() || a.WriterPrice <= 0 || a.PaysheetID != "" {
			continue
		}
		g := group{writerID: a.WriterID, period: entities.PeriodOf(a.EarningsReference(u.now()))}
		if _, ok := groups[g]; !ok {
			order = append(order, g)
		}
		groups[g] = append(groups[g], a)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].writerID == order[j].writerID {
			return order[i].period < order[j].period
		}
		return order[i].writerID < order[j].writerID
	})

	var res GenerateResult
	for _, g := range order {
		for _, a := range groups[g] {
			res.Processed++
			_, outcome, err := u.upsert(ctx, entities.PaysheetKindWriter, a.WriterID, a, entities.PaysheetStatusDue, true)
			if err != nil {
				log.WithFields(log.Fields{"assignment_id": a.ID, "writer_id": a.WriterID}).WithError(err).Warn("backfill upsert failed")
				res.Skipped++
				continue
			}
			switch outcome {
			case upsertCreated:
				res.Created++
			case upsertAppended, upsertMoved:
				res.Updated++
			default:
				res.Skipped++
			}
		}
	}
	log.Printf("[paysheet][usecase] generate done processed=%d created=%d updated=%d skipped=%d", res.Processed, res.Created, res.Updated, res.Skipped)
	return res, nil
}

func (u *PaysheetUseCase) MarkPaid(ctx context.Context, viewer entities.Viewer, id, reference string) (entities.Paysheet, error) {
	if !viewer.IsAdmin() {
		return entities.Paysheet{}, ErrForbidden
	}
	return u.RecordPaymentState(ctx, id, entities.PaymentStatePaid, reference)
}

// RecordPaymentState stores a payout result. Paid settles the sheet; any other
// state only updates the payment fields.
func (u *PaysheetUseCase) RecordPaymentState(ctx context.Context, id string, state entities.PaymentState, reference string) (entities.Paysheet, error) {
	p, err := u.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return entities.Paysheet{}, err
	}
	if p.ID == "" {
		return entities.Paysheet{}, ErrPaysheetNotFound
	}
	if p.IsPaid() {
		return entities.Paysheet{}, ErrPaysheetAlreadyPaid
	}

	var paidAt *time.Time
	if state == entities.PaymentStatePaid {
		now := u.now()
		paidAt = &now
	}
	updated, err := u.repo.UpdatePayment(ctx, p.ID, state, strings.TrimSpace(reference), paidAt)
	if err != nil {
		return entities.Paysheet{}, err
	}
	if updated.ID == "" {
		return entities.Paysheet{}, ErrPaysheetAlreadyPaid
	}
	log.Printf("[paysheet][usecase] payment recorded paysheet_id=%s state=%s", updated.ID, state)

	u.announce(ctx, updated)
	if state == entities.PaymentStatePaid {
		u.effects.Dispatch(ctx, "notify.paysheet_paid", func(ctx context.Context) error {
			_, err := u.notifier.Create(ctx, entities.NotificationInput{
				UserID:  updated.OwnerID,
				Message: fmt.Sprintf("Your %s paysheet for %s has been paid (%s)", updated.Kind, updated.Period, updated.Amount.StringFixed(2)),
				Type:    entities.NotificationPaysheetPaid,
				Link:    "/paysheets",
			})
			return err
		})
	}
	return updated, nil
}

func resolveKind(viewer entities.Viewer, kind entities.PaysheetKind) (entities.PaysheetKind, error) {
	if kind == "" {
		kind = entities.PaysheetKindWriter
	}
	if !kind.Valid() {
		return "", ErrInvalidPaysheetKind
	}
	switch {
	case viewer.IsAdmin():
		return kind, nil
	case viewer.IsWriter() && kind == entities.PaysheetKindWriter:
		return kind, nil
	}
	return "", ErrForbidden
}
