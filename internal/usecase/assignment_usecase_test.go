package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"
	mock_interfaces "proassignment/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var (
	admin   = entities.Viewer{UserID: "admin-1", Role: entities.RoleAdmin}
	client  = entities.Viewer{UserID: "client-1", Role: entities.RoleClient}
	other   = entities.Viewer{UserID: "client-2", Role: entities.RoleClient}
	writer  = entities.Viewer{UserID: "writer-1", Role: entities.RoleWriter}
	writer2 = entities.Viewer{UserID: "writer-2", Role: entities.RoleWriter}
)

type harness struct {
	now           time.Time
	assignments   *memAssignments
	paysheets     *memPaysheets
	users         *memUsers
	notifications *memNotifications
	conversations *memConversations
	sink          *recordingSink
	effects       *syncDispatcher
	lifecycle     *AssignmentUseCase
	ledger        *PaysheetUseCase
	notifier      *NotificationUseCase
	chat          *ChatUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return h.now }

	h.assignments = newMemAssignments()
	h.paysheets = newMemPaysheets(h.assignments, clock)
	h.users = newMemUsers(
		entities.User{ID: "admin-1", Role: entities.RoleAdmin, Email: "admin@example.com", CreatedAt: h.now.Add(-48 * time.Hour)},
		entities.User{ID: "admin-2", Role: entities.RoleAdmin, Email: "admin2@example.com", CreatedAt: h.now.Add(-24 * time.Hour)},
		entities.User{ID: "client-1", Role: entities.RoleClient, Email: "client@example.com"},
		entities.User{ID: "client-2", Role: entities.RoleClient, Email: "client2@example.com"},
		entities.User{ID: "writer-1", Role: entities.RoleWriter, Email: "writer@example.com"},
		entities.User{ID: "writer-2", Role: entities.RoleWriter, Email: "writer2@example.com"},
	)
	h.notifications = &memNotifications{}
	h.conversations = &memConversations{items: map[string]entities.Conversation{}}
	h.sink = &recordingSink{}
	h.effects = &syncDispatcher{}

	h.notifier = NewNotificationUseCase(h.notifications, h.users, h.sink, nil)
	h.notifier.now = clock
	h.chat = NewChatUseCase(h.conversations, &memMessages{}, h.assignments, h.notifier, h.sink, h.effects)
	h.chat.now = clock
	h.ledger = NewPaysheetUseCase(PaysheetDeps{
		Repo:        h.paysheets,
		Assignments: h.assignments,
		Users:       h.users,
		Notifier:    h.notifier,
		Events:      h.sink,
		Effects:     h.effects,
	})
	h.ledger.now = clock
	h.lifecycle = NewAssignmentUseCase(AssignmentDeps{
		Repo:     h.assignments,
		Users:    h.users,
		Files:    &memFiles{blobs: map[string][]byte{}},
		Ledger:   h.ledger,
		Notifier: h.notifier,
		Chat:     h.chat,
		Events:   h.sink,
		Effects:  h.effects,
		Inline:   h.effects,
	})
	h.lifecycle.now = clock
	return h
}

func upload(name, body string) UploadedFile {
	return UploadedFile{Name: name, Size: int64(len(body)), ContentType: "application/pdf", Content: strings.NewReader(body)}
}

func (h *harness) create(t *testing.T) entities.Assignment {
	t.Helper()
	a, err := h.lifecycle.Create(context.Background(), client, CreateAssignmentInput{
		Title: "Essay",
		Files: []UploadedFile{upload("brief.pdf", "brief")},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return a
}

// paid drives a new assignment to Paid through the bank transfer path.
func (h *harness) paid(t *testing.T, price float64) entities.Assignment {
	t.Helper()
	ctx := context.Background()
	a := h.create(t)
	steps := []func() (entities.Assignment, error){
		func() (entities.Assignment, error) { return h.lifecycle.SetClientPrice(ctx, admin, a.ID, price) },
		func() (entities.Assignment, error) { return h.lifecycle.AcceptPrice(ctx, client, a.ID) },
		func() (entities.Assignment, error) {
			return h.lifecycle.UploadPaymentProof(ctx, client, a.ID, upload("receipt.pdf", "paid"))
		},
		func() (entities.Assignment, error) { return h.lifecycle.ConfirmPayment(ctx, admin, a.ID) },
	}
	for i, step := range steps {
		var err error
		if a, err = step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return a
}

func (h *harness) writerSheets(t *testing.T, writerID string) []entities.Paysheet {
	t.Helper()
	sheets, err := h.paysheets.ListByOwner(context.Background(), entities.PaysheetKindWriter, writerID)
	if err != nil {
		t.Fatalf("list sheets: %v", err)
	}
	return sheets
}

func (h *harness) stored(t *testing.T, id string) entities.Assignment {
	t.Helper()
	a, _ := h.assignments.GetByID(context.Background(), id)
	return a
}

func TestAssignmentScenario_SubmitNotifiesAdmins(t *testing.T) {
	h := newHarness(t)
	a := h.create(t)

	if a.Status != entities.StatusNew {
		t.Fatalf("expected New, got %q", a.Status)
	}
	if len(a.Files) != 1 || a.Files[0].Name != "brief.pdf" {
		t.Fatalf("unexpected files: %+v", a.Files)
	}
	for _, id := range []string{"admin-1", "admin-2"} {
		if h.notifications.ofType(id, entities.NotificationAssignmentCreated) != 1 {
			t.Fatalf("admin %s was not notified", id)
		}
	}
	if h.sink.count("admin-1", EventAssignmentUpdated) == 0 || h.sink.count("client-1", EventAssignmentUpdated) == 0 {
		t.Fatalf("expected refresh broadcast, got %+v", h.sink.events)
	}
}

func TestAssignmentCreate_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.lifecycle.Create(ctx, client, CreateAssignmentInput{Title: "Essay"}); !errors.Is(err, ErrMissingFiles) {
		t.Fatalf("expected ErrMissingFiles, got %v", err)
	}
	if _, err := h.lifecycle.Create(ctx, client, CreateAssignmentInput{Files: []UploadedFile{upload("a.pdf", "x")}}); !errors.Is(err, ErrInvalidAssignmentInput) {
		t.Fatalf("expected ErrInvalidAssignmentInput, got %v", err)
	}
	if _, err := h.lifecycle.Create(ctx, writer, CreateAssignmentInput{Title: "x", Files: []UploadedFile{upload("a.pdf", "x")}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAssignmentScenario_PriceNegotiation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.create(t)

	a, err := h.lifecycle.SetClientPrice(ctx, admin, a.ID, 100)
	if err != nil || a.Status != entities.StatusPriceSet || a.ClientPrice != 100 {
		t.Fatalf("set price: %+v err=%v", a, err)
	}
	a, err = h.lifecycle.RejectPrice(ctx, client, a.ID)
	if err != nil || a.Status != entities.StatusPriceRejected {
		t.Fatalf("reject: %+v err=%v", a, err)
	}
	a, err = h.lifecycle.SetClientPrice(ctx, admin, a.ID, 80)
	if err != nil || a.Status != entities.StatusPriceSet || a.ClientPrice != 80 {
		t.Fatalf("re-price: %+v err=%v", a, err)
	}
	if got := h.notifications.ofType("client-1", entities.NotificationPriceSet); got != 2 {
		t.Fatalf("expected 2 price notifications, got %d", got)
	}
	if got := h.notifications.ofType("admin-1", entities.NotificationPriceRejected); got != 1 {
		t.Fatalf("expected rejection notification, got %d", got)
	}
}

func TestAssignmentScenario_PaymentAndAssignment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.create(t)

	a, _ = h.lifecycle.SetClientPrice(ctx, admin, a.ID, 100)
	a, _ = h.lifecycle.AcceptPrice(ctx, client, a.ID)
	a, err := h.lifecycle.UploadPaymentProof(ctx, client, a.ID, upload("receipt.pdf", "paid"))
	if err != nil || a.Status != entities.StatusPaymentProofSubmitted || a.PaymentProof == nil {
		t.Fatalf("proof: %+v err=%v", a, err)
	}
	a, err = h.lifecycle.ConfirmPayment(ctx, admin, a.ID)
	if err != nil || a.Status != entities.StatusPaid || a.Payment.Status != entities.PaymentStatePaid {
		t.Fatalf("confirm: %+v err=%v", a, err)
	}

	a, err = h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 60})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if a.Status != entities.StatusInProgress || a.WriterID != "writer-1" {
		t.Fatalf("unexpected assignment: %+v", a)
	}

	sheets := h.writerSheets(t, "writer-1")
	if len(sheets) != 1 {
		t.Fatalf("expected one writer sheet, got %d", len(sheets))
	}
	p := sheets[0]
	if p.Period != "March 2026" || !p.Amount.Equal(decimal.NewFromInt(60)) || p.Status != entities.PaysheetStatusDue {
		t.Fatalf("unexpected sheet: %+v", p)
	}
	if a.PaysheetID != p.ID {
		t.Fatalf("expected back-reference %q, got %q", p.ID, a.PaysheetID)
	}

	profit, _ := h.paysheets.ListByOwner(ctx, entities.PaysheetKindAdmin, "admin-1")
	if len(profit) != 1 || !profit[0].Amount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected admin profit of 40 for the earliest admin, got %+v", profit)
	}
	if _, ok := h.conversations.items[entities.ConversationIDFor(a.ID)]; !ok {
		t.Fatalf("expected chat conversation")
	}
	if h.notifications.ofType("writer-1", entities.NotificationWriterAssigned) != 1 {
		t.Fatalf("writer not notified")
	}
}

func TestAssignmentScenario_DeliveryApprovalRating(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.paid(t, 100)
	a, _ = h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 60})

	a, err := h.lifecycle.UploadCompletedWork(ctx, writer, a.ID, []UploadedFile{upload("essay.pdf", "done")})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if a.Status != entities.StatusCompleted || a.Progress != 100 || a.CompletedAt == nil {
		t.Fatalf("unexpected completion: %+v", a)
	}
	if s := h.writerSheets(t, "writer-1"); len(s) != 1 || s[0].Status != entities.PaysheetStatusPending || !s[0].Amount.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected Pending sheet of 60, got %+v", s)
	}

	a, err = h.lifecycle.ApproveWork(ctx, admin, a.ID)
	if err != nil || a.Status != entities.StatusAdminApproved || !a.AdminApproved {
		t.Fatalf("approve: %+v err=%v", a, err)
	}
	if s := h.writerSheets(t, "writer-1"); s[0].Status != entities.PaysheetStatusDue {
		t.Fatalf("expected Due after approval, got %q", s[0].Status)
	}

	a, err = h.lifecycle.Rate(ctx, client, a.ID, 5, "great")
	if err != nil || a.Status != entities.StatusPaid || a.Rating != 5 || !a.IsClosed() {
		t.Fatalf("rate: %+v err=%v", a, err)
	}
	s := h.writerSheets(t, "writer-1")
	if len(s) != 1 || s[0].Status != entities.PaysheetStatusDue || !s[0].Amount.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected unchanged Due sheet, got %+v", s)
	}
	w, _ := h.users.GetByID(ctx, "writer-1")
	if w.Rating != 5.0 || w.RatedCount != 1 {
		t.Fatalf("expected rating 5.0, got %+v", w)
	}
	profit, _ := h.paysheets.ListByKind(ctx, entities.PaysheetKindAdmin)
	if len(profit) != 1 || !profit[0].Amount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("admin profit must not double count, got %+v", profit)
	}

	if _, err := h.lifecycle.Rate(ctx, client, a.ID, 4, ""); !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}
	if _, err := h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-2", WriterPrice: 10}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("closed assignment must not reopen, got %v", err)
	}
}

func TestAssignmentScenario_SameMonthMerge(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var ids []string
	for _, price := range []float64{60, 40} {
		a := h.paid(t, 150)
		a, err := h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: price})
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		if _, err := h.lifecycle.UploadCompletedWork(ctx, writer, a.ID, []UploadedFile{upload("w.pdf", "w")}); err != nil {
			t.Fatalf("complete: %v", err)
		}
		ids = append(ids, a.ID)
	}

	sheets := h.writerSheets(t, "writer-1")
	if len(sheets) != 1 {
		t.Fatalf("expected exactly one sheet, got %d", len(sheets))
	}
	p := sheets[0]
	if !p.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected amount 100, got %s", p.Amount)
	}
	if len(p.AssignmentIDs) != 2 || p.AssignmentIDs[0] != ids[0] || p.AssignmentIDs[1] != ids[1] {
		t.Fatalf("unexpected members %v", p.AssignmentIDs)
	}
	for _, id := range ids {
		if got := h.stored(t, id).PaysheetID; got != p.ID {
			t.Fatalf("assignment %s back-reference = %q", id, got)
		}
	}
}

func TestAssignmentScenario_CompletionMonthDecidesPeriod(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.now = time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	first := h.paid(t, 150)
	if _, err := h.lifecycle.AssignWriter(ctx, admin, first.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 60}); err != nil {
		t.Fatalf("assign first: %v", err)
	}
	if s := h.writerSheets(t, "writer-1"); len(s) != 1 || s[0].Period != "February 2026" {
		t.Fatalf("expected a provisional February sheet, got %+v", s)
	}

	h.now = time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	second := h.paid(t, 150)
	if _, err := h.lifecycle.AssignWriter(ctx, admin, second.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 40}); err != nil {
		t.Fatalf("assign second: %v", err)
	}
	for _, id := range []string{first.ID, second.ID} {
		if _, err := h.lifecycle.UploadCompletedWork(ctx, writer, id, []UploadedFile{upload("w.pdf", "w")}); err != nil {
			t.Fatalf("complete %s: %v", id, err)
		}
		if _, err := h.lifecycle.ApproveWork(ctx, admin, id); err != nil {
			t.Fatalf("approve %s: %v", id, err)
		}
	}

	sheets := h.writerSheets(t, "writer-1")
	if len(sheets) != 1 {
		t.Fatalf("expected one March sheet, got %+v", sheets)
	}
	march := sheets[0]
	if march.Period != "March 2026" || !march.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected March sheet of 100, got period=%s amount=%s", march.Period, march.Amount)
	}
	if len(march.AssignmentIDs) != 2 || !march.Contains(first.ID) || !march.Contains(second.ID) {
		t.Fatalf("unexpected members %v", march.AssignmentIDs)
	}
	for _, id := range []string{first.ID, second.ID} {
		if got := h.stored(t, id).PaysheetID; got != march.ID {
			t.Fatalf("assignment %s back-reference = %q, want %q", id, got, march.ID)
		}
	}

	profit, _ := h.paysheets.ListByKind(ctx, entities.PaysheetKindAdmin)
	if len(profit) != 1 || profit[0].Period != "March 2026" || !profit[0].Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected one March profit sheet of 200, got %+v", profit)
	}
}

func TestPaysheetUpsert_PaidSheetKeepsEarlierPeriod(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.now = time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	a := h.paid(t, 150)
	a, _ = h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 60})
	feb := h.writerSheets(t, "writer-1")[0]
	if _, err := h.ledger.MarkPaid(ctx, admin, feb.ID, "payout-1"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	h.now = time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	if _, err := h.lifecycle.UploadCompletedWork(ctx, writer, a.ID, []UploadedFile{upload("w.pdf", "w")}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	sheets := h.writerSheets(t, "writer-1")
	if len(sheets) != 1 || sheets[0].ID != feb.ID || !sheets[0].IsPaid() {
		t.Fatalf("a paid contribution must stay where it was paid, got %+v", sheets)
	}
}

func TestAssignment_IllegalEdgesLeaveDocumentUntouched(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.create(t)
	before := h.stored(t, a.ID)

	cases := []struct {
		name string
		call func() (entities.Assignment, error)
	}{
		{"accept on New", func() (entities.Assignment, error) { return h.lifecycle.AcceptPrice(ctx, client, a.ID) }},
		{"confirm on New", func() (entities.Assignment, error) { return h.lifecycle.ConfirmPayment(ctx, admin, a.ID) }},
		{"approve on New", func() (entities.Assignment, error) { return h.lifecycle.ApproveWork(ctx, admin, a.ID) }},
		{"proof on New", func() (entities.Assignment, error) {
			return h.lifecycle.UploadPaymentProof(ctx, client, a.ID, upload("r.pdf", "r"))
		}},
		{"assign without override", func() (entities.Assignment, error) {
			return h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 10})
		}},
		{"rate on New", func() (entities.Assignment, error) { return h.lifecycle.Rate(ctx, client, a.ID, 5, "") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.call(); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			after := h.stored(t, a.ID)
			if after.Status != before.Status || !after.UpdatedAt.Equal(before.UpdatedAt) {
				t.Fatalf("document changed: %+v", after)
			}
		})
	}
}

func TestAssignment_Authorization(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.create(t)
	a, _ = h.lifecycle.SetClientPrice(ctx, admin, a.ID, 100)

	if _, err := h.lifecycle.AcceptPrice(ctx, other, a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner accept: %v", err)
	}
	if _, err := h.lifecycle.SetClientPrice(ctx, client, a.ID, 10); !errors.Is(err, ErrForbidden) {
		t.Fatalf("client price: %v", err)
	}
	if _, err := h.lifecycle.Get(ctx, writer, a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unassigned writer get: %v", err)
	}
	if _, err := h.lifecycle.Get(ctx, admin, "missing"); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("missing: %v", err)
	}

	a, _ = h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 50, ClientPrice: floatPtr(90)})
	if _, err := h.lifecycle.UploadCompletedWork(ctx, writer2, a.ID, []UploadedFile{upload("x", "x")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other writer complete: %v", err)
	}
	if _, err := h.lifecycle.UpdateProgress(ctx, writer, a.ID, 100); !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("progress 100: %v", err)
	}
	got, err := h.lifecycle.UpdateProgress(ctx, writer, a.ID, 40)
	if err != nil || got.Progress != 40 {
		t.Fatalf("progress: %+v err=%v", got, err)
	}
}

func TestAssignWriter_ManualOverride(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	t.Run("override sets client price", func(t *testing.T) {
		a := h.create(t)
		got, err := h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 30, ClientPrice: floatPtr(70)})
		if err != nil || got.Status != entities.StatusInProgress || got.ClientPrice != 70 {
			t.Fatalf("override: %+v err=%v", got, err)
		}
	})

	t.Run("unknown writer", func(t *testing.T) {
		a := h.create(t)
		_, err := h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "client-1", WriterPrice: 30, ClientPrice: floatPtr(70)})
		if !errors.Is(err, ErrWriterNotFound) {
			t.Fatalf("expected ErrWriterNotFound, got %v", err)
		}
	})

	t.Run("invalid prices", func(t *testing.T) {
		a := h.create(t)
		if _, err := h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1"}); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("expected ErrInvalidPrice, got %v", err)
		}
		if _, err := h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 10, ClientPrice: floatPtr(0)}); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("expected ErrInvalidPrice, got %v", err)
		}
	})

	t.Run("loss making assignment records no profit", func(t *testing.T) {
		a := h.create(t)
		if _, err := h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-2", WriterPrice: 60, ClientPrice: floatPtr(50)}); err != nil {
			t.Fatalf("assign: %v", err)
		}
		for _, p := range h.paysheets.filter(func(p entities.Paysheet) bool { return p.Kind == entities.PaysheetKindAdmin }) {
			if p.Contains(a.ID) {
				t.Fatalf("profit sheet must not list a loss: %+v", p)
			}
		}
	})
}

func TestAssignment_ConcurrentTransitionLoses(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.create(t)
	a, _ = h.lifecycle.SetClientPrice(ctx, admin, a.ID, 100)

	// Another request rejects the price between our read and our write.
	h.assignments.beforeSave = func(id string) {
		h.assignments.beforeSave = nil
		cur, _ := h.assignments.GetByID(ctx, id)
		cur.Status = entities.StatusPriceRejected
		h.assignments.put(cur)
	}
	if _, err := h.lifecycle.AcceptPrice(ctx, client, a.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if got := h.stored(t, a.ID).Status; got != entities.StatusPriceRejected {
		t.Fatalf("winning write must stay, got %q", got)
	}
}

func TestAssignment_LedgerFailureIsSwallowed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.paid(t, 100)
	h.paysheets.failWrites = errors.New("ledger down")

	got, err := h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 60})
	if err != nil {
		t.Fatalf("side effect failure leaked: %v", err)
	}
	if got.Status != entities.StatusInProgress {
		t.Fatalf("primary write missing: %+v", got)
	}
	if h.effects.failed["ledger.writer"] == nil {
		t.Fatalf("expected the ledger effect failure to be recorded")
	}

	// The backfill picks the assignment up once it is closed.
	h.paysheets.failWrites = nil
	h.lifecycle.UploadCompletedWork(ctx, writer, a.ID, []UploadedFile{upload("w", "w")})
	h.paysheets.items = map[string]entities.Paysheet{}
	stored := h.stored(t, a.ID)
	stored.Status = entities.StatusPaid
	stored.Rating = 4
	stored.PaysheetID = ""
	h.assignments.put(stored)

	res, err := h.ledger.GeneratePaysheets(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Processed != 1 || res.Created != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if h.stored(t, a.ID).PaysheetID == "" {
		t.Fatalf("backfill must link the assignment")
	}
	res, _ = h.ledger.GeneratePaysheets(ctx)
	if res.Processed != 0 {
		t.Fatalf("second pass must find nothing, got %+v", res)
	}
}

func TestAssignment_IntegrityFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.paid(t, 100)

	if _, err := h.lifecycle.RequestIntegrityReport(ctx, client, a.ID); !errors.Is(err, ErrInvalidIntegrityTransition) {
		t.Fatalf("request without writer: %v", err)
	}
	a, _ = h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 60})

	a, err := h.lifecycle.RequestIntegrityReport(ctx, client, a.ID)
	if err != nil || a.IntegrityReport.Status != entities.IntegrityRequested {
		t.Fatalf("request: %+v err=%v", a.IntegrityReport, err)
	}
	if _, err := h.lifecycle.SubmitIntegrityReport(ctx, writer, a.ID, upload("r.pdf", "r")); !errors.Is(err, ErrInvalidIntegrityTransition) {
		t.Fatalf("submit before relay: %v", err)
	}
	if a, err = h.lifecycle.SendIntegrityToWriter(ctx, admin, a.ID); err != nil {
		t.Fatalf("send to writer: %v", err)
	}
	if a, err = h.lifecycle.SubmitIntegrityReport(ctx, writer, a.ID, upload("report.pdf", "clean")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, _, _, err := h.lifecycle.OpenFile(ctx, client, a.ID, FileSetIntegrity, 0); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("client must not see the report yet: %v", err)
	}
	if a, err = h.lifecycle.SendIntegrityToUser(ctx, admin, a.ID); err != nil {
		t.Fatalf("send to user: %v", err)
	}
	if a.Status != entities.StatusInProgress {
		t.Fatalf("integrity flow must not move status, got %q", a.Status)
	}

	ref, rc, size, err := h.lifecycle.OpenFile(ctx, client, a.ID, FileSetIntegrity, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if ref.Name != "report.pdf" || string(body) != "clean" || size != 5 {
		t.Fatalf("unexpected file %+v %q", ref, body)
	}
	if _, err := h.lifecycle.SendIntegrityToUser(ctx, admin, a.ID); !errors.Is(err, ErrInvalidIntegrityTransition) {
		t.Fatalf("terminal step repeated: %v", err)
	}
}

func TestAssignment_ListIsRoleScoped(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.create(t)
	mine := h.create(t)
	h.lifecycle.AssignWriter(ctx, admin, mine.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 10, ClientPrice: floatPtr(20)})

	if items, _ := h.lifecycle.List(ctx, client, ""); len(items) != 2 {
		t.Fatalf("client sees %d", len(items))
	}
	if items, _ := h.lifecycle.List(ctx, other, ""); len(items) != 0 {
		t.Fatalf("other client sees %d", len(items))
	}
	if items, _ := h.lifecycle.List(ctx, writer, ""); len(items) != 1 || items[0].ID != mine.ID {
		t.Fatalf("writer sees %+v", items)
	}
	if items, _ := h.lifecycle.List(ctx, admin, entities.StatusNew); len(items) != 1 {
		t.Fatalf("admin filter sees %d", len(items))
	}
	if _, err := h.lifecycle.List(ctx, admin, "Bogus"); !errors.Is(err, ErrInvalidStatusFilter) {
		t.Fatalf("expected ErrInvalidStatusFilter, got %v", err)
	}
}

func TestAverageRating(t *testing.T) {
	items := []entities.Assignment{{Rating: 5}, {Rating: 4}, {Rating: 4}, {Rating: 0}}
	rating, count := AverageRating(items)
	if rating != 4.3 || count != 3 {
		t.Fatalf("expected 4.3 over 3, got %v over %d", rating, count)
	}
	if r, c := AverageRating(nil); r != 0 || c != 0 {
		t.Fatalf("expected zero, got %v %d", r, c)
	}
}

func TestAssignment_RatingMeanAcrossAssignments(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	for _, rating := range []int{5, 4} {
		a := h.paid(t, 100)
		h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 60})
		h.lifecycle.UploadCompletedWork(ctx, writer, a.ID, []UploadedFile{upload("w", "w")})
		if _, err := h.lifecycle.Rate(ctx, client, a.ID, rating, ""); err != nil {
			t.Fatalf("rate: %v", err)
		}
	}
	w, _ := h.users.GetByID(ctx, "writer-1")
	if w.Rating != 4.5 || w.RatedCount != 2 {
		t.Fatalf("expected 4.5 over 2, got %+v", w)
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestAssignmentFiles_StoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	h := newHarness(t)
	a := h.create(t)
	store := mock_interfaces.NewMockIFileStore(ctrl)
	h.lifecycle.files = store

	t.Run("missing object reads as file not found", func(t *testing.T) {
		store.EXPECT().Open(gomock.Any(), a.Files[0].Path).Return(nil, int64(0), interfaces.ErrStoredFileMissing)

		if _, _, _, err := h.lifecycle.OpenFile(ctx, client, a.ID, FileSetOriginal, 0); !errors.Is(err, ErrFileNotFound) {
			t.Fatalf("expected ErrFileNotFound, got %v", err)
		}
	})

	t.Run("backend error is returned as is", func(t *testing.T) {
		boom := errors.New("s3 unavailable")
		store.EXPECT().Open(gomock.Any(), a.Files[0].Path).Return(nil, int64(0), boom)

		if _, _, _, err := h.lifecycle.OpenFile(ctx, client, a.ID, FileSetOriginal, 0); !errors.Is(err, boom) {
			t.Fatalf("expected backend error, got %v", err)
		}
	})

	t.Run("stored bytes are streamed", func(t *testing.T) {
		store.EXPECT().Open(gomock.Any(), a.Files[0].Path).Return(io.NopCloser(strings.NewReader("brief")), int64(5), nil)

		ref, rc, size, err := h.lifecycle.OpenFile(ctx, client, a.ID, FileSetOriginal, 0)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		defer rc.Close()
		body, _ := io.ReadAll(rc)
		if ref.Path != a.Files[0].Path || size != 5 || string(body) != "brief" {
			t.Fatalf("unexpected file: ref=%+v size=%d body=%q", ref, size, body)
		}
	})

	t.Run("save failure aborts creation", func(t *testing.T) {
		boom := errors.New("disk full")
		store.EXPECT().Save(gomock.Any(), gomock.Any(), "brief.pdf", gomock.Any(), int64(5), "application/pdf").Return(entities.FileRef{}, boom)

		_, err := h.lifecycle.Create(ctx, client, CreateAssignmentInput{
			Title: "Essay",
			Files: []UploadedFile{upload("brief.pdf", "brief")},
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected save error, got %v", err)
		}
		list, _ := h.assignments.List(ctx, interfaces.AssignmentFilter{StudentID: "client-1"})
		if len(list) != 1 {
			t.Fatalf("no assignment may be stored after a failed upload, got %d", len(list))
		}
	})
}
