package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"
)

// In-memory adapters used by the lifecycle scenario tests. They keep the
// conditional-write contracts of the DynamoDB repositories.

type memAssignments struct {
	mu         sync.Mutex
	items      map[string]entities.Assignment
	beforeSave func(id string)
}

func newMemAssignments() *memAssignments {
	return &memAssignments{items: map[string]entities.Assignment{}}
}

func cloneAssignment(a entities.Assignment) entities.Assignment {
	a.Files = append([]entities.FileRef(nil), a.Files...)
	a.CompletedFiles = append([]entities.FileRef(nil), a.CompletedFiles...)
	if a.IntegrityReport != nil {
		r := *a.IntegrityReport
		a.IntegrityReport = &r
	}
	return a
}

func (m *memAssignments) Create(_ context.Context, a entities.Assignment) (entities.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[a.ID]; ok {
		return entities.Assignment{}, errors.New("duplicate id")
	}
	m.items[a.ID] = cloneAssignment(a)
	return a, nil
}

func (m *memAssignments) GetByID(_ context.Context, id string) (entities.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return entities.Assignment{}, nil
	}
	return cloneAssignment(a), nil
}

func (m *memAssignments) List(_ context.Context, f interfaces.AssignmentFilter) ([]entities.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Assignment
	for _, a := range m.items {
		if f.StudentID != "" && a.StudentID != f.StudentID {
			continue
		}
		if f.WriterID != "" && a.WriterID != f.WriterID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, cloneAssignment(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memAssignments) SaveIfStatus(_ context.Context, a entities.Assignment, from entities.AssignmentStatus) (entities.Assignment, error) {
	if m.beforeSave != nil {
		m.beforeSave(a.ID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[a.ID]
	if !ok || cur.Status != from {
		return entities.Assignment{}, nil
	}
	// The ledger owns paysheet_id; a status save never overwrites it.
	a.PaysheetID = cur.PaysheetID
	m.items[a.ID] = cloneAssignment(a)
	return a, nil
}

func (m *memAssignments) put(a entities.Assignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[a.ID] = cloneAssignment(a)
}

func (m *memAssignments) link(assignmentID, paysheetID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.items[assignmentID]; ok {
		a.PaysheetID = paysheetID
		m.items[assignmentID] = a
	}
}

type memPaysheets struct {
	mu          sync.Mutex
	items       map[string]entities.Paysheet
	assignments *memAssignments
	failWrites  error
	now         func() time.Time
}

func newMemPaysheets(assignments *memAssignments, now func() time.Time) *memPaysheets {
	return &memPaysheets{items: map[string]entities.Paysheet{}, assignments: assignments, now: now}
}

func clonePaysheet(p entities.Paysheet) entities.Paysheet {
	p.AssignmentIDs = append([]string(nil), p.AssignmentIDs...)
	return p
}

func (m *memPaysheets) GetByID(_ context.Context, id string) (entities.Paysheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clonePaysheet(m.items[id]), nil
}

func (m *memPaysheets) filter(keep func(entities.Paysheet) bool) []entities.Paysheet {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Paysheet
	for _, p := range m.items {
		if keep(p) {
			out = append(out, clonePaysheet(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memPaysheets) ListByOwner(_ context.Context, kind entities.PaysheetKind, ownerID string) ([]entities.Paysheet, error) {
	return m.filter(func(p entities.Paysheet) bool { return p.Kind == kind && p.OwnerID == ownerID }), nil
}

func (m *memPaysheets) ListByKind(_ context.Context, kind entities.PaysheetKind) ([]entities.Paysheet, error) {
	return m.filter(func(p entities.Paysheet) bool { return p.Kind == kind }), nil
}

func (m *memPaysheets) ListByLedgerKey(_ context.Context, key string) ([]entities.Paysheet, error) {
	return m.filter(func(p entities.Paysheet) bool { return p.LedgerKey() == key }), nil
}

func (m *memPaysheets) Create(_ context.Context, p entities.Paysheet, c interfaces.PaysheetContribution) (entities.Paysheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites != nil {
		return entities.Paysheet{}, m.failWrites
	}
	if _, ok := m.items[p.ID]; ok {
		return entities.Paysheet{}, nil
	}
	m.items[p.ID] = clonePaysheet(p)
	if c.LinkAssignment {
		m.assignments.link(c.AssignmentID, p.ID)
	}
	return p, nil
}

func (m *memPaysheets) Append(_ context.Context, p entities.Paysheet, c interfaces.PaysheetContribution) (entities.Paysheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites != nil {
		return entities.Paysheet{}, m.failWrites
	}
	cur, ok := m.items[p.ID]
	if !ok || cur.Version != p.Version || cur.IsPaid() || cur.Contains(c.AssignmentID) {
		return entities.Paysheet{}, nil
	}
	cur.Amount = cur.Amount.Add(c.Amount)
	cur.AssignmentIDs = append(cur.AssignmentIDs, c.AssignmentID)
	cur.Status = c.Status
	cur.Version++
	cur.UpdatedAt = m.now()
	m.items[p.ID] = cur
	if c.LinkAssignment {
		m.assignments.link(c.AssignmentID, p.ID)
	}
	return clonePaysheet(cur), nil
}

func (m *memPaysheets) Move(_ context.Context, mv interfaces.PaysheetMove) (entities.Paysheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites != nil {
		return entities.Paysheet{}, m.failWrites
	}
	c := mv.Contribution
	from, ok := m.items[mv.From.ID]
	if !ok || from.Version != mv.From.Version || from.IsPaid() || !from.Contains(c.AssignmentID) {
		return entities.Paysheet{}, nil
	}
	to, exists := m.items[mv.To.ID]
	if mv.Create {
		if exists {
			return entities.Paysheet{}, nil
		}
		to = clonePaysheet(mv.To)
	} else {
		if !exists || to.Version != mv.To.Version || to.IsPaid() || to.Contains(c.AssignmentID) {
			return entities.Paysheet{}, nil
		}
		to.Amount = to.Amount.Add(c.Amount)
		to.AssignmentIDs = append(to.AssignmentIDs, c.AssignmentID)
		to.Status = c.Status
		to.Version++
		to.UpdatedAt = m.now()
	}

	if len(from.AssignmentIDs) == 1 {
		delete(m.items, from.ID)
	} else {
		kept := make([]string, 0, len(from.AssignmentIDs)-1)
		for _, id := range from.AssignmentIDs {
			if id != c.AssignmentID {
				kept = append(kept, id)
			}
		}
		from.AssignmentIDs = kept
		from.Amount = from.Amount.Sub(c.Amount)
		from.Version++
		m.items[from.ID] = from
	}
	m.items[to.ID] = to
	if c.LinkAssignment {
		m.assignments.link(c.AssignmentID, to.ID)
	}
	return clonePaysheet(to), nil
}

func (m *memPaysheets) LinkAssignment(_ context.Context, paysheetID, assignmentID string) error {
	m.assignments.link(assignmentID, paysheetID)
	return nil
}

func (m *memPaysheets) UpdateStatus(_ context.Context, id string, status entities.PaysheetStatus) (entities.Paysheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[id]
	if !ok || cur.IsPaid() {
		return entities.Paysheet{}, nil
	}
	cur.Status = status
	cur.Version++
	m.items[id] = cur
	return clonePaysheet(cur), nil
}

func (m *memPaysheets) UpdatePayment(_ context.Context, id string, state entities.PaymentState, reference string, paidAt *time.Time) (entities.Paysheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[id]
	if !ok || cur.IsPaid() {
		return entities.Paysheet{}, nil
	}
	cur.PaymentStatus = state
	cur.PaymentReference = reference
	if state == entities.PaymentStatePaid {
		cur.Status = entities.PaysheetStatusPaid
		cur.PaidAt = paidAt
	}
	cur.Version++
	m.items[id] = cur
	return clonePaysheet(cur), nil
}

type memUsers struct {
	mu    sync.Mutex
	items map[string]entities.User
}

func newMemUsers(users ...entities.User) *memUsers {
	m := &memUsers{items: map[string]entities.User{}}
	for _, u := range users {
		m.items[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u entities.User) (entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id], nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.Email == email {
			return u, nil
		}
	}
	return entities.User{}, nil
}

func (m *memUsers) ListByRole(_ context.Context, role entities.Role) ([]entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.User
	for _, u := range m.items {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) UpdateRating(_ context.Context, id string, rating float64, count int) (entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return entities.User{}, nil
	}
	u.Rating = rating
	u.RatedCount = count
	m.items[id] = u
	return u, nil
}

type memNotifications struct {
	mu    sync.Mutex
	items []entities.Notification
}

func (m *memNotifications) Create(_ context.Context, n entities.Notification) (entities.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, n)
	return n, nil
}

func (m *memNotifications) ListByUser(_ context.Context, userID string) ([]entities.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Notification
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifications) MarkRead(_ context.Context, id, userID string) (entities.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.items {
		if n.ID == id && n.UserID == userID {
			m.items[i].Read = true
			return m.items[i], nil
		}
	}
	return entities.Notification{}, nil
}

func (m *memNotifications) MarkAllRead(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for i, n := range m.items {
		if n.UserID == userID && !n.Read {
			m.items[i].Read = true
			count++
		}
	}
	return count, nil
}

func (m *memNotifications) ofType(userID string, t entities.NotificationType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.items {
		if n.UserID == userID && n.Type == t {
			count++
		}
	}
	return count
}

type memConversations struct {
	mu    sync.Mutex
	items map[string]entities.Conversation
}

func (m *memConversations) Create(_ context.Context, c entities.Conversation) (entities.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[c.ID]; ok {
		return entities.Conversation{}, nil
	}
	m.items[c.ID] = c
	return c, nil
}

func (m *memConversations) GetByID(_ context.Context, id string) (entities.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id], nil
}

func (m *memConversations) SetParticipants(_ context.Context, id string, ids []string) (entities.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return entities.Conversation{}, nil
	}
	c.ParticipantIDs = ids
	m.items[id] = c
	return c, nil
}

type memMessages struct {
	mu    sync.Mutex
	items []entities.Message
}

func (m *memMessages) Create(_ context.Context, msg entities.Message) (entities.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, msg)
	return msg, nil
}

func (m *memMessages) ListByConversation(_ context.Context, id string) ([]entities.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Message
	for _, msg := range m.items {
		if msg.ConversationID == id {
			out = append(out, msg)
		}
	}
	return out, nil
}

type memFiles struct {
	mu    sync.Mutex
	blobs map[string][]byte
	seq   int
}

func (m *memFiles) Save(_ context.Context, category, name string, r io.Reader, _ int64, contentType string) (entities.FileRef, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return entities.FileRef{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	path := category + "/" + string(rune('a'+m.seq)) + "-" + name
	m.blobs[path] = b
	return entities.FileRef{Name: name, Path: path, Size: int64(len(b)), ContentType: contentType}, nil
}

func (m *memFiles) Open(_ context.Context, path string) (io.ReadCloser, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[path]
	if !ok {
		return nil, 0, interfaces.ErrStoredFileMissing
	}
	return io.NopCloser(bytes.NewReader(b)), int64(len(b)), nil
}

type sinkEvent struct {
	UserID string
	Event  string
}

type recordingSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

func (s *recordingSink) Notify(_ context.Context, userID, event string, _ any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, sinkEvent{UserID: userID, Event: event})
}

func (s *recordingSink) count(userID, event string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e.UserID == userID && e.Event == event {
			n++
		}
	}
	return n
}

// syncDispatcher runs effects in place and keeps their errors for assertions.
type syncDispatcher struct {
	mu     sync.Mutex
	failed map[string]error
}

func (d *syncDispatcher) Dispatch(ctx context.Context, name string, effect interfaces.Effect) {
	if err := effect(ctx); err != nil {
		d.mu.Lock()
		if d.failed == nil {
			d.failed = map[string]error{}
		}
		d.failed[name] = err
		d.mu.Unlock()
	}
}
