package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrAssignmentNotFound         = errors.New("assignment not found")
	ErrInvalidTransition          = errors.New("invalid status transition")
	ErrForbidden                  = errors.New("forbidden")
	ErrInvalidAssignmentInput     = errors.New("invalid assignment input")
	ErrMissingFiles               = errors.New("at least one file is required")
	ErrFileTooLarge               = errors.New("file too large")
	ErrInvalidPrice               = errors.New("price must be greater than zero")
	ErrInvalidRating              = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated               = errors.New("assignment already rated")
	ErrInvalidProgress            = errors.New("progress must be between 0 and 99")
	ErrWriterNotFound             = errors.New("writer not found")
	ErrInvalidStatusFilter        = errors.New("invalid status filter")
	ErrInvalidIntegrityTransition = errors.New("invalid integrity report transition")
	ErrFileNotFound               = errors.New("file not found")

	// ErrAssignmentAlreadyPaid is an invalid transition raised by a payment
	// result that arrives after the client payment was settled.
	ErrAssignmentAlreadyPaid = fmt.Errorf("assignment already paid: %w", ErrInvalidTransition)
)

const EventAssignmentUpdated = "assignment:updated"

// File categories double as storage prefixes.
const (
	CategoryOriginal  = "assignments"
	CategoryCompleted = "completed"
	CategoryProof     = "payment-proofs"
	CategoryIntegrity = "integrity-reports"
)

// UploadedFile is one multipart part handed over by the HTTP layer.
type UploadedFile struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

type CreateAssignmentInput struct {
	Title       string
	Subject     string
	Description string
	Deadline    *time.Time
	Files       []UploadedFile
}

// AssignWriterInput carries an optional ClientPrice; when set it overrides the
// stored price and allows assignment before the client accepted one.
type AssignWriterInput struct {
	WriterID    string
	WriterPrice float64
	ClientPrice *float64
}

// IAssignmentUseCase is the assignment lifecycle. Every mutation re-reads the
// document, checks role and transition, writes conditionally on the status it
// read and then dispatches its side effects.

type IAssignmentUseCase interface {
	Create(ctx context.Context, viewer entities.Viewer, in CreateAssignmentInput) (entities.Assignment, error)
	List(ctx context.Context, viewer entities.Viewer, status entities.AssignmentStatus) ([]entities.Assignment, error)
	Get(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error)

	SetClientPrice(ctx context.Context, viewer entities.Viewer, id string, price float64) (entities.Assignment, error)
	AcceptPrice(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error)
	RejectPrice(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error)
	UploadPaymentProof(ctx context.Context, viewer entities.Viewer, id string, file UploadedFile) (entities.Assignment, error)
	ConfirmPayment(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error)
	AssignWriter(ctx context.Context, viewer entities.Viewer, id string, in AssignWriterInput) (entities.Assignment, error)
	UpdateProgress(ctx context.Context, viewer entities.Viewer, id string, progress int) (entities.Assignment, error)
	UploadCompletedWork(ctx context.Context, viewer entities.Viewer, id string, files []UploadedFile) (entities.Assignment, error)
	ApproveWork(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error)
	Rate(ctx context.Context, viewer entities.Viewer, id string, rating int, feedback string) (entities.Assignment, error)
	ApplyPaymentResult(ctx context.Context, id string, payment entities.PaymentInfo) (entities.Assignment, error)

	RequestIntegrityReport(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error)
	SendIntegrityToWriter(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error)
	SubmitIntegrityReport(ctx context.Context, viewer entities.Viewer, id string, file UploadedFile) (entities.Assignment, error)
	SendIntegrityToUser(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error)

	OpenFile(ctx context.Context, viewer entities.Viewer, id, set string, index int) (entities.FileRef, io.ReadCloser, int64, error)
}

type AssignmentUseCase struct {
	repo      interfaces.IAssignmentRepository
	users     interfaces.IUserRepository
	files     interfaces.IFileStore
	ledger    IPaysheetUseCase
	notifier  INotificationUseCase
	chat      IChatUseCase
	events    interfaces.IEventSink
	effects   interfaces.IEffectDispatcher
	inline    interfaces.IEffectDispatcher
	maxUpload int64
	now       func() time.Time
}

var _ IAssignmentUseCase = (*AssignmentUseCase)(nil)

// AssignmentDeps groups the collaborators of the lifecycle. Effects runs
// notification and chat effects and may be asynchronous; Inline runs ledger
// and rating effects before the response is written.
type AssignmentDeps struct {
	Repo           interfaces.IAssignmentRepository
	Users          interfaces.IUserRepository
	Files          interfaces.IFileStore
	Ledger         IPaysheetUseCase
	Notifier       INotificationUseCase
	Chat           IChatUseCase
	Events         interfaces.IEventSink
	Effects        interfaces.IEffectDispatcher
	Inline         interfaces.IEffectDispatcher
	MaxUploadBytes int64
}

func NewAssignmentUseCase(d AssignmentDeps) *AssignmentUseCase {
	inline := d.Inline
	if inline == nil {
		inline = d.Effects
	}
	return &AssignmentUseCase{
		repo:      d.Repo,
		users:     d.Users,
		files:     d.Files,
		ledger:    d.Ledger,
		notifier:  d.Notifier,
		chat:      d.Chat,
		events:    d.Events,
		effects:   d.Effects,
		inline:    inline,
		maxUpload: d.MaxUploadBytes,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *AssignmentUseCase) Create(ctx context.Context, viewer entities.Viewer, in CreateAssignmentInput) (entities.Assignment, error) {
	if !viewer.IsClient() {
		return entities.Assignment{}, ErrForbidden
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return entities.Assignment{}, ErrInvalidAssignmentInput
	}
	if len(in.Files) == 0 {
		return entities.Assignment{}, ErrMissingFiles
	}

	refs, err := u.store(ctx, CategoryOriginal, in.Files)
	if err != nil {
		return entities.Assignment{}, err
	}

	now := u.now()
	a := entities.Assignment{
		ID:             uuid.NewString(),
		StudentID:      viewer.UserID,
		Title:          in.Title,
		Subject:        strings.TrimSpace(in.Subject),
		Description:    strings.TrimSpace(in.Description),
		Deadline:       in.Deadline,
		Status:         entities.StatusNew,
		Files:          refs,
		CompletedFiles: []entities.FileRef{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := u.repo.Create(ctx, a)
	if err != nil {
		log.Printf("[assignment][usecase] create failed student_id=%s err=%v", viewer.UserID, err)
		return entities.Assignment{}, err
	}
	log.Printf("[assignment][usecase] created assignment_id=%s student_id=%s files=%d", created.ID, created.StudentID, len(refs))

	u.notifyAdmins(ctx, created, entities.NotificationAssignmentCreated, fmt.Sprintf("New assignment submitted: %s", created.Title))
	u.broadcast(ctx, created)
	return created, nil
}

func (u *AssignmentUseCase) List(ctx context.Context, viewer entities.Viewer, status entities.AssignmentStatus) ([]entities.Assignment, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatusFilter
	}
	filter := interfaces.AssignmentFilter{Status: status}
	switch viewer.Role {
	case entities.RoleAdmin:
	case entities.RoleWriter:
		filter.WriterID = viewer.UserID
	case entities.RoleClient:
		filter.StudentID = viewer.UserID
	default:
		return nil, ErrForbidden
	}

	items, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (u *AssignmentUseCase) Get(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !canView(viewer, a) {
		return entities.Assignment{}, ErrForbidden
	}
	return a, nil
}

func (u *AssignmentUseCase) load(ctx context.Context, id string) (entities.Assignment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Assignment{}, ErrAssignmentNotFound
	}
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	if a.ID == "" {
		return entities.Assignment{}, ErrAssignmentNotFound
	}
	return a, nil
}

// commit writes a when the stored status still equals from. Losing the race to
// another transition is reported as an invalid transition.
func (u *AssignmentUseCase) commit(ctx context.Context, a entities.Assignment, from entities.AssignmentStatus) (entities.Assignment, error) {
	a.UpdatedAt = u.now()
	saved, err := u.repo.SaveIfStatus(ctx, a, from)
	if err != nil {
		log.Printf("[assignment][usecase] save failed assignment_id=%s from=%q to=%q err=%v", a.ID, from, a.Status, err)
		return entities.Assignment{}, err
	}
	if saved.ID == "" {
		log.Printf("[assignment][usecase] conditional save lost assignment_id=%s from=%q to=%q", a.ID, from, a.Status)
		return entities.Assignment{}, ErrInvalidTransition
	}
	if from != saved.Status {
		log.Printf("[assignment][usecase] transition assignment_id=%s from=%q to=%q", saved.ID, from, saved.Status)
	}
	return saved, nil
}

// refresh re-reads a after inline effects so the response carries the ledger
// back-reference. It falls back to a on any failure.
func (u *AssignmentUseCase) refresh(ctx context.Context, a entities.Assignment) entities.Assignment {
	fresh, err := u.repo.GetByID(ctx, a.ID)
	if err != nil || fresh.ID == "" {
		return a
	}
	return fresh
}

func (u *AssignmentUseCase) store(ctx context.Context, category string, files []UploadedFile) ([]entities.FileRef, error) {
	refs := make([]entities.FileRef, 0, len(files))
	for _, f := range files {
		if f.Content == nil || strings.TrimSpace(f.Name) == "" {
			return nil, ErrMissingFiles
		}
		if u.maxUpload > 0 && f.Size > u.maxUpload {
			return nil, ErrFileTooLarge
		}
		ref, err := u.files.Save(ctx, category, f.Name, f.Content, f.Size, f.ContentType)
		if err != nil {
			log.Printf("[assignment][usecase] file save failed category=%s name=%q err=%v", category, f.Name, err)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func canView(viewer entities.Viewer, a entities.Assignment) bool {
	switch {
	case viewer.IsAdmin():
		return true
	case viewer.IsClient():
		return a.StudentID == viewer.UserID
	case viewer.IsWriter():
		return a.WriterID != "" && a.WriterID == viewer.UserID
	}
	return false
}

func isOwner(viewer entities.Viewer, a entities.Assignment) bool {
	return viewer.IsClient() && a.StudentID == viewer.UserID
}

func isAssignee(viewer entities.Viewer, a entities.Assignment) bool {
	return viewer.IsWriter() && a.WriterID != "" && a.WriterID == viewer.UserID
}

func assignmentLink(a entities.Assignment) string {
	return "/assignments/" + a.ID
}

func (u *AssignmentUseCase) notifyUser(ctx context.Context, userID string, a entities.Assignment, t entities.NotificationType, message string) {
	if userID == "" {
		return
	}
	u.effects.Dispatch(ctx, "notify."+string(t), func(ctx context.Context) error {
		_, err := u.notifier.Create(ctx, entities.NotificationInput{UserID: userID, Message: message, Type: t, Link: assignmentLink(a)})
		return err
	})
}

func (u *AssignmentUseCase) notifyAdmins(ctx context.Context, a entities.Assignment, t entities.NotificationType, message string) {
	u.effects.Dispatch(ctx, "notify.admins."+string(t), func(ctx context.Context) error {
		return u.notifier.NotifyAdmins(ctx, entities.NotificationInput{Message: message, Type: t, Link: assignmentLink(a)})
	})
}

// broadcast tells the involved users and every admin to re-fetch the assignment.
func (u *AssignmentUseCase) broadcast(ctx context.Context, a entities.Assignment) {
	if u.events == nil {
		return
	}
	payload := map[string]string{"assignment_id": a.ID, "status": string(a.Status)}
	u.effects.Dispatch(ctx, "broadcast.assignment", func(ctx context.Context) error {
		for _, id := range a.InvolvedUserIDs() {
			u.events.Notify(ctx, id, EventAssignmentUpdated, payload)
		}
		admins, err := u.users.ListByRole(ctx, entities.RoleAdmin)
		if err != nil {
			return err
		}
		for _, admin := range admins {
			u.events.Notify(ctx, admin.ID, EventAssignmentUpdated, payload)
		}
		return nil
	})
}

func (u *AssignmentUseCase) ledgerEffect(ctx context.Context, name string, fn func(ctx context.Context) (entities.Paysheet, error)) {
	u.inline.Dispatch(ctx, name, func(ctx context.Context) error {
		_, err := fn(ctx)
		return err
	})
}
