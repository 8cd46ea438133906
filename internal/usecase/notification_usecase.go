package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrInvalidNotificationInput = errors.New("invalid notification input")
)

const EventNotificationNew = "notification:new"

// INotificationUseCase persists user alerts and fans them out to live
// connections and the email queue.

type INotificationUseCase interface {
	Create(ctx context.Context, in entities.NotificationInput) (entities.Notification, error)
	NotifyAdmins(ctx context.Context, in entities.NotificationInput) error
	List(ctx context.Context, userID string) ([]entities.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (entities.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

type NotificationUseCase struct {
	repo      interfaces.INotificationRepository
	users     interfaces.IUserRepository
	events    interfaces.IEventSink
	publisher interfaces.IEmailPublisher
	now       func() time.Time
}

var _ INotificationUseCase = (*NotificationUseCase)(nil)

// NewNotificationUseCase wires the service. publisher may be nil when no
// broker is configured.
func NewNotificationUseCase(repo interfaces.INotificationRepository, users interfaces.IUserRepository, events interfaces.IEventSink, publisher interfaces.IEmailPublisher) *NotificationUseCase {
	return &NotificationUseCase{
		repo:      repo,
		users:     users,
		events:    events,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *NotificationUseCase) Create(ctx context.Context, in entities.NotificationInput) (entities.Notification, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.Message = strings.TrimSpace(in.Message)
	if in.UserID == "" || in.Message == "" {
		return entities.Notification{}, ErrInvalidNotificationInput
	}

	n := entities.Notification{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Message:   in.Message,
		Type:      in.Type,
		Link:      in.Link,
		CreatedAt: u.now(),
	}
	created, err := u.repo.Create(ctx, n)
	if err != nil {
		log.Printf("[notification][usecase] create failed user_id=%s type=%s err=%v", in.UserID, in.Type, err)
		return entities.Notification{}, err
	}

	if u.events != nil {
		u.events.Notify(ctx, created.UserID, EventNotificationNew, created)
	}
	u.publishEmail(ctx, created)
	return created, nil
}

func (u *NotificationUseCase) publishEmail(ctx context.Context, n entities.Notification) {
	if u.publisher == nil {
		return
	}
	job := interfaces.EmailJob{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Subject:        emailSubject(n.Type),
		Body:           n.Message,
		Link:           n.Link,
	}
	if u.users != nil {
		if user, err := u.users.GetByID(ctx, n.UserID); err == nil {
			job.Email = user.Email
		}
	}
	if err := u.publisher.Publish(ctx, job); err != nil {
		log.WithFields(log.Fields{"notification_id": n.ID, "user_id": n.UserID}).WithError(err).Warn("email job publish failed")
	}
}

// NotifyAdmins creates one notification per admin. It keeps going after a
// failed admin and returns the last error.
func (u *NotificationUseCase) NotifyAdmins(ctx context.Context, in entities.NotificationInput) error {
	admins, err := u.users.ListByRole(ctx, entities.RoleAdmin)
	if err != nil {
		return err
	}
	var last error
	for _, admin := range admins {
		in.UserID = admin.ID
		if _, err := u.Create(ctx, in); err != nil {
			last = err
		}
	}
	return last
}

func (u *NotificationUseCase) List(ctx context.Context, userID string) ([]entities.Notification, error) {
	return u.repo.ListByUser(ctx, userID)
}

func (u *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) (entities.Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Notification{}, ErrNotificationNotFound
	}
	n, err := u.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return entities.Notification{}, err
	}
	if n.ID == "" {
		return entities.Notification{}, ErrNotificationNotFound
	}
	return n, nil
}

func (u *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return u.repo.MarkAllRead(ctx, userID)
}

func emailSubject(t entities.NotificationType) string {
	switch t {
	case entities.NotificationAssignmentCreated:
		return "New assignment submitted"
	case entities.NotificationPriceSet:
		return "Your assignment has a price"
	case entities.NotificationWriterAssigned:
		return "Assignment in progress"
	case entities.NotificationWorkCompleted:
		return "Completed work uploaded"
	case entities.NotificationPaysheetPaid:
		return "Paysheet paid"
	case entities.NotificationNewMessage:
		return "New message"
	}
	return "Assignment update"
}
