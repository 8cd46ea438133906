package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message body is empty")
)

const (
	EventMessageNew = "message:new"
	maxMessageLen   = 4000
)

// IChatUseCase manages the chat thread attached to each assignment.

type IChatUseCase interface {
	Provision(ctx context.Context, a entities.Assignment) (entities.Conversation, error)
	GetForAssignment(ctx context.Context, viewer entities.Viewer, assignmentID string) (entities.Conversation, error)
	ListMessages(ctx context.Context, viewer entities.Viewer, conversationID string) ([]entities.Message, error)
	SendMessage(ctx context.Context, viewer entities.Viewer, conversationID, body string) (entities.Message, error)
}

type ChatUseCase struct {
	conversations interfaces.IConversationRepository
	messages      interfaces.IMessageRepository
	assignments   interfaces.IAssignmentRepository
	notifier      INotificationUseCase
	events        interfaces.IEventSink
	effects       interfaces.IEffectDispatcher
	now           func() time.Time
}

var _ IChatUseCase = (*ChatUseCase)(nil)

func NewChatUseCase(
	conversations interfaces.IConversationRepository,
	messages interfaces.IMessageRepository,
	assignments interfaces.IAssignmentRepository,
	notifier INotificationUseCase,
	events interfaces.IEventSink,
	effects interfaces.IEffectDispatcher,
) *ChatUseCase {
	return &ChatUseCase{
		conversations: conversations,
		messages:      messages,
		assignments:   assignments,
		notifier:      notifier,
		events:        events,
		effects:       effects,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Provision finds or creates the assignment's conversation and makes sure the
// client and the current writer are participants.
func (u *ChatUseCase) Provision(ctx context.Context, a entities.Assignment) (entities.Conversation, error) {
	id := entities.ConversationIDFor(a.ID)
	want := a.InvolvedUserIDs()

	existing, err := u.conversations.GetByID(ctx, id)
	if err != nil {
		return entities.Conversation{}, err
	}
	if existing.ID == "" {
		c := entities.Conversation{ID: id, AssignmentID: a.ID, ParticipantIDs: want, CreatedAt: u.now()}
		created, err := u.conversations.Create(ctx, c)
		if err != nil {
			return entities.Conversation{}, err
		}
		if created.ID != "" {
			log.Printf("[chat][usecase] conversation created assignment_id=%s", a.ID)
			return created, nil
		}
		// Lost the create race; continue with the stored one.
		if existing, err = u.conversations.GetByID(ctx, id); err != nil {
			return entities.Conversation{}, err
		}
	}

	merged := existing.ParticipantIDs
	changed := false
	for _, uid := range want {
		if !existing.HasParticipant(uid) {
			merged = append(merged, uid)
			changed = true
		}
	}
	if !changed {
		return existing, nil
	}
	return u.conversations.SetParticipants(ctx, id, merged)
}

func (u *ChatUseCase) GetForAssignment(ctx context.Context, viewer entities.Viewer, assignmentID string) (entities.Conversation, error) {
	a, err := u.assignments.GetByID(ctx, strings.TrimSpace(assignmentID))
	if err != nil {
		return entities.Conversation{}, err
	}
	if a.ID == "" {
		return entities.Conversation{}, ErrAssignmentNotFound
	}
	if !canView(viewer, a) {
		return entities.Conversation{}, ErrForbidden
	}
	return u.Provision(ctx, a)
}

func (u *ChatUseCase) ListMessages(ctx context.Context, viewer entities.Viewer, conversationID string) ([]entities.Message, error) {
	if _, err := u.accessible(ctx, viewer, conversationID); err != nil {
		return nil, err
	}
	return u.messages.ListByConversation(ctx, conversationID)
}

func (u *ChatUseCase) SendMessage(ctx context.Context, viewer entities.Viewer, conversationID, body string) (entities.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxMessageLen {
		return entities.Message{}, ErrEmptyMessage
	}
	conv, err := u.accessible(ctx, viewer, conversationID)
	if err != nil {
		return entities.Message{}, err
	}

	m := entities.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderID:       viewer.UserID,
		Body:           body,
		CreatedAt:      u.now(),
	}
	created, err := u.messages.Create(ctx, m)
	if err != nil {
		return entities.Message{}, err
	}

	for _, uid := range conv.ParticipantIDs {
		if uid == viewer.UserID {
			continue
		}
		recipient := uid
		u.effects.Dispatch(ctx, "notify.message", func(ctx context.Context) error {
			if u.events != nil {
				u.events.Notify(ctx, recipient, EventMessageNew, created)
			}
			_, err := u.notifier.Create(ctx, entities.NotificationInput{
				UserID:  recipient,
				Message: "You have a new message",
				Type:    entities.NotificationNewMessage,
				Link:    fmt.Sprintf("/assignments/%s", conv.AssignmentID),
			})
			return err
		})
	}
	return created, nil
}

func (u *ChatUseCase) accessible(ctx context.Context, viewer entities.Viewer, conversationID string) (entities.Conversation, error) {
	conv, err := u.conversations.GetByID(ctx, strings.TrimSpace(conversationID))
	if err != nil {
		return entities.Conversation{}, err
	}
	if conv.ID == "" {
		return entities.Conversation{}, ErrConversationNotFound
	}
	if !viewer.IsAdmin() && !conv.HasParticipant(viewer.UserID) {
		return entities.Conversation{}, ErrForbidden
	}
	return conv, nil
}
