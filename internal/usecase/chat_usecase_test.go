package usecase

import (
	"context"
	"errors"
	"testing"

	"proassignment/internal/domain/entities"
	mock_interfaces "proassignment/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestChatUseCase_ProvisionAndMessages(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.create(t)

	conv, err := h.chat.GetForAssignment(ctx, client, a.ID)
	if err != nil || len(conv.ParticipantIDs) != 1 {
		t.Fatalf("provision before assignment: %+v err=%v", conv, err)
	}
	if _, err := h.chat.GetForAssignment(ctx, writer, a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unassigned writer: %v", err)
	}

	h.lifecycle.AssignWriter(ctx, admin, a.ID, AssignWriterInput{WriterID: "writer-1", WriterPrice: 10, ClientPrice: floatPtr(20)})
	conv, err = h.chat.GetForAssignment(ctx, writer, a.ID)
	if err != nil || !conv.HasParticipant("writer-1") || !conv.HasParticipant("client-1") {
		t.Fatalf("writer must join: %+v err=%v", conv, err)
	}

	if _, err := h.chat.SendMessage(ctx, client, conv.ID, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("empty body: %v", err)
	}
	if _, err := h.chat.SendMessage(ctx, other, conv.ID, "hi"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider: %v", err)
	}
	msg, err := h.chat.SendMessage(ctx, client, conv.ID, "hello writer")
	if err != nil || msg.SenderID != "client-1" {
		t.Fatalf("send: %+v err=%v", msg, err)
	}
	if h.notifications.ofType("writer-1", entities.NotificationNewMessage) != 1 || h.sink.count("writer-1", EventMessageNew) != 1 {
		t.Fatalf("writer was not told about the message")
	}
	if h.notifications.ofType("client-1", entities.NotificationNewMessage) != 0 {
		t.Fatalf("sender must not be notified")
	}

	msgs, err := h.chat.ListMessages(ctx, admin, conv.ID)
	if err != nil || len(msgs) != 1 {
		t.Fatalf("admin list: %+v err=%v", msgs, err)
	}
	if _, err := h.chat.ListMessages(ctx, client, "missing"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("missing conversation: %v", err)
	}
}

func TestChatUseCase_ProvisionAfterLostCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	conversations := mock_interfaces.NewMockIConversationRepository(ctrl)
	u := NewChatUseCase(conversations, nil, nil, nil, nil, nil)

	a := entities.Assignment{ID: "a1", StudentID: "client-1", WriterID: "writer-1"}
	id := entities.ConversationIDFor(a.ID)
	stored := entities.Conversation{ID: id, AssignmentID: a.ID, ParticipantIDs: []string{"client-1"}}
	merged := stored
	merged.ParticipantIDs = []string{"client-1", "writer-1"}

	gomock.InOrder(
		conversations.EXPECT().GetByID(gomock.Any(), id).Return(entities.Conversation{}, nil),
		conversations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Conversation{}, nil),
		conversations.EXPECT().GetByID(gomock.Any(), id).Return(stored, nil),
		conversations.EXPECT().SetParticipants(gomock.Any(), id, []string{"client-1", "writer-1"}).Return(merged, nil),
	)

	conv, err := u.Provision(ctx, a)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if !conv.HasParticipant("writer-1") || !conv.HasParticipant("client-1") {
		t.Fatalf("participants not merged: %+v", conv)
	}

	t.Run("complete conversation is left alone", func(t *testing.T) {
		conversations.EXPECT().GetByID(gomock.Any(), id).Return(merged, nil)

		got, err := u.Provision(ctx, a)
		if err != nil || len(got.ParticipantIDs) != 2 {
			t.Fatalf("expected stored conversation, got %+v err=%v", got, err)
		}
	})
}

func TestChatUseCase_MessageStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	conversations := mock_interfaces.NewMockIConversationRepository(ctrl)
	messages := mock_interfaces.NewMockIMessageRepository(ctrl)
	effects := mock_interfaces.NewMockIEffectDispatcher(ctrl)
	u := NewChatUseCase(conversations, messages, nil, nil, nil, effects)

	conv := entities.Conversation{ID: "assignment#a1", AssignmentID: "a1", ParticipantIDs: []string{"client-1", "writer-1"}}
	conversations.EXPECT().GetByID(gomock.Any(), conv.ID).Return(conv, nil).AnyTimes()

	t.Run("failed write sends no notification", func(t *testing.T) {
		boom := errors.New("write throttled")
		messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Message{}, boom)

		if _, err := u.SendMessage(ctx, client, conv.ID, "hello"); !errors.Is(err, boom) {
			t.Fatalf("expected store error, got %v", err)
		}
	})

	t.Run("stored message notifies the other participant", func(t *testing.T) {
		messages.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg entities.Message) (entities.Message, error) {
				if msg.SenderID != "client-1" || msg.Body != "hello" || msg.ConversationID != conv.ID {
					t.Fatalf("unexpected message: %+v", msg)
				}
				return msg, nil
			})
		effects.EXPECT().Dispatch(gomock.Any(), "notify.message", gomock.Any()).Times(1)

		if _, err := u.SendMessage(ctx, client, conv.ID, "  hello "); err != nil {
			t.Fatalf("send: %v", err)
		}
	})

	t.Run("history read failure is returned", func(t *testing.T) {
		boom := errors.New("query failed")
		messages.EXPECT().ListByConversation(gomock.Any(), conv.ID).Return(nil, boom)

		if _, err := u.ListMessages(ctx, writer, conv.ID); !errors.Is(err, boom) {
			t.Fatalf("expected query error, got %v", err)
		}
	})
}
