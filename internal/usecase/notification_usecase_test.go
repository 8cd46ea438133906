package usecase

import (
	"context"
	"errors"
	"testing"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"
	mock_interfaces "proassignment/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestNotificationUseCase_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockINotificationRepository(ctrl)
	users := mock_interfaces.NewMockIUserRepository(ctrl)
	sink := mock_interfaces.NewMockIEventSink(ctrl)
	publisher := mock_interfaces.NewMockIEmailPublisher(ctrl)
	uc := NewNotificationUseCase(repo, users, sink, publisher)

	var job interfaces.EmailJob
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, j interfaces.EmailJob) error {
		job = j
		return errors.New("broker down")
	})

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) (entities.Notification, error) {
		return n, nil
	})
	sink.EXPECT().Notify(gomock.Any(), "u1", EventNotificationNew, gomock.Any())
	users.EXPECT().GetByID(gomock.Any(), "u1").Return(entities.User{ID: "u1", Email: "u1@example.com"}, nil)

	n, err := uc.Create(context.Background(), entities.NotificationInput{UserID: "u1", Message: " hello ", Type: entities.NotificationPriceSet})
	if err != nil {
		t.Fatalf("publisher failure must not fail the create: %v", err)
	}
	if n.ID == "" || n.Message != "hello" || n.Read {
		t.Fatalf("unexpected notification %+v", n)
	}
	if job.NotificationID != n.ID || job.Email != "u1@example.com" || job.Subject != "Your assignment has a price" {
		t.Fatalf("unexpected email job %+v", job)
	}
}

func TestNotificationUseCase_Validation(t *testing.T) {
	uc := NewNotificationUseCase(nil, nil, nil, nil)
	if _, err := uc.Create(context.Background(), entities.NotificationInput{UserID: "u1"}); !errors.Is(err, ErrInvalidNotificationInput) {
		t.Fatalf("expected ErrInvalidNotificationInput, got %v", err)
	}
}

func TestNotificationUseCase_NotifyAdmins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockINotificationRepository(ctrl)
	users := mock_interfaces.NewMockIUserRepository(ctrl)
	uc := NewNotificationUseCase(repo, users, nil, nil)

	users.EXPECT().ListByRole(gomock.Any(), entities.RoleAdmin).Return([]entities.User{{ID: "a1"}, {ID: "a2"}}, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Notification{}, errors.New("db"))
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) (entities.Notification, error) {
		if n.UserID != "a2" {
			t.Fatalf("expected the second admin, got %q", n.UserID)
		}
		return n, nil
	})

	if err := uc.NotifyAdmins(context.Background(), entities.NotificationInput{Message: "m", Type: entities.NotificationAssignmentCreated}); err == nil {
		t.Fatalf("expected the failed admin to surface")
	}
}

func TestNotificationUseCase_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockINotificationRepository(ctrl)
	uc := NewNotificationUseCase(repo, nil, nil, nil)

	repo.EXPECT().MarkRead(gomock.Any(), "n1", "u2").Return(entities.Notification{}, nil)
	if _, err := uc.MarkRead(context.Background(), "u2", "n1"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("foreign notification: %v", err)
	}
	repo.EXPECT().MarkRead(gomock.Any(), "n1", "u1").Return(entities.Notification{ID: "n1", UserID: "u1", Read: true}, nil)
	if n, err := uc.MarkRead(context.Background(), "u1", "n1"); err != nil || !n.Read {
		t.Fatalf("mark read: %+v err=%v", n, err)
	}
	repo.EXPECT().MarkAllRead(gomock.Any(), "u1").Return(3, nil)
	if n, err := uc.MarkAllRead(context.Background(), "u1"); err != nil || n != 3 {
		t.Fatalf("mark all: %d err=%v", n, err)
	}
}
