package interfaces

import (
	"context"

	"proassignment/internal/domain/entities"
)

// INotificationRepository abstracts DynamoDB persistence for Notification.
// MarkRead only touches notifications owned by userID.

type INotificationRepository interface {
	Create(ctx context.Context, n entities.Notification) (entities.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (entities.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
