package interfaces

import "context"

// IEventSink pushes UI refresh events to a user's live connections.
// Delivery is best effort; users without a connection are skipped.
type IEventSink interface {
	Notify(ctx context.Context, userID, event string, payload any)
}

// IEmailPublisher queues a notification email job.
type IEmailPublisher interface {
	Publish(ctx context.Context, job EmailJob) error
}

type EmailJob struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Email          string `json:"email,omitempty"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	Link           string `json:"link,omitempty"`
}
