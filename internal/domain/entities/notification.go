package entities

import "time"

type NotificationType string

const (
	NotificationAssignmentCreated NotificationType = "assignment_created"
	NotificationPriceSet          NotificationType = "price_set"
	NotificationPriceAccepted     NotificationType = "price_accepted"
	NotificationPriceRejected     NotificationType = "price_rejected"
	NotificationPaymentProof      NotificationType = "payment_proof"
	NotificationPaymentConfirmed  NotificationType = "payment_confirmed"
	NotificationWriterAssigned    NotificationType = "writer_assigned"
	NotificationWorkCompleted     NotificationType = "work_completed"
	NotificationWorkApproved      NotificationType = "work_approved"
	NotificationAssignmentRated   NotificationType = "assignment_rated"
	NotificationIntegrityReport   NotificationType = "integrity_report"
	NotificationPaysheetPaid      NotificationType = "paysheet_paid"
	NotificationNewMessage        NotificationType = "new_message"
)

// Notification is an in-app alert. Email delivery is attempted separately and
// never blocks creation.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI user_id-index: user_id
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Link      string           `json:"link,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationInput is the payload accepted by the notification service.
type NotificationInput struct {
	UserID  string
	Message string
	Type    NotificationType
	Link    string
}
