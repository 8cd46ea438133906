package response

import (
	"time"

	"proassignment/internal/domain/entities"
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func FromNotifications(list []entities.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, FromNotification(n))
	}
	return out
}

func FromNotification(n entities.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Type:      string(n.Type),
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

type ConversationResponse struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromConversation(c entities.Conversation) ConversationResponse {
	ids := c.ParticipantIDs
	if ids == nil {
		ids = []string{}
	}
	return ConversationResponse{
		ID:           c.ID,
		AssignmentID: c.AssignmentID,
		Participants: ids,
		CreatedAt:    c.CreatedAt,
	}
}

type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromMessage(m entities.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

func FromMessages(list []entities.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMessage(m))
	}
	return out
}
