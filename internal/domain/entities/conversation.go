package entities

import "time"

// Conversation is the chat thread attached to one assignment.
//
// Storage model (DynamoDB):
//   - PK: id ("assignment#<assignment_id>", so provisioning is idempotent)
type Conversation struct {
	ID             string    `json:"id"`
	AssignmentID   string    `json:"assignment_id"`
	ParticipantIDs []string  `json:"participants"`
	CreatedAt      time.Time `json:"created_at"`
}

func ConversationIDFor(assignmentID string) string {
	return "assignment#" + assignmentID
}

func (c Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Message storage model (DynamoDB):
//   - PK: id
//   - GSI conversation_id-index: conversation_id, sort created_at
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
