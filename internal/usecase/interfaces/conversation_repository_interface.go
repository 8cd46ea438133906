package interfaces

import (
	"context"

	"proassignment/internal/domain/entities"
)

// IConversationRepository stores chat threads. Create returns a zero
// Conversation when the id already exists.

type IConversationRepository interface {
	Create(ctx context.Context, c entities.Conversation) (entities.Conversation, error)
	GetByID(ctx context.Context, id string) (entities.Conversation, error)
	SetParticipants(ctx context.Context, id string, participantIDs []string) (entities.Conversation, error)
}

type IMessageRepository interface {
	Create(ctx context.Context, msg entities.Message) (entities.Message, error)
	ListByConversation(ctx context.Context, conversationID string) ([]entities.Message, error)
}
