package repository

import (
	"context"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultConversationsTableName = "conversations"
	defaultMessagesTableName      = "messages"
	messageConversationIndex      = "conversation_id-index"
)

type conversationItem struct {
	ID           string   `dynamodbav:"id"`
	AssignmentID string   `dynamodbav:"assignment_id"`
	Participants []string `dynamodbav:"participants"`
	CreatedAt    string   `dynamodbav:"created_at"`
}

type messageItem struct {
	ID             string `dynamodbav:"id"`
	ConversationID string `dynamodbav:"conversation_id"`
	SenderID       string `dynamodbav:"sender_id"`
	Body           string `dynamodbav:"body"`
	CreatedAt      string `dynamodbav:"created_at"`
}

// ConversationDynamoRepository persists chat threads in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type ConversationDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IConversationRepository = (*ConversationDynamoRepository)(nil)

func NewConversationDynamoRepository(ddb DynamoAPI, tableName string) *ConversationDynamoRepository {
	return &ConversationDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultConversationsTableName),
	}
}

func (r *ConversationDynamoRepository) Create(ctx context.Context, c entities.Conversation) (entities.Conversation, error) {
	participants := c.ParticipantIDs
	if participants == nil {
		participants = []string{}
	}
	av, err := attributevalue.MarshalMap(conversationItem{
		ID:           c.ID,
		AssignmentID: c.AssignmentID,
		Participants: participants,
		CreatedAt:    formatTime(c.CreatedAt),
	})
	if err != nil {
		return entities.Conversation{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err, -1) {
			return entities.Conversation{}, nil
		}
		return entities.Conversation{}, err
	}
	return c, nil
}

func (r *ConversationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Conversation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Conversation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Conversation{}, nil
	}
	return unmarshalConversation(out.Item)
}

func (r *ConversationDynamoRepository) SetParticipants(ctx context.Context, id string, participantIDs []string) (entities.Conversation, error) {
	list := make([]types.AttributeValue, 0, len(participantIDs))
	for _, p := range participantIDs {
		list = append(list, &types.AttributeValueMemberS{Value: p})
	}
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #participants = :participants"),
		ExpressionAttributeNames: map[string]string{
			"#id":           "id",
			"#participants": "participants",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":participants": &types.AttributeValueMemberL{Value: list},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err, -1) {
			return entities.Conversation{}, nil
		}
		return entities.Conversation{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Conversation{}, nil
	}
	return unmarshalConversation(out.Attributes)
}

func unmarshalConversation(av map[string]types.AttributeValue) (entities.Conversation, error) {
	var it conversationItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Conversation{}, err
	}
	return entities.Conversation{
		ID:             it.ID,
		AssignmentID:   it.AssignmentID,
		ParticipantIDs: it.Participants,
		CreatedAt:      parseTime(it.CreatedAt),
	}, nil
}

// MessageDynamoRepository persists chat messages in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI conversation_id-index: conversation_id, sort created_at

type MessageDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IMessageRepository = (*MessageDynamoRepository)(nil)

func NewMessageDynamoRepository(ddb DynamoAPI, tableName string) *MessageDynamoRepository {
	return &MessageDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultMessagesTableName),
	}
}

func (r *MessageDynamoRepository) Create(ctx context.Context, m entities.Message) (entities.Message, error) {
	av, err := attributevalue.MarshalMap(messageItem{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      formatTime(m.CreatedAt),
	})
	if err != nil {
		return entities.Message{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Message{}, err
	}
	return m, nil
}

// ListByConversation returns messages oldest first.
func (r *MessageDynamoRepository) ListByConversation(ctx context.Context, conversationID string) ([]entities.Message, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(messageConversationIndex),
		KeyConditionExpression:   aws.String("#conversation_id = :conversation_id"),
		ScanIndexForward:         aws.Bool(true),
		ExpressionAttributeNames: map[string]string{"#conversation_id": "conversation_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":conversation_id": &types.AttributeValueMemberS{Value: conversationID},
		},
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Message, 0, len(raw))
	for _, item := range raw {
		var it messageItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		out = append(out, entities.Message{
			ID:             it.ID,
			ConversationID: it.ConversationID,
			SenderID:       it.SenderID,
			Body:           it.Body,
			CreatedAt:      parseTime(it.CreatedAt),
		})
	}
	return out, nil
}
