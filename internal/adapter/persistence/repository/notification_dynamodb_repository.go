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
	defaultNotificationsTableName = "notifications"
	notificationUserIndex         = "user_id-index"
)

type notificationItem struct {
	ID        string `dynamodbav:"id"`
	UserID    string `dynamodbav:"user_id"`
	Message   string `dynamodbav:"message"`
	Type      string `dynamodbav:"type"`
	Link      string `dynamodbav:"link,omitempty"`
	Read      bool   `dynamodbav:"read"`
	CreatedAt string `dynamodbav:"created_at"`
}

// NotificationDynamoRepository persists Notification entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI user_id-index: user_id, sort created_at

type NotificationDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.INotificationRepository = (*NotificationDynamoRepository)(nil)

func NewNotificationDynamoRepository(ddb DynamoAPI, tableName string) *NotificationDynamoRepository {
	return &NotificationDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultNotificationsTableName),
	}
}

func (r *NotificationDynamoRepository) Create(ctx context.Context, n entities.Notification) (entities.Notification, error) {
	av, err := attributevalue.MarshalMap(notificationItem{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		Type:      string(n.Type),
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: formatTime(n.CreatedAt),
	})
	if err != nil {
		return entities.Notification{}, err
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
		return entities.Notification{}, err
	}
	return n, nil
}

// ListByUser returns the newest notifications first.
func (r *NotificationDynamoRepository) ListByUser(ctx context.Context, userID string) ([]entities.Notification, error) {
	return r.listByUser(ctx, userID, false)
}

func (r *NotificationDynamoRepository) listByUser(ctx context.Context, userID string, unreadOnly bool) ([]entities.Notification, error) {
	in := &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(notificationUserIndex),
		KeyConditionExpression:   aws.String("#user_id = :user_id"),
		ScanIndexForward:         aws.Bool(false),
		ExpressionAttributeNames: map[string]string{"#user_id": "user_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
	}
	if unreadOnly {
		in.FilterExpression = aws.String("#read = :false")
		in.ExpressionAttributeNames["#read"] = "read"
		in.ExpressionAttributeValues[":false"] = &types.AttributeValueMemberBOOL{Value: false}
	}

	raw, err := queryAll(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Notification, 0, len(raw))
	for _, item := range raw {
		n, err := unmarshalNotification(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *NotificationDynamoRepository) MarkRead(ctx context.Context, id, userID string) (entities.Notification, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id) AND #user_id = :user_id"),
		UpdateExpression:    aws.String("SET #read = :true"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#user_id": "user_id",
			"#read":    "read",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
			":true":    &types.AttributeValueMemberBOOL{Value: true},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err, -1) {
			return entities.Notification{}, nil
		}
		return entities.Notification{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Notification{}, nil
	}
	return unmarshalNotification(out.Attributes)
}

// MarkAllRead flips every unread notification of userID and returns how many changed.
func (r *NotificationDynamoRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	unread, err := r.listByUser(ctx, userID, true)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range unread {
		updated, err := r.MarkRead(ctx, n.ID, userID)
		if err != nil {
			return count, err
		}
		if updated.ID != "" {
			count++
		}
	}
	return count, nil
}

func unmarshalNotification(av map[string]types.AttributeValue) (entities.Notification, error) {
	var it notificationItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Notification{}, err
	}
	return entities.Notification{
		ID:        it.ID,
		UserID:    it.UserID,
		Message:   it.Message,
		Type:      entities.NotificationType(it.Type),
		Link:      it.Link,
		Read:      it.Read,
		CreatedAt: parseTime(it.CreatedAt),
	}, nil
}

