package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultUsersTableName = "users"
	userEmailIndex        = "email-index"
	userRoleIndex         = "role-index"
)

type userItem struct {
	ID           string  `dynamodbav:"id"`
	Name         string  `dynamodbav:"name"`
	Email        string  `dynamodbav:"email"`
	PasswordHash string  `dynamodbav:"password_hash"`
	Role         string  `dynamodbav:"role"`
	Rating       float64 `dynamodbav:"rating"`
	RatedCount   int     `dynamodbav:"rated_count"`
	CreatedAt    string  `dynamodbav:"created_at"`
}

// UserDynamoRepository persists User entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI email-index: email
//   - GSI role-index: role
//
// Emails are stored lower-cased. Uniqueness is checked by the use case through
// email-index before Create.

type UserDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoAPI, tableName string) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultUsersTableName),
	}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	av, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return entities.User{}, err
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
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}
	return unmarshalUser(out.Item)
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	users, err := r.queryIndex(ctx, userEmailIndex, "email", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return entities.User{}, err
	}
	if len(users) == 0 {
		return entities.User{}, nil
	}
	return users[0], nil
}

func (r *UserDynamoRepository) ListByRole(ctx context.Context, role entities.Role) ([]entities.User, error) {
	return r.queryIndex(ctx, userRoleIndex, "role", string(role))
}

func (r *UserDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]entities.User, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#pk = :pk"),
		ExpressionAttributeNames:  map[string]string{"#pk": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":pk": &types.AttributeValueMemberS{Value: value}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.User, 0, len(raw))
	for _, item := range raw {
		u, err := unmarshalUser(item)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserDynamoRepository) UpdateRating(ctx context.Context, id string, rating float64, ratedCount int) (entities.User, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #rating = :rating, #rated_count = :rated_count"),
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#rating":      "rating",
			"#rated_count": "rated_count",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rating":      &types.AttributeValueMemberN{Value: floatToString(rating)},
			":rated_count": &types.AttributeValueMemberN{Value: strconv.Itoa(ratedCount)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err, -1) {
			return entities.User{}, nil
		}
		return entities.User{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.User{}, nil
	}
	return unmarshalUser(out.Attributes)
}

func unmarshalUser(av map[string]types.AttributeValue) (entities.User, error) {
	var it userItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.User{}, err
	}
	return entities.User{
		ID:           it.ID,
		Name:         it.Name,
		Email:        it.Email,
		PasswordHash: it.PasswordHash,
		Role:         entities.Role(it.Role),
		Rating:       it.Rating,
		RatedCount:   it.RatedCount,
		CreatedAt:    parseTime(it.CreatedAt),
	}, nil
}

func toUserItem(u entities.User) userItem {
	created := u.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return userItem{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Rating:       u.Rating,
		RatedCount:   u.RatedCount,
		CreatedAt:    formatTime(created),
	}
}
