package repository

import (
	"proassignment/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type gsi struct {
	name, hash, sort string
}

// Schemas returns the CreateTable inputs of every table the repositories use.
func Schemas(tables config.TablesConfig) []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		tableSchema(tableOrDefault(tables.Assignments, defaultAssignmentsTableName),
			gsi{name: assignmentStudentIndex, hash: "student_id"},
			gsi{name: assignmentWriterIndex, hash: "writer_id"},
		),
		tableSchema(tableOrDefault(tables.Paysheets, defaultPaysheetsTableName),
			gsi{name: paysheetLedgerKeyIndex, hash: "ledger_key"},
			gsi{name: paysheetOwnerIndex, hash: "owner_id"},
			gsi{name: paysheetKindIndex, hash: "kind"},
		),
		tableSchema(tableOrDefault(tables.Users, defaultUsersTableName),
			gsi{name: userEmailIndex, hash: "email"},
			gsi{name: userRoleIndex, hash: "role"},
		),
		tableSchema(tableOrDefault(tables.Notifications, defaultNotificationsTableName),
			gsi{name: notificationUserIndex, hash: "user_id", sort: "created_at"},
		),
		tableSchema(tableOrDefault(tables.Conversations, defaultConversationsTableName)),
		tableSchema(tableOrDefault(tables.Messages, defaultMessagesTableName),
			gsi{name: messageConversationIndex, hash: "conversation_id", sort: "created_at"},
		),
	}
}

func tableSchema(name string, indexes ...gsi) *dynamodb.CreateTableInput {
	attrs := []types.AttributeDefinition{{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS}}
	seen := map[string]bool{"id": true}
	define := func(attr string) {
		if attr == "" || seen[attr] {
			return
		}
		seen[attr] = true
		attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(attr), AttributeType: types.ScalarAttributeTypeS})
	}

	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		KeySchema:   []types.KeySchemaElement{{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash}},
	}
	for _, idx := range indexes {
		define(idx.hash)
		define(idx.sort)
		keys := []types.KeySchemaElement{{AttributeName: aws.String(idx.hash), KeyType: types.KeyTypeHash}}
		if idx.sort != "" {
			keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(idx.sort), KeyType: types.KeyTypeRange})
		}
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName:  aws.String(idx.name),
			KeySchema:  keys,
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	in.AttributeDefinitions = attrs
	return in
}
