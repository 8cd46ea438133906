package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func sampleAssignment() entities.Assignment {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return entities.Assignment{
		ID:          "a1",
		StudentID:   "client-1",
		Title:       "Essay",
		ClientPrice: 100,
		Status:      entities.StatusPriceSet,
		Files:       []entities.FileRef{{Name: "brief.pdf", Path: "uploads/brief.pdf", Size: 10, UploadedAt: now}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestAssignmentRepository_CreateAndGet(t *testing.T) {
	f := &fakeDynamo{}
	repo := NewAssignmentDynamoRepository(f, "")

	a := sampleAssignment()
	if _, err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	put := f.puts[0]
	if aws.ToString(put.TableName) != defaultAssignmentsTableName {
		t.Fatalf("expected default table, got %s", aws.ToString(put.TableName))
	}
	if aws.ToString(put.ConditionExpression) != "attribute_not_exists(#id)" {
		t.Fatalf("unexpected condition %s", aws.ToString(put.ConditionExpression))
	}
	if _, ok := put.Item["writer_id"]; ok {
		t.Fatalf("writer_id must be omitted while unassigned")
	}

	f.getOut = &dynamodb.GetItemOutput{Item: put.Item}
	got, err := repo.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.ID != "a1" || got.Status != entities.StatusPriceSet || len(got.Files) != 1 || got.Files[0].Path != "uploads/brief.pdf" {
		t.Fatalf("unexpected assignment %+v", got)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("created_at not preserved: %v", got.CreatedAt)
	}
}

func TestAssignmentRepository_GetLegacyDocument(t *testing.T) {
	f := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"id":         &types.AttributeValueMemberS{Value: "old"},
		"student_id": &types.AttributeValueMemberS{Value: "client-1"},
		"title":      &types.AttributeValueMemberS{Value: "Old"},
	}}}
	repo := NewAssignmentDynamoRepository(f, "assignments")

	got, err := repo.GetByID(context.Background(), "old")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.Status != entities.StatusNew {
		t.Fatalf("missing status should read as New, got %q", got.Status)
	}
	if got.Files == nil || got.CompletedFiles == nil {
		t.Fatalf("missing lists should read as empty")
	}
}

func TestAssignmentRepository_GetMissing(t *testing.T) {
	repo := NewAssignmentDynamoRepository(&fakeDynamo{}, "assignments")
	got, err := repo.GetByID(context.Background(), "nope")
	if err != nil || got.ID != "" {
		t.Fatalf("expected zero assignment, got %+v err=%v", got, err)
	}
}

func TestAssignmentRepository_SaveIfStatus(t *testing.T) {
	t.Run("guards status and leaves paysheet_id alone", func(t *testing.T) {
		a := sampleAssignment()
		a.Status = entities.StatusPriceAccepted
		a.PaysheetID = "stale"
		stored, _ := attributevalue.MarshalMap(toAssignmentItem(a))
		f := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: stored}}
		repo := NewAssignmentDynamoRepository(f, "assignments")

		got, err := repo.SaveIfStatus(context.Background(), a, entities.StatusPriceSet)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if got.Status != entities.StatusPriceAccepted {
			t.Fatalf("unexpected status %q", got.Status)
		}

		in := f.updates[0]
		if aws.ToString(in.ConditionExpression) != "attribute_exists(#id) AND #status = :from" {
			t.Fatalf("unexpected condition %s", aws.ToString(in.ConditionExpression))
		}
		if strAttr(in.ExpressionAttributeValues, ":from") != string(entities.StatusPriceSet) {
			t.Fatalf("expected :from to carry the source status")
		}
		for _, name := range in.ExpressionAttributeNames {
			if name == "paysheet_id" {
				t.Fatalf("paysheet_id must never be written by a lifecycle save")
			}
		}
		expr := aws.ToString(in.UpdateExpression)
		if !strings.HasPrefix(expr, "SET ") || !strings.Contains(expr, " REMOVE ") {
			t.Fatalf("expected SET and REMOVE clauses, got %s", expr)
		}
		if in.ReturnValues != types.ReturnValueAllNew {
			t.Fatalf("expected ALL_NEW")
		}
	})

	t.Run("lost race returns zero", func(t *testing.T) {
		f := &fakeDynamo{err: conditionFailed()}
		repo := NewAssignmentDynamoRepository(f, "assignments")
		got, err := repo.SaveIfStatus(context.Background(), sampleAssignment(), entities.StatusNew)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero assignment and nil error, got %+v err=%v", got, err)
		}
	})

	t.Run("storage error surfaces", func(t *testing.T) {
		f := &fakeDynamo{err: errBoom}
		repo := NewAssignmentDynamoRepository(f, "assignments")
		if _, err := repo.SaveIfStatus(context.Background(), sampleAssignment(), entities.StatusNew); err != errBoom {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}

func TestAssignmentRepository_List(t *testing.T) {
	older, newer := sampleAssignment(), sampleAssignment()
	newer.ID = "a2"
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)
	itemOld, _ := attributevalue.MarshalMap(toAssignmentItem(older))
	itemNew, _ := attributevalue.MarshalMap(toAssignmentItem(newer))

	t.Run("student index with paging", func(t *testing.T) {
		f := &fakeDynamo{queryOuts: []*dynamodb.QueryOutput{
			{Items: []map[string]types.AttributeValue{itemOld}, LastEvaluatedKey: stringKey("id", "a1")},
			{Items: []map[string]types.AttributeValue{itemNew}},
		}}
		repo := NewAssignmentDynamoRepository(f, "assignments")

		got, err := repo.List(context.Background(), interfaces.AssignmentFilter{StudentID: "client-1", Status: entities.StatusPriceSet})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(got) != 2 || got[0].ID != "a2" {
			t.Fatalf("expected newest first, got %+v", got)
		}
		if len(f.queries) != 2 || aws.ToString(f.queries[0].IndexName) != assignmentStudentIndex {
			t.Fatalf("expected two pages on the student index")
		}
		if aws.ToString(f.queries[0].FilterExpression) != "#status = :status" {
			t.Fatalf("unexpected filter %s", aws.ToString(f.queries[0].FilterExpression))
		}
	})

	t.Run("writer index", func(t *testing.T) {
		f := &fakeDynamo{}
		repo := NewAssignmentDynamoRepository(f, "assignments")
		if _, err := repo.List(context.Background(), interfaces.AssignmentFilter{WriterID: "writer-1"}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if aws.ToString(f.queries[0].IndexName) != assignmentWriterIndex {
			t.Fatalf("expected writer index")
		}
	})

	t.Run("scan without filter", func(t *testing.T) {
		f := &fakeDynamo{scanOuts: []*dynamodb.ScanOutput{{Items: []map[string]types.AttributeValue{itemOld}}}}
		repo := NewAssignmentDynamoRepository(f, "assignments")
		got, err := repo.List(context.Background(), interfaces.AssignmentFilter{})
		if err != nil || len(got) != 1 {
			t.Fatalf("expected one assignment, got %d err=%v", len(got), err)
		}
		if f.scans[0].FilterExpression != nil {
			t.Fatalf("expected unfiltered scan")
		}
	})
}
