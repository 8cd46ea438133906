package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultAssignmentsTableName = "assignments"
	assignmentStudentIndex      = "student_id-index"
	assignmentWriterIndex       = "writer_id-index"
)

type fileItem struct {
	Name        string `dynamodbav:"name"`
	Path        string `dynamodbav:"path"`
	Size        int64  `dynamodbav:"size"`
	ContentType string `dynamodbav:"content_type,omitempty"`
	UploadedAt  string `dynamodbav:"uploaded_at,omitempty"`
}

type integrityItem struct {
	Status      string    `dynamodbav:"status"`
	File        *fileItem `dynamodbav:"file,omitempty"`
	RequestedAt string    `dynamodbav:"requested_at"`
	UpdatedAt   string    `dynamodbav:"updated_at"`
}

type assignmentItem struct {
	ID               string         `dynamodbav:"id"`
	StudentID        string         `dynamodbav:"student_id"`
	WriterID         string         `dynamodbav:"writer_id,omitempty"`
	Title            string         `dynamodbav:"title"`
	Subject          string         `dynamodbav:"subject,omitempty"`
	Description      string         `dynamodbav:"description,omitempty"`
	Deadline         string         `dynamodbav:"deadline,omitempty"`
	ClientPrice      float64        `dynamodbav:"client_price"`
	WriterPrice      float64        `dynamodbav:"writer_price"`
	Status           string         `dynamodbav:"status"`
	Progress         int            `dynamodbav:"progress"`
	Files            []fileItem     `dynamodbav:"files"`
	CompletedFiles   []fileItem     `dynamodbav:"completed_files"`
	IntegrityReport  *integrityItem `dynamodbav:"integrity_report,omitempty"`
	PaymentProof     *fileItem      `dynamodbav:"payment_proof,omitempty"`
	AdminApproved    bool           `dynamodbav:"admin_approved"`
	Rating           int            `dynamodbav:"rating"`
	Feedback         string         `dynamodbav:"feedback,omitempty"`
	PaymentMethod    string         `dynamodbav:"payment_method,omitempty"`
	PaymentStatus    string         `dynamodbav:"payment_status,omitempty"`
	PaymentReference string         `dynamodbav:"payment_reference,omitempty"`
	PaysheetID       string         `dynamodbav:"paysheet_id,omitempty"`
	CompletedAt      string         `dynamodbav:"completed_at,omitempty"`
	CreatedAt        string         `dynamodbav:"created_at"`
	UpdatedAt        string         `dynamodbav:"updated_at"`
}

// Attributes SaveIfStatus removes when the entity leaves them empty.
var assignmentOptionalAttrs = []string{
	"writer_id", "subject", "description", "deadline", "integrity_report", "payment_proof",
	"feedback", "payment_method", "payment_status", "payment_reference", "completed_at",
}

// AssignmentDynamoRepository persists Assignment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI student_id-index: student_id
//   - GSI writer_id-index: writer_id (sparse, only assigned documents)

type AssignmentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IAssignmentRepository = (*AssignmentDynamoRepository)(nil)

func NewAssignmentDynamoRepository(ddb DynamoAPI, tableName string) *AssignmentDynamoRepository {
	return &AssignmentDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultAssignmentsTableName),
	}
}

func (r *AssignmentDynamoRepository) Create(ctx context.Context, a entities.Assignment) (entities.Assignment, error) {
	av, err := attributevalue.MarshalMap(toAssignmentItem(a))
	if err != nil {
		return entities.Assignment{}, err
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
		return entities.Assignment{}, err
	}
	return a, nil
}

func (r *AssignmentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Assignment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Assignment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Assignment{}, nil
	}
	return unmarshalAssignment(out.Item)
}

func (r *AssignmentDynamoRepository) List(ctx context.Context, filter interfaces.AssignmentFilter) ([]entities.Assignment, error) {
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	var conditions []string
	if filter.Status != "" {
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
		conditions = append(conditions, "#status = :status")
	}

	var (
		raw []map[string]types.AttributeValue
		err error
	)
	switch {
	case filter.StudentID != "":
		if filter.WriterID != "" {
			names["#writer_id"] = "writer_id"
			values[":writer_id"] = &types.AttributeValueMemberS{Value: filter.WriterID}
			conditions = append(conditions, "#writer_id = :writer_id")
		}
		raw, err = r.query(ctx, assignmentStudentIndex, "student_id", filter.StudentID, names, values, conditions)
	case filter.WriterID != "":
		raw, err = r.query(ctx, assignmentWriterIndex, "writer_id", filter.WriterID, names, values, conditions)
	default:
		in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
		if len(conditions) > 0 {
			in.FilterExpression = aws.String(strings.Join(conditions, " AND "))
			in.ExpressionAttributeNames = names
			in.ExpressionAttributeValues = values
		}
		raw, err = scanAll(ctx, r.ddb, in)
	}
	if err != nil {
		return nil, err
	}

	out := make([]entities.Assignment, 0, len(raw))
	for _, item := range raw {
		a, err := unmarshalAssignment(item)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *AssignmentDynamoRepository) query(
	ctx context.Context,
	index, attr, value string,
	names map[string]string,
	values map[string]types.AttributeValue,
	filters []string,
) ([]map[string]types.AttributeValue, error) {
	names = mergeNames(names, map[string]string{"#pk": attr})
	values[":pk"] = &types.AttributeValueMemberS{Value: value}
	in := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#pk = :pk"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	if len(filters) > 0 {
		in.FilterExpression = aws.String(strings.Join(filters, " AND "))
	}
	return queryAll(ctx, r.ddb, in)
}

// SaveIfStatus rewrites the document with one UpdateItem so paysheet_id, which
// the ledger sets in its own transaction, survives a concurrent lifecycle save.
func (r *AssignmentDynamoRepository) SaveIfStatus(ctx context.Context, a entities.Assignment, from entities.AssignmentStatus) (entities.Assignment, error) {
	av, err := attributevalue.MarshalMap(toAssignmentItem(a))
	if err != nil {
		return entities.Assignment{}, err
	}
	delete(av, "id")
	delete(av, "paysheet_id")

	names := map[string]string{"#id": "id", "#status": "status"}
	values := map[string]types.AttributeValue{":from": &types.AttributeValueMemberS{Value: string(from)}}
	keys := make([]string, 0, len(av))
	for k := range av {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys))
	for i, k := range keys {
		name, value := fmt.Sprintf("#a%d", i), fmt.Sprintf(":a%d", i)
		names[name] = k
		values[value] = av[k]
		sets = append(sets, name+" = "+value)
	}
	var removes []string
	for i, k := range assignmentOptionalAttrs {
		if _, ok := av[k]; ok {
			continue
		}
		name := fmt.Sprintf("#r%d", i)
		names[name] = k
		removes = append(removes, name)
	}
	expr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		expr += " REMOVE " + strings.Join(removes, ", ")
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", a.ID),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err, -1) {
			return entities.Assignment{}, nil
		}
		return entities.Assignment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Assignment{}, nil
	}
	return unmarshalAssignment(out.Attributes)
}

// linkUpdate is the transaction item that stores the ledger back-reference.
func (r *AssignmentDynamoRepository) linkUpdate(assignmentID, paysheetID string) types.TransactWriteItem {
	return types.TransactWriteItem{Update: &types.Update{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", assignmentID),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #paysheet_id = :paysheet_id"),
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#paysheet_id": "paysheet_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":paysheet_id": &types.AttributeValueMemberS{Value: paysheetID},
		},
	}}
}

func unmarshalAssignment(av map[string]types.AttributeValue) (entities.Assignment, error) {
	var it assignmentItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Assignment{}, err
	}
	return fromAssignmentItem(it), nil
}

func toFileItem(f entities.FileRef) fileItem {
	return fileItem{Name: f.Name, Path: f.Path, Size: f.Size, ContentType: f.ContentType, UploadedAt: formatTime(f.UploadedAt)}
}

func fromFileItem(f fileItem) entities.FileRef {
	return entities.FileRef{Name: f.Name, Path: f.Path, Size: f.Size, ContentType: f.ContentType, UploadedAt: parseTime(f.UploadedAt)}
}

func toFileItems(files []entities.FileRef) []fileItem {
	out := make([]fileItem, 0, len(files))
	for _, f := range files {
		out = append(out, toFileItem(f))
	}
	return out
}

func fromFileItems(files []fileItem) []entities.FileRef {
	out := make([]entities.FileRef, 0, len(files))
	for _, f := range files {
		out = append(out, fromFileItem(f))
	}
	return out
}

func toAssignmentItem(a entities.Assignment) assignmentItem {
	it := assignmentItem{
		ID:               a.ID,
		StudentID:        a.StudentID,
		WriterID:         a.WriterID,
		Title:            a.Title,
		Subject:          a.Subject,
		Description:      a.Description,
		Deadline:         formatTimePtr(a.Deadline),
		ClientPrice:      a.ClientPrice,
		WriterPrice:      a.WriterPrice,
		Status:           string(a.Status),
		Progress:         a.Progress,
		Files:            toFileItems(a.Files),
		CompletedFiles:   toFileItems(a.CompletedFiles),
		AdminApproved:    a.AdminApproved,
		Rating:           a.Rating,
		Feedback:         a.Feedback,
		PaymentMethod:    a.Payment.Method,
		PaymentStatus:    string(a.Payment.Status),
		PaymentReference: a.Payment.Reference,
		PaysheetID:       a.PaysheetID,
		CompletedAt:      formatTimePtr(a.CompletedAt),
		CreatedAt:        formatTime(a.CreatedAt),
		UpdatedAt:        formatTime(a.UpdatedAt),
	}
	if a.PaymentProof != nil {
		proof := toFileItem(*a.PaymentProof)
		it.PaymentProof = &proof
	}
	if r := a.IntegrityReport; r != nil {
		report := &integrityItem{Status: string(r.Status), RequestedAt: formatTime(r.RequestedAt), UpdatedAt: formatTime(r.UpdatedAt)}
		if r.File != nil {
			f := toFileItem(*r.File)
			report.File = &f
		}
		it.IntegrityReport = report
	}
	return it
}

// fromAssignmentItem also accepts documents written before every field
// existed: missing lists become empty and a missing status reads as New.
func fromAssignmentItem(it assignmentItem) entities.Assignment {
	a := entities.Assignment{
		ID:             it.ID,
		StudentID:      it.StudentID,
		WriterID:       it.WriterID,
		Title:          it.Title,
		Subject:        it.Subject,
		Description:    it.Description,
		Deadline:       parseTimePtr(it.Deadline),
		ClientPrice:    it.ClientPrice,
		WriterPrice:    it.WriterPrice,
		Status:         entities.AssignmentStatus(it.Status),
		Progress:       it.Progress,
		Files:          fromFileItems(it.Files),
		CompletedFiles: fromFileItems(it.CompletedFiles),
		AdminApproved:  it.AdminApproved,
		Rating:         it.Rating,
		Feedback:       it.Feedback,
		Payment: entities.PaymentInfo{
			Method:    it.PaymentMethod,
			Status:    entities.PaymentState(it.PaymentStatus),
			Reference: it.PaymentReference,
		},
		PaysheetID:  it.PaysheetID,
		CompletedAt: parseTimePtr(it.CompletedAt),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
	if a.Status == "" {
		a.Status = entities.StatusNew
	}
	if it.PaymentProof != nil {
		proof := fromFileItem(*it.PaymentProof)
		a.PaymentProof = &proof
	}
	if r := it.IntegrityReport; r != nil {
		report := &entities.IntegrityReport{
			Status:      entities.IntegrityStatus(r.Status),
			RequestedAt: parseTime(r.RequestedAt),
			UpdatedAt:   parseTime(r.UpdatedAt),
		}
		if r.File != nil {
			f := fromFileItem(*r.File)
			report.File = &f
		}
		a.IntegrityReport = report
	}
	return a
}
