package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultPaysheetsTableName = "paysheets"
	paysheetLedgerKeyIndex    = "ledger_key-index"
	paysheetOwnerIndex        = "owner_id-index"
	paysheetKindIndex         = "kind-index"
)

// Amounts are stored as decimal strings so the ledger never rounds through float64.
type paysheetItem struct {
	ID               string   `dynamodbav:"id"`
	LedgerKey        string   `dynamodbav:"ledger_key"`
	Kind             string   `dynamodbav:"kind"`
	OwnerID          string   `dynamodbav:"owner_id"`
	Period           string   `dynamodbav:"period"`
	Amount           string   `dynamodbav:"amount"`
	Status           string   `dynamodbav:"status"`
	Assignments      []string `dynamodbav:"assignments"`
	PaymentStatus    string   `dynamodbav:"payment_status,omitempty"`
	PaymentReference string   `dynamodbav:"payment_reference,omitempty"`
	PaidAt           string   `dynamodbav:"paid_at,omitempty"`
	Version          int64    `dynamodbav:"version"`
	CreatedAt        string   `dynamodbav:"created_at"`
	UpdatedAt        string   `dynamodbav:"updated_at"`
}

// PaysheetDynamoRepository persists Paysheet entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI ledger_key-index: ledger_key
//   - GSI owner_id-index: owner_id
//   - GSI kind-index: kind
//
// Contributions that link an assignment are written together with the
// assignment back-reference in one TransactWriteItems call.

type PaysheetDynamoRepository struct {
	ddb         DynamoAPI
	tableName   string
	assignments *AssignmentDynamoRepository
}

var _ interfaces.IPaysheetRepository = (*PaysheetDynamoRepository)(nil)

func NewPaysheetDynamoRepository(ddb DynamoAPI, tableName, assignmentsTable string) *PaysheetDynamoRepository {
	return &PaysheetDynamoRepository{
		ddb:         ddb,
		tableName:   tableOrDefault(tableName, defaultPaysheetsTableName),
		assignments: NewAssignmentDynamoRepository(ddb, assignmentsTable),
	}
}

func (r *PaysheetDynamoRepository) GetByID(ctx context.Context, id string) (entities.Paysheet, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Paysheet{}, err
	}
	if len(out.Item) == 0 {
		return entities.Paysheet{}, nil
	}
	return unmarshalPaysheet(out.Item)
}

func (r *PaysheetDynamoRepository) ListByOwner(ctx context.Context, kind entities.PaysheetKind, ownerID string) ([]entities.Paysheet, error) {
	return r.queryIndex(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paysheetOwnerIndex),
		KeyConditionExpression: aws.String("#owner_id = :owner_id"),
		FilterExpression:       aws.String("#kind = :kind"),
		ExpressionAttributeNames: map[string]string{
			"#owner_id": "owner_id",
			"#kind":     "kind",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner_id": &types.AttributeValueMemberS{Value: ownerID},
			":kind":     &types.AttributeValueMemberS{Value: string(kind)},
		},
	})
}

func (r *PaysheetDynamoRepository) ListByKind(ctx context.Context, kind entities.PaysheetKind) ([]entities.Paysheet, error) {
	return r.queryIndex(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(paysheetKindIndex),
		KeyConditionExpression:   aws.String("#kind = :kind"),
		ExpressionAttributeNames: map[string]string{"#kind": "kind"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: string(kind)},
		},
	})
}

func (r *PaysheetDynamoRepository) ListByLedgerKey(ctx context.Context, ledgerKey string) ([]entities.Paysheet, error) {
	return r.queryIndex(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(paysheetLedgerKeyIndex),
		KeyConditionExpression:   aws.String("#ledger_key = :ledger_key"),
		ExpressionAttributeNames: map[string]string{"#ledger_key": "ledger_key"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ledger_key": &types.AttributeValueMemberS{Value: ledgerKey},
		},
	})
}

func (r *PaysheetDynamoRepository) queryIndex(ctx context.Context, in *dynamodb.QueryInput) ([]entities.Paysheet, error) {
	raw, err := queryAll(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Paysheet, 0, len(raw))
	for _, item := range raw {
		p, err := unmarshalPaysheet(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PaysheetDynamoRepository) Create(ctx context.Context, p entities.Paysheet, c interfaces.PaysheetContribution) (entities.Paysheet, error) {
	put, err := r.createPut(p)
	if err != nil {
		return entities.Paysheet{}, err
	}

	if c.LinkAssignment {
		err = r.transact(ctx, types.TransactWriteItem{Put: put}, r.assignments.linkUpdate(c.AssignmentID, p.ID))
	} else {
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                put.TableName,
			Item:                     put.Item,
			ConditionExpression:      put.ConditionExpression,
			ExpressionAttributeNames: put.ExpressionAttributeNames,
		})
	}
	if err != nil {
		if isConditionFailed(err, 0) {
			return entities.Paysheet{}, nil
		}
		return entities.Paysheet{}, err
	}
	return p, nil
}

// Append adds one contribution on top of the version the caller read.
func (r *PaysheetDynamoRepository) Append(ctx context.Context, p entities.Paysheet, c interfaces.PaysheetContribution) (entities.Paysheet, error) {
	now := time.Now().UTC()
	update := r.appendUpdate(p, c, now)

	var err error
	if c.LinkAssignment {
		err = r.transact(ctx, types.TransactWriteItem{Update: update}, r.assignments.linkUpdate(c.AssignmentID, p.ID))
	} else {
		_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 update.TableName,
			Key:                       update.Key,
			ConditionExpression:       update.ConditionExpression,
			UpdateExpression:          update.UpdateExpression,
			ExpressionAttributeNames:  update.ExpressionAttributeNames,
			ExpressionAttributeValues: update.ExpressionAttributeValues,
		})
	}
	if err != nil {
		if isConditionFailed(err, 0) {
			return entities.Paysheet{}, nil
		}
		return entities.Paysheet{}, err
	}
	return appended(p, c, now), nil
}

// Move withdraws a contribution from one sheet and books it on another in a
// single transaction. Any failed condition returns a zero Paysheet.
func (r *PaysheetDynamoRepository) Move(ctx context.Context, m interfaces.PaysheetMove) (entities.Paysheet, error) {
	now := time.Now().UTC()
	c := m.Contribution

	withdraw, err := r.withdrawItem(m.From, c, now)
	if err != nil {
		return entities.Paysheet{}, err
	}
	items := []types.TransactWriteItem{withdraw}
	if m.Create {
		put, err := r.createPut(m.To)
		if err != nil {
			return entities.Paysheet{}, err
		}
		items = append(items, types.TransactWriteItem{Put: put})
	} else {
		items = append(items, types.TransactWriteItem{Update: r.appendUpdate(m.To, c, now)})
	}
	if c.LinkAssignment {
		items = append(items, r.assignments.linkUpdate(c.AssignmentID, m.To.ID))
	}

	if err := r.transact(ctx, items...); err != nil {
		if isConditionFailed(err, -1) {
			return entities.Paysheet{}, nil
		}
		return entities.Paysheet{}, err
	}
	if m.Create {
		return m.To, nil
	}
	return appended(m.To, c, now), nil
}

func (r *PaysheetDynamoRepository) createPut(p entities.Paysheet) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(toPaysheetItem(p))
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}, nil
}

func (r *PaysheetDynamoRepository) appendUpdate(p entities.Paysheet, c interfaces.PaysheetContribution, now time.Time) *types.Update {
	return &types.Update{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", p.ID),
		ConditionExpression: aws.String("#version = :version AND #status <> :paid AND NOT contains(#assignments, :assignment_id)"),
		UpdateExpression: aws.String("SET #amount = :amount, #assignments = list_append(#assignments, :assignment_list), " +
			"#status = :status, #version = :next_version, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#amount":      "amount",
			"#assignments": "assignments",
			"#status":      "status",
			"#version":     "version",
			"#updated_at":  "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount":          &types.AttributeValueMemberS{Value: p.Amount.Add(c.Amount).String()},
			":assignment_id":   &types.AttributeValueMemberS{Value: c.AssignmentID},
			":assignment_list": &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: c.AssignmentID}}},
			":status":          &types.AttributeValueMemberS{Value: string(c.Status)},
			":paid":            &types.AttributeValueMemberS{Value: string(entities.PaysheetStatusPaid)},
			":version":         &types.AttributeValueMemberN{Value: strconv.FormatInt(p.Version, 10)},
			":next_version":    &types.AttributeValueMemberN{Value: strconv.FormatInt(p.Version+1, 10)},
			":updated_at":      &types.AttributeValueMemberS{Value: formatTime(now)},
		},
	}
}

// withdrawItem removes the contribution from p as read at p.Version. The list
// index comes from that read, so the version check also guards it.
func (r *PaysheetDynamoRepository) withdrawItem(p entities.Paysheet, c interfaces.PaysheetContribution, now time.Time) (types.TransactWriteItem, error) {
	index := -1
	for i, id := range p.AssignmentIDs {
		if id == c.AssignmentID {
			index = i
			break
		}
	}
	if index < 0 {
		return types.TransactWriteItem{}, fmt.Errorf("paysheet %s does not list assignment %s", p.ID, c.AssignmentID)
	}

	names := map[string]string{"#version": "version", "#status": "status"}
	values := map[string]types.AttributeValue{
		":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(p.Version, 10)},
		":paid":    &types.AttributeValueMemberS{Value: string(entities.PaysheetStatusPaid)},
	}
	cond := aws.String("#version = :version AND #status <> :paid")

	if len(p.AssignmentIDs) == 1 {
		return types.TransactWriteItem{Delete: &types.Delete{
			TableName:                 aws.String(r.tableName),
			Key:                       stringKey("id", p.ID),
			ConditionExpression:       cond,
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		}}, nil
	}

	names["#amount"] = "amount"
	names["#assignments"] = "assignments"
	names["#updated_at"] = "updated_at"
	values[":amount"] = &types.AttributeValueMemberS{Value: p.Amount.Sub(c.Amount).String()}
	values[":next_version"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(p.Version+1, 10)}
	values[":updated_at"] = &types.AttributeValueMemberS{Value: formatTime(now)}
	return types.TransactWriteItem{Update: &types.Update{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", p.ID),
		ConditionExpression:       cond,
		UpdateExpression:          aws.String(fmt.Sprintf("SET #amount = :amount, #version = :next_version, #updated_at = :updated_at REMOVE #assignments[%d]", index)),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}}, nil
}

func appended(p entities.Paysheet, c interfaces.PaysheetContribution, now time.Time) entities.Paysheet {
	p.Amount = p.Amount.Add(c.Amount)
	p.AssignmentIDs = append(append([]string(nil), p.AssignmentIDs...), c.AssignmentID)
	p.Status = c.Status
	p.Version++
	p.UpdatedAt = now
	return p
}

func (r *PaysheetDynamoRepository) transact(ctx context.Context, items ...types.TransactWriteItem) error {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	return err
}

func (r *PaysheetDynamoRepository) LinkAssignment(ctx context.Context, paysheetID, assignmentID string) error {
	link := r.assignments.linkUpdate(assignmentID, paysheetID).Update
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 link.TableName,
		Key:                       link.Key,
		ConditionExpression:       link.ConditionExpression,
		UpdateExpression:          link.UpdateExpression,
		ExpressionAttributeNames:  link.ExpressionAttributeNames,
		ExpressionAttributeValues: link.ExpressionAttributeValues,
	})
	return err
}

func (r *PaysheetDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.PaysheetStatus) (entities.Paysheet, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at ADD #version :one"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":one":        &types.AttributeValueMemberN{Value: "1"},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
			"#version":    "version",
		}
		return expr, vals, names
	})
}

func (r *PaysheetDynamoRepository) UpdatePayment(ctx context.Context, id string, state entities.PaymentState, reference string, paidAt *time.Time) (entities.Paysheet, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_status = :payment_status, #payment_reference = :payment_reference, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":payment_status":    &types.AttributeValueMemberS{Value: string(state)},
			":payment_reference": &types.AttributeValueMemberS{Value: reference},
			":updated_at":        &types.AttributeValueMemberS{Value: now},
			":one":               &types.AttributeValueMemberN{Value: "1"},
		}
		names := map[string]string{
			"#payment_status":    "payment_status",
			"#payment_reference": "payment_reference",
			"#updated_at":        "updated_at",
			"#version":           "version",
		}
		if state == entities.PaymentStatePaid {
			expr += ", #status = :status, #paid_at = :paid_at"
			vals[":status"] = &types.AttributeValueMemberS{Value: string(entities.PaysheetStatusPaid)}
			vals[":paid_at"] = &types.AttributeValueMemberS{Value: formatTimePtr(paidAt)}
			names["#paid_at"] = "paid_at"
		}
		return expr + " ADD #version :one", vals, names
	})
}

// update refuses to touch a paid sheet; a missing or paid sheet yields a zero Paysheet.
func (r *PaysheetDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Paysheet, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)
	values[":paid"] = &types.AttributeValueMemberS{Value: string(entities.PaysheetStatusPaid)}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status <> :paid"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  mergeNames(map[string]string{"#id": "id", "#status": "status"}, names),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err, -1) {
			return entities.Paysheet{}, nil
		}
		return entities.Paysheet{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Paysheet{}, nil
	}
	return unmarshalPaysheet(out.Attributes)
}

func unmarshalPaysheet(av map[string]types.AttributeValue) (entities.Paysheet, error) {
	var it paysheetItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Paysheet{}, err
	}
	return fromPaysheetItem(it), nil
}

func toPaysheetItem(p entities.Paysheet) paysheetItem {
	assignments := p.AssignmentIDs
	if assignments == nil {
		assignments = []string{}
	}
	return paysheetItem{
		ID:               p.ID,
		LedgerKey:        p.LedgerKey(),
		Kind:             string(p.Kind),
		OwnerID:          p.OwnerID,
		Period:           p.Period,
		Amount:           p.Amount.String(),
		Status:           string(p.Status),
		Assignments:      assignments,
		PaymentStatus:    string(p.PaymentStatus),
		PaymentReference: p.PaymentReference,
		PaidAt:           formatTimePtr(p.PaidAt),
		Version:          p.Version,
		CreatedAt:        formatTime(p.CreatedAt),
		UpdatedAt:        formatTime(p.UpdatedAt),
	}
}

func fromPaysheetItem(it paysheetItem) entities.Paysheet {
	amount, err := decimal.NewFromString(it.Amount)
	if err != nil {
		amount = decimal.Zero
	}
	assignments := it.Assignments
	if assignments == nil {
		assignments = []string{}
	}
	return entities.Paysheet{
		ID:               it.ID,
		Kind:             entities.PaysheetKind(it.Kind),
		OwnerID:          it.OwnerID,
		Period:           it.Period,
		Amount:           amount,
		Status:           entities.PaysheetStatus(it.Status),
		AssignmentIDs:    assignments,
		PaymentStatus:    entities.PaymentState(it.PaymentStatus),
		PaymentReference: it.PaymentReference,
		PaidAt:           parseTimePtr(it.PaidAt),
		Version:          it.Version,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
}
