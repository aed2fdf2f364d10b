package repository

import (
	"context"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	changeOrdersTokenIndex   = "approval_token-index"
	changeOrdersQuoteIDIndex = "quote_id-index"
	approvalTokenGuardPrefix = "approval_token#"
)

type changeOrderItem struct {
	ID            string `dynamodbav:"id"`
	QuoteID       string `dynamodbav:"quote_id"`
	ApprovalToken string `dynamodbav:"approval_token"`
	Status        string `dynamodbav:"status"`
	Amount        string `dynamodbav:"amount"`
	Reason        string `dynamodbav:"reason"`
	DecidedAt     string `dynamodbav:"decided_at,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

// ChangeOrderDynamoRepository persists ChangeOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: approval_token-index (PK: approval_token)
//   - GSI: quote_id-index (PK: quote_id)
type ChangeOrderDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IChangeOrderRepository = (*ChangeOrderDynamoRepository)(nil)

func NewChangeOrderDynamoRepository(ddb DynamoDBAPI, tableName string) *ChangeOrderDynamoRepository {
	return &ChangeOrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ChangeOrderDynamoRepository) Create(ctx context.Context, co entities.ChangeOrder) (entities.ChangeOrder, error) {
	av, err := attributevalue.MarshalMap(toChangeOrderItem(co))
	if err != nil {
		return entities.ChangeOrder{}, err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName: aws.String(r.tableName),
				Item: map[string]types.AttributeValue{
					"id":              &types.AttributeValueMemberS{Value: approvalTokenGuardPrefix + co.ApprovalToken},
					"change_order_id": &types.AttributeValueMemberS{Value: co.ID},
				},
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		if isTransactionCanceled(err) {
			return entities.ChangeOrder{}, interfaces.ErrDuplicateKey
		}
		return entities.ChangeOrder{}, err
	}
	return co, nil
}

func (r *ChangeOrderDynamoRepository) getByID(ctx context.Context, id string) (entities.ChangeOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ChangeOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ChangeOrder{}, nil
	}
	var it changeOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ChangeOrder{}, err
	}
	return fromChangeOrderItem(it), nil
}

func (r *ChangeOrderDynamoRepository) GetByApprovalToken(ctx context.Context, token string) (entities.ChangeOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(changeOrdersTokenIndex),
		KeyConditionExpression: aws.String("approval_token = :tok"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tok": &types.AttributeValueMemberS{Value: token},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.ChangeOrder{}, err
	}
	if len(out.Items) == 0 {
		return entities.ChangeOrder{}, nil
	}
	var it changeOrderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.ChangeOrder{}, err
	}
	return r.getByID(ctx, it.ID)
}

func (r *ChangeOrderDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.ChangeOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(changeOrdersQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
	})
	if err != nil {
		return nil, err
	}
	items := make([]entities.ChangeOrder, 0, len(out.Items))
	for _, raw := range out.Items {
		var it changeOrderItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromChangeOrderItem(it))
	}
	return items, nil
}

func (r *ChangeOrderDynamoRepository) Decide(ctx context.Context, id string, status entities.ChangeOrderStatus, at time.Time) (entities.ChangeOrder, error) {
	ts := formatTime(at)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:    aws.String("SET #status = :status, #decided_at = :at, #updated_at = :at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#decided_at": "decided_at",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: string(entities.ChangeOrderStatusPending)},
			":status":  &types.AttributeValueMemberS{Value: string(status)},
			":at":      &types.AttributeValueMemberS{Value: ts},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.ChangeOrder{}, nil
		}
		return entities.ChangeOrder{}, err
	}
	var it changeOrderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ChangeOrder{}, err
	}
	return fromChangeOrderItem(it), nil
}

func toChangeOrderItem(co entities.ChangeOrder) changeOrderItem {
	return changeOrderItem{
		ID:            co.ID,
		QuoteID:       co.QuoteID,
		ApprovalToken: co.ApprovalToken,
		Status:        string(co.Status),
		Amount:        co.Amount.String(),
		Reason:        co.Reason,
		DecidedAt:     formatTimePtr(co.DecidedAt),
		CreatedAt:     formatTime(co.CreatedAt),
		UpdatedAt:     formatTime(co.UpdatedAt),
	}
}

func fromChangeOrderItem(it changeOrderItem) entities.ChangeOrder {
	return entities.ChangeOrder{
		ID:            it.ID,
		QuoteID:       it.QuoteID,
		ApprovalToken: it.ApprovalToken,
		Status:        entities.ChangeOrderStatus(it.Status),
		Amount:        parseDecimal(it.Amount),
		Reason:        it.Reason,
		DecidedAt:     parseTimePtr(it.DecidedAt),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
