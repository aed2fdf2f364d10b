package repository

import (
	"context"
	"testing"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuote() entities.Quote {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return entities.Quote{
		ID:         "q-1",
		DetailerID: "d-1",
		ShareLink:  "abcDEF123xyz",
		Title:      "Full detail",
		Total:      decimal.RequireFromString("249.90"),
		Status:     entities.QuoteStatusSent,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func marshalQuote(t *testing.T, q entities.Quote) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	require.NoError(t, err)
	return av
}

func TestQuoteDynamoRepository_CreateWritesShareLinkGuard(t *testing.T) {
	fake := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
		return &dynamodb.TransactWriteItemsOutput{}, nil
	}}
	repo := NewQuoteDynamoRepository(fake, "quotes")

	_, err := repo.Create(context.Background(), sampleQuote())
	require.NoError(t, err)

	require.Len(t, fake.lastTransact.TransactItems, 2)
	guard := fake.lastTransact.TransactItems[1].Put.Item["id"].(*types.AttributeValueMemberS)
	assert.Equal(t, "share_link#abcDEF123xyz", guard.Value)
}

func TestQuoteDynamoRepository_CreateDuplicate(t *testing.T) {
	fake := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
		return nil, &types.TransactionCanceledException{Message: aws.String("ConditionalCheckFailed")}
	}}
	repo := NewQuoteDynamoRepository(fake, "quotes")

	_, err := repo.Create(context.Background(), sampleQuote())
	assert.ErrorIs(t, err, interfaces.ErrDuplicateKey)
}

func TestQuoteDynamoRepository_RecordViewFirstView(t *testing.T) {
	old := sampleQuote()
	fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return &dynamodb.UpdateItemOutput{Attributes: marshalQuote(t, old)}, nil
	}}
	repo := NewQuoteDynamoRepository(fake, "quotes")
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	res, err := repo.RecordView(context.Background(), "q-1", entities.QuoteView{At: at, IP: "10.0.0.1", Device: "Safari"})
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.True(t, res.FirstView)
	assert.Equal(t, entities.QuoteStatusViewed, res.Quote.Status)
	assert.Equal(t, 1, res.Quote.ViewCount)
	require.NotNil(t, res.Quote.ViewedAt)
	assert.True(t, res.Quote.ViewedAt.Equal(at))
	assert.Equal(t, "10.0.0.1", res.Quote.ViewerIP)

	assert.Equal(t, types.ReturnValueAllOld, fake.lastUpdate.ReturnValues)
	assert.Contains(t, *fake.lastUpdate.UpdateExpression, "if_not_exists(#viewed_at, :now)")
	assert.Contains(t, *fake.lastUpdate.ConditionExpression, "NOT (#status IN (:approved, :paid))")
}

func TestQuoteDynamoRepository_RecordViewRepeatView(t *testing.T) {
	firstAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	old := sampleQuote()
	old.Status = entities.QuoteStatusViewed
	old.ViewedAt = &firstAt
	old.ViewCount = 3
	fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return &dynamodb.UpdateItemOutput{Attributes: marshalQuote(t, old)}, nil
	}}
	repo := NewQuoteDynamoRepository(fake, "quotes")

	res, err := repo.RecordView(context.Background(), "q-1", entities.QuoteView{At: firstAt.Add(time.Hour)})
	require.NoError(t, err)

	assert.False(t, res.FirstView)
	assert.Equal(t, 4, res.Quote.ViewCount)
	assert.True(t, res.Quote.ViewedAt.Equal(firstAt))
}

func TestQuoteDynamoRepository_RecordViewFrozen(t *testing.T) {
	fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
	}}
	repo := NewQuoteDynamoRepository(fake, "quotes")

	res, err := repo.RecordView(context.Background(), "q-1", entities.QuoteView{At: time.Now()})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Empty(t, res.Quote.ID)
}

func TestQuoteDynamoRepository_GetByIDSkipsGuardItem(t *testing.T) {
	fake := &fakeDynamo{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"id":       &types.AttributeValueMemberS{Value: "share_link#abc"},
			"quote_id": &types.AttributeValueMemberS{Value: "q-1"},
		}}, nil
	}}
	repo := NewQuoteDynamoRepository(fake, "quotes")

	q, err := repo.GetByID(context.Background(), "share_link#abc")
	require.NoError(t, err)
	assert.Empty(t, q.ID)
}

func TestQuoteDynamoRepository_ListByDetailerIDPaginates(t *testing.T) {
	first := sampleQuote()
	second := sampleQuote()
	second.ID = "q-2"
	calls := 0
	fake := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		calls++
		if calls == 1 {
			return &dynamodb.QueryOutput{
				Items:            []map[string]types.AttributeValue{marshalQuote(t, first)},
				LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "q-1"}},
			}, nil
		}
		assert.NotNil(t, in.ExclusiveStartKey)
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{marshalQuote(t, second)}}, nil
	}}
	repo := NewQuoteDynamoRepository(fake, "quotes")

	items, err := repo.ListByDetailerID(context.Background(), "d-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "q-2", items[1].ID)
	assert.True(t, items[0].Total.Equal(decimal.RequireFromString("249.90")))
}

func TestQuoteDynamoRepository_TransitionStatusCondition(t *testing.T) {
	updated := sampleQuote()
	updated.Status = entities.QuoteStatusApproved
	fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return &dynamodb.UpdateItemOutput{Attributes: marshalQuote(t, updated)}, nil
	}}
	repo := NewQuoteDynamoRepository(fake, "quotes")

	q, err := repo.TransitionStatus(context.Background(), "q-1",
		[]entities.QuoteStatus{entities.QuoteStatusSent, entities.QuoteStatusViewed}, entities.QuoteStatusApproved, time.Now())
	require.NoError(t, err)
	assert.Equal(t, entities.QuoteStatusApproved, q.Status)

	assert.Equal(t, "attribute_exists(#id) AND #status IN (:from0, :from1)", *fake.lastUpdate.ConditionExpression)
	assert.Equal(t, "approved_at", fake.lastUpdate.ExpressionAttributeNames["#ts"])
}
