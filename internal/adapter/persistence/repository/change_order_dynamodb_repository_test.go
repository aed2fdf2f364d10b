package repository

import (
	"context"
	"testing"
	"time"

	"quoteflow/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderDynamoRepository_DecideOnlyPending(t *testing.T) {
	fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
	}}
	repo := NewChangeOrderDynamoRepository(fake, "change_orders")

	co, err := repo.Decide(context.Background(), "co-1", entities.ChangeOrderStatusApproved, time.Now())
	require.NoError(t, err)
	assert.Empty(t, co.ID)

	pending := fake.lastUpdate.ExpressionAttributeValues[":pending"].(*types.AttributeValueMemberS)
	assert.Equal(t, "pending", pending.Value)
}

func TestChangeOrderDynamoRepository_GetByApprovalToken(t *testing.T) {
	stored := entities.ChangeOrder{
		ID:            "co-1",
		QuoteID:       "q-1",
		ApprovalToken: "tok",
		Status:        entities.ChangeOrderStatusPending,
		Amount:        decimal.RequireFromString("50"),
		Reason:        "extra polish",
	}
	av, err := attributevalue.MarshalMap(toChangeOrderItem(stored))
	require.NoError(t, err)

	fake := &fakeDynamo{
		query: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av}}, nil
		},
		getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			assert.Equal(t, "co-1", in.Key["id"].(*types.AttributeValueMemberS).Value)
			return &dynamodb.GetItemOutput{Item: av}, nil
		},
	}
	repo := NewChangeOrderDynamoRepository(fake, "change_orders")

	co, err := repo.GetByApprovalToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "extra polish", co.Reason)
	assert.Equal(t, changeOrdersTokenIndex, *fake.queries[0].IndexName)
}

func TestDetailerDynamoRepository_SaveExternalAccountMissingDetailer(t *testing.T) {
	fake := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
	}}
	repo := NewDetailerDynamoRepository(fake, "detailers")

	d, err := repo.SaveExternalAccount(context.Background(), "missing", "acct-1", time.Now())
	require.NoError(t, err)
	assert.Empty(t, d.ID)
	assert.Equal(t, "attribute_exists(#id)", *fake.lastUpdate.ConditionExpression)
}
