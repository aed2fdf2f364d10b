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

type detailerItem struct {
	ID                      string `dynamodbav:"id"`
	Name                    string `dynamodbav:"name"`
	BusinessName            string `dynamodbav:"business_name,omitempty"`
	Email                   string `dynamodbav:"email,omitempty"`
	Phone                   string `dynamodbav:"phone,omitempty"`
	FCMToken                string `dynamodbav:"fcm_token,omitempty"`
	ExternalAccountID       string `dynamodbav:"external_account_id,omitempty"`
	ExternalAccountLinkedAt string `dynamodbav:"external_account_linked_at,omitempty"`
	CreatedAt               string `dynamodbav:"created_at"`
	UpdatedAt               string `dynamodbav:"updated_at"`
}

// DetailerDynamoRepository reads detailers and records their linked
// payment-processor account. Detailer profiles are written by the account
// service; this repository only touches the link fields.
//
// Table requirements:
//   - PK: id (string)
type DetailerDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IDetailerRepository = (*DetailerDynamoRepository)(nil)

func NewDetailerDynamoRepository(ddb DynamoDBAPI, tableName string) *DetailerDynamoRepository {
	return &DetailerDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *DetailerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Detailer, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Detailer{}, err
	}
	if len(out.Item) == 0 {
		return entities.Detailer{}, nil
	}
	var it detailerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Detailer{}, err
	}
	return fromDetailerItem(it), nil
}

func (r *DetailerDynamoRepository) SaveExternalAccount(ctx context.Context, detailerID, accountID string, linkedAt time.Time) (entities.Detailer, error) {
	ts := formatTime(linkedAt)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: detailerID},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #account = :account, #linked_at = :at, #updated_at = :at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#account":    "external_account_id",
			"#linked_at":  "external_account_linked_at",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account": &types.AttributeValueMemberS{Value: accountID},
			":at":      &types.AttributeValueMemberS{Value: ts},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Detailer{}, nil
		}
		return entities.Detailer{}, err
	}
	var it detailerItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Detailer{}, err
	}
	return fromDetailerItem(it), nil
}

func fromDetailerItem(it detailerItem) entities.Detailer {
	return entities.Detailer{
		ID:                      it.ID,
		Name:                    it.Name,
		BusinessName:            it.BusinessName,
		Email:                   it.Email,
		Phone:                   it.Phone,
		FCMToken:                it.FCMToken,
		ExternalAccountID:       it.ExternalAccountID,
		ExternalAccountLinkedAt: parseTimePtr(it.ExternalAccountLinkedAt),
		CreatedAt:               parseTime(it.CreatedAt),
		UpdatedAt:               parseTime(it.UpdatedAt),
	}
}
