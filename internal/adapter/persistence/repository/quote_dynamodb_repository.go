package repository

import (
	"context"
	"strconv"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	quotesShareLinkIndex  = "share_link-index"
	quotesDetailerIDIndex = "detailer_id-index"
	// Guard items reserve a share link inside the quotes table so two quotes can
	// never share one. They carry no GSI attributes and never surface in reads.
	shareLinkGuardPrefix = "share_link#"
)

type quoteItem struct {
	ID            string `dynamodbav:"id"`
	DetailerID    string `dynamodbav:"detailer_id"`
	ShareLink     string `dynamodbav:"share_link"`
	Title         string `dynamodbav:"title"`
	CustomerName  string `dynamodbav:"customer_name,omitempty"`
	CustomerEmail string `dynamodbav:"customer_email,omitempty"`
	Total         string `dynamodbav:"total"`
	Status        string `dynamodbav:"status"`
	ViewedAt      string `dynamodbav:"viewed_at,omitempty"`
	LastViewedAt  string `dynamodbav:"last_viewed_at,omitempty"`
	ViewCount     int    `dynamodbav:"view_count"`
	ViewerIP      string `dynamodbav:"viewer_ip,omitempty"`
	ViewerDevice  string `dynamodbav:"viewer_device,omitempty"`
	SentAt        string `dynamodbav:"sent_at,omitempty"`
	ApprovedAt    string `dynamodbav:"approved_at,omitempty"`
	PaidAt        string `dynamodbav:"paid_at,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: share_link-index (PK: share_link)
//   - GSI: detailer_id-index (PK: detailer_id)
type QuoteDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoDBAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
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
					"id":       &types.AttributeValueMemberS{Value: shareLinkGuardPrefix + q.ShareLink},
					"quote_id": &types.AttributeValueMemberS{Value: q.ID},
				},
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		if isTransactionCanceled(err) {
			return entities.Quote{}, interfaces.ErrDuplicateKey
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	if it.ShareLink == "" {
		// share link guard item
		return entities.Quote{}, nil
	}
	return fromQuoteItem(it), nil
}

// GetByShareLink resolves the link through the GSI, then re-reads the base
// item consistently so callers never act on a stale status.
func (r *QuoteDynamoRepository) GetByShareLink(ctx context.Context, shareLink string) (entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesShareLinkIndex),
		KeyConditionExpression: aws.String("share_link = :sl"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sl": &types.AttributeValueMemberS{Value: shareLink},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Items) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Quote{}, err
	}
	return r.GetByID(ctx, it.ID)
}

func (r *QuoteDynamoRepository) ListByDetailerID(ctx context.Context, detailerID string) ([]entities.Quote, error) {
	var (
		items    []entities.Quote
		startKey map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(quotesDetailerIDIndex),
			KeyConditionExpression: aws.String("detailer_id = :did"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":did": &types.AttributeValueMemberS{Value: detailerID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it quoteItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromQuoteItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	if items == nil {
		items = []entities.Quote{}
	}
	return items, nil
}

// RecordView applies a view in one UpdateItem. The old image tells whether
// viewed_at was absent, which makes exactly one concurrent caller the first.
func (r *QuoteDynamoRepository) RecordView(ctx context.Context, id string, view entities.QuoteView) (interfaces.RecordViewResult, error) {
	now := formatTime(view.At)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression: aws.String("SET #status = :viewed, #last_viewed_at = :now, #viewer_ip = :ip, #viewer_device = :device, " +
			"#updated_at = :now, #viewed_at = if_not_exists(#viewed_at, :now) ADD #view_count :one"),
		ConditionExpression: aws.String("attribute_exists(#id) AND NOT (#status IN (:approved, :paid))"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "id",
			"#status":         "status",
			"#last_viewed_at": "last_viewed_at",
			"#viewer_ip":      "viewer_ip",
			"#viewer_device":  "viewer_device",
			"#updated_at":     "updated_at",
			"#viewed_at":      "viewed_at",
			"#view_count":     "view_count",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":viewed":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusViewed)},
			":approved": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusApproved)},
			":paid":     &types.AttributeValueMemberS{Value: string(entities.QuoteStatusPaid)},
			":now":      &types.AttributeValueMemberS{Value: now},
			":ip":       &types.AttributeValueMemberS{Value: view.IP},
			":device":   &types.AttributeValueMemberS{Value: view.Device},
			":one":      &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		if isConditionFailed(err) {
			return interfaces.RecordViewResult{}, nil
		}
		return interfaces.RecordViewResult{}, err
	}

	var old quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &old); err != nil {
		return interfaces.RecordViewResult{}, err
	}
	first := old.ViewedAt == ""
	q := applyView(fromQuoteItem(old), view, first)
	return interfaces.RecordViewResult{Quote: q, FirstView: first, Applied: true}, nil
}

func (r *QuoteDynamoRepository) TransitionStatus(ctx context.Context, id string, from []entities.QuoteStatus, to entities.QuoteStatus, at time.Time) (entities.Quote, error) {
	ts := formatTime(at)
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":to": &types.AttributeValueMemberS{Value: string(to)},
		":at": &types.AttributeValueMemberS{Value: ts},
	}
	expr := "SET #status = :to, #updated_at = :at"
	if field := statusTimestampField(to); field != "" {
		names["#ts"] = field
		expr += ", #ts = :at"
	}

	cond := "attribute_exists(#id) AND #status IN ("
	for i, s := range from {
		key := ":from" + strconv.Itoa(i)
		values[key] = &types.AttributeValueMemberS{Value: string(s)}
		if i > 0 {
			cond += ", "
		}
		cond += key
	}
	cond += ")"

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func statusTimestampField(s entities.QuoteStatus) string {
	switch s {
	case entities.QuoteStatusSent:
		return "sent_at"
	case entities.QuoteStatusApproved:
		return "approved_at"
	case entities.QuoteStatusPaid:
		return "paid_at"
	}
	return ""
}

// applyView derives the post-write state from the pre-write snapshot.
func applyView(q entities.Quote, view entities.QuoteView, first bool) entities.Quote {
	at := view.At.UTC()
	q.Status = entities.QuoteStatusViewed
	q.ViewCount++
	q.LastViewedAt = &at
	q.ViewerIP = view.IP
	q.ViewerDevice = view.Device
	q.UpdatedAt = at
	if first {
		viewed := at
		q.ViewedAt = &viewed
	}
	return q
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:            q.ID,
		DetailerID:    q.DetailerID,
		ShareLink:     q.ShareLink,
		Title:         q.Title,
		CustomerName:  q.CustomerName,
		CustomerEmail: q.CustomerEmail,
		Total:         q.Total.String(),
		Status:        string(q.Status),
		ViewedAt:      formatTimePtr(q.ViewedAt),
		LastViewedAt:  formatTimePtr(q.LastViewedAt),
		ViewCount:     q.ViewCount,
		ViewerIP:      q.ViewerIP,
		ViewerDevice:  q.ViewerDevice,
		SentAt:        formatTimePtr(q.SentAt),
		ApprovedAt:    formatTimePtr(q.ApprovedAt),
		PaidAt:        formatTimePtr(q.PaidAt),
		CreatedAt:     formatTime(q.CreatedAt),
		UpdatedAt:     formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	return entities.Quote{
		ID:            it.ID,
		DetailerID:    it.DetailerID,
		ShareLink:     it.ShareLink,
		Title:         it.Title,
		CustomerName:  it.CustomerName,
		CustomerEmail: it.CustomerEmail,
		Total:         parseDecimal(it.Total),
		Status:        entities.QuoteStatus(it.Status),
		ViewedAt:      parseTimePtr(it.ViewedAt),
		LastViewedAt:  parseTimePtr(it.LastViewedAt),
		ViewCount:     it.ViewCount,
		ViewerIP:      it.ViewerIP,
		ViewerDevice:  it.ViewerDevice,
		SentAt:        parseTimePtr(it.SentAt),
		ApprovedAt:    parseTimePtr(it.ApprovedAt),
		PaidAt:        parseTimePtr(it.PaidAt),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
