package repository

import (
	"context"
	"sort"
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultMessagesTableName = "messages"
	messagesServiceIDIndex   = "service_id-index"
)

type messageItem struct {
	ID             string `dynamodbav:"id"`
	ServiceID      string `dynamodbav:"service_id"`
	SenderEmail    string `dynamodbav:"sender_email"`
	RecipientEmail string `dynamodbav:"recipient_email"`
	Content        string `dynamodbav:"content"`
	CreatedAt      string `dynamodbav:"created_at"`
}

// MessageDynamoRepository persists Message entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: service_id-index (PK: service_id)

type MessageDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IMessageRepository = (*MessageDynamoRepository)(nil)

func NewMessageDynamoRepository(ddb *dynamodb.Client) *MessageDynamoRepository {
	return &MessageDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("MESSAGES_TABLE", defaultMessagesTableName),
	}
}

func (r *MessageDynamoRepository) Create(ctx context.Context, m entities.Message) (entities.Message, error) {
	it := toMessageItem(m)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Message{}, err
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
		return entities.Message{}, err
	}
	return m, nil
}

func (r *MessageDynamoRepository) ListByServiceID(ctx context.Context, serviceID string) ([]entities.Message, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(messagesServiceIDIndex),
		KeyConditionExpression: aws.String("service_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: serviceID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Message, 0, len(out.Items))
	for _, raw := range out.Items {
		var it messageItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromMessageItem(it))
	}

	// The index has no sort key; order chronologically for chat display.
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func toMessageItem(m entities.Message) messageItem {
	return messageItem{
		ID:             m.ID,
		ServiceID:      m.ServiceID,
		SenderEmail:    m.SenderEmail,
		RecipientEmail: m.RecipientEmail,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromMessageItem(it messageItem) entities.Message {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Message{
		ID:             it.ID,
		ServiceID:      it.ServiceID,
		SenderEmail:    it.SenderEmail,
		RecipientEmail: it.RecipientEmail,
		Content:        it.Content,
		CreatedAt:      createdAt,
	}
}
