package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultRequestsTableName   = "service_requests"
	requestsClientEmailIndex   = "client_email-index"
	requestsStatusIndex        = "status-index"
	requestsProviderEmailIndex = "provider_email-index"
)

type serviceRequestItem struct {
	ID            string `dynamodbav:"id"`
	ClientEmail   string `dynamodbav:"client_email"`
	ClientName    string `dynamodbav:"client_name"`
	Address       string `dynamodbav:"address"`
	Contact       string `dynamodbav:"contact"`
	Category      string `dynamodbav:"category"`
	Description   string `dynamodbav:"description"`
	Photo         string `dynamodbav:"photo,omitempty"`
	Status        string `dynamodbav:"status"`
	Quote         string `dynamodbav:"quote,omitempty"`
	ProviderEmail string `dynamodbav:"provider_email,omitempty"`
	IsEmergency   bool   `dynamodbav:"is_emergency"`
	RequestDate   string `dynamodbav:"request_date"`
}

// ServiceRequestDynamoRepository persists ServiceRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_email-index (PK: client_email)
//   - GSI: status-index (PK: status)
//   - GSI: provider_email-index (PK: provider_email)
//
// Transitions are single-row conditional updates guarded on the expected
// current status. Two writers racing the same request cannot both succeed:
// the loser's guard fails and the zero value is returned for the use case
// to re-read and reject.

type ServiceRequestDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceRequestRepository = (*ServiceRequestDynamoRepository)(nil)

func NewServiceRequestDynamoRepository(ddb *dynamodb.Client) *ServiceRequestDynamoRepository {
	return &ServiceRequestDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("REQUESTS_TABLE", defaultRequestsTableName),
	}
}

func (r *ServiceRequestDynamoRepository) Create(ctx context.Context, req entities.ServiceRequest) (entities.ServiceRequest, error) {
	it := toServiceRequestItem(req)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.ServiceRequest{}, err
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
		return entities.ServiceRequest{}, err
	}
	return req, nil
}

func (r *ServiceRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceRequest{}, nil
	}

	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

func (r *ServiceRequestDynamoRepository) ListByClientEmail(ctx context.Context, clientEmail string) ([]entities.ServiceRequest, error) {
	return r.queryIndex(ctx, requestsClientEmailIndex, "client_email", clientEmail)
}

func (r *ServiceRequestDynamoRepository) ListPending(ctx context.Context) ([]entities.ServiceRequest, error) {
	return r.queryIndex(ctx, requestsStatusIndex, "#status", string(entities.StatusPendente))
}

func (r *ServiceRequestDynamoRepository) ListByProviderEmail(ctx context.Context, providerEmail string) ([]entities.ServiceRequest, error) {
	return r.queryIndex(ctx, requestsProviderEmailIndex, "provider_email", providerEmail)
}

func (r *ServiceRequestDynamoRepository) queryIndex(ctx context.Context, index, key, value string) ([]entities.ServiceRequest, error) {
	in := &dynamodb.QueryInput{
		TableName: aws.String(r.tableName),
		IndexName: aws.String(index),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	}
	// "status" is a DynamoDB reserved word and needs an expression alias.
	if key == "#status" {
		in.KeyConditionExpression = aws.String("#status = :v")
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
	} else {
		in.KeyConditionExpression = aws.String(key + " = :v")
	}

	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return nil, err
	}

	items := make([]entities.ServiceRequest, 0, len(out.Items))
	for _, raw := range out.Items {
		var it serviceRequestItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromServiceRequestItem(it))
	}
	return items, nil
}

// ApplyTransition writes the patch with a compare-and-swap on the current
// status. A ConditionalCheckFailedException (concurrent writer won, or the
// id is gone) yields the zero value with a nil error.
func (r *ServiceRequestDynamoRepository) ApplyTransition(ctx context.Context, id string, expectedStatus entities.RequestStatus, patch transition.Patch) (entities.ServiceRequest, error) {
	updateExpr := "SET #status = :status"
	values := map[string]types.AttributeValue{
		":status":   &types.AttributeValueMemberS{Value: string(patch.Status)},
		":expected": &types.AttributeValueMemberS{Value: string(expectedStatus)},
	}
	names := map[string]string{
		"#id":     "id",
		"#status": "status",
	}
	if patch.Quote != nil {
		updateExpr += ", #quote = :quote"
		values[":quote"] = &types.AttributeValueMemberS{Value: floatToString(*patch.Quote)}
		names["#quote"] = "quote"
	}
	if patch.ProviderEmail != "" {
		updateExpr += ", #provider_email = :provider_email"
		values[":provider_email"] = &types.AttributeValueMemberS{Value: patch.ProviderEmail}
		names["#provider_email"] = "provider_email"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :expected"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.ServiceRequest{}, nil
		}
		return entities.ServiceRequest{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.ServiceRequest{}, nil
	}

	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

func toServiceRequestItem(r entities.ServiceRequest) serviceRequestItem {
	it := serviceRequestItem{
		ID:            r.ID,
		ClientEmail:   r.ClientEmail,
		ClientName:    r.ClientName,
		Address:       r.Address,
		Contact:       r.Contact,
		Category:      string(r.Category),
		Description:   r.Description,
		Photo:         r.Photo,
		Status:        string(r.Status),
		ProviderEmail: r.ProviderEmail,
		IsEmergency:   r.IsEmergency,
		RequestDate:   r.RequestDate.UTC().Format(time.RFC3339Nano),
	}
	if r.Quote != nil {
		it.Quote = floatToString(*r.Quote)
	}
	return it
}

func fromServiceRequestItem(it serviceRequestItem) entities.ServiceRequest {
	requestDate, _ := time.Parse(time.RFC3339Nano, it.RequestDate)
	r := entities.ServiceRequest{
		ID:            it.ID,
		ClientEmail:   it.ClientEmail,
		ClientName:    it.ClientName,
		Address:       it.Address,
		Contact:       it.Contact,
		Category:      entities.ServiceCategory(it.Category),
		Description:   it.Description,
		Photo:         it.Photo,
		Status:        entities.RequestStatus(it.Status),
		ProviderEmail: it.ProviderEmail,
		IsEmergency:   it.IsEmergency,
		RequestDate:   requestDate,
	}
	// Stored quotes may be numeric- or string-typed depending on the writer;
	// values that do not coerce to a number count as absent.
	if it.Quote != "" {
		if quote, err := strconv.ParseFloat(it.Quote, 64); err == nil {
			r.Quote = &quote
		}
	}
	return r
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
