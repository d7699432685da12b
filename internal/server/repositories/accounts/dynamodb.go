package accounts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/dynamo"
)

// Table and index names used when none are configured.
const (
	DefaultTable      = "recipe-user"
	DefaultEmailIndex = "email-index"
)

// DynamoRepository stores accounts in a table keyed by user_id with a
// global secondary index on email.
type DynamoRepository struct {
	api        dynamo.API
	table      string
	emailIndex string
}

// NewDynamoRepository returns a repository over table and its email
// index. Empty names fall back to the defaults.
func NewDynamoRepository(api dynamo.API, table, emailIndex string) *DynamoRepository {
	if table == "" {
		table = DefaultTable
	}
	if emailIndex == "" {
		emailIndex = DefaultEmailIndex
	}
	return &DynamoRepository{api: api, table: table, emailIndex: emailIndex}
}

func (r *DynamoRepository) Put(ctx context.Context, a *models.Account) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("dynamodb encode: %w", err)
	}
	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb error: %w", err)
	}
	return nil
}

func (r *DynamoRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.Item{"user_id": dynamo.S(id)},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}
	var a models.Account
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("dynamodb decode: %w", err)
	}
	return &a, nil
}

func (r *DynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.Item{"user_id": dynamo.S(id)},
	})
	if err != nil {
		return fmt.Errorf("dynamodb error: %w", err)
	}
	return nil
}

func (r *DynamoRepository) Scan(ctx context.Context) ([]*models.Account, error) {
	items, err := dynamo.ScanAll(ctx, r.api, &dynamodb.ScanInput{TableName: aws.String(r.table)})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}
	return fromItems(items)
}

func (r *DynamoRepository) QueryByEmail(ctx context.Context, email string) ([]*models.Account, error) {
	items, err := dynamo.QueryAll(ctx, r.api, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(r.emailIndex),
		KeyConditionExpression:    aws.String("email = :email"),
		ExpressionAttributeValues: dynamo.Item{":email": dynamo.S(email)},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}
	return fromItems(items)
}

// FindByCredentials runs a filtered full scan. password is a reserved word
// in DynamoDB expressions, hence the attribute name placeholders.
func (r *DynamoRepository) FindByCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	items, err := dynamo.ScanAll(ctx, r.api, &dynamodb.ScanInput{
		TableName:        aws.String(r.table),
		FilterExpression: aws.String("#e = :email AND #p = :password"),
		ExpressionAttributeNames: map[string]string{
			"#e": "email",
			"#p": "password",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email":    dynamo.S(email),
			":password": dynamo.S(password),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}
	// the filter is re-applied client side so a lenient backend cannot
	// return a non-matching record
	found, err := fromItems(items)
	if err != nil {
		return nil, err
	}
	for _, a := range found {
		if a.Email == email && a.Password == password {
			return a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func fromItems(items []dynamo.Item) ([]*models.Account, error) {
	out := make([]*models.Account, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &out); err != nil {
		return nil, fmt.Errorf("dynamodb decode: %w", err)
	}
	return out, nil
}
