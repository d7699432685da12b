package recipes

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/dynamo"
)

// DefaultTable is the recipe table name used when none is configured.
const DefaultTable = "Recipe"

// DynamoRepository stores recipes in a table keyed by ID. Numbers,
// including the ones nested in ingredients, are stored as N attributes.
type DynamoRepository struct {
	api   dynamo.API
	table string
}

// NewDynamoRepository returns a repository over table, or DefaultTable
// when table is empty.
func NewDynamoRepository(api dynamo.API, table string) *DynamoRepository {
	if table == "" {
		table = DefaultTable
	}
	return &DynamoRepository{api: api, table: table}
}

func (r *DynamoRepository) Put(ctx context.Context, recipe *models.Recipe) error {
	item, err := toItem(recipe)
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

func (r *DynamoRepository) Get(ctx context.Context, id string) (*models.Recipe, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.Item{"ID": dynamo.S(id)},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}
	recipe, err := fromItem(out.Item)
	if err != nil {
		return nil, fmt.Errorf("dynamodb decode: %w", err)
	}
	return recipe, nil
}

func (r *DynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.Item{"ID": dynamo.S(id)},
	})
	if err != nil {
		return fmt.Errorf("dynamodb error: %w", err)
	}
	return nil
}

func (r *DynamoRepository) Scan(ctx context.Context) ([]*models.Recipe, error) {
	items, err := dynamo.ScanAll(ctx, r.api, &dynamodb.ScanInput{TableName: aws.String(r.table)})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}
	out := make([]*models.Recipe, 0, len(items))
	for _, item := range items {
		recipe, err := fromItem(item)
		if err != nil {
			return nil, fmt.Errorf("dynamodb decode: %w", err)
		}
		out = append(out, recipe)
	}
	return out, nil
}

// recipeItem is the stored shape of a recipe in the Recipe table.
type recipeItem struct {
	ID           string         `dynamodbav:"ID"`
	Title        string         `dynamodbav:"title"`
	Description  string         `dynamodbav:"description"`
	Ingredients  dynamo.List    `dynamodbav:"ingredients"`
	Instructions string         `dynamodbav:"instructions"`
	PrepTime     dynamo.Decimal `dynamodbav:"prepTime"`
	CookTime     dynamo.Decimal `dynamodbav:"cookTime"`
	Servings     dynamo.Decimal `dynamodbav:"servings"`
	ImageKey     string         `dynamodbav:"image_key,omitempty"`
	CreatedAt    time.Time      `dynamodbav:"createdAt"`
	UpdatedAt    time.Time      `dynamodbav:"updatedAt"`
}

func toItem(r *models.Recipe) (dynamo.Item, error) {
	return attributevalue.MarshalMap(recipeItem{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  dynamo.List(nonNil(r.Ingredients)),
		Instructions: r.Instructions,
		PrepTime:     dynamo.Decimal{Decimal: r.PrepTime},
		CookTime:     dynamo.Decimal{Decimal: r.CookTime},
		Servings:     dynamo.Decimal{Decimal: r.Servings},
		ImageKey:     r.ImageKey,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	})
}

func fromItem(item dynamo.Item) (*models.Recipe, error) {
	var ri recipeItem
	if err := attributevalue.UnmarshalMap(item, &ri); err != nil {
		return nil, err
	}
	return &models.Recipe{
		ID:           ri.ID,
		Title:        ri.Title,
		Description:  ri.Description,
		Ingredients:  []any(ri.Ingredients),
		Instructions: ri.Instructions,
		PrepTime:     ri.PrepTime.Decimal,
		CookTime:     ri.CookTime.Decimal,
		Servings:     ri.Servings.Decimal,
		ImageKey:     ri.ImageKey,
		CreatedAt:    ri.CreatedAt,
		UpdatedAt:    ri.UpdatedAt,
	}, nil
}
