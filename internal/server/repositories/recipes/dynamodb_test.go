package recipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/dynamo"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/dynamo/dynamotest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamoRepository_PutStoresNumbers(t *testing.T) {
	fake := &dynamotest.Fake{}
	r := NewDynamoRepository(fake, "")

	rec := &models.Recipe{
		ID: "r1", Title: "Soup",
		Ingredients: []any{"water", map[string]any{"name": "salt", "grams": decimal.RequireFromString("2.5")}},
		PrepTime:    decimal.RequireFromString("0.1"), CookTime: decimal.NewFromInt(20), Servings: decimal.NewFromInt(4),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, r.Put(context.Background(), rec))

	in := fake.Puts[0]
	assert.Equal(t, DefaultTable, aws.ToString(in.TableName))
	assert.Equal(t, "r1", dynamotest.Str(in.Item, "ID"))
	n, ok := in.Item["prepTime"].(*types.AttributeValueMemberN)
	require.True(t, ok, "prepTime must be a number attribute")
	assert.Equal(t, "0.1", n.Value)

	l, ok := in.Item["ingredients"].(*types.AttributeValueMemberL)
	require.True(t, ok, "ingredients must be a list attribute")
	require.Len(t, l.Value, 2)
	salt, ok := l.Value[1].(*types.AttributeValueMemberM)
	require.True(t, ok, "object ingredients must be map attributes")
	assert.Equal(t, &types.AttributeValueMemberN{Value: "2.5"}, salt.Value["grams"])

	_, hasImage := in.Item["image_key"]
	assert.False(t, hasImage)
}

func TestDynamoRepository_PutNilIngredients(t *testing.T) {
	fake := &dynamotest.Fake{}
	require.NoError(t, NewDynamoRepository(fake, "").Put(context.Background(), &models.Recipe{ID: "r1"}))

	_, ok := fake.Puts[0].Item["ingredients"].(*types.AttributeValueMemberL)
	assert.True(t, ok, "missing ingredients are stored as an empty list")
}

func TestDynamoRepository_GetRoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	rec := &models.Recipe{
		ID: "r1", Title: "Soup", ImageKey: "img/r1.png",
		Ingredients: []any{"water", []any{decimal.RequireFromString("0.25"), "tsp"}},
		Servings:    decimal.NewFromInt(2), CreatedAt: ts, UpdatedAt: ts,
	}
	item, err := toItem(rec)
	require.NoError(t, err)
	fake := &dynamotest.Fake{GetOut: &dynamodb.GetItemOutput{Item: item}}
	r := NewDynamoRepository(fake, "recipes")

	got, err := r.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "recipes", aws.ToString(fake.Gets[0].TableName))
	assert.Equal(t, "r1", dynamotest.Str(fake.Gets[0].Key, "ID"))
	assert.Equal(t, "img/r1.png", got.ImageKey)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "water", got.Ingredients[0])
	nested := got.Ingredients[1].([]any)
	assert.Equal(t, "0.25", nested[0].(decimal.Decimal).String())
	assert.Equal(t, "tsp", nested[1])
	assert.True(t, got.Servings.Equal(decimal.NewFromInt(2)))
	assert.True(t, ts.Equal(got.UpdatedAt))
}

func TestDynamoRepository_GetMissing(t *testing.T) {
	r := NewDynamoRepository(&dynamotest.Fake{}, "")
	_, err := r.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDynamoRepository_GetBadNumber(t *testing.T) {
	fake := &dynamotest.Fake{GetOut: &dynamodb.GetItemOutput{Item: dynamo.Item{
		"ID":       dynamo.S("r1"),
		"servings": dynamo.S("four"),
	}}}

	_, err := NewDynamoRepository(fake, "").Get(context.Background(), "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dynamodb decode")
}

func TestDynamoRepository_ScanAllPages(t *testing.T) {
	fake := &dynamotest.Fake{ScanPages: []*dynamodb.ScanOutput{
		{Items: []dynamo.Item{{"ID": dynamo.S("a")}}, LastEvaluatedKey: dynamo.Item{"ID": dynamo.S("a")}},
		{Items: []dynamo.Item{{"ID": dynamo.S("b")}}},
	}}
	r := NewDynamoRepository(fake, "")

	got, err := r.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].ID)
	assert.True(t, got[0].CreatedAt.IsZero(), "missing timestamps decode as zero")
	assert.Nil(t, got[0].Ingredients)
}

func TestDynamoRepository_ErrorsWrapped(t *testing.T) {
	r := NewDynamoRepository(&dynamotest.Fake{Err: errors.New("throttled")}, "")

	err := r.Delete(context.Background(), "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dynamodb error: throttled")
}
