package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/dynamo"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/dynamo/dynamotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamoRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	fake := &dynamotest.Fake{}
	r := NewDynamoRepository(fake, "", "")

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a := &models.Account{
		ID: "u-1", Email: "a@x.com", Password: "p", FirstName: "Ann",
		ConfirmedEmail: models.ConfirmedYes, Role: models.RoleAdmin, CreatedAt: ts, UpdatedAt: ts,
	}
	require.NoError(t, r.Put(ctx, a))
	require.Len(t, fake.Puts, 1)
	assert.Equal(t, DefaultTable, aws.ToString(fake.Puts[0].TableName))
	assert.Equal(t, "Yes", dynamotest.Str(fake.Puts[0].Item, "confirmed_email"))

	fake.GetOut = &dynamodb.GetItemOutput{Item: fake.Puts[0].Item}
	got, err := r.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", dynamotest.Str(fake.Gets[0].Key, "user_id"))
	assert.Equal(t, a.Email, got.Email)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.True(t, ts.Equal(got.CreatedAt))
}

func TestDynamoRepository_GetMissing(t *testing.T) {
	r := NewDynamoRepository(&dynamotest.Fake{}, "users", "idx")

	_, err := r.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDynamoRepository_QueryByEmailUsesIndex(t *testing.T) {
	fake := &dynamotest.Fake{QueryPages: []*dynamodb.QueryOutput{
		{Items: []dynamo.Item{{"user_id": dynamo.S("u-1"), "email": dynamo.S("a@x.com")}}},
	}}
	r := NewDynamoRepository(fake, "users", "by-email")

	got, err := r.QueryByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, got, 1)

	q := fake.Queries[0]
	assert.Equal(t, "by-email", aws.ToString(q.IndexName))
	assert.Equal(t, "users", aws.ToString(q.TableName))
	assert.Equal(t, "a@x.com", dynamotest.Str(q.ExpressionAttributeValues, ":email"))
}

func TestDynamoRepository_FindByCredentials(t *testing.T) {
	fake := &dynamotest.Fake{ScanPages: []*dynamodb.ScanOutput{
		{
			Items:            []dynamo.Item{{"user_id": dynamo.S("x"), "email": dynamo.S("other@x.com"), "password": dynamo.S("p")}},
			LastEvaluatedKey: dynamo.Item{"user_id": dynamo.S("x")},
		},
		{Items: []dynamo.Item{{"user_id": dynamo.S("u-1"), "email": dynamo.S("a@x.com"), "password": dynamo.S("p")}}},
	}}
	r := NewDynamoRepository(fake, "", "")

	got, err := r.FindByCredentials(context.Background(), "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	require.Len(t, fake.Scans, 2)
	assert.Equal(t, "password", fake.Scans[0].ExpressionAttributeNames["#p"])
}

func TestDynamoRepository_FindByCredentialsNoMatch(t *testing.T) {
	r := NewDynamoRepository(&dynamotest.Fake{}, "", "")

	_, err := r.FindByCredentials(context.Background(), "a@x.com", "p")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDynamoRepository_WrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	r := NewDynamoRepository(&dynamotest.Fake{Err: boom}, "", "")
	ctx := context.Background()

	assert.ErrorIs(t, r.Put(ctx, &models.Account{}), boom)
	assert.ErrorIs(t, r.Delete(ctx, "x"), boom)
	_, err := r.Scan(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = r.Get(ctx, "x")
	assert.ErrorIs(t, err, boom)
}

func TestDynamoRepository_GetBadTimestamp(t *testing.T) {
	fake := &dynamotest.Fake{GetOut: &dynamodb.GetItemOutput{Item: dynamo.Item{
		"user_id":    dynamo.S("u-1"),
		"created_at": dynamo.S("yesterday"),
	}}}

	_, err := NewDynamoRepository(fake, "", "").Get(context.Background(), "u-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dynamodb decode")
}
