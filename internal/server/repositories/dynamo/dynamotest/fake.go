// Package dynamotest provides an in-process stand-in for the DynamoDB
// client used in repository tests. It records every input and replays
// canned outputs; it does not evaluate expressions.
package dynamotest

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Fake implements dynamo.API. Set Err to make every call fail.
type Fake struct {
	mu sync.Mutex

	Puts    []*dynamodb.PutItemInput
	Gets    []*dynamodb.GetItemInput
	Deletes []*dynamodb.DeleteItemInput
	Scans   []*dynamodb.ScanInput
	Queries []*dynamodb.QueryInput

	GetOut     *dynamodb.GetItemOutput
	ScanPages  []*dynamodb.ScanOutput
	QueryPages []*dynamodb.QueryOutput

	Err error
}

func (f *Fake) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Puts = append(f.Puts, in)
	if f.Err != nil {
		return nil, f.Err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *Fake) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Gets = append(f.Gets, in)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.GetOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.GetOut, nil
}

func (f *Fake) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deletes = append(f.Deletes, in)
	if f.Err != nil {
		return nil, f.Err
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

// Scan returns ScanPages in order, one per call.
func (f *Fake) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Scans = append(f.Scans, in)
	if f.Err != nil {
		return nil, f.Err
	}
	i := len(f.Scans) - 1
	if i >= len(f.ScanPages) {
		return &dynamodb.ScanOutput{}, nil
	}
	return f.ScanPages[i], nil
}

// Query returns QueryPages in order, one per call.
func (f *Fake) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Queries = append(f.Queries, in)
	if f.Err != nil {
		return nil, f.Err
	}
	i := len(f.Queries) - 1
	if i >= len(f.QueryPages) {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.QueryPages[i], nil
}

// Str reads the string attribute key from item, or "" when it is absent
// or not a string.
func Str(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
