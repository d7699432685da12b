// Package dynamo contains the DynamoDB client surface and the attribute
// value types shared by the DynamoDB repositories. Records are encoded with
// feature/dynamodb/attributevalue; this package only adds the decimal
// handling the SDK does not know about.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/shopspring/decimal"
)

// API is the part of *dynamodb.Client used by the repositories.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Item is a raw DynamoDB record.
type Item = map[string]types.AttributeValue

// S builds a string attribute for keys and expression values.
func S(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// Decimal stores a decimal.Decimal as a DynamoDB number, which keeps full
// precision.
type Decimal struct {
	decimal.Decimal
}

func (d Decimal) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: d.String()}, nil
}

func (d *Decimal) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		parsed, err := decimal.NewFromString(v.Value)
		if err != nil {
			return fmt.Errorf("parse number %q: %w", v.Value, err)
		}
		d.Decimal = parsed
		return nil
	case *types.AttributeValueMemberNULL:
		d.Decimal = decimal.Zero
		return nil
	default:
		return fmt.Errorf("cannot decode %T as a number", av)
	}
}

// List stores a free-form list as an L attribute. Nested lists become L,
// objects become M and decimals become N. A nil List is encoded as NULL by
// attributevalue before this marshaler runs.
type List []any

func (l List) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return attributevalue.Marshal(models.WalkList(l, toNumber))
}

func (l *List) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var raw []any
	err := attributevalue.UnmarshalWithOptions(av, &raw, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return err
	}
	*l = models.WalkList(raw, fromNumber)
	return nil
}

func toNumber(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return attributevalue.Number(d.String())
	}
	return v
}

func fromNumber(v any) any {
	if n, ok := v.(attributevalue.Number); ok {
		d, err := decimal.NewFromString(string(n))
		if err != nil {
			return n
		}
		return d
	}
	return v
}

// ScanAll walks every page of a Scan.
func ScanAll(ctx context.Context, api API, in *dynamodb.ScanInput) ([]Item, error) {
	var items []Item
	p := dynamodb.NewScanPaginator(api, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// QueryAll walks every page of a Query.
func QueryAll(ctx context.Context, api API, in *dynamodb.QueryInput) ([]Item, error) {
	var items []Item
	p := dynamodb.NewQueryPaginator(api, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}
