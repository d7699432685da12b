package repomanager

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/dynamo"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/recipes"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newDynamoClientFromConfig = func(cfg aws.Config, optFns ...func(*dynamodb.Options)) dynamo.API {
		return dynamodb.NewFromConfig(cfg, optFns...)
	}
)

// DynamoOptions selects the tables and connection settings. Empty access
// keys fall back to the default AWS credential chain; an empty Endpoint
// uses the regional AWS endpoint.
type DynamoOptions struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	AccountsTable   string
	EmailIndex      string
	RecipesTable    string
}

// DynamoRepositoryManager serves both tables from one DynamoDB client.
type DynamoRepositoryManager struct {
	accounts *accounts.DynamoRepository
	recipes  *recipes.DynamoRepository
}

// NewDynamoRepositoryManager loads the AWS config and builds the client.
// A non-empty Endpoint points the client at a local DynamoDB.
func NewDynamoRepositoryManager(ctx context.Context, opts DynamoOptions) (*DynamoRepositoryManager, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	api := newDynamoClientFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return NewDynamoRepositoryManagerWithAPI(api, opts), nil
}

// NewDynamoRepositoryManagerWithAPI binds the repositories to an existing
// client.
func NewDynamoRepositoryManagerWithAPI(api dynamo.API, opts DynamoOptions) *DynamoRepositoryManager {
	return &DynamoRepositoryManager{
		accounts: accounts.NewDynamoRepository(api, opts.AccountsTable, opts.EmailIndex),
		recipes:  recipes.NewDynamoRepository(api, opts.RecipesTable),
	}
}

func (m *DynamoRepositoryManager) Accounts() accounts.Repository { return m.accounts }
func (m *DynamoRepositoryManager) Recipes() recipes.Repository   { return m.recipes }
func (m *DynamoRepositoryManager) Close() error                  { return nil }
