// Package server wires configuration, storage, the authorizer and the
// handlers together and runs the HTTP platform adapter until shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/auth"
	"github.com/dmitrijs2005/recipebox/internal/server/config"
	"github.com/dmitrijs2005/recipebox/internal/server/gateway"
	"github.com/dmitrijs2005/recipebox/internal/server/httpapi"
	"github.com/dmitrijs2005/recipebox/internal/server/objectstore"
	"github.com/dmitrijs2005/recipebox/internal/server/policy"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipebox/internal/server/services"
)

// App is the assembled server process.
type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *httpapi.Server
}

// seams for tests
var (
	logOutput io.Writer = os.Stdout

	newPostgresManager = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
		return repomanager.NewPostgresRepositoryManager(ctx, dsn)
	}
	newDynamoManager = func(ctx context.Context, opts repomanager.DynamoOptions) (repomanager.RepositoryManager, error) {
		return repomanager.NewDynamoRepositoryManager(ctx, opts)
	}
	newImageStore = func(ctx context.Context, opts objectstore.Options) (services.ImageStore, error) {
		return objectstore.NewS3ImageStore(ctx, opts)
	}
)

// NewApp opens the configured backend and builds every component. The
// returned App owns the backend and closes it when Run returns.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "signing tokens with the default secret key, set SECRET_KEY")
	}

	repos, err := openRepositories(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	checker, err := policy.NewChecker()
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("policy init error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration)

	var catalogOpts []services.CatalogOption
	if c.S3Bucket != "" {
		images, err := newImageStore(ctx, objectstore.Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
		})
		if err != nil {
			repos.Close()
			return nil, fmt.Errorf("image store init error: %w", err)
		}
		catalogOpts = append(catalogOpts, services.WithImageStore(images))
	}

	handlers := httpapi.Handlers{
		Login:    services.NewLoginService(repos.Accounts(), tokens, logger),
		Accounts: services.NewAccountDirectory(repos.Accounts(), tokens, checker, logger),
		Catalog:  services.NewCatalogStore(repos.Recipes(), tokens, checker, logger, catalogOpts...),
	}
	router := httpapi.NewRouter(handlers, gateway.NewAuthorizer(tokens, logger), logger)

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		server: httpapi.NewServer(c.HTTPAddress, router, logger),
	}, nil
}

func openRepositories(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.Storage {
	case config.StorageMemory, "":
		return repomanager.NewMemoryRepositoryManager(), nil
	case config.StoragePostgres:
		return newPostgresManager(ctx, c.DatabaseDSN)
	case config.StorageDynamoDB:
		return newDynamoManager(ctx, repomanager.DynamoOptions{
			Region:          c.DynamoRegion,
			Endpoint:        c.DynamoEndpoint,
			AccessKeyID:     c.DynamoAccessKeyID,
			SecretAccessKey: c.DynamoSecretAccessKey,
			AccountsTable:   c.DynamoAccountsTable,
			EmailIndex:      c.DynamoEmailIndex,
			RecipesTable:    c.DynamoRecipesTable,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Storage)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	runErr := app.server.Run(ctx)

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err.Error())
	}

	return runErr
}
