package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
	"github.com/dmitrijs2005/recipebox/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept strings such as "24h" or integer nanoseconds.
type JsonConfig struct {
	HTTPAddress           string         `json:"http_address"`
	Storage               string         `json:"storage"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`

	DynamoRegion          string `json:"dynamo_region"`
	DynamoEndpoint        string `json:"dynamo_endpoint"`
	DynamoAccessKeyID     string `json:"dynamo_access_key_id"`
	DynamoSecretAccessKey string `json:"dynamo_secret_access_key"`
	DynamoAccountsTable   string `json:"dynamo_accounts_table"`
	DynamoEmailIndex      string `json:"dynamo_email_index"`
	DynamoRecipesTable    string `json:"dynamo_recipes_table"`

	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`

	LogLevel string `json:"log_level"`
}

// parseJson loads the file named by -c or -config into config. Keys that
// are absent or empty in the file leave the current value alone. A file
// that cannot be read or parsed panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&config.HTTPAddress, c.HTTPAddress)
	set(&config.Storage, c.Storage)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}

	set(&config.DynamoRegion, c.DynamoRegion)
	set(&config.DynamoEndpoint, c.DynamoEndpoint)
	set(&config.DynamoAccessKeyID, c.DynamoAccessKeyID)
	set(&config.DynamoSecretAccessKey, c.DynamoSecretAccessKey)
	set(&config.DynamoAccountsTable, c.DynamoAccountsTable)
	set(&config.DynamoEmailIndex, c.DynamoEmailIndex)
	set(&config.DynamoRecipesTable, c.DynamoRecipesTable)

	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	set(&config.LogLevel, c.LogLevel)
}
