package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
)

var allowedFlags = []string{
	"-a", "-storage", "-d", "-s", "-t", "-l",
	"-dynamo-region", "-dynamo-endpoint",
	"-u", "-p", "-b", "-g", "-e",
}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string                HTTP bind address (e.g., ":8080")
//	-storage string          memory, postgres or dynamodb
//	-d string                PostgreSQL DSN
//	-s string                token HMAC secret key
//	-t int                   token validity, minutes
//	-l string                log level
//	-dynamo-region string    DynamoDB region
//	-dynamo-endpoint string  DynamoDB endpoint override (e.g., DynamoDB Local)
//	-u string                S3 root user
//	-p string                S3 root password
//	-b string                S3 bucket name
//	-g string                S3 region
//	-e string                S3 base endpoint (e.g., "http://127.0.0.1:9000/")
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], allowedFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddress, "a", config.HTTPAddress, "address and port to run server")
	fs.StringVar(&config.Storage, "storage", config.Storage, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.DynamoRegion, "dynamo-region", config.DynamoRegion, "DynamoDB region")
	fs.StringVar(&config.DynamoEndpoint, "dynamo-endpoint", config.DynamoEndpoint, "DynamoDB endpoint")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 image bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
