// Package config loads runtime configuration for the RecipeBox CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the RecipeBox HTTP API
//	-t int      per-request timeout (seconds)
//	-i int      online status check interval (seconds)
//
// The JSON loader uses timex.Duration, so the timeout may be "5s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "5s",
//	  "online_check_interval": "3s"
//	}
package config
