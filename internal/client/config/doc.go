// Package config loads runtime configuration for the Shareling CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the broker API
//	-s string   base URL for rendered share links
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "broker_base_url": "https://broker.example",
//	  "share_base_url": "https://share.example/d",
//	  "request_timeout": "30s"
//	}
package config
