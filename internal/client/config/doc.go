// Package config loads runtime configuration for the files manager CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config (JSON, YAML or TOML).
//  3. Environment variables prefixed with FILES_CLI_, e.g. FILES_CLI_SERVER_URL.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the files manager HTTP API
//	-i int      online status check interval (seconds)
//	-s string   path of the local state database
//	-t int      request timeout (seconds)
package config
