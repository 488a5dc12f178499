// Package config loads runtime configuration for the bookwarm CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-d string   path of the local session database
//
// # JSON schema
//
//	{
//	  "server_base_url": "https://react-native-bookwarm-av2j.onrender.com",
//	  "database_file": "bookwarm.db"
//	}
//
// Primary API
//
//   - type Config                     — holds ServerBaseURL and DatabaseFile
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
