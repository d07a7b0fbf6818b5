// Package config loads and validates application configuration from
// defaults, an optional YAML file, a .env file, SCRY_-prefixed environment
// variables and command-line flags.
package config
