// Package config provides CLI configuration for tab-bookmark.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: Config struct (~/.tab-bookmark/config.yaml)
//   - loader.go: Configuration loading and validation
//
// Configuration includes:
//
//   - Store backend selection (file, badger, memory)
//   - Workspace multiplexer selection
//   - Output format preferences
//   - Log level and format
package config
