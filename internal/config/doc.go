// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > environment
// variables > YAML config > defaults. It exposes strongly typed settings to the
// rest of the application.
package config
