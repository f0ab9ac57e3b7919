// Package config assembles the application configuration from environment
// variables and an optional .env file.
//
// Each core package owns its own Config struct; this package composes them
// and binds defaults declared via `default` struct tags, so SOURCE_BASE_URL
// maps to source.base_url and so on.
package config
