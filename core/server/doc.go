// Package server holds the configuration for the HTTP server surface.
package server
