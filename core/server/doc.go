// Package server holds the configuration of the local stub catalog server.
//
// The stub server (feature/stub) implements the subset of the catalog API used by
// the SDK so that tools and tests can run without a tenant. This package only defines
// its settings: listening port, API key and search page limits.
package server
