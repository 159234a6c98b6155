// Package database handles database connections.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections based on
// the application's configuration. The SDK uses the connection to journal failed
// batches so that they can be inspected and replayed later.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
