// Package config provides configuration management for the SDK command line tools.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - Client: tenant URL, API token, timeouts, retry and rate-limit settings
//   - Batch: default batch size, parallelism and failure handling for bulk upserts
//   - Server: port and API key of the local stub catalog server
//   - Storage: S3/MinIO credentials and bucket for run reports
//   - Database: failure journal connection details (MySQL or SQLite)
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Client.BaseURL)
package config
