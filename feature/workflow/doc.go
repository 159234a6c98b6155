// Package workflow builds and runs pre-packaged crawler workflows.
//
// A crawler builder (SnowflakeCrawler, PostgresCrawler, BigQueryCrawler,
// TableauCrawler) describes the connection to create, the credential to
// crawl with and which databases, schemas or projects to include. ToWorkflow
// validates the builder and produces the Workflow document that the
// orchestration service runs. Service submits workflows, finds existing
// ones by package and follows their runs.
package workflow
