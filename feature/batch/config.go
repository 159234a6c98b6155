package batch

// Config holds the defaults for bulk upserts.
type Config struct {
	// Size is the number of assets saved per request.
	Size int `mapstructure:"size" default:"20"`
	// Parallelism is the number of shards in a parallel batch.
	Parallelism int `mapstructure:"parallelism" default:"4"`
	// CaptureFailures records failed saves instead of returning their errors.
	CaptureFailures bool `mapstructure:"capture_failures" default:"false"`
	// CustomMetadata is ignore, merge or overwrite.
	CustomMetadata string `mapstructure:"custom_metadata" default:"ignore"`
	// Creation is full, partial or none.
	Creation string `mapstructure:"creation" default:"full"`
	// ReplaceTags replaces Atlan tags on existing assets.
	ReplaceTags bool `mapstructure:"replace_tags" default:"false"`
	// CaseInsensitive matches existing qualified names regardless of case.
	CaseInsensitive bool `mapstructure:"case_insensitive" default:"false"`
	// TableViewAgnostic treats tables, views and materialised views as interchangeable.
	TableViewAgnostic bool `mapstructure:"table_view_agnostic" default:"false"`
	// Track keeps the created and updated assets for inspection.
	Track bool `mapstructure:"track" default:"true"`
	// ReportPrefix is the object prefix for run reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"runs/"`
}
