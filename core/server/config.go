package server

// Config holds configuration for the local stub catalog server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the bearer token required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxPageSize caps the size of a single search page.
	MaxPageSize int `mapstructure:"max_page_size" default:"1000"`
}

// PageSize clamps a requested page size to the configured maximum.
func (c Config) PageSize(requested int) int {
	limit := c.MaxPageSize
	if limit <= 0 {
		limit = 1000
	}
	switch {
	case requested <= 0:
		return 100
	case requested > limit:
		return limit
	default:
		return requested
	}
}
