package client

// Config holds configuration for the catalog API client.
type Config struct {
	// BaseURL is the tenant URL, e.g. https://tenant.atlan.com.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8080"`
	// APIToken is the bearer token sent with every request.
	APIToken string `mapstructure:"api_token" default:""`
	// TimeoutSeconds bounds a single HTTP attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the number of retries after the first attempt for transient failures.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryWaitMillis is the base back-off between retries.
	RetryWaitMillis int `mapstructure:"retry_wait_millis" default:"250"`
	// RequestsPerSecond limits the call rate. Zero disables limiting.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"0"`
	// BreakerFailures is the number of consecutive transient failures that opens the circuit.
	BreakerFailures int `mapstructure:"breaker_failures" default:"5"`
	// BreakerTimeoutSeconds is how long the circuit stays open before probing again.
	BreakerTimeoutSeconds int `mapstructure:"breaker_timeout_seconds" default:"30"`
	// UserAgent is sent as the User-Agent header.
	UserAgent string `mapstructure:"user_agent" default:"atlan-sdk-go"`
}
