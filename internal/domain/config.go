package domain

import "time"

// Config is the normalized client configuration.
type Config struct {
	API           APIConfig
	List          ListConfig
	Log           LogConfig
	Observability ObservabilityConfig
}

type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
	UserAgent      string
	Headers        map[string]string
}

// Timeout returns the per-request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ListConfig struct {
	PageSize int
}

type LogConfig struct {
	Level  string
	Format string
}

type ObservabilityConfig struct {
	ListenAddress string
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultAPIBaseURL,
			TimeoutSeconds: DefaultAPITimeoutSeconds,
			UserAgent:      DefaultUserAgent,
			Headers:        map[string]string{},
		},
		List:          ListConfig{PageSize: DefaultPageSize},
		Log:           LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Observability: ObservabilityConfig{ListenAddress: DefaultObservabilityListenAddress},
	}
}
