package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"operadoras/internal/domain"
)

// EnvPrefix prefixes environment overrides, e.g. OPERADORAS_API_BASEURL.
const EnvPrefix = "OPERADORAS"

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("config")}
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.baseURL", domain.DefaultAPIBaseURL)
	v.SetDefault("api.timeoutSeconds", domain.DefaultAPITimeoutSeconds)
	v.SetDefault("api.userAgent", domain.DefaultUserAgent)
	v.SetDefault("api.headers", map[string]string{})
	v.SetDefault("list.pageSize", domain.DefaultPageSize)
	v.SetDefault("log.level", domain.DefaultLogLevel)
	v.SetDefault("log.format", domain.DefaultLogFormat)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
}

type rawConfig struct {
	API           rawAPIConfig           `mapstructure:"api"`
	List          rawListConfig          `mapstructure:"list"`
	Log           rawLogConfig           `mapstructure:"log"`
	Observability rawObservabilityConfig `mapstructure:"observability"`
}

type rawAPIConfig struct {
	BaseURL        string            `mapstructure:"baseURL"`
	TimeoutSeconds int               `mapstructure:"timeoutSeconds"`
	UserAgent      string            `mapstructure:"userAgent"`
	Headers        map[string]string `mapstructure:"headers"`
}

type rawListConfig struct {
	PageSize int `mapstructure:"pageSize"`
}

type rawLogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type rawObservabilityConfig struct {
	ListenAddress string `mapstructure:"listenAddress"`
}

// Load reads path and applies defaults and environment overrides. An empty
// path loads defaults and environment only.
func (l *Loader) Load(ctx context.Context, path string) (domain.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}

	v := newConfigViper()
	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		l.logger.Debug("config loaded", zap.String("path", path))
	}

	return l.decode(v)
}

// LoadReader parses YAML from an in-memory document.
func (l *Loader) LoadReader(data string) (domain.Config, error) {
	v := newConfigViper()
	if err := v.ReadConfig(strings.NewReader(data)); err != nil {
		return domain.Config{}, fmt.Errorf("parse config: %w", err)
	}
	return l.decode(v)
}

func (l *Loader) decode(v *viper.Viper) (domain.Config, error) {
	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return domain.Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg := normalize(raw)
	if err := Validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func normalize(raw rawConfig) domain.Config {
	cfg := domain.DefaultConfig()

	if value := strings.TrimSpace(raw.API.BaseURL); value != "" {
		cfg.API.BaseURL = strings.TrimRight(value, "/")
	}
	if raw.API.TimeoutSeconds > 0 {
		cfg.API.TimeoutSeconds = raw.API.TimeoutSeconds
	}
	if value := strings.TrimSpace(raw.API.UserAgent); value != "" {
		cfg.API.UserAgent = value
	}
	for key, value := range raw.API.Headers {
		cfg.API.Headers[key] = value
	}
	cfg.List.PageSize = raw.List.PageSize
	if value := strings.ToLower(strings.TrimSpace(raw.Log.Level)); value != "" {
		cfg.Log.Level = value
	}
	if value := strings.ToLower(strings.TrimSpace(raw.Log.Format)); value != "" {
		cfg.Log.Format = value
	}
	cfg.Observability.ListenAddress = strings.TrimSpace(raw.Observability.ListenAddress)
	return cfg
}

// Validate reports every problem found in cfg.
func Validate(cfg domain.Config) error {
	var errs []error
	if err := validateBaseURL(cfg.API.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if cfg.List.PageSize < 0 {
		errs = append(errs, fmt.Errorf("list.pageSize must be >= 0, got %d", cfg.List.PageSize))
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of console, json", cfg.Log.Format))
	}
	for key := range cfg.API.Headers {
		if strings.TrimSpace(key) == "" {
			errs = append(errs, errors.New("api.headers contains an empty key"))
			break
		}
	}
	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("api.baseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.baseURL %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.baseURL %q has no host", raw)
	}
	return nil
}
