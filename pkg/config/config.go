package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/corsgate/corsgate/pkg/cors"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	// A yaml sequence or a comma separated string. Entries wrapped in slashes
	// are regular expressions and may contain commas.
	// Unset means no allow-list; set but blank means an allow-list matching nothing.
	CORSAllowedOrigins        []string `mapstructure:"-"`
	// Host suffixes accepted by the fallback predicate, same forms as above.
	CORSAllowedOriginSuffixes []string `mapstructure:"-"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=1"`
	// Key the limiter on X-Forwarded-For. Only enable behind a proxy that sets it.
	TrustProxy     bool    `mapstructure:"TRUST_PROXY"`

	GoMaxProcs int `mapstructure:"GOMAXPROCS" validate:"gte=0,lte=4096"`
}

var (
	cfg      *Config
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	return load(".")
}

func load(configPaths ...string) (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("TRUST_PROXY", false)
	v.SetDefault("GOMAXPROCS", 0)

	// Optional config file
	_ = v.ReadInConfig()

	keys := []string{
		"APP_ENV",
		"HTTP_ADDR",
		"SHUTDOWN_TIMEOUT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"CORS_ALLOWED_ORIGINS",
		"CORS_ALLOWED_ORIGIN_SUFFIXES",
		"RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST",
		"TRUST_PROXY",
		"GOMAXPROCS",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Parse duration types that may come as string
	if s := v.GetString("SHUTDOWN_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}

	c.CORSAllowedOrigins = getList(v, "CORS_ALLOWED_ORIGINS")
	c.CORSAllowedOriginSuffixes = getList(v, "CORS_ALLOWED_ORIGIN_SUFFIXES")

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.CORSPolicy(); err != nil {
		return nil, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS: %w", err)
	}

	if c.GoMaxProcs > 0 {
		runtime.GOMAXPROCS(c.GoMaxProcs)
	}

	cfg = &c
	return cfg, nil
}

// CORSPolicy builds the origin policy. A nil field means the option was not
// configured, which keeps the allow-all default when both are unset.
func (c *Config) CORSPolicy() (cors.Policy, error) {
	var list cors.AllowList
	if c.CORSAllowedOrigins != nil {
		l, err := cors.ParseAllowList(c.CORSAllowedOrigins)
		if err != nil {
			return nil, err
		}
		list = l
	}
	var pred cors.Predicate
	if len(c.CORSAllowedOriginSuffixes) > 0 {
		pred = cors.HostSuffix(c.CORSAllowedOriginSuffixes...)
	}
	return cors.NewPolicy(list, pred), nil
}

// getList returns nil when key is unset and a non-nil slice otherwise, so a
// blank value still counts as set. Sequences from a config file are taken
// entry by entry; plain strings go through splitList.
func getList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	switch v.Get(key).(type) {
	case []any, []string:
		out := []string{}
		for _, e := range v.GetStringSlice(key) {
			if e = strings.TrimSpace(e); e != "" {
				out = append(out, e)
			}
		}
		return out
	default:
		return splitList(v.GetString(key))
	}
}

// splitList splits on commas, except inside a /pattern/ entry, so
// quantifiers like {1,3} survive. It never returns nil.
func splitList(s string) []string {
	out := []string{}
	var pending []string
	for _, part := range strings.Split(s, ",") {
		if pending != nil {
			pending = append(pending, part)
			if strings.HasSuffix(strings.TrimSpace(part), "/") {
				out = append(out, strings.TrimSpace(strings.Join(pending, ",")))
				pending = nil
			}
			continue
		}
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "/") && (len(p) == 1 || !strings.HasSuffix(p, "/")) {
			pending = []string{part}
			continue
		}
		out = append(out, p)
	}
	if pending != nil {
		// Unterminated pattern: keep it whole and let ParseAllowList treat it.
		out = append(out, strings.TrimSpace(strings.Join(pending, ",")))
	}
	return out
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// Get returns the loaded configuration. Panics if not loaded.
func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call config.Load or config.MustLoad first")
	}
	return cfg
}
