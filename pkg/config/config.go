package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Checker backends
const (
	BackendRemote   = "remote"
	BackendLocal    = "local"
	BackendEmbedded = "embedded"
)

// Config holds application configuration
type Config struct {
	Port        string `yaml:"port" env:"PORT" env-default:"10000"`
	Environment string `yaml:"env"  env:"ENV"  env-default:"development"`

	Log     LogConfig     `yaml:"log"`
	Checker CheckerConfig `yaml:"checker"`

	// Security configuration
	AllowedOrigins     string `yaml:"allowed_origins"       env:"ALLOWED_ORIGINS"`
	EnableRateLimit    bool   `yaml:"enable_rate_limit"     env:"ENABLE_RATE_LIMIT"     env-default:"true"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute" env:"RATE_LIMIT_PER_MINUTE" env-default:"60"`
	MaxRequestSize     int64  `yaml:"max_request_size"      env:"MAX_REQUEST_SIZE"      env-default:"1048576"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// CheckerConfig selects and configures the grammar checking backend.
type CheckerConfig struct {
	Backend  string        `yaml:"backend"  env:"CHECKER_BACKEND"       env-default:"remote"`
	URL      string        `yaml:"url"      env:"LANGUAGETOOL_URL"      env-default:"https://api.languagetool.org/v2"`
	Language string        `yaml:"language" env:"LANGUAGETOOL_LANGUAGE" env-default:"en-GB"`
	Username string        `yaml:"username" env:"LANGUAGETOOL_USERNAME"`
	APIKey   string        `yaml:"api_key"  env:"LANGUAGETOOL_API_KEY"`
	Timeout  time.Duration `yaml:"timeout"  env:"CHECKER_TIMEOUT"       env-default:"10s"`

	// Local-process backend
	JavaBin      string        `yaml:"java_bin"      env:"JAVA_BIN"                 env-default:"java"`
	JarPath      string        `yaml:"jar_path"      env:"LANGUAGETOOL_JAR"`
	LocalPort    int           `yaml:"local_port"    env:"LANGUAGETOOL_LOCAL_PORT"  env-default:"8081"`
	StartTimeout time.Duration `yaml:"start_timeout" env:"LANGUAGETOOL_START_TIMEOUT" env-default:"60s"`
}

// Load reads configuration from environment variables, optionally layered
// over a YAML file named by CONFIG_PATH. Priority: ENV > YAML > defaults.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges and normalises the backend name.
func (c *Config) Validate() error {
	c.Checker.Backend = strings.ToLower(strings.TrimSpace(c.Checker.Backend))
	switch c.Checker.Backend {
	case BackendRemote, BackendLocal, BackendEmbedded:
	default:
		return fmt.Errorf("checker backend %q: must be one of remote, local, embedded", c.Checker.Backend)
	}
	if c.Checker.Timeout <= 0 {
		return fmt.Errorf("checker timeout must be positive")
	}
	if c.Checker.Language == "" {
		return fmt.Errorf("checker language is required")
	}
	if c.Checker.Backend == BackendRemote && c.Checker.URL == "" {
		return fmt.Errorf("LANGUAGETOOL_URL is required for the remote backend")
	}
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = 60
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return []string{}
	}
	origins := strings.Split(c.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// UsesLocalProcess reports whether the grammar checker runs as a child process.
// The embedded variant has no in-process Go equivalent and shares this path.
func (c CheckerConfig) UsesLocalProcess() bool {
	return c.Backend == BackendLocal || c.Backend == BackendEmbedded
}
