package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	LLM           LLMConfig
	Generation    GenerationConfig
	Storage       StorageConfig
	Session       SessionConfig
	EventTriggers EventTriggersConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
	MetricsToken   string // Required in X-Metrics-Token for /api/metrics when set
}

type DatabaseConfig struct {
	URL        string
	MaxConns   int32
	MinConns   int32
	CACertPath string
}

// LLMConfig configures the OpenAI-compatible chat-completion endpoint
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float32
	MaxTokens      int
	TimeoutSeconds int
}

// GenerationConfig tunes the generation pipeline
type GenerationConfig struct {
	MaxAttempts        int
	BackoffUnitMillis  int
	Language           string
	MaxUploadSizeBytes int64
	MaxPhotos          int
}

// StorageConfig configures uploaded asset storage. When the S3 credentials are
// empty, assets are written to UploadDir and served under /uploads.
type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	PublicBaseURL   string
	UploadDir       string
}

type SessionConfig struct {
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
	CookieDomain    string
	CookieSecure    bool
}

type EventTriggersConfig struct {
	LeadCreatedTriggerURL string
	PageCreatedTriggerURL string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	PageTTLSeconds int // Rendered public page TTL in seconds
}

// newViper returns a viper instance with defaults, the environment and an optional .env file
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")

	v.SetDefault("LLM_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("LLM_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_TEMPERATURE", 0.7)
	v.SetDefault("LLM_MAX_TOKENS", 4000)
	v.SetDefault("LLM_TIMEOUT_SECONDS", 90)

	v.SetDefault("GENERATION_MAX_ATTEMPTS", 3)
	v.SetDefault("GENERATION_BACKOFF_UNIT_MS", 1000)
	v.SetDefault("GENERATION_LANGUAGE", "Traditional Chinese (zh-TW)")
	v.SetDefault("GENERATION_MAX_UPLOAD_BYTES", 10*1024*1024)
	v.SetDefault("GENERATION_MAX_PHOTOS", 5)

	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("UPLOAD_DIR", "./uploads")

	v.SetDefault("JWT_ISSUER", "webinar-landing-api")
	v.SetDefault("SESSION_TTL_HOURS", 168)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "webinar-landing-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "webinar-landing")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "webinar-landing-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	v.SetDefault("PAGE_CACHE_TTL", 300)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	return v
}

func databaseConfig(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		URL:        v.GetString("DATABASE_URL"),
		MaxConns:   v.GetInt32("DB_MAX_CONNS"),
		MinConns:   v.GetInt32("DB_MIN_CONNS"),
		CACertPath: v.GetString("DATABASE_CA_CERT"),
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := newViper()

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        strings.TrimRight(v.GetString("BASE_URL"), "/"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
			MetricsToken:   v.GetString("METRICS_AUTH_TOKEN"),
		},
		Database: databaseConfig(v),
		LLM: LLMConfig{
			APIKey:         v.GetString("LLM_API_KEY"),
			BaseURL:        v.GetString("LLM_BASE_URL"),
			Model:          v.GetString("LLM_MODEL"),
			Temperature:    float32(v.GetFloat64("LLM_TEMPERATURE")),
			MaxTokens:      v.GetInt("LLM_MAX_TOKENS"),
			TimeoutSeconds: v.GetInt("LLM_TIMEOUT_SECONDS"),
		},
		Generation: GenerationConfig{
			MaxAttempts:        v.GetInt("GENERATION_MAX_ATTEMPTS"),
			BackoffUnitMillis:  v.GetInt("GENERATION_BACKOFF_UNIT_MS"),
			Language:           v.GetString("GENERATION_LANGUAGE"),
			MaxUploadSizeBytes: v.GetInt64("GENERATION_MAX_UPLOAD_BYTES"),
			MaxPhotos:          v.GetInt("GENERATION_MAX_PHOTOS"),
		},
		Storage: StorageConfig{
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			Region:          v.GetString("STORAGE_REGION"),
			PublicBaseURL:   v.GetString("STORAGE_PUBLIC_BASE_URL"),
			UploadDir:       v.GetString("UPLOAD_DIR"),
		},
		Session: SessionConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain:    v.GetString("COOKIE_DOMAIN"),
			CookieSecure:    v.GetBool("COOKIE_SECURE"),
		},
		EventTriggers: EventTriggersConfig{
			LeadCreatedTriggerURL: v.GetString("LEAD_CREATED_TRIGGER_URL"),
			PageCreatedTriggerURL: v.GetString("PAGE_CREATED_TRIGGER_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			PageTTLSeconds: v.GetInt("PAGE_CACHE_TTL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase reads only the database and logging settings, for the migrate command
func LoadDatabase() (*Config, error) {
	v := newViper()

	cfg := &Config{
		Server: ServerConfig{
			AppEnv: v.GetString("APP_ENV"),
		},
		Database: databaseConfig(v),
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}

	if c.Generation.MaxAttempts < 1 || c.Generation.MaxAttempts > 3 {
		return fmt.Errorf("GENERATION_MAX_ATTEMPTS must be between 1 and 3")
	}

	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Session.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}

	if c.Storage.AccessKeyID != "" && c.Storage.BucketName == "" {
		return fmt.Errorf("STORAGE_BUCKET_NAME is required when STORAGE_ACCESS_KEY_ID is set")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// UsesObjectStorage reports whether uploads go to S3-compatible storage
func (c *Config) UsesObjectStorage() bool {
	return c.Storage.AccessKeyID != "" && c.Storage.SecretAccessKey != ""
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
