package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Submission modes
const (
	SubmissionModeSimulated = "simulated"
	SubmissionModeLive      = "live"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Storage       StorageConfig
	ReCAPTCHA     ReCAPTCHAConfig
	EventTriggers EventTriggersConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Session       SessionConfig
	Submission    SubmissionConfig
	Site          SiteConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL           string
	MaxConns      int32
	MinConns      int32
	WorkOffline   bool
	CACertPath    string
	TLSServerName string
}

// StorageConfig points at an S3-compatible bucket for resumes
type StorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

type ReCAPTCHAConfig struct {
	SecretKey string
	SiteKey   string
}

type EventTriggersConfig struct {
	ReferralCreatedTriggerURL string
}

type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
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

type SessionConfig struct {
	Secret       string
	Issuer       string
	TTLHours     int
	IdleMinutes  int
	CookieDomain string
	CookieSecure bool
}

type SubmissionConfig struct {
	Mode         string
	LatencyMs    int
	DwellSeconds int
	MaxRetries   int
}

// SiteConfig holds the copy that changes per deployment
type SiteConfig struct {
	OrganizationName string
	MainSiteURL      string
	ContactURL       string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://indicacoes.artiumsolucoes.com.br")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://indicacoes.artiumsolucoes.com.br")
	v.SetDefault("DB_WORK_OFFLINE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "artium-indicacoes")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "artium")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "artium-indicacoes")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("SESSION_ISSUER", "artium-indicacoes")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("SESSION_IDLE_MINUTES", 30)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("SUBMISSION_MODE", SubmissionModeSimulated)
	v.SetDefault("SUBMISSION_LATENCY_MS", 1500)
	v.SetDefault("SUBMISSION_DWELL_SECONDS", 3)
	v.SetDefault("SUBMISSION_MAX_RETRIES", 2)
	v.SetDefault("SITE_ORG_NAME", "Artium Soluções")
	v.SetDefault("SITE_MAIN_URL", "https://artiumsolucoes.com.br/")
	v.SetDefault("SITE_CONTACT_URL", "https://artiumsolucoes.com.br/#contato")

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:           v.GetString("DATABASE_URL"),
			MaxConns:      10,
			MinConns:      1,
			WorkOffline:   v.GetBool("DB_WORK_OFFLINE"),
			CACertPath:    v.GetString("DATABASE_CA_CERT"),
			TLSServerName: v.GetString("DATABASE_TLS_SERVER_NAME"),
		},
		Storage: StorageConfig{
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			Region:          v.GetString("STORAGE_REGION"),
		},
		ReCAPTCHA: ReCAPTCHAConfig{
			SecretKey: v.GetString("RECAPTCHA_SECRET_KEY"),
			SiteKey:   v.GetString("RECAPTCHA_SITE_KEY"),
		},
		EventTriggers: EventTriggersConfig{
			ReferralCreatedTriggerURL: v.GetString("REFERRAL_CREATED_TRIGGER_URL"),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Dir:        v.GetString("LOG_DIR"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
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
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			Issuer:       v.GetString("SESSION_ISSUER"),
			TTLHours:     v.GetInt("SESSION_TTL_HOURS"),
			IdleMinutes:  v.GetInt("SESSION_IDLE_MINUTES"),
			CookieDomain: v.GetString("COOKIE_DOMAIN"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Submission: SubmissionConfig{
			Mode:         strings.ToLower(strings.TrimSpace(v.GetString("SUBMISSION_MODE"))),
			LatencyMs:    v.GetInt("SUBMISSION_LATENCY_MS"),
			DwellSeconds: v.GetInt("SUBMISSION_DWELL_SECONDS"),
			MaxRetries:   v.GetInt("SUBMISSION_MAX_RETRIES"),
		},
		Site: SiteConfig{
			OrganizationName: v.GetString("SITE_ORG_NAME"),
			MainSiteURL:      v.GetString("SITE_MAIN_URL"),
			ContactURL:       v.GetString("SITE_CONTACT_URL"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks
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

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	switch c.Submission.Mode {
	case SubmissionModeSimulated:
	case SubmissionModeLive:
		if c.Database.WorkOffline {
			return fmt.Errorf("SUBMISSION_MODE=live cannot run with DB_WORK_OFFLINE")
		}
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when SUBMISSION_MODE=live")
		}
		if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" || c.Storage.BucketName == "" {
			return fmt.Errorf("STORAGE_ACCESS_KEY_ID, STORAGE_SECRET_ACCESS_KEY and STORAGE_BUCKET_NAME are required when SUBMISSION_MODE=live")
		}
	default:
		return fmt.Errorf("unsupported SUBMISSION_MODE %q", c.Submission.Mode)
	}

	if c.Submission.DwellSeconds <= 0 {
		return fmt.Errorf("SUBMISSION_DWELL_SECONDS must be positive")
	}
	if c.Submission.MaxRetries < 0 {
		return fmt.Errorf("SUBMISSION_MAX_RETRIES must not be negative")
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

// IsLive reports whether referrals are persisted instead of simulated
func (c *Config) IsLive() bool {
	return c.Submission.Mode == SubmissionModeLive
}

// SubmissionLatency is the fixed delay of the simulated backend
func (c *Config) SubmissionLatency() time.Duration {
	return time.Duration(c.Submission.LatencyMs) * time.Millisecond
}

// DwellTime is how long the confirmation view stays before the form resets
func (c *Config) DwellTime() time.Duration {
	return time.Duration(c.Submission.DwellSeconds) * time.Second
}

// SessionIdleTTL is how long an untouched visitor session is kept
func (c *Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.Session.IdleMinutes) * time.Minute
}
