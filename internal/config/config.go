package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Log     LogConfig
	Parser  ParserConfig
	CORS    CORSConfig
	Archive ArchiveConfig
	Sheet   SheetConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SheetConfig holds payroll sheet presentation settings.
type SheetConfig struct {
	Issuer string `mapstructure:"issuer"`
}

// ParserProviderConfig holds settings for a single LLM extraction provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// Timeout returns the per-call timeout, defaulting to 120s.
func (p *ParserProviderConfig) Timeout() time.Duration {
	if p.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(p.TimeoutSecs) * time.Second
}

// ParserConfig holds LLM roster extraction settings with multi-provider support.
type ParserConfig struct {
	// Legacy flat fields
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	// Concurrency bounds how many images of one import request are extracted at once.
	Concurrency int `mapstructure:"concurrency"`

	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
	Tertiary  ParserProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (p *ParserConfig) PrimaryConfig() *ParserProviderConfig {
	if p.Primary.Provider != "" {
		return &p.Primary
	}
	return &ParserProviderConfig{
		Provider:     p.Provider,
		APIKey:       p.APIKey,
		BaseURL:      p.BaseURL,
		DefaultModel: p.DefaultModel,
		TimeoutSecs:  p.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (p *ParserConfig) TertiaryConfig() *ParserProviderConfig {
	if p.Tertiary.Provider != "" {
		return &p.Tertiary
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Driver     string `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxOpen    int    `mapstructure:"max_open"`
	MaxIdle    int    `mapstructure:"max_idle"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ArchiveConfig holds S3 settings for archiving generated sheets and import images.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PAYROLL_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PAYROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 32)

	// DB defaults
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "payroll")
	v.SetDefault("db.password", "payroll_secret")
	v.SetDefault("db.name", "payroll_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.sqlite_path", "data/payroll.db")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "payroll-archive")
	v.SetDefault("archive.endpoint", "")

	v.SetDefault("sheet.issuer", "发放单位：内蒙古中畅建设有限公司")

	// Parser defaults (legacy flat)
	v.SetDefault("parser.provider", "openai")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.base_url", "")
	v.SetDefault("parser.default_model", "")
	v.SetDefault("parser.timeout_secs", 120)
	v.SetDefault("parser.concurrency", 3)

	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("parser."+tier+".provider", "")
		v.SetDefault("parser."+tier+".api_key", "")
		v.SetDefault("parser."+tier+".base_url", "")
		v.SetDefault("parser."+tier+".default_model", "")
		v.SetDefault("parser."+tier+".timeout_secs", 120)
	}

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "PAYROLL_SERVER_PORT",
		"server.read_timeout":            "PAYROLL_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "PAYROLL_SERVER_WRITE_TIMEOUT",
		"server.environment":             "PAYROLL_SERVER_ENVIRONMENT",
		"server.max_upload_mb":           "PAYROLL_SERVER_MAX_UPLOAD_MB",
		"db.driver":                      "PAYROLL_DB_DRIVER",
		"db.host":                        "PAYROLL_DB_HOST",
		"db.port":                        "PAYROLL_DB_PORT",
		"db.user":                        "PAYROLL_DB_USER",
		"db.password":                    "PAYROLL_DB_PASSWORD",
		"db.name":                        "PAYROLL_DB_NAME",
		"db.sslmode":                     "PAYROLL_DB_SSLMODE",
		"db.max_open":                    "PAYROLL_DB_MAX_OPEN",
		"db.max_idle":                    "PAYROLL_DB_MAX_IDLE",
		"db.sqlite_path":                 "PAYROLL_DB_SQLITE_PATH",
		"log.level":                      "PAYROLL_LOG_LEVEL",
		"log.format":                     "PAYROLL_LOG_FORMAT",
		"cors.allowed_origins":           "PAYROLL_CORS_ALLOWED_ORIGINS",
		"archive.enabled":                "PAYROLL_ARCHIVE_ENABLED",
		"archive.region":                 "PAYROLL_ARCHIVE_REGION",
		"archive.bucket":                 "PAYROLL_ARCHIVE_BUCKET",
		"archive.endpoint":               "PAYROLL_ARCHIVE_ENDPOINT",
		"archive.access_key":             "PAYROLL_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":             "PAYROLL_ARCHIVE_SECRET_KEY",
		"sheet.issuer":                   "PAYROLL_SHEET_ISSUER",
		"parser.provider":                "PAYROLL_PARSER_PROVIDER",
		"parser.api_key":                 "PAYROLL_PARSER_API_KEY",
		"parser.base_url":                "PAYROLL_PARSER_BASE_URL",
		"parser.default_model":           "PAYROLL_PARSER_DEFAULT_MODEL",
		"parser.timeout_secs":            "PAYROLL_PARSER_TIMEOUT_SECS",
		"parser.concurrency":             "PAYROLL_PARSER_CONCURRENCY",
		"parser.primary.provider":        "PAYROLL_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":         "PAYROLL_PARSER_PRIMARY_API_KEY",
		"parser.primary.base_url":        "PAYROLL_PARSER_PRIMARY_BASE_URL",
		"parser.primary.default_model":   "PAYROLL_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.timeout_secs":    "PAYROLL_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":      "PAYROLL_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":       "PAYROLL_PARSER_SECONDARY_API_KEY",
		"parser.secondary.base_url":      "PAYROLL_PARSER_SECONDARY_BASE_URL",
		"parser.secondary.default_model": "PAYROLL_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.timeout_secs":  "PAYROLL_PARSER_SECONDARY_TIMEOUT_SECS",
		"parser.tertiary.provider":       "PAYROLL_PARSER_TERTIARY_PROVIDER",
		"parser.tertiary.api_key":        "PAYROLL_PARSER_TERTIARY_API_KEY",
		"parser.tertiary.base_url":       "PAYROLL_PARSER_TERTIARY_BASE_URL",
		"parser.tertiary.default_model":  "PAYROLL_PARSER_TERTIARY_DEFAULT_MODEL",
		"parser.tertiary.timeout_secs":   "PAYROLL_PARSER_TERTIARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if PAYROLL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PAYROLL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.DB = DBConfig{
		Driver:     v.GetString("db.driver"),
		Host:       v.GetString("db.host"),
		Port:       v.GetInt("db.port"),
		User:       v.GetString("db.user"),
		Password:   v.GetString("db.password"),
		Name:       v.GetString("db.name"),
		SSLMode:    v.GetString("db.sslmode"),
		MaxOpen:    v.GetInt("db.max_open"),
		MaxIdle:    v.GetInt("db.max_idle"),
		SQLitePath: v.GetString("db.sqlite_path"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Archive = ArchiveConfig{
		Enabled:   v.GetBool("archive.enabled"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	cfg.Sheet = SheetConfig{Issuer: v.GetString("sheet.issuer")}

	providerConfig := func(tier string) ParserProviderConfig {
		return ParserProviderConfig{
			Provider:     v.GetString("parser." + tier + ".provider"),
			APIKey:       v.GetString("parser." + tier + ".api_key"),
			BaseURL:      v.GetString("parser." + tier + ".base_url"),
			DefaultModel: v.GetString("parser." + tier + ".default_model"),
			TimeoutSecs:  v.GetInt("parser." + tier + ".timeout_secs"),
		}
	}
	cfg.Parser = ParserConfig{
		Provider:     v.GetString("parser.provider"),
		APIKey:       v.GetString("parser.api_key"),
		BaseURL:      v.GetString("parser.base_url"),
		DefaultModel: v.GetString("parser.default_model"),
		TimeoutSecs:  v.GetInt("parser.timeout_secs"),
		Concurrency:  v.GetInt("parser.concurrency"),
		Primary:      providerConfig("primary"),
		Secondary:    providerConfig("secondary"),
		Tertiary:     providerConfig("tertiary"),
	}

	return cfg, nil
}
