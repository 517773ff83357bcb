package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Comparison ComparisonConfig
	Templates  TemplatesConfig
	Documents  DocumentsConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ComparisonConfig holds the process-wide comparison settings passed into the
// comparison service and the fuzzy comparator.
type ComparisonConfig struct {
	FuzzyMatchThreshold float64 `mapstructure:"fuzzy_match_threshold"`
	DefaultTemplateID   string  `mapstructure:"default_template_id"`
}

// Template sources.
const (
	TemplateSourceEmbedded = "embedded"
	TemplateSourceDir      = "dir"
	TemplateSourceS3       = "s3"
	TemplateSourcePostgres = "postgres"
)

// TemplatesConfig selects where template definitions are loaded from.
type TemplatesConfig struct {
	Source             string `mapstructure:"source"`
	Directory          string `mapstructure:"directory"`
	S3Prefix           string `mapstructure:"s3_prefix"`
	ValidateStrategies bool   `mapstructure:"validate_strategies"`
}

// DocumentsConfig holds document-to-text settings.
type DocumentsConfig struct {
	BaseDir       string `mapstructure:"base_dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	Readability   bool   `mapstructure:"readability"`
}

// MaxFileSize returns the size limit in bytes; zero means unlimited.
func (d *DocumentsConfig) MaxFileSize() int64 {
	return d.MaxFileSizeMB << 20
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
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

// Load reads configuration from environment variables with the DOCVERIFY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCVERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docverify")
	v.SetDefault("db.password", "docverify_secret")
	v.SetDefault("db.name", "docverify_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docverify")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Comparison defaults
	v.SetDefault("comparison.fuzzy_match_threshold", 0.85)
	v.SetDefault("comparison.default_template_id", "promise_letter")

	// Template source defaults
	v.SetDefault("templates.source", TemplateSourceEmbedded)
	v.SetDefault("templates.directory", "templates")
	v.SetDefault("templates.s3_prefix", "templates/")
	v.SetDefault("templates.validate_strategies", true)

	// Document defaults
	v.SetDefault("documents.base_dir", ".")
	v.SetDefault("documents.max_file_size_mb", 20)
	v.SetDefault("documents.readability", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "DOCVERIFY_SERVER_PORT",
		"server.read_timeout":              "DOCVERIFY_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "DOCVERIFY_SERVER_WRITE_TIMEOUT",
		"server.environment":               "DOCVERIFY_SERVER_ENVIRONMENT",
		"db.host":                          "DOCVERIFY_DB_HOST",
		"db.port":                          "DOCVERIFY_DB_PORT",
		"db.user":                          "DOCVERIFY_DB_USER",
		"db.password":                      "DOCVERIFY_DB_PASSWORD",
		"db.name":                          "DOCVERIFY_DB_NAME",
		"db.sslmode":                       "DOCVERIFY_DB_SSLMODE",
		"db.max_open":                      "DOCVERIFY_DB_MAX_OPEN",
		"db.max_idle":                      "DOCVERIFY_DB_MAX_IDLE",
		"s3.region":                        "DOCVERIFY_S3_REGION",
		"s3.bucket":                        "DOCVERIFY_S3_BUCKET",
		"s3.endpoint":                      "DOCVERIFY_S3_ENDPOINT",
		"s3.access_key":                    "DOCVERIFY_S3_ACCESS_KEY",
		"s3.secret_key":                    "DOCVERIFY_S3_SECRET_KEY",
		"log.level":                        "DOCVERIFY_LOG_LEVEL",
		"log.format":                       "DOCVERIFY_LOG_FORMAT",
		"cors.allowed_origins":             "DOCVERIFY_CORS_ALLOWED_ORIGINS",
		"comparison.fuzzy_match_threshold": "DOCVERIFY_COMPARISON_FUZZY_MATCH_THRESHOLD",
		"comparison.default_template_id":   "DOCVERIFY_COMPARISON_DEFAULT_TEMPLATE_ID",
		"templates.source":                 "DOCVERIFY_TEMPLATES_SOURCE",
		"templates.directory":              "DOCVERIFY_TEMPLATES_DIRECTORY",
		"templates.s3_prefix":              "DOCVERIFY_TEMPLATES_S3_PREFIX",
		"templates.validate_strategies":    "DOCVERIFY_TEMPLATES_VALIDATE_STRATEGIES",
		"documents.base_dir":               "DOCVERIFY_DOCUMENTS_BASE_DIR",
		"documents.max_file_size_mb":       "DOCVERIFY_DOCUMENTS_MAX_FILE_SIZE_MB",
		"documents.readability":            "DOCVERIFY_DOCUMENTS_READABILITY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set a bare PORT env var. Use it if DOCVERIFY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCVERIFY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Comparison = ComparisonConfig{
		FuzzyMatchThreshold: v.GetFloat64("comparison.fuzzy_match_threshold"),
		DefaultTemplateID:   v.GetString("comparison.default_template_id"),
	}
	if t := cfg.Comparison.FuzzyMatchThreshold; t < 0 || t > 1 {
		return nil, fmt.Errorf("comparison.fuzzy_match_threshold must be within [0,1], got %v", t)
	}

	cfg.Templates = TemplatesConfig{
		Source:             strings.ToLower(v.GetString("templates.source")),
		Directory:          v.GetString("templates.directory"),
		S3Prefix:           v.GetString("templates.s3_prefix"),
		ValidateStrategies: v.GetBool("templates.validate_strategies"),
	}
	switch cfg.Templates.Source {
	case TemplateSourceEmbedded, TemplateSourceDir, TemplateSourceS3, TemplateSourcePostgres:
	default:
		return nil, fmt.Errorf("templates.source %q is not one of embedded, dir, s3, postgres", cfg.Templates.Source)
	}

	cfg.Documents = DocumentsConfig{
		BaseDir:       v.GetString("documents.base_dir"),
		MaxFileSizeMB: v.GetInt64("documents.max_file_size_mb"),
		Readability:   v.GetBool("documents.readability"),
	}

	return cfg, nil
}
