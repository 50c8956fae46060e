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
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Admin   AdminConfig
	Parser  ParserConfig
	Runtime RuntimeConfig
	OCR     OCRConfig
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
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AdminConfig holds admin endpoint authentication settings.
type AdminConfig struct {
	Token string `mapstructure:"token"`
}

// ParserConfig holds document parsing settings.
type ParserConfig struct {
	// ApplyThreshold is the minimum confidence (inclusive) a suggested
	// field needs before patch application writes it.
	ApplyThreshold float64 `mapstructure:"apply_threshold"`
}

// RuntimeConfig holds admin runtime settings.
type RuntimeConfig struct {
	ActionLogPath       string `mapstructure:"action_log_path"`
	ActionLogMaxEntries int    `mapstructure:"action_log_max_entries"`
}

// OCRConfig holds image text extraction settings.
type OCRConfig struct {
	Binary   string `mapstructure:"binary"`
	Language string `mapstructure:"language"`
}

// Load reads configuration from environment variables with the GRANTFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GRANTFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "grantflow")
	v.SetDefault("db.password", "grantflow_secret")
	v.SetDefault("db.name", "grantflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "grantflow-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Admin defaults
	v.SetDefault("admin.token", "")

	// Parser defaults
	v.SetDefault("parser.apply_threshold", 0.7)

	// Runtime defaults
	v.SetDefault("runtime.action_log_path", "data/action-log.json")
	v.SetDefault("runtime.action_log_max_entries", 200)

	// OCR defaults
	v.SetDefault("ocr.binary", "tesseract")
	v.SetDefault("ocr.language", "eng")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "GRANTFLOW_SERVER_PORT",
		"server.read_timeout":            "GRANTFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "GRANTFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":             "GRANTFLOW_SERVER_ENVIRONMENT",
		"db.host":                        "GRANTFLOW_DB_HOST",
		"db.port":                        "GRANTFLOW_DB_PORT",
		"db.user":                        "GRANTFLOW_DB_USER",
		"db.password":                    "GRANTFLOW_DB_PASSWORD",
		"db.name":                        "GRANTFLOW_DB_NAME",
		"db.sslmode":                     "GRANTFLOW_DB_SSLMODE",
		"db.max_open":                    "GRANTFLOW_DB_MAX_OPEN",
		"db.max_idle":                    "GRANTFLOW_DB_MAX_IDLE",
		"s3.region":                      "GRANTFLOW_S3_REGION",
		"s3.bucket":                      "GRANTFLOW_S3_BUCKET",
		"s3.endpoint":                    "GRANTFLOW_S3_ENDPOINT",
		"s3.access_key":                  "GRANTFLOW_S3_ACCESS_KEY",
		"s3.secret_key":                  "GRANTFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":            "GRANTFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "GRANTFLOW_S3_PRESIGN_EXPIRY",
		"log.level":                      "GRANTFLOW_LOG_LEVEL",
		"log.format":                     "GRANTFLOW_LOG_FORMAT",
		"cors.allowed_origins":           "GRANTFLOW_CORS_ALLOWED_ORIGINS",
		"admin.token":                    "GRANTFLOW_ADMIN_TOKEN",
		"parser.apply_threshold":         "GRANTFLOW_PARSER_APPLY_THRESHOLD",
		"runtime.action_log_path":        "GRANTFLOW_RUNTIME_ACTION_LOG_PATH",
		"runtime.action_log_max_entries": "GRANTFLOW_RUNTIME_ACTION_LOG_MAX_ENTRIES",
		"ocr.binary":                     "GRANTFLOW_OCR_BINARY",
		"ocr.language":                   "GRANTFLOW_OCR_LANGUAGE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GRANTFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GRANTFLOW_SERVER_PORT") == "" {
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
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
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
	cfg.Admin = AdminConfig{
		Token: v.GetString("admin.token"),
	}
	cfg.Parser = ParserConfig{
		ApplyThreshold: v.GetFloat64("parser.apply_threshold"),
	}
	cfg.Runtime = RuntimeConfig{
		ActionLogPath:       v.GetString("runtime.action_log_path"),
		ActionLogMaxEntries: v.GetInt("runtime.action_log_max_entries"),
	}
	cfg.OCR = OCRConfig{
		Binary:   v.GetString("ocr.binary"),
		Language: v.GetString("ocr.language"),
	}

	return cfg, nil
}
