package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Mistral MistralConfig
	Cleanup CleanupConfig
	Upload  UploadConfig
	Archive ArchiveConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// Addr returns the host:port bind address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// MistralConfig holds Mistral API settings for file upload and OCR.
type MistralConfig struct {
	APIKey      string `mapstructure:"api_key"`
	OCRModel    string `mapstructure:"ocr_model"`
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// CleanupConfig holds settings for the optional second-pass markdown
// cleanup. An empty APIKey disables the feature.
type CleanupConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Enabled reports whether cleanup is configured.
func (c *CleanupConfig) Enabled() bool {
	return c.APIKey != ""
}

// UploadConfig holds local upload validation settings.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// ArchiveConfig holds S3 settings for optional result archival.
// An empty Bucket disables the feature.
type ArchiveConfig struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether archival is configured.
func (a *ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the MDOCR_
// prefix. It fails when the Mistral API key is missing: the service
// cannot do anything useful without it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MDOCR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "7860")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Mistral defaults
	v.SetDefault("mistral.api_key", "")
	v.SetDefault("mistral.ocr_model", "mistral-ocr-latest")
	v.SetDefault("mistral.base_url", "https://api.mistral.ai")
	v.SetDefault("mistral.timeout_secs", 300)

	// Cleanup defaults
	v.SetDefault("cleanup.api_key", "")
	v.SetDefault("cleanup.model", "mistral-small-latest")
	v.SetDefault("cleanup.base_url", "https://api.mistral.ai")
	v.SetDefault("cleanup.timeout_secs", 120)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 50)

	// Archive defaults
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.host":             "MDOCR_SERVER_HOST",
		"server.port":             "MDOCR_SERVER_PORT",
		"server.read_timeout":     "MDOCR_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "MDOCR_SERVER_WRITE_TIMEOUT",
		"server.environment":      "MDOCR_SERVER_ENVIRONMENT",
		"mistral.api_key":         "MDOCR_MISTRAL_API_KEY",
		"mistral.ocr_model":       "MDOCR_MISTRAL_OCR_MODEL",
		"mistral.base_url":        "MDOCR_MISTRAL_BASE_URL",
		"mistral.timeout_secs":    "MDOCR_MISTRAL_TIMEOUT_SECS",
		"cleanup.api_key":         "MDOCR_CLEANUP_API_KEY",
		"cleanup.model":           "MDOCR_CLEANUP_MODEL",
		"cleanup.base_url":        "MDOCR_CLEANUP_BASE_URL",
		"cleanup.timeout_secs":    "MDOCR_CLEANUP_TIMEOUT_SECS",
		"upload.max_file_size_mb": "MDOCR_UPLOAD_MAX_FILE_SIZE_MB",
		"archive.region":          "MDOCR_ARCHIVE_REGION",
		"archive.bucket":          "MDOCR_ARCHIVE_BUCKET",
		"archive.endpoint":        "MDOCR_ARCHIVE_ENDPOINT",
		"archive.access_key":      "MDOCR_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":      "MDOCR_ARCHIVE_SECRET_KEY",
		"archive.presign_expiry":  "MDOCR_ARCHIVE_PRESIGN_EXPIRY",
		"log.level":               "MDOCR_LOG_LEVEL",
		"log.format":              "MDOCR_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// Fall back to MISTRAL_API_KEY for compatibility with the plain
	// environment most OCR API examples document.
	apiKey := v.GetString("mistral.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("MISTRAL_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("MISTRAL_API_KEY (or MDOCR_MISTRAL_API_KEY) environment variable not set")
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Host:         v.GetString("server.host"),
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Mistral = MistralConfig{
		APIKey:      apiKey,
		OCRModel:    v.GetString("mistral.ocr_model"),
		BaseURL:     v.GetString("mistral.base_url"),
		TimeoutSecs: v.GetInt("mistral.timeout_secs"),
	}
	cfg.Cleanup = CleanupConfig{
		APIKey:      v.GetString("cleanup.api_key"),
		Model:       v.GetString("cleanup.model"),
		BaseURL:     v.GetString("cleanup.base_url"),
		TimeoutSecs: v.GetInt("cleanup.timeout_secs"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Archive = ArchiveConfig{
		Region:        v.GetString("archive.region"),
		Bucket:        v.GetString("archive.bucket"),
		Endpoint:      v.GetString("archive.endpoint"),
		AccessKey:     v.GetString("archive.access_key"),
		SecretKey:     v.GetString("archive.secret_key"),
		PresignExpiry: v.GetInt64("archive.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
