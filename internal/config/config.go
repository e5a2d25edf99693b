package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DB       DBConfig
	Log      LogConfig
	Batch    BatchConfig
	Discount DiscountConfig
	Matching MatchingConfig
	S3       S3Config
	Email    EmailConfig
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

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BatchConfig holds batch sweep settings.
type BatchConfig struct {
	Concurrency     int           `mapstructure:"concurrency"`
	DocumentTimeout time.Duration `mapstructure:"document_timeout"`
	Locale          string        `mapstructure:"locale"`
	ArchivePayload  bool          `mapstructure:"archive_payloads"`
}

// DiscountConfig exposes the discount-interpretation heuristics as policy.
// Treating any bare value at or below MaxPercentHeuristic as a percentage is
// a guard against OCR mislabeling, not ground truth; tune per deployment.
type DiscountConfig struct {
	MaxPercentHeuristic float64 `mapstructure:"max_percent_heuristic"`
	MinRemainderRatio   float64 `mapstructure:"min_remainder_ratio"`
	// When set, explicitly labeled discount columns are taken as their
	// declared kind instead of going through context classification.
	TrustLabeledColumns bool `mapstructure:"trust_labeled_columns"`
}

// MatchingConfig holds fuzzy-match weights and thresholds per entity type.
type MatchingConfig struct {
	AcceptThreshold float64 `mapstructure:"accept_threshold"`

	SupplierNameWeight     float64 `mapstructure:"supplier_name_weight"`
	SupplierNameOnlyName   float64 `mapstructure:"supplier_name_only_name"`
	SupplierNameOnlyAddr   float64 `mapstructure:"supplier_name_only_addr"`
	LocationNameWeight     float64 `mapstructure:"location_name_weight"`
	LocationNameOnlyName   float64 `mapstructure:"location_name_only_name"`
	LocationNameOnlyAddr   float64 `mapstructure:"location_name_only_addr"`
	SupplierScoreThreshold float64 `mapstructure:"supplier_score_threshold"`
}

// S3Config holds AWS S3 settings for the payload archive.
type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EmailConfig holds run-summary email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// Load reads configuration from environment variables with the LINEFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LINEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "lineflow")
	v.SetDefault("db.password", "lineflow_secret")
	v.SetDefault("db.name", "lineflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Batch defaults
	v.SetDefault("batch.concurrency", 1)
	v.SetDefault("batch.document_timeout", "2m")
	v.SetDefault("batch.locale", "da")
	v.SetDefault("batch.archive_payloads", false)

	// Discount policy defaults
	v.SetDefault("discount.max_percent_heuristic", 50)
	v.SetDefault("discount.min_remainder_ratio", 0.1)
	v.SetDefault("discount.trust_labeled_columns", false)

	// Matching defaults
	v.SetDefault("matching.accept_threshold", 80)
	v.SetDefault("matching.supplier_score_threshold", 85)
	v.SetDefault("matching.supplier_name_weight", 0.6)
	v.SetDefault("matching.supplier_name_only_name", 90)
	v.SetDefault("matching.supplier_name_only_addr", 50)
	v.SetDefault("matching.location_name_weight", 0.7)
	v.SetDefault("matching.location_name_only_name", 95)
	v.SetDefault("matching.location_name_only_addr", 40)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "lineflow-archive")
	v.SetDefault("s3.endpoint", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-1")
	v.SetDefault("email.from_address", "etl@lineflow.local")
	v.SetDefault("email.from_name", "Lineflow ETL")
	v.SetDefault("email.to_address", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"db.host":     "LINEFLOW_DB_HOST",
		"db.port":     "LINEFLOW_DB_PORT",
		"db.user":     "LINEFLOW_DB_USER",
		"db.password": "LINEFLOW_DB_PASSWORD",
		"db.name":     "LINEFLOW_DB_NAME",
		"db.sslmode":  "LINEFLOW_DB_SSLMODE",
		"db.max_open": "LINEFLOW_DB_MAX_OPEN",
		"db.max_idle": "LINEFLOW_DB_MAX_IDLE",
		"log.level":   "LINEFLOW_LOG_LEVEL",
		"log.format":  "LINEFLOW_LOG_FORMAT",

		"batch.concurrency":      "LINEFLOW_BATCH_CONCURRENCY",
		"batch.document_timeout": "LINEFLOW_BATCH_DOCUMENT_TIMEOUT",
		"batch.locale":           "LINEFLOW_BATCH_LOCALE",
		"batch.archive_payloads": "LINEFLOW_BATCH_ARCHIVE_PAYLOADS",

		"discount.max_percent_heuristic": "LINEFLOW_DISCOUNT_MAX_PERCENT_HEURISTIC",
		"discount.min_remainder_ratio":   "LINEFLOW_DISCOUNT_MIN_REMAINDER_RATIO",
		"discount.trust_labeled_columns": "LINEFLOW_DISCOUNT_TRUST_LABELED_COLUMNS",

		"matching.accept_threshold":         "LINEFLOW_MATCHING_ACCEPT_THRESHOLD",
		"matching.supplier_score_threshold": "LINEFLOW_MATCHING_SUPPLIER_SCORE_THRESHOLD",
		"matching.supplier_name_weight":     "LINEFLOW_MATCHING_SUPPLIER_NAME_WEIGHT",
		"matching.supplier_name_only_name":  "LINEFLOW_MATCHING_SUPPLIER_NAME_ONLY_NAME",
		"matching.supplier_name_only_addr":  "LINEFLOW_MATCHING_SUPPLIER_NAME_ONLY_ADDR",
		"matching.location_name_weight":     "LINEFLOW_MATCHING_LOCATION_NAME_WEIGHT",
		"matching.location_name_only_name":  "LINEFLOW_MATCHING_LOCATION_NAME_ONLY_NAME",
		"matching.location_name_only_addr":  "LINEFLOW_MATCHING_LOCATION_NAME_ONLY_ADDR",

		"s3.enabled":    "LINEFLOW_S3_ENABLED",
		"s3.region":     "LINEFLOW_S3_REGION",
		"s3.bucket":     "LINEFLOW_S3_BUCKET",
		"s3.endpoint":   "LINEFLOW_S3_ENDPOINT",
		"s3.access_key": "LINEFLOW_S3_ACCESS_KEY",
		"s3.secret_key": "LINEFLOW_S3_SECRET_KEY",

		"email.provider":     "LINEFLOW_EMAIL_PROVIDER",
		"email.region":       "LINEFLOW_EMAIL_REGION",
		"email.from_address": "LINEFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":    "LINEFLOW_EMAIL_FROM_NAME",
		"email.to_address":   "LINEFLOW_EMAIL_TO_ADDRESS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

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
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Batch = BatchConfig{
		Concurrency:     v.GetInt("batch.concurrency"),
		DocumentTimeout: v.GetDuration("batch.document_timeout"),
		Locale:          v.GetString("batch.locale"),
		ArchivePayload:  v.GetBool("batch.archive_payloads"),
	}
	cfg.Discount = DiscountConfig{
		MaxPercentHeuristic: v.GetFloat64("discount.max_percent_heuristic"),
		MinRemainderRatio:   v.GetFloat64("discount.min_remainder_ratio"),
		TrustLabeledColumns: v.GetBool("discount.trust_labeled_columns"),
	}
	cfg.Matching = MatchingConfig{
		AcceptThreshold:        v.GetFloat64("matching.accept_threshold"),
		SupplierScoreThreshold: v.GetFloat64("matching.supplier_score_threshold"),
		SupplierNameWeight:     v.GetFloat64("matching.supplier_name_weight"),
		SupplierNameOnlyName:   v.GetFloat64("matching.supplier_name_only_name"),
		SupplierNameOnlyAddr:   v.GetFloat64("matching.supplier_name_only_addr"),
		LocationNameWeight:     v.GetFloat64("matching.location_name_weight"),
		LocationNameOnlyName:   v.GetFloat64("matching.location_name_only_name"),
		LocationNameOnlyAddr:   v.GetFloat64("matching.location_name_only_addr"),
	}
	cfg.S3 = S3Config{
		Enabled:   v.GetBool("s3.enabled"),
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		ToAddress:   v.GetString("email.to_address"),
	}

	return cfg, nil
}
