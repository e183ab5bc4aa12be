package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
)

// Storage backend names accepted by StorageConfig.Backend.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
)

// Duration is a time.Duration read from strings such as "30m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config represents the complete configuration
type Config struct {
	Env      string         `toml:"env"`
	LogLevel string         `toml:"log_level"`
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Redis    RedisConfig    `toml:"redis"`
	Postgres PostgresConfig `toml:"postgres"`
	MySQL    MySQLConfig    `toml:"mysql"`
	Auth     AuthConfig     `toml:"auth"`
	Jobs     JobsConfig     `toml:"jobs"`
	Backup   BackupConfig   `toml:"backup"`

	// GeneratedSecret is set when no JWT secret was configured and a random
	// one was generated for this run.
	GeneratedSecret bool `toml:"-"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

// StorageConfig selects and tunes the backend holding the store document
type StorageConfig struct {
	Backend            string `toml:"backend"`
	Key                string `toml:"key"`
	MemoryQuota        int    `toml:"memory_quota"`
	RecordInitialStock bool   `toml:"record_initial_stock"`
	// SeedFile replaces the built-in sample data with a JSON store document
	SeedFile string `toml:"seed_file"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type PostgresConfig struct {
	URL string `toml:"url"`
}

type MySQLConfig struct {
	DSN string `toml:"dsn"`
}

// AuthConfig holds the single operator account. Leaving it empty disables
// the login gate.
type AuthConfig struct {
	Username     string   `toml:"username"`
	PasswordHash string   `toml:"password_hash"`
	JWTSecret    string   `toml:"jwt_secret"`
	TokenTTL     Duration `toml:"token_ttl"`
}

type JobsConfig struct {
	AlertInterval  Duration `toml:"alert_interval"`
	BackupInterval Duration `toml:"backup_interval"`
}

// BackupConfig contains MinIO settings for store snapshots
type BackupConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
}

func Default() *Config {
	return &Config{
		Env:      "development",
		LogLevel: "info",
		Server:   ServerConfig{Port: 8080},
		Storage: StorageConfig{
			Backend:            BackendMemory,
			Key:                "stock_sphere_db",
			MemoryQuota:        5 * 1024 * 1024,
			RecordInitialStock: true,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Auth:  AuthConfig{TokenTTL: Duration{12 * time.Hour}},
		Jobs: JobsConfig{
			AlertInterval:  Duration{30 * time.Minute},
			BackupInterval: Duration{24 * time.Hour},
		},
		Backup: BackupConfig{Bucket: "stocksphere-backups"},
	}
}

// Load builds the configuration from defaults, an optional TOML file, a
// .env file in the working directory and finally the process environment.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := Default()
	if filename != "" {
		if _, err := toml.DecodeFile(filename, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Auth.JWTSecret == "" {
		config.Auth.JWTSecret = random.String(32)
		config.GeneratedSecret = true
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	c.Env = getEnv("APP_ENV", c.Env)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.Storage.Backend = strings.ToLower(getEnv("STORAGE_BACKEND", c.Storage.Backend))
	c.Storage.Key = getEnv("STORE_KEY", c.Storage.Key)
	c.Storage.SeedFile = getEnv("SEED_FILE", c.Storage.SeedFile)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Postgres.URL = getEnv("DATABASE_URL", c.Postgres.URL)
	c.MySQL.DSN = getEnv("MYSQL_DSN", c.MySQL.DSN)

	c.Auth.Username = getEnv("AUTH_USERNAME", c.Auth.Username)
	c.Auth.PasswordHash = getEnv("AUTH_PASSWORD_HASH", c.Auth.PasswordHash)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)

	c.Backup.Endpoint = getEnv("MINIO_ENDPOINT", c.Backup.Endpoint)
	c.Backup.AccessKey = getEnv("MINIO_ACCESS_KEY", c.Backup.AccessKey)
	c.Backup.SecretKey = getEnv("MINIO_SECRET_KEY", c.Backup.SecretKey)
	c.Backup.Bucket = getEnv("MINIO_BUCKET", c.Backup.Bucket)

	var err error
	if c.Server.Port, err = getEnvInt("PORT", c.Server.Port); err != nil {
		return err
	}
	if c.Storage.MemoryQuota, err = getEnvInt("MEMORY_QUOTA_BYTES", c.Storage.MemoryQuota); err != nil {
		return err
	}
	if c.Redis.DB, err = getEnvInt("REDIS_DB", c.Redis.DB); err != nil {
		return err
	}
	if c.Storage.RecordInitialStock, err = getEnvBool("RECORD_INITIAL_STOCK", c.Storage.RecordInitialStock); err != nil {
		return err
	}
	if c.Backup.UseSSL, err = getEnvBool("MINIO_USE_SSL", c.Backup.UseSSL); err != nil {
		return err
	}
	if c.Auth.TokenTTL, err = getEnvDuration("TOKEN_TTL", c.Auth.TokenTTL); err != nil {
		return err
	}
	if c.Jobs.AlertInterval, err = getEnvDuration("ALERT_INTERVAL", c.Jobs.AlertInterval); err != nil {
		return err
	}
	if c.Jobs.BackupInterval, err = getEnvDuration("BACKUP_INTERVAL", c.Jobs.BackupInterval); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("MYSQL_DSN is required for the mysql backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if (c.Auth.Username == "") != (c.Auth.PasswordHash == "") {
		return fmt.Errorf("auth username and password hash must be set together")
	}
	if c.Jobs.AlertInterval.Duration <= 0 {
		return fmt.Errorf("alert interval must be positive")
	}
	return nil
}

// AuthEnabled reports whether an operator account is configured.
func (c *Config) AuthEnabled() bool {
	return c.Auth.Username != "" && c.Auth.PasswordHash != ""
}

// BackupEnabled reports whether MinIO snapshots are configured.
func (c *Config) BackupEnabled() bool {
	return c.Backup.Endpoint != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getEnvDuration(key string, def Duration) (Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return Duration{}, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return Duration{d}, nil
}
