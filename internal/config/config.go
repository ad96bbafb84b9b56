package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Outbox    OutboxConfig    `mapstructure:"outbox"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type OutboxConfig struct {
	BatchSize       int           `mapstructure:"batch_size"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	Lease           time.Duration `mapstructure:"lease"`
	RetryAttempts   int           `mapstructure:"retry_attempts"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
	MaxDeliveries   int           `mapstructure:"max_deliveries"`
	RetentionDays   int           `mapstructure:"retention_days"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CalendarConfig holds the OAuth2 client of the account that owns the calendar. Access tokens are minted from
// RefreshToken on demand.
type CalendarConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	TokenURL     string        `mapstructure:"token_url"`
	CalendarID   string        `mapstructure:"calendar_id"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	RefreshToken string        `mapstructure:"refresh_token"`
	TimeZone     string        `mapstructure:"timezone"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type SMTPConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	LabAddress string `mapstructure:"lab_address"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	IdleExpiry        time.Duration `mapstructure:"idle_expiry"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type CacheConfig struct {
	DoctorTTL       time.Duration `mapstructure:"doctor_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

// Secrets are read from HEALTHAPP_* environment variables and override the file values.
type Secrets struct {
	JWTSecret            string `envconfig:"JWT_SECRET"`
	DBPassword           string `envconfig:"DB_PASSWORD"`
	RedisURL             string `envconfig:"REDIS_URL"`
	SMTPPassword         string `envconfig:"SMTP_PASSWORD"`
	CalendarClientSecret string `envconfig:"CALENDAR_CLIENT_SECRET"`
	CalendarRefreshToken string `envconfig:"CALENDAR_REFRESH_TOKEN"`
	AdminPasswordHash    string `envconfig:"ADMIN_PASSWORD_HASH"`
}

const envPrefix = "healthapp"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "healthapp")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("jwt.expiry_hours", 24)

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)

	v.SetDefault("outbox.batch_size", 50)
	v.SetDefault("outbox.poll_interval", 2*time.Second)
	v.SetDefault("outbox.lease", 30*time.Second)
	v.SetDefault("outbox.retry_attempts", 3)
	v.SetDefault("outbox.retry_delay", 500*time.Millisecond)
	v.SetDefault("outbox.max_deliveries", 10)
	v.SetDefault("outbox.retention_days", 7)
	v.SetDefault("outbox.cleanup_interval", time.Hour)

	v.SetDefault("calendar.base_url", "https://www.googleapis.com/calendar/v3/")
	v.SetDefault("calendar.token_url", "https://oauth2.googleapis.com/token")
	v.SetDefault("calendar.calendar_id", "primary")
	v.SetDefault("calendar.timezone", "Asia/Colombo")
	v.SetDefault("calendar.timeout", 10*time.Second)

	v.SetDefault("smtp.port", 587)

	v.SetDefault("rate_limit.requests_per_second", 1.0)
	v.SetDefault("rate_limit.burst", 5)
	v.SetDefault("rate_limit.idle_expiry", 10*time.Minute)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("cache.doctor_ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)

	v.SetDefault("admin.username", "admin")

	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.namespace", "healthapp")
}

// LoadConfig reads path if given, otherwise config.yaml from . or ./config. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var secrets Secrets
	if err := envconfig.Process(envPrefix, &secrets); err != nil {
		return nil, fmt.Errorf("failed to read secrets from environment: %w", err)
	}
	cfg.applySecrets(secrets)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applySecrets(s Secrets) {
	if s.JWTSecret != "" {
		c.JWT.Secret = s.JWTSecret
	}
	if s.DBPassword != "" {
		c.Database.Password = s.DBPassword
	}
	if s.RedisURL != "" {
		c.Redis.URL = s.RedisURL
	}
	if s.SMTPPassword != "" {
		c.SMTP.Password = s.SMTPPassword
	}
	if s.CalendarClientSecret != "" {
		c.Calendar.ClientSecret = s.CalendarClientSecret
	}
	if s.CalendarRefreshToken != "" {
		c.Calendar.RefreshToken = s.CalendarRefreshToken
	}
	if s.AdminPasswordHash != "" {
		c.Admin.PasswordHash = s.AdminPasswordHash
	}
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (set HEALTHAPP_JWT_SECRET)")
	}
	if c.JWT.ExpiryHours <= 0 {
		return errors.New("jwt.expiry_hours must be positive")
	}
	if c.Outbox.BatchSize <= 0 || c.Outbox.PollInterval <= 0 {
		return errors.New("outbox batch_size and poll_interval must be positive")
	}
	return nil
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}

func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}
