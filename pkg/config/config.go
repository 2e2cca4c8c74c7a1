package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Admin        AdminConfig
	Orders       OrdersConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	Maintenance  MaintenanceConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.App.Location(); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvTimeZone, err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AURAWAVE_APP_ENV" required:"true"`
	Port         string `envconfig:"AURAWAVE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AURAWAVE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AURAWAVE_LOG_WARN_STACK" default:"false"`
	TimeZone     string `envconfig:"AURAWAVE_TIME_ZONE" default:"Asia/Karachi"`
	CORSOrigins  string `envconfig:"AURAWAVE_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "development")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

// Location resolves the zone used to bucket orders by calendar day.
func (a AppConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(a.TimeZone)
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// AllowedOrigins splits the comma separated CORS origin list.
func (a AppConfig) AllowedOrigins() []string {
	origins := []string{}
	for _, origin := range strings.Split(a.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

type ServiceConfig struct {
	Kind string `envconfig:"AURAWAVE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"AURAWAVE_DB_DSN"`
	Driver string `envconfig:"AURAWAVE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"AURAWAVE_DB_HOST"`
	Port     int    `envconfig:"AURAWAVE_DB_PORT" default:"5432"`
	User     string `envconfig:"AURAWAVE_DB_USER"`
	Password string `envconfig:"AURAWAVE_DB_PASSWORD"`
	Name     string `envconfig:"AURAWAVE_DB_NAME"`
	SSLMode  string `envconfig:"AURAWAVE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AURAWAVE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AURAWAVE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AURAWAVE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AURAWAVE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AURAWAVE_REDIS_URL"`
	Address      string        `envconfig:"AURAWAVE_REDIS_ADDR"`
	Password     string        `envconfig:"AURAWAVE_REDIS_PASSWORD"`
	DB           int           `envconfig:"AURAWAVE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AURAWAVE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AURAWAVE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AURAWAVE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AURAWAVE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AURAWAVE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AURAWAVE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AURAWAVE_JWT_ISSUER" default:"aura-wave"`
	ExpirationMinutes int    `envconfig:"AURAWAVE_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AURAWAVE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AURAWAVE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AURAWAVE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AURAWAVE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AURAWAVE_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig holds the single dashboard account. The password is hashed at
// boot and never kept in plain text past startup.
type AdminConfig struct {
	Email    string `envconfig:"AURAWAVE_ADMIN_EMAIL" required:"true"`
	Password string `envconfig:"AURAWAVE_ADMIN_PASSWORD" required:"true"`
}

type OrdersConfig struct {
	IDBase           int64         `envconfig:"AURAWAVE_ORDER_ID_BASE" default:"2280001"`
	IDPrefix         string        `envconfig:"AURAWAVE_ORDER_ID_PREFIX" default:"228"`
	ListLimit        int           `envconfig:"AURAWAVE_ORDERS_LIMIT" default:"50"`
	LoadMoreCooldown time.Duration `envconfig:"AURAWAVE_ORDERS_LOAD_MORE_COOLDOWN" default:"5m"`
	ClientSessionTTL time.Duration `envconfig:"AURAWAVE_CLIENT_SESSION_TTL" default:"2h"`
	IdempotencyTTL   time.Duration `envconfig:"AURAWAVE_ORDER_IDEMPOTENCY_TTL" default:"24h"`
}

type RateLimitConfig struct {
	SubmitWindow  time.Duration `envconfig:"AURAWAVE_RATE_LIMIT_SUBMIT_WINDOW" default:"1m"`
	SubmitIPLimit int           `envconfig:"AURAWAVE_RATE_LIMIT_SUBMIT_IP_LIMIT" default:"10"`
	LoginWindow   time.Duration `envconfig:"AURAWAVE_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit  int           `envconfig:"AURAWAVE_RATE_LIMIT_LOGIN_IP_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AURAWAVE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"AURAWAVE_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	DomainTopic string `envconfig:"AURAWAVE_PUBSUB_DOMAIN_TOPIC" default:"aura-wave-domain-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"AURAWAVE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"AURAWAVE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"AURAWAVE_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// MaintenanceConfig drives the cron worker.
type MaintenanceConfig struct {
	Interval            time.Duration `envconfig:"AURAWAVE_MAINTENANCE_INTERVAL" default:"1h"`
	OutboxRetentionDays int           `envconfig:"AURAWAVE_OUTBOX_RETENTION_DAYS" default:"30"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbPartEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
