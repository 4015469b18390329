package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OMEGA_APP_ENV" required:"true"`
	Port         string `envconfig:"OMEGA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"OMEGA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OMEGA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"OMEGA_DB_DSN"`

	Host     string `envconfig:"OMEGA_DB_HOST"`
	Port     int    `envconfig:"OMEGA_DB_PORT" default:"5432"`
	User     string `envconfig:"OMEGA_DB_USER"`
	Password string `envconfig:"OMEGA_DB_PASSWORD"`
	Name     string `envconfig:"OMEGA_DB_NAME"`
	SSLMode  string `envconfig:"OMEGA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OMEGA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OMEGA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OMEGA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OMEGA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either OMEGA_DB_DSN or OMEGA_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"OMEGA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"OMEGA_REDIS_ADDR"`
	Password     string        `envconfig:"OMEGA_REDIS_PASSWORD"`
	DB           int           `envconfig:"OMEGA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OMEGA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OMEGA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OMEGA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OMEGA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OMEGA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"OMEGA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"OMEGA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"OMEGA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"OMEGA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OMEGA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OMEGA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"OMEGA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"OMEGA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OMEGA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"OMEGA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"OMEGA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"OMEGA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OMEGA_AUTO_MIGRATE" default:"false"`
}
