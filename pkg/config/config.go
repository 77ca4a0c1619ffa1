package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Elevation    ElevationConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DUKAPOS_APP_ENV" default:"dev"`
	Port         string `envconfig:"DUKAPOS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DUKAPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DUKAPOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DUKAPOS_DB_DSN" required:"true"`
	Driver string `envconfig:"DUKAPOS_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"DUKAPOS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DUKAPOS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DUKAPOS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DUKAPOS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DUKAPOS_REDIS_URL"`
	Address      string        `envconfig:"DUKAPOS_REDIS_ADDR"`
	Password     string        `envconfig:"DUKAPOS_REDIS_PASSWORD"`
	DB           int           `envconfig:"DUKAPOS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DUKAPOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DUKAPOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DUKAPOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DUKAPOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DUKAPOS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DUKAPOS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DUKAPOS_JWT_ISSUER" default:"dukapos"`
	ExpirationMinutes int    `envconfig:"DUKAPOS_JWT_EXPIRATION_MINUTES" default:"480"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DUKAPOS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DUKAPOS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DUKAPOS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DUKAPOS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DUKAPOS_ARGON_KEY_LEN" default:"32"`
}

type ElevationConfig struct {
	TTL time.Duration `envconfig:"DUKAPOS_ELEVATION_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DUKAPOS_AUTO_MIGRATE" default:"true"`
	SeedDemo    bool `envconfig:"DUKAPOS_SEED_DEMO" default:"true"`
}
