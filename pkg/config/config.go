package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Store   StoreConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Name         string `envconfig:"KIARA_APP_NAME" default:"Kiara Fashion"`
	Env          string `envconfig:"KIARA_APP_ENV" default:"dev"`
	Port         string `envconfig:"KIARA_APP_PORT" default:"4173"`
	LogLevel     string `envconfig:"KIARA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KIARA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points the client at the remote storefront API.
type BackendConfig struct {
	BaseURL string        `envconfig:"KIARA_BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"KIARA_BACKEND_TIMEOUT" default:"15s"`
}

// APIRoot returns the normalized /api root of the backend.
func (b BackendConfig) APIRoot() string {
	return strings.TrimRight(b.BaseURL, "/") + "/api"
}

// StoreConfig selects and tunes the local persistence backend for cart
// partitions and the session record.
type StoreConfig struct {
	Driver     string `envconfig:"KIARA_STORE_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"KIARA_STORE_SQLITE_PATH" default:"storefront.db"`
}

func (s StoreConfig) validate() error {
	switch s.Driver {
	case StoreDriverSQLite, StoreDriverRedis:
		return nil
	}
	return fmt.Errorf("unknown store driver %q", s.Driver)
}

type RedisConfig struct {
	URL          string        `envconfig:"KIARA_REDIS_URL"`
	Address      string        `envconfig:"KIARA_REDIS_ADDR"`
	Password     string        `envconfig:"KIARA_REDIS_PASSWORD"`
	DB           int           `envconfig:"KIARA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KIARA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KIARA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KIARA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KIARA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KIARA_REDIS_WRITE_TIMEOUT" default:"5s"`
}
