package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	Prefix            string
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int // 0 disables the per-request deadline
	MaxBodyBytes      int64
	MaxInFlight       int64
	RatePerSec        float64
	RateBurst         int
	CORSOrigins       []string `mapstructure:"corsOrigins"`
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // empty keeps stdout only
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr        string `mapstructure:"addr"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	CacheTTLSec int    `mapstructure:"cacheTTLSec"`
}

func (r Redis) Enabled() bool { return strings.TrimSpace(r.Addr) != "" }

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Seed struct {
	OnStartup       bool
	TargetOrders    int
	DefaultPassword string
}

type Config struct {
	App   App
	Log   Log
	JWT   JWT
	DB    DB
	Redis Redis `mapstructure:"redis"`
	Seed  Seed
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "orders-management")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.prefix", "/api")
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 0)
	v.SetDefault("app.http.maxBodyBytes", 1<<20)
	v.SetDefault("app.http.maxInFlight", 300)
	v.SetDefault("app.http.ratePerSec", 200)
	v.SetDefault("app.http.rateBurst", 400)
	v.SetDefault("app.http.corsOrigins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSizeMB", 100)
	v.SetDefault("log.maxBackups", 5)
	v.SetDefault("log.maxAgeDays", 14)
	v.SetDefault("log.compress", true)

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.issuer", "orders-management")
	v.SetDefault("jwt.accessTokenTTLMin", 120)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:orders.db?_foreign_keys=1")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cacheTTLSec", 300)

	v.SetDefault("seed.onStartup", true)
	v.SetDefault("seed.targetOrders", 1000)
	v.SetDefault("seed.defaultPassword", "password")
}

// Load reads path (or CONFIG_PATH, or ./configs/config.local.yaml) and
// overlays APP_* environment variables, e.g. APP_DB_DSN. A missing file is
// not an error: defaults and environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func MustLoad(path string) *Config {
	c, err := Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}
