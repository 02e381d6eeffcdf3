// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Redemption guard backends.
const (
	GuardMemory   = "memory"
	GuardPostgres = "postgres"
	GuardRedis    = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Recovery RecoveryConfig `mapstructure:"recovery"`
	Game     GameConfig     `mapstructure:"game"`
	Settle   SettleConfig   `mapstructure:"settle"`
	Accounts AccountsConfig `mapstructure:"accounts"`
	Promo    PromoConfig    `mapstructure:"promo"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP listener configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig selects the account store and transaction log backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RecoveryConfig holds the owed-settlement journal configuration.
type RecoveryConfig struct {
	Path           string        `mapstructure:"path"`
	ReplayInterval time.Duration `mapstructure:"replay_interval"`
}

// GameConfig holds outcome engine configuration.
type GameConfig struct {
	// WinLaw is "direct" (luck/100) or "house_edge" (clamped RTP curve).
	WinLaw string `mapstructure:"win_law"`
	// MaxBet caps a single wager; 0 disables the cap.
	MaxBet int64 `mapstructure:"max_bet"`
}

// SettleConfig bounds the credit and log retry after a debit.
type SettleConfig struct {
	MaxRetries      uint64        `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	LockTimeout     time.Duration `mapstructure:"lock_timeout"`
}

// AccountsConfig holds account lifecycle configuration.
type AccountsConfig struct {
	DefaultLuck  int   `mapstructure:"default_luck"`
	WelcomeBonus int64 `mapstructure:"welcome_bonus"`
}

// PromoConfig holds promo redemption configuration.
type PromoConfig struct {
	Guard string      `mapstructure:"guard"`
	Codes []PromoSeed `mapstructure:"codes"`
}

// PromoSeed is a promo code loaded into the catalog at startup.
type PromoSeed struct {
	Code   string `mapstructure:"code"`
	Reward int64  `mapstructure:"reward"`
	Uses   int    `mapstructure:"uses"`
	Active bool   `mapstructure:"active"`
}

// AdminConfig holds the administrative API credential.
type AdminConfig struct {
	Token string `mapstructure:"token"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in configPath, the working directory and ./config.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// e.g. DATABASE_HOST, STORAGE_DRIVER, ADMIN_TOKEN
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Claims live where balances live unless configured otherwise
	if cfg.Promo.Guard == "" {
		cfg.Promo.Guard = cfg.Storage.Driver
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Promo.Guard {
	case GuardMemory, GuardPostgres, GuardRedis:
	default:
		return fmt.Errorf("unknown promo guard %q", c.Promo.Guard)
	}
	if c.Promo.Guard == GuardPostgres && c.Storage.Driver != DriverPostgres {
		return fmt.Errorf("promo guard %q requires the postgres storage driver", c.Promo.Guard)
	}
	// A memory guard forgets its claims on restart while postgres balances persist
	if c.Promo.Guard == GuardMemory && c.Storage.Driver == DriverPostgres {
		return fmt.Errorf("promo guard %q cannot be used with the postgres storage driver", c.Promo.Guard)
	}
	if c.Recovery.ReplayInterval <= 0 {
		return fmt.Errorf("recovery.replay_interval must be positive, got %s", c.Recovery.ReplayInterval)
	}
	if c.Accounts.DefaultLuck < 0 || c.Accounts.DefaultLuck > 100 {
		return fmt.Errorf("accounts.default_luck must be within [0, 100], got %d", c.Accounts.DefaultLuck)
	}
	if c.Accounts.WelcomeBonus < 0 {
		return fmt.Errorf("accounts.welcome_bonus must not be negative")
	}
	if c.Settle.LockTimeout < 0 {
		return fmt.Errorf("settle.lock_timeout must not be negative")
	}
	if c.Game.MaxBet < 0 {
		return fmt.Errorf("game.max_bet must not be negative")
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")

	v.SetDefault("storage.driver", DriverMemory)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "casino")
	v.SetDefault("database.name", "casino")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("recovery.path", "data/recovery.db")
	v.SetDefault("recovery.replay_interval", "1m")

	v.SetDefault("game.win_law", "direct")
	v.SetDefault("game.max_bet", 0)

	v.SetDefault("settle.max_retries", 5)
	v.SetDefault("settle.initial_interval", "50ms")
	v.SetDefault("settle.max_interval", "2s")
	v.SetDefault("settle.lock_timeout", "5s")

	v.SetDefault("accounts.default_luck", 50)
	v.SetDefault("accounts.welcome_bonus", 0)

	v.SetDefault("promo.guard", "")
	v.SetDefault("promo.codes", []map[string]any{
		{"code": "BONUS2025", "reward": 1000, "uses": -1, "active": true},
	})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}
