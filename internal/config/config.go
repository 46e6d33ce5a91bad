// Package config provides application configuration loading.
// Defaults live in a TOML file; store connection parameters may be
// overridden through environment variables for deployment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig holds the basic server settings.
type MainConfig struct {
	AppName     string `toml:"appName"`     // application name, used in logs
	Host        string `toml:"host"`        // listen address, e.g. "0.0.0.0"
	Port        int    `toml:"port"`        // listen port, e.g. 8000
	SslRedirect bool   `toml:"sslRedirect"` // redirect plain HTTP to HTTPS; off behind a TLS-terminating proxy
}

// MysqlConfig holds the MySQL connection settings.
// Environment overrides: CHORES_MYSQL_HOST, CHORES_MYSQL_PORT,
// CHORES_MYSQL_USER, CHORES_MYSQL_PASSWORD, CHORES_MYSQL_DATABASE.
type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

// RedisConfig holds the Redis connection settings.
// Environment overrides: CHORES_REDIS_HOST, CHORES_REDIS_PORT, CHORES_REDIS_PASSWORD.
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"` // empty when auth is disabled
	Db       int    `toml:"db"`
}

// LogConfig configures zap output and lumberjack rotation.
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // log directory
	FileName   string `toml:"fileName"`   // log file name
	MaxSize    int    `toml:"maxSize"`    // max size per file (MB)
	MaxBackups int    `toml:"maxBackups"` // max number of rotated files kept
	MaxAge     int    `toml:"maxAge"`     // max age of rotated files (days)
	Level      string `toml:"level"`      // debug, info, warn, error
}

// KafkaConfig configures the membership event broker.
// messageMode selects "channel" (in-process, default) or "kafka".
type KafkaConfig struct {
	MessageMode string        `toml:"messageMode"`
	HostPort    string        `toml:"hostPort"` // broker address, e.g. "localhost:9092"
	EventTopic  string        `toml:"eventTopic"`
	Timeout     time.Duration `toml:"timeout"`
}

// JWTConfig configures token signing.
type JWTConfig struct {
	Secret             string `toml:"secret"`             // signing key, 32+ chars recommended
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // access token lifetime (minutes)
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // refresh token lifetime (hours)
}

// Config aggregates all sub-configurations.
type Config struct {
	MainConfig  `toml:"mainConfig"`
	MysqlConfig `toml:"mysqlConfig"`
	RedisConfig `toml:"redisConfig"`
	LogConfig   `toml:"logConfig"`
	KafkaConfig `toml:"kafkaConfig"`
	JWTConfig   `toml:"jwtConfig"`
}

// config is the lazily loaded singleton.
var config *Config

// LoadConfig tries the candidate paths in order and loads the first
// readable configuration file, then applies environment overrides.
func LoadConfig() error {
	paths := []string{
		"configs/config_local.toml",       // local development override
		"configs/config.toml",             // defaults
		"../../configs/config_local.toml", // when run from a subdirectory
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			applyEnvOverrides(config)
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// applyEnvOverrides replaces store connection parameters with environment
// values when present, so deployments never need credentials on disk.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("CHORES_MYSQL_HOST"); v != "" {
		c.MysqlConfig.Host = v
	}
	if v := os.Getenv("CHORES_MYSQL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MysqlConfig.Port = port
		}
	}
	if v := os.Getenv("CHORES_MYSQL_USER"); v != "" {
		c.MysqlConfig.User = v
	}
	if v := os.Getenv("CHORES_MYSQL_PASSWORD"); v != "" {
		c.MysqlConfig.Password = v
	}
	if v := os.Getenv("CHORES_MYSQL_DATABASE"); v != "" {
		c.MysqlConfig.DatabaseName = v
	}
	if v := os.Getenv("CHORES_REDIS_HOST"); v != "" {
		c.RedisConfig.Host = v
	}
	if v := os.Getenv("CHORES_REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.RedisConfig.Port = port
		}
	}
	if v := os.Getenv("CHORES_REDIS_PASSWORD"); v != "" {
		c.RedisConfig.Password = v
	}
	if v := os.Getenv("CHORES_KAFKA_HOSTPORT"); v != "" {
		c.KafkaConfig.HostPort = v
	}
	if v := os.Getenv("CHORES_JWT_SECRET"); v != "" {
		c.JWTConfig.Secret = v
	}
}

// GetConfig returns the global configuration, loading it on first use.
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // fall back to zero values when no file is found
	}
	return config
}
