// Package config loads the TOML application configuration.
// The file is looked up in several candidate paths so the binary can be
// started from the repo root or from cmd/harmony-chat.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig holds the basic application settings.
type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Mode    string `toml:"mode"` // "dev" or "release"
}

// MysqlConfig holds the MySQL connection settings.
type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	Db       int    `toml:"db"`
}

// LogConfig configures zap output and lumberjack rotation.
type LogConfig struct {
	LogPath    string `toml:"logPath"`
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"` // MB
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"` // days
	Level      string `toml:"level"`
}

// KafkaConfig configures the optional cross-instance event relay.
// messageMode "channel" keeps all push routing in-process; "kafka"
// additionally replicates push events through the given topic.
type KafkaConfig struct {
	MessageMode string        `toml:"messageMode"`
	HostPort    string        `toml:"hostPort"`
	EventTopic  string        `toml:"eventTopic"`
	Partition   int           `toml:"partition"`
	Timeout     time.Duration `toml:"timeout"`
}

// StaticSrcConfig holds paths for served avatars and attachments.
type StaticSrcConfig struct {
	StaticAvatarPath string `toml:"staticAvatarPath"`
	StaticFilePath   string `toml:"staticFilePath"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret             string `toml:"secret"`
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // minutes
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // hours
}

// SnowflakeConfig holds the node id for message id generation.
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 0-1023, unique per instance
}

// Config aggregates all sections.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	StaticSrcConfig `toml:"staticSrcConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
}

var config *Config

// LoadConfig tries the candidate paths in order and stops at the first
// readable file.
func LoadConfig() error {
	if config == nil {
		config = new(Config)
	}
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig returns the singleton configuration, loading it on first use.
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // missing file leaves zero values, caught at startup
	}
	return config
}
