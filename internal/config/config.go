// Package config loads the planner's configuration from defaults, an
// optional config file, and environment variables, and builds the logger
// the rest of the process shares.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Session  SessionConfig  `mapstructure:"session"`
	Window   WindowConfig   `mapstructure:"window"`
}

type DatabaseConfig struct {
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

type LogConfig struct {
	Level      string         `mapstructure:"level"`
	File       string         `mapstructure:"file"`
	JSON       bool           `mapstructure:"json"`
	NoTerminal bool           `mapstructure:"no_terminal"`
	Rotation   RotationConfig `mapstructure:"rotation"`
}

type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Path:     "verdure.db",
			LogLevel: "warn",
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
			Rotation: RotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
			},
		},
		Session: SessionConfig{
			Path: ".verdure-session.json",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 960,
		},
	}
}

func setDefaults() {
	d := Default()

	viper.SetDefault("database.path", d.Database.Path)
	viper.SetDefault("database.log_level", d.Database.LogLevel)

	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.file", d.Log.File)
	viper.SetDefault("log.json", d.Log.JSON)
	viper.SetDefault("log.no_terminal", d.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", d.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", d.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", d.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", d.Log.Rotation.Compress)

	viper.SetDefault("session.path", d.Session.Path)

	viper.SetDefault("window.width", d.Window.Width)
	viper.SetDefault("window.height", d.Window.Height)
}

// Load reads the configuration. path may be empty, in which case only
// defaults and VERDURE_* environment variables apply.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("verdure")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the process logger: terminal output, optional rotated
// file output, or both.
func NewLogger(cfg LogConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var writers []io.Writer
	if !cfg.NoTerminal {
		writers = append(writers, os.Stdout)
	}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		})
	}
	switch len(writers) {
	case 0:
		log.SetOutput(io.Discard)
	case 1:
		log.SetOutput(writers[0])
	default:
		log.SetOutput(io.MultiWriter(writers...))
	}
	return log
}
