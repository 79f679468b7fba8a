package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type GeminiConfig struct {
	APIKey        string `mapstructure:"api_key"`
	ChatModel     string `mapstructure:"chat_model"`
	AnalysisModel string `mapstructure:"analysis_model"`
}

type CatalogConfig struct {
	Dir string `mapstructure:"dir"`
}

type SessionsConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

type UploadsConfig struct {
	TmpDir string `mapstructure:"tmp_dir"`
}

type LoggingConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	File   string        `mapstructure:"file"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.request_timeout", "90s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Gemini
	v.SetDefault("gemini.chat_model", "gemini-1.5-flash-8b")
	v.SetDefault("gemini.analysis_model", "gemini-1.5-flash-8b")

	// Catalog
	v.SetDefault("catalog.dir", "./database")

	// Sessions
	v.SetDefault("sessions.max_entries", 1000)

	// Uploads
	v.SetDefault("uploads.tmp_dir", "")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_age", "168h") // 7 days
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("gemini.chat_model", "GEMINI_CHAT_MODEL")
	v.BindEnv("gemini.analysis_model", "GEMINI_ANALYSIS_MODEL")
	v.BindEnv("catalog.dir", "CATALOG_DIR")
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.file", "LOG_FILE")
}
