package config

import (
	"strings"

	"github.com/rowjay/link-batch-shortener/internal/constants"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Port               string
	BaseURL            string
	Environment        string
	LogLevel           string
	LogFile            string
	CORSAllowedOrigins []string

	ShortCodeLength         int
	MaxRetries              int
	EnforceUniqueShortcodes bool

	StorageDriver string
	StoragePath   string
	StorageKey    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	return load(v)
}

func load(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", "8080")
	v.SetDefault("app_env", "production")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_allowed_origins", []string{"*"})
	v.SetDefault("short_code_length", constants.DefaultShortCodeLength)
	v.SetDefault("max_retries", constants.MaxRetries)
	v.SetDefault("enforce_unique_shortcodes", false)
	v.SetDefault("storage_driver", constants.DriverFile)
	v.SetDefault("storage_path", "data/links.json")
	v.SetDefault("storage_key", constants.StorageKey)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)

	if err := v.ReadInConfig(); err != nil {
		log.Info().Err(err).Msg("Error reading config file, using defaults")
	}

	corsAllowedOrigins := v.GetStringSlice("cors_allowed_origins")
	if len(corsAllowedOrigins) == 1 && strings.Contains(corsAllowedOrigins[0], ",") {
		corsAllowedOrigins = strings.Split(corsAllowedOrigins[0], ",")
	}
	if len(corsAllowedOrigins) == 0 {
		corsAllowedOrigins = []string{"*"}
	}

	return &Config{
		Port:                    v.GetString("port"),
		BaseURL:                 strings.TrimRight(v.GetString("base_url"), "/"),
		Environment:             v.GetString("app_env"),
		LogLevel:                v.GetString("log_level"),
		LogFile:                 v.GetString("log_file"),
		CORSAllowedOrigins:      corsAllowedOrigins,
		ShortCodeLength:         v.GetInt("short_code_length"),
		MaxRetries:              v.GetInt("max_retries"),
		EnforceUniqueShortcodes: v.GetBool("enforce_unique_shortcodes"),
		StorageDriver:           strings.ToLower(v.GetString("storage_driver")),
		StoragePath:             v.GetString("storage_path"),
		StorageKey:              v.GetString("storage_key"),
		RedisAddr:               v.GetString("redis_addr"),
		RedisPassword:           v.GetString("redis_password"),
		RedisDB:                 v.GetInt("redis_db"),
	}
}
