package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Storage: DB_DSN > SQLITE_PATH > DATA_FILE > memoria.
	DBDSN      string `mapstructure:"DB_DSN"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
	DataFile   string `mapstructure:"DATA_FILE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Vacío = sin verifier (modo dev con X-Debug-User-ID).
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Vacío = recordatorios desactivados.
	NotifyWebhookURL     string        `mapstructure:"NOTIFY_WEBHOOK_URL"`
	NotifyWebhookTimeout time.Duration `mapstructure:"NOTIFY_WEBHOOK_TIMEOUT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("NOTIFY_WEBHOOK_TIMEOUT", 10*time.Second)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DB_DSN")
	v.BindEnv("SQLITE_PATH")
	v.BindEnv("DATA_FILE")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("LOG_FORMAT")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("NOTIFY_WEBHOOK_URL")
	v.BindEnv("NOTIFY_WEBHOOK_TIMEOUT")

	// Respeta .env si existe, sin exigirlo
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
