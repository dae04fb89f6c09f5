package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	SecretKey          string   `mapstructure:"secret_key"`
	AdminPassword      string   `mapstructure:"admin_password"`
	TemplatesGlob      string   `mapstructure:"templates_glob"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info(fmt.Sprintf("config file changed: %v", e.Name))
	})

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	conf.loadEnvOverrides()

	return conf, nil
}

// loadEnvOverrides applies deployment overrides. The secret key default in
// config.yml is only suitable for local development and must be replaced via
// SECRET_KEY in any real deployment.
func (c *AppConfig) loadEnvOverrides() {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.API.SecretKey = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.API.AdminPassword = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.API.Port = v
	}
}
