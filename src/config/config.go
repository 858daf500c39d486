package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
}

type ServiceConfig struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"logLevel"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type ExternalClientConfig struct {
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
}

type CoinGeckoConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
}

type AuthConfig struct {
	Secret             string `mapstructure:"secret"`
	TokenLifetimeHours int    `mapstructure:"tokenLifetimeHours"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	// Secrets never live in the settings file
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Databases.SQL.ConnectionString = dsn
	}
	return &cfg, nil
}
