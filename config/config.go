package config

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type BackendConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
	PortLookupTTLMsec int64  `mapstructure:"port_lookup_ttl_msec"`
}

type PollingConfig struct {
	IntervalMsec             int64 `mapstructure:"interval_msec"`
	SettleDelayMsec          int64 `mapstructure:"settle_delay_msec"`
	ContainerSettleDelayMsec int64 `mapstructure:"container_settle_delay_msec"`
}

type FavoritesConfig struct {
	Path string `mapstructure:"path"`
}

type KeyConfig struct {
	JWTSecret              string `mapstructure:"jwt_secret"`
	OperatorPasswordBcrypt string `mapstructure:"operator_password_bcrypt"`
	TokenTTLHours          int    `mapstructure:"token_ttl_hours"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Polling   PollingConfig   `mapstructure:"polling"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	Key       KeyConfig       `mapstructure:"key"`
}

func InitConfig(configName string, configPath string) (Config, error) {
	var cfg Config
	if configPath != "" {
		viper.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "portwarden"
	}
	viper.AddConfigPath(GetAbsPath("config"))
	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("PORTWARDEN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("polling.interval_msec", 3000)
	viper.SetDefault("polling.settle_delay_msec", 500)
	viper.SetDefault("polling.container_settle_delay_msec", 1500)
	viper.SetDefault("backend.request_timeout_sec", 15)
	viper.SetDefault("backend.port_lookup_ttl_msec", 2000)
	viper.SetDefault("key.token_ttl_hours", 3)

	err := viper.ReadInConfig()
	if err != nil {
		return cfg, err
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// GetAbsPath returns the absolute path by joining the given paths with the project root directory
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(1)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}
