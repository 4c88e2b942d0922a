package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address   string `mapstructure:"address"`
	Port      int    `mapstructure:"port"`
	Mode      string `mapstructure:"mode"` // debug / release / test
	Templates string `mapstructure:"templates"`
	Static    string `mapstructure:"static"`
}

type StoreConfig struct {
	UsersFile    string `mapstructure:"users_file"`
	DatabasePath string `mapstructure:"database_path"`
	LogMode      bool   `mapstructure:"log_mode"`
}

type SessionConfig struct {
	Secret       string `mapstructure:"secret"`
	TimeoutHours int    `mapstructure:"timeout_hours"`
	CookieName   string `mapstructure:"cookie_name"`
}

// Timeout returns the session lifetime, defaulting to one hour.
func (s SessionConfig) Timeout() time.Duration {
	if s.TimeoutHours <= 0 {
		return time.Hour
	}
	return time.Duration(s.TimeoutHours) * time.Hour
}

type SecurityConfig struct {
	BcryptCost       int `mapstructure:"bcrypt_cost"`
	LockoutThreshold int `mapstructure:"lockout_threshold"`
	LockoutMinutes   int `mapstructure:"lockout_minutes"`
}

type LogConfig struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

type FeatureConfig struct {
	RegistrationEnabled bool `mapstructure:"registration_enabled"`
	APIEnabled          bool `mapstructure:"api_enabled"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	PageSize int    `mapstructure:"page_size"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Session  SessionConfig  `mapstructure:"session"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
	Features FeatureConfig  `mapstructure:"features"`
	App      AppConfig      `mapstructure:"app"`
}

// Load reads configuration from the given file path (e.g. "config.yaml").
// If path is empty it looks for config.yaml in the working directory.
// Every key can be overridden from the environment, e.g. VLAB_SESSION_SECRET
// or VLAB_FEATURES_REGISTRATION_ENABLED=true.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("VLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, env + defaults still apply
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.Session.Secret == "" {
		return nil, fmt.Errorf("session.secret is required (set VLAB_SESSION_SECRET)")
	}

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.templates", "web/templates/*.html")
	v.SetDefault("server.static", "web/static")

	v.SetDefault("store.users_file", "data/users.json")
	v.SetDefault("store.database_path", "data/cryptolab.db")
	v.SetDefault("store.log_mode", false)

	v.SetDefault("session.timeout_hours", 1)
	v.SetDefault("session.cookie_name", "vlab_session")

	v.SetDefault("security.bcrypt_cost", 12)
	v.SetDefault("security.lockout_threshold", 5)
	v.SetDefault("security.lockout_minutes", 15)

	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.level", "info")

	// optional features are off unless explicitly enabled
	v.SetDefault("features.registration_enabled", false)
	v.SetDefault("features.api_enabled", false)

	v.SetDefault("app.name", "Cryptography Virtual Lab")
	v.SetDefault("app.page_size", 20)
}
