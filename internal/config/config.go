package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

// RemoteConfig points at the hosted Postgres backend. DSN stays empty
// when every domain runs locally.
type RemoteConfig struct {
	DSN string `mapstructure:"dsn"`
}

// BackendConfig selects "local" or "remote" per data domain. The
// choice is read once at startup and fixed for the process lifetime.
type BackendConfig struct {
	Auth         string `mapstructure:"auth"`
	Transactions string `mapstructure:"transactions"`
	Accounts     string `mapstructure:"accounts"`
	Commitments  string `mapstructure:"commitments"`
	Wishlist     string `mapstructure:"wishlist"`
	Debts        string `mapstructure:"debts"`
}

type AuthConfig struct {
	BcryptCost             int  `mapstructure:"bcrypt_cost"`
	SessionDays            int  `mapstructure:"session_days"`
	SingleDevice           bool `mapstructure:"single_device"`
	RevokeOnPasswordChange bool `mapstructure:"revoke_on_password_change"`
	CookieSecure           bool `mapstructure:"cookie_secure"`
	// CleanupMinutes is the interval of the expired-session sweeper;
	// 0 disables it.
	CleanupMinutes int `mapstructure:"cleanup_minutes"`
}

// SessionTTL returns the configured session duration.
func (a AuthConfig) SessionTTL() time.Duration {
	days := a.SessionDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

type SecurityConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

type SeedConfig struct {
	DemoUser bool `mapstructure:"demo_user"`
	Accounts bool `mapstructure:"accounts"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// Load loads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the current working
// directory. Environment variables with the PFT_ prefix override file
// values, e.g. PFT_SERVER_PORT=9000.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("PFT") // personal financial tracker
	v.AutomaticEnv()

	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", "data/tracker.sqlite")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.session_days", 7)
	v.SetDefault("auth.single_device", true)
	v.SetDefault("auth.revoke_on_password_change", true)
	v.SetDefault("auth.cleanup_minutes", 60)
	v.SetDefault("backup.dir", "data/backups")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
