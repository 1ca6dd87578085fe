package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Name  string `yaml:"name"`
		Env   string `yaml:"env"`
		Debug bool   `yaml:"debug"`
		Addr  string `yaml:"addr"`
	} `yaml:"app"`
	Database struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Auth struct {
		Enabled  bool          `yaml:"enabled"`
		Secret   string        `yaml:"secret"`
		TokenTTL time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "Task Manager API"
	cfg.App.Env = "development"
	cfg.App.Addr = ":8000"
	cfg.Database.Driver = "sqlite"
	cfg.Database.Name = "tasks.db"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Auth.TokenTTL = 24 * time.Hour
	return cfg
}

// Load reads .env (if any), then the YAML file at path (or CONFIG_FILE),
// then environment variables, each layer overriding the previous.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file (%s): %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.App.Name, "APP_NAME")
	setString(&c.App.Env, "APP_ENV")
	setString(&c.App.Addr, "HTTP_ADDR")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Auth.Secret, "JWT_SECRET")

	if err := setBool(&c.App.Debug, "APP_DEBUG"); err != nil {
		return err
	}
	if err := setBool(&c.Auth.Enabled, "AUTH_ENABLED"); err != nil {
		return err
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		c.Auth.TokenTTL = ttl
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use mysql, postgres or sqlite)", c.Database.Driver)
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return errors.New("AUTH_ENABLED requires JWT_SECRET")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// DSN returns Database.DSN when set, otherwise one built for the driver.
func (c *Config) DSN() string {
	d := c.Database
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case "mysql":
		port := d.Port
		if port == 0 {
			port = 3306
		}
		host := d.Host
		if host == "" {
			host = "127.0.0.1"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User, d.Password, host, port, d.Name)
	case "postgres":
		port := d.Port
		if port == 0 {
			port = 5432
		}
		host := d.Host
		if host == "" {
			host = "127.0.0.1"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			host, d.User, d.Password, d.Name, port)
	default:
		return d.Name + "?_foreign_keys=on"
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}
