package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the configuration file read when no path is given
const DefaultPath = "config.toml"

// MySQLConfig holds the server connection settings
type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

// SeedConfig holds optional generation settings. Zero values mean "use the
// command default".
type SeedConfig struct {
	Orders       int   `toml:"orders"`
	ShopSeed     int64 `toml:"shop_seed"`
	Seed         int64 `toml:"seed"`
	BatchSize    int   `toml:"batch_size"`
	ExtraClients int   `toml:"extra_clients"`
}

// Config is the content of config.toml
type Config struct {
	MySQL MySQLConfig `toml:"mysql"`
	Seed  SeedConfig  `toml:"seed"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		MySQL: MySQLConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Database: "BD",
		},
	}
}

// Load reads and validates a TOML configuration file
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, err
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if !md.IsDefined("mysql") {
		return nil, fmt.Errorf("missing [mysql] section in %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.MySQL.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (m *MySQLConfig) normalize() {
	m.Host = strings.TrimSpace(m.Host)
	m.User = strings.TrimSpace(m.User)
	m.Database = strings.TrimSpace(m.Database)
	// a whitespace-only password counts as no password
	if strings.TrimSpace(m.Password) == "" {
		m.Password = ""
	}
}

// Validate checks required values
func (c *Config) Validate() error {
	if err := c.MySQL.Validate(); err != nil {
		return err
	}
	if c.Seed.Orders < 0 {
		return fmt.Errorf("seed.orders must be >= 0")
	}
	if c.Seed.BatchSize < 0 {
		return fmt.Errorf("seed.batch_size must be >= 0")
	}
	if c.Seed.ExtraClients < 0 {
		return fmt.Errorf("seed.extra_clients must be >= 0")
	}
	return nil
}

// Validate checks the connection settings
func (m *MySQLConfig) Validate() error {
	if m.Host == "" {
		return fmt.Errorf("mysql.host must be a non-empty string")
	}
	if m.Port <= 0 {
		return fmt.Errorf("mysql.port must be a positive integer")
	}
	if m.User == "" {
		return fmt.Errorf("mysql.user must be a non-empty string")
	}
	if m.Database == "" {
		return fmt.Errorf("mysql.database must be a non-empty string")
	}
	return nil
}

// ApplyEnv overrides connection settings with MYSQL_* environment variables
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("MYSQL_HOST"); ok && v != "" {
		c.MySQL.Host = v
	}
	if v, ok := os.LookupEnv("MYSQL_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MYSQL_PORT must be an integer, got %q", v)
		}
		c.MySQL.Port = port
	}
	if v, ok := os.LookupEnv("MYSQL_USER"); ok && v != "" {
		c.MySQL.User = v
	}
	if v, ok := os.LookupEnv("MYSQL_PASSWORD"); ok {
		c.MySQL.Password = v
	}
	if v, ok := os.LookupEnv("MYSQL_DATABASE"); ok && v != "" {
		c.MySQL.Database = v
	}
	c.MySQL.normalize()
	return c.Validate()
}
