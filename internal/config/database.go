package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const defaultQueryTimeout = 5

// ErrNoDBConfig is returned by LoadDBConfig when the config file does not exist.
var ErrNoDBConfig = errors.New("database config not found")

// DBConfig holds the user store connection parameters.
type DBConfig struct {
	// Driver is either "mysql" or "postgres".
	Driver string `json:"driver"`
	// Host is the database server host.
	Host string `json:"db_ip"`
	// Port is the database server port.
	Port int `json:"db_port"`
	// User and Password authenticate the connection.
	User     string `json:"db_user_name"`
	Password string `json:"db_pwd"`
	// Name is the database name.
	Name string `json:"db_name"`
	// PoolSize bounds the number of open connections.
	PoolSize int `json:"db_conn_num"`
	// ConnectTimeout is in seconds.
	ConnectTimeout int `json:"db_conn_timeout"`
	// QueryTimeout is in seconds and bounds a single insert.
	QueryTimeout int `json:"query_timeout"`
}

// LoadDBConfig reads and validates the database config at path.
// A missing file yields ErrNoDBConfig.
func LoadDBConfig(path string) (*DBConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoDBConfig
		}
		return nil, fmt.Errorf("read db config: %w", err)
	}

	cfg := &DBConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *DBConfig) normalize() error {
	switch c.Driver {
	case "":
		c.Driver = DriverMySQL
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", c.Driver)
	}
	if c.Host == "" || c.Name == "" {
		return errors.New("db config requires db_ip and db_name")
	}
	if c.Port == 0 {
		if c.Driver == DriverPostgres {
			c.Port = 5432
		} else {
			c.Port = 3306
		}
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 1
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = defaultQueryTimeout
	}
	return nil
}

// ConnectTimeoutDuration returns ConnectTimeout as a duration.
func (c *DBConfig) ConnectTimeoutDuration() time.Duration {
	return time.Duration(c.ConnectTimeout) * time.Second
}

// QueryTimeoutDuration returns QueryTimeout as a duration.
func (c *DBConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(c.QueryTimeout) * time.Second
}
