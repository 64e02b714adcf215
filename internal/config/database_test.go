package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db_config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDBConfig_Missing(t *testing.T) {
	_, err := LoadDBConfig(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrNoDBConfig) {
		t.Fatalf("err = %v; want ErrNoDBConfig", err)
	}
}

func TestLoadDBConfig_Defaults(t *testing.T) {
	path := writeFile(t, `{"db_ip":"127.0.0.1","db_user_name":"root","db_pwd":"pw","db_name":"purecpp","db_conn_timeout":3}`)

	cfg, err := LoadDBConfig(path)
	if err != nil {
		t.Fatalf("LoadDBConfig: %v", err)
	}
	if cfg.Driver != DriverMySQL {
		t.Errorf("Driver = %q; want %q", cfg.Driver, DriverMySQL)
	}
	if cfg.Port != 3306 {
		t.Errorf("Port = %d; want 3306", cfg.Port)
	}
	if cfg.PoolSize != 1 {
		t.Errorf("PoolSize = %d; want 1", cfg.PoolSize)
	}
	if cfg.ConnectTimeoutDuration() != 3*time.Second {
		t.Errorf("ConnectTimeout = %v; want 3s", cfg.ConnectTimeoutDuration())
	}
	if cfg.QueryTimeoutDuration() != 5*time.Second {
		t.Errorf("QueryTimeout = %v; want 5s", cfg.QueryTimeoutDuration())
	}
}

func TestLoadDBConfig_Postgres(t *testing.T) {
	path := writeFile(t, `{"driver":"postgres","db_ip":"db","db_name":"feather","db_conn_num":8}`)

	cfg, err := LoadDBConfig(path)
	if err != nil {
		t.Fatalf("LoadDBConfig: %v", err)
	}
	if cfg.Port != 5432 {
		t.Errorf("Port = %d; want 5432", cfg.Port)
	}
	if cfg.PoolSize != 8 {
		t.Errorf("PoolSize = %d; want 8", cfg.PoolSize)
	}
}

func TestLoadDBConfig_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad json", `{`},
		{"unknown driver", `{"driver":"oracle","db_ip":"h","db_name":"n"}`},
		{"no host", `{"db_name":"n"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadDBConfig(writeFile(t, tc.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if errors.Is(err, ErrNoDBConfig) {
				t.Fatal("invalid config must not be reported as missing")
			}
		})
	}
}

func TestOptions_TLSEnabled(t *testing.T) {
	if (&Options{TLSCert: "c"}).TLSEnabled() {
		t.Error("TLS must require both cert and key")
	}
	if !(&Options{TLSCert: "c", TLSKey: "k"}).TLSEnabled() {
		t.Error("TLS expected to be enabled")
	}
}
