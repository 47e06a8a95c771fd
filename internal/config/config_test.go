package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, envMap(map[string]string{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "./data/bills.db", cfg.DSN())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadPrecedence(t *testing.T) {
	env := envMap(map[string]string{
		"JWT_SECRET":   "s3cret",
		"PORT":         "9000",
		"DB_DRIVER":    "POSTGRES",
		"DATABASE_URL": "postgres://localhost/bills",
		"TOKEN_TTL":    "1h",
	})
	cfg, err := Load([]string{"-port", "9100", "-log-format", "json"}, env)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port, "flag overrides env")
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/bills", cfg.DSN())
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing secret", map[string]string{}, nil},
		{"bad port", map[string]string{"JWT_SECRET": "x", "PORT": "abc"}, nil},
		{"bad ttl", map[string]string{"JWT_SECRET": "x", "TOKEN_TTL": "forever"}, nil},
		{"postgres without url", map[string]string{"JWT_SECRET": "x", "DB_DRIVER": "postgres"}, nil},
		{"unknown driver", map[string]string{"JWT_SECRET": "x", "DB_DRIVER": "mysql"}, nil},
		{"unknown flag", map[string]string{"JWT_SECRET": "x"}, []string{"-nope"}},
		{"bad log format", map[string]string{"JWT_SECRET": "x", "LOG_FORMAT": "xml"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, envMap(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BILLSPLITTER_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("BILLSPLITTER_TEST_KEY", "")
	os.Unsetenv("BILLSPLITTER_TEST_KEY")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("BILLSPLITTER_TEST_KEY"))
}
