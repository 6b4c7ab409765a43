package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "vapecenter", cfg.MongoDatabase)
	assert.Equal(t, "public", cfg.SiteDir)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":            "8080",
		"STORAGE_BACKEND": "sqlite",
		"SQLITE_PATH":     "/tmp/site.db",
		"WRITE_TIMEOUT":   "30s",
		"LOG_FORMAT":      "json",
	})
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)

	opts := cfg.StorageOptions()
	assert.Equal(t, "sqlite", opts.Kind)
	assert.Equal(t, "/tmp/site.db", opts.SQLitePath)
	assert.Nil(t, opts.MongoDatabase)
}

func TestLoadFromProcessEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "file", cfg.StorageBackend)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadFrom(map[string]string{"READ_TIMEOUT": "soon"})
	assert.ErrorContains(t, err, "parse env")

	_, err = LoadFrom(map[string]string{"STORAGE_BACKEND": "mongo"})
	assert.ErrorContains(t, err, "MONGOURI")
}

func TestValidate(t *testing.T) {
	valid := Config{Port: "3000", StorageBackend: "memory", LogFormat: "text"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty port", func(c *Config) { c.Port = "" }, "PORT"},
		{"unknown backend", func(c *Config) { c.StorageBackend = "redis" }, `STORAGE_BACKEND "redis"`},
		{"mongo without uri", func(c *Config) { c.StorageBackend = "mongo" }, "MONGOURI"},
		{"mongo with uri", func(c *Config) { c.StorageBackend = "mongo"; c.MongoURI = "mongodb://localhost" }, ""},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
