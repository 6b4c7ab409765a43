// Package config reads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/markjakearzadon/vapecenter-gobackend/internal/storage"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port            string        `env:"PORT"             envDefault:"3000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	SiteDir string `env:"SITE_DIR" envDefault:"public"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	DataDir        string `env:"DATA_DIR"        envDefault:"data"`
	BadgerPath     string `env:"BADGER_PATH"     envDefault:"data/badger"`
	SQLitePath     string `env:"SQLITE_PATH"     envDefault:"data/vapecenter.db"`
	MongoURI       string `env:"MONGOURI"`
	MongoDatabase  string `env:"MONGO_DATABASE"  envDefault:"vapecenter"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the process environment into a Config and validates it.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom is Load over an explicit set of variables.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if !slices.Contains(storage.Kinds, c.StorageBackend) {
		return fmt.Errorf("STORAGE_BACKEND %q is not one of %v", c.StorageBackend, storage.Kinds)
	}
	if c.StorageBackend == storage.KindMongo && c.MongoURI == "" {
		return errors.New("MONGOURI environment variable not set")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT %q must be text or json", c.LogFormat)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// StorageOptions maps the config onto storage.Options. The mongo database
// handle is filled in by the caller after connecting.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Kind:       c.StorageBackend,
		DataDir:    c.DataDir,
		BadgerPath: c.BadgerPath,
		SQLitePath: c.SQLitePath,
	}
}
