package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mkd-neo4j/neo4j-cypher-extension/internal/casing"
)

// ErrMissingConfig is returned by Validate when a required setting is empty.
var ErrMissingConfig = errors.New("missing required configuration")

// Environment variable names.
const (
	EnvURI            = "NEO4J_URI"
	EnvUsername       = "NEO4J_USERNAME"
	EnvPassword       = "NEO4J_PASSWORD"
	EnvDatabase       = "NEO4J_DATABASE"
	EnvReadOnly       = "NEO4J_READ_ONLY"
	EnvPropertyCasing = "NEO4J_PROPERTY_CASING"
	EnvMappingsDir    = "NEO4J_MAPPINGS_DIR"
	EnvLogLevel       = "LOG_LEVEL"
)

// Config holds the server configuration.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
	// ReadOnly hides tools that write to the database.
	ReadOnly bool
	// PropertyCasing is applied to field names when deriving property keys.
	PropertyCasing casing.Policy
	// MappingsDir is an optional directory of mapping YAML files loaded in addition to the bundled ones.
	MappingsDir string
	LogLevel    slog.Level
}

// Load reads an optional .env file from the working directory, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		URI:         valueOr(getenv(EnvURI), "bolt://localhost:7687"),
		Username:    valueOr(getenv(EnvUsername), "neo4j"),
		Password:    getenv(EnvPassword),
		Database:    valueOr(getenv(EnvDatabase), "neo4j"),
		MappingsDir: getenv(EnvMappingsDir),
	}

	if raw := getenv(EnvReadOnly); raw != "" {
		readOnly, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvReadOnly, raw, err)
		}
		cfg.ReadOnly = readOnly
	}

	cfg.PropertyCasing = casing.CamelCase
	if raw := getenv(EnvPropertyCasing); raw != "" {
		policy, err := casing.ParsePolicy(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvPropertyCasing, err)
		}
		cfg.PropertyCasing = policy
	}

	if raw := getenv(EnvLogLevel); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvLogLevel, raw, err)
		}
	}

	return cfg, nil
}

// Validate checks the settings needed to connect.
func (c *Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("%w: %s", ErrMissingConfig, EnvURI)
	}
	if c.Username == "" {
		return fmt.Errorf("%w: %s", ErrMissingConfig, EnvUsername)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: %s", ErrMissingConfig, EnvPassword)
	}
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
