// Package config assembles the explicit salesingest.Config the core
// consumes. Sources are layered: built-in defaults, then an optional
// salesingest.yaml, then environment variables. The core itself never reads
// process-wide state.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/retailops/salesingest/pkg/salesingest"
)

// ConfigFileName is the default configuration file looked up in the working
// directory when no --config flag is given.
const ConfigFileName = "salesingest.yaml"

// defaultStoragePort is the MinIO API port assumed when MINIO_HOST names a
// bare host and MINIO_PORT is unset.
const defaultStoragePort = "9000"

// Environment variable names, matching the reference deployment's compose
// environment so the same .env works for both.
const (
	// MINIO_HOST carries the host only in the compose environment; the
	// default API port applies unless MINIO_PORT overrides it. A host:port
	// value also works and wins outright.
	envStorageEndpoint  = "MINIO_HOST"
	envStoragePort      = "MINIO_PORT"
	envStorageAccessKey = "MINIO_ACCESS_KEY"
	envStorageSecretKey = "MINIO_SECRET_KEY"
	envStorageUseSSL    = "MINIO_USE_SSL"
	envDatabaseHost     = "POSTGRES_HOST"
	envDatabasePort     = "POSTGRES_PORT"
	envDatabaseUser     = "POSTGRES_USER"
	envDatabasePassword = "POSTGRES_PASSWORD"
	envDatabaseName     = "POSTGRES_DB"
	envBucket           = "SALES_BUCKET"
	envObjectKey        = "SALES_OBJECT_KEY"
)

// Default returns the built-in configuration, pointing at a local stack.
func Default() *salesingest.Config {
	return &salesingest.Config{
		Storage: salesingest.StorageConfig{
			Endpoint: "localhost:9000",
		},
		Database: salesingest.DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "prefer",
		},
		Bucket:    salesingest.DefaultBucket,
		ObjectKey: salesingest.DefaultObjectKey,
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// ConfigFileName in the working directory when path is empty), and
// environment overrides, then validates it.
//
// A missing file is only an error when the caller named it explicitly;
// the default file is optional.
func Load(path string) (*salesingest.Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", salesingest.ErrInvalidConfig, path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if explicit {
			return nil, fmt.Errorf("%w: config file %q not found", salesingest.ErrInvalidConfig, path)
		}
	default:
		return nil, fmt.Errorf("%w: reading %s: %v", salesingest.ErrInvalidConfig, path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *salesingest.Config) error {
	if v := os.Getenv(envStorageEndpoint); v != "" {
		if strings.Contains(v, ":") {
			cfg.Storage.Endpoint = v
		} else {
			cfg.Storage.Endpoint = net.JoinHostPort(v, defaultStoragePort)
		}
	}
	if v := os.Getenv(envStoragePort); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("%w: %s=%q is not a port number", salesingest.ErrInvalidConfig, envStoragePort, v)
		}
		host := cfg.Storage.Endpoint
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		cfg.Storage.Endpoint = net.JoinHostPort(host, v)
	}
	setString(envStorageAccessKey, &cfg.Storage.AccessKey)
	setString(envStorageSecretKey, &cfg.Storage.SecretKey)
	setString(envDatabaseHost, &cfg.Database.Host)
	setString(envDatabaseUser, &cfg.Database.Username)
	setString(envDatabasePassword, &cfg.Database.Password)
	setString(envDatabaseName, &cfg.Database.Database)
	setString(envBucket, &cfg.Bucket)
	setString(envObjectKey, &cfg.ObjectKey)

	if v := os.Getenv(envStorageUseSSL); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", salesingest.ErrInvalidConfig, envStorageUseSSL, v)
		}
		cfg.Storage.UseSSL = useSSL
	}

	if v := os.Getenv(envDatabasePort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a port number", salesingest.ErrInvalidConfig, envDatabasePort, v)
		}
		cfg.Database.Port = port
	}

	return nil
}

func setString(env string, dst *string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
