package salesingest_test

import (
	"errors"
	"testing"

	"github.com/retailops/salesingest/pkg/salesingest"
)

func validConfig() *salesingest.Config {
	return &salesingest.Config{
		Storage: salesingest.StorageConfig{
			Endpoint: "localhost:9000",
		},
		Database: salesingest.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "sales",
		},
		Bucket:    "folder-source",
		ObjectKey: "fashion_store_sales.csv",
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Expected valid config, got: %v", err)
	}
}

func TestConfig_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*salesingest.Config)
	}{
		{"missing storage endpoint", func(c *salesingest.Config) { c.Storage.Endpoint = "" }},
		{"missing database host", func(c *salesingest.Config) { c.Database.Host = "" }},
		{"zero port", func(c *salesingest.Config) { c.Database.Port = 0 }},
		{"port out of range", func(c *salesingest.Config) { c.Database.Port = 70000 }},
		{"missing database name", func(c *salesingest.Config) { c.Database.Database = "" }},
		{"missing bucket", func(c *salesingest.Config) { c.Bucket = "" }},
		{"missing object key", func(c *salesingest.Config) { c.ObjectKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, salesingest.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestRowSet_Len(t *testing.T) {
	var nilSet *salesingest.RowSet
	if nilSet.Len() != 0 {
		t.Error("Nil set should have length 0")
	}

	set := &salesingest.RowSet{Rows: make([]salesingest.Row, 3)}
	if set.Len() != 3 {
		t.Errorf("Expected length 3, got %d", set.Len())
	}
}
