package salesingest

import "fmt"

// Row is one raw sale line item from the source CSV. It exists only within a
// pipeline run (or inside the serialized hand-off between the extract and
// load tasks). JSON tags mirror the source column names so the hand-off
// preserves field names exactly.
type Row struct {
	ItemID     string `json:"item_id"`
	SaleID     string `json:"sale_id"`
	SaleDate   Date   `json:"sale_date"`
	CustomerID string `json:"customer_id"`

	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Gender     string `json:"gender"`
	AgeRange   string `json:"age_range"`
	Country    string `json:"country"`
	SignupDate string `json:"signup_date"`

	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	Brand        string  `json:"brand"`
	Color        string  `json:"color"`
	Size         string  `json:"size"`
	CatalogPrice Decimal `json:"catalog_price"`
	CostPrice    Decimal `json:"cost_price"`

	Channel          string `json:"channel"`
	ChannelCampaigns string `json:"channel_campaigns"`

	Quantity        int     `json:"quantity"`
	UnitPrice       Decimal `json:"unit_price"`
	OriginalPrice   Decimal `json:"original_price"`
	DiscountApplied bool    `json:"discount_applied"`
	DiscountPercent Decimal `json:"discount_percent"`
	ItemTotal       Decimal `json:"item_total"`
}

// RowSet is the subset of the daily batch matching one target date.
// The loader must only ever receive the full filtered set for a batch
// window: a sale's recomputed total reflects exactly the items present here.
type RowSet struct {
	TargetDate Date  `json:"target_date"`
	Rows       []Row `json:"rows"`
}

// Len returns the number of rows in the set.
func (s *RowSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// LoadSummary reports how many records each load step processed.
type LoadSummary struct {
	Customers int `json:"customers"`
	Products  int `json:"products"`
	Sales     int `json:"sales"`
	SaleItems int `json:"sale_items"`
}

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	RunID      string      `json:"run_id"`
	TargetDate Date        `json:"target_date"`
	Status     string      `json:"status"` // StatusSuccess or StatusNoData
	Rows       int         `json:"rows"`
	Summary    LoadSummary `json:"summary"`
}

// RunState tracks the lifecycle of a single pipeline run.
type RunState string

const (
	StateIdle             RunState = "idle"
	StateExtracting       RunState = "extracting"
	StateExtracted        RunState = "extracted"
	StateLoadingCustomers RunState = "loading_customers"
	StateLoadingProducts  RunState = "loading_products"
	StateLoadingSales     RunState = "loading_sales"
	StateLoadingSaleItems RunState = "loading_sale_items"
	StateDone             RunState = "done"
	StateFailed           RunState = "failed"
)

// StorageConfig holds object storage connection settings.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// DatabaseConfig holds relational store connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// Config is the explicit configuration passed into the core at construction
// time. Nothing in the core reads process-wide state; the CLI layer is
// responsible for assembling this from files and environment.
type Config struct {
	Storage   StorageConfig  `yaml:"storage"`
	Database  DatabaseConfig `yaml:"database"`
	Bucket    string         `yaml:"bucket"`
	ObjectKey string         `yaml:"object_key"`
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() error {
	if c.Storage.Endpoint == "" {
		return fmt.Errorf("%w: storage endpoint is required", ErrInvalidConfig)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database host is required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database port %d out of range", ErrInvalidConfig, c.Database.Port)
	}
	if c.Database.Database == "" {
		return fmt.Errorf("%w: database name is required", ErrInvalidConfig)
	}
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket name is required", ErrInvalidConfig)
	}
	if c.ObjectKey == "" {
		return fmt.Errorf("%w: object key is required", ErrInvalidConfig)
	}
	return nil
}
