// Package db establishes PostgreSQL connections for the loader and adapts
// pgx types to the narrow salesingest.DBConn contract the core consumes.
package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailops/salesingest/internal/retry"
	"github.com/retailops/salesingest/pkg/salesingest"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns is intentionally small: the loader issues strictly
	// sequential writes, so the pool exists for lifecycle management, not
	// parallelism.
	DefaultMaxConns = 2

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1
)

// Connector establishes a connection pool using standard username/password
// authentication with automatic retry on transient failures.
type Connector struct {
	config        salesingest.DatabaseConfig
	retryExecutor *retry.Executor
}

// NewConnector creates a Connector for the given configuration.
// Retry behavior uses salesingest defaults: DefaultRetryMaxAttempts attempts,
// exponential backoff starting at DefaultRetryInitialDelay, max DefaultRetryMaxDelay.
func NewConnector(config salesingest.DatabaseConfig) *Connector {
	classifier := retry.NewPostgreSQLErrorClassifier()
	strategy := retry.NewExponentialBackoff(salesingest.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(salesingest.DefaultRetryInitialDelay),
		retry.WithMaxDelay(salesingest.DefaultRetryMaxDelay),
	)

	return &Connector{
		config:        config,
		retryExecutor: retry.NewExecutor(classifier, strategy),
	}
}

// Connect establishes a connection pool and verifies it with a ping.
// The returned DBConn must be Closed by the caller on every exit path.
func (c *Connector) Connect(ctx context.Context) (salesingest.DBConn, error) {
	var pool *pgxpool.Pool
	connStr := BuildConnectionString(c.config)

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		poolConfig, err := pgxpool.ParseConfig(connStr)
		if err != nil {
			return fmt.Errorf("failed to parse connection config: %w", err)
		}
		poolConfig.MaxConns = DefaultMaxConns
		poolConfig.MinConns = DefaultMinConns

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return NewPoolAdapter(pool), nil
}

// BuildConnectionString renders the configuration as a PostgreSQL URI.
func BuildConnectionString(config salesingest.DatabaseConfig) string {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	u := url.URL{
		Scheme:   "postgresql",
		Host:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Path:     "/" + config.Database,
		RawQuery: "sslmode=" + sslMode,
	}
	if config.Username != "" {
		if config.Password != "" {
			u.User = url.UserPassword(config.Username, config.Password)
		} else {
			u.User = url.User(config.Username)
		}
	}
	return u.String()
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %v`, salesingest.ErrConnectionFailed, addr, host, port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`%w: cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - Network connection issue

Original error: %v`, salesingest.ErrConnectionFailed, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`%w: password authentication failed for database "%s"

Possible causes:
  - Wrong password (check $POSTGRES_PASSWORD)
  - Wrong username
  - User does not have access to the database

Original error: %v`, salesingest.ErrConnectionFailed, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`%w: database "%s" does not exist

To create it:
  createdb %s

Original error: %v`, salesingest.ErrConnectionFailed, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`%w: connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Firewall silently dropping packets

Original error: %v`, salesingest.ErrConnectionFailed, addr, err)

	default:
		return fmt.Errorf("%w: %v", salesingest.ErrConnectionFailed, err)
	}
}
