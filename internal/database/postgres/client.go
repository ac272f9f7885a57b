package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/metrics"
	"go.uber.org/zap"
)

// DB is the query surface shared by *pgxpool.Pool and pgxmock pools
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Client runs the application queries with metrics and logging
type Client struct {
	db   DB
	pool *pgxpool.Pool
}

// NewClient wraps a connection pool created by db.NewPool
func NewClient(pool *pgxpool.Pool) *Client {
	stat := pool.Stat()
	logger.Info("PostgreSQL client initialized",
		zap.Int32("max_conns", stat.MaxConns()),
		zap.Int32("total_conns", stat.TotalConns()),
	)
	return &Client{db: pool, pool: pool}
}

// NewClientWithDB wraps any DB implementation (used by tests)
func NewClientWithDB(db DB) *Client {
	return &Client{db: db}
}

// Close closes the connection pool
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
		logger.Info("PostgreSQL connection pool closed")
	}
}

// Ping checks if the database connection is alive
func (c *Client) Ping(ctx context.Context) error {
	return c.db.Ping(ctx)
}

// Stats returns connection pool statistics, or nil when not backed by a pool
func (c *Client) Stats() *pgxpool.Stat {
	if c.pool == nil {
		return nil
	}
	return c.pool.Stat()
}

// recordMetrics records database operation metrics
func recordMetrics(operation, status string, duration float64) {
	metrics.DBRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBRequestTotal.WithLabelValues(operation, status).Inc()
}

// finish records metrics for a finished query and logs failures.
func finish(operation string, start time.Time, err error, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	switch {
	case err == nil:
		recordMetrics(operation, "success", duration)
		logger.LogAPICall("postgres", operation, "success", duration, fields...)
	case errors.Is(err, pgx.ErrNoRows):
		recordMetrics(operation, "not_found", duration)
	default:
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, append(fields, zap.Error(err))...)
	}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
