package interfaces

import (
	"context"

	"github.com/lishuzheng01/stockfin/internal/models"
)

// CacheStore persists fetched statements and price history between runs.
type CacheStore interface {
	// GetStatement returns a cached statement, an error when absent.
	GetStatement(ctx context.Context, code string, kind models.StatementKind) (*models.StatementTable, error)

	// SaveStatement stores a statement atomically.
	SaveStatement(ctx context.Context, table *models.StatementTable) error

	// GetPrices returns a cached price series for an exact date range.
	GetPrices(ctx context.Context, code, start, end string) (*models.PriceSeries, error)

	// SavePrices stores a price series keyed by its date range.
	SavePrices(ctx context.Context, series *models.PriceSeries, start, end string) error

	// PurgeCode removes all cached data for a stock code and returns the
	// number of files removed.
	PurgeCode(code string) int
}

// ReportStore persists rendered report artifacts.
type ReportStore interface {
	// WriteReport writes one report file under the code's report
	// directory and returns the full path.
	WriteReport(ctx context.Context, code, filename string, data []byte) (string, error)

	// ReportDir returns the report directory for a code.
	ReportDir(code string) string
}

// Store combines the cache and report stores and owns their lifecycle.
type Store interface {
	CacheStore
	ReportStore
	Close() error
}
