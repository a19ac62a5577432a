// Package interfaces defines client, service, and storage contracts for Stockfin
package interfaces

import (
	"context"
	"time"

	"github.com/lishuzheng01/stockfin/internal/models"
)

// StatementClient fetches raw financial statements from a data provider.
// Returned tables carry the provider's native (Chinese) column headers;
// translation to English is the loader's job.
type StatementClient interface {
	// FetchStatement retrieves one statement for a stock code.
	FetchStatement(ctx context.Context, code string, kind models.StatementKind) (*models.StatementTable, error)
}

// PriceClient fetches daily price history.
type PriceClient interface {
	// FetchDailyBars retrieves daily OHLCV bars for a provider-native
	// symbol within [start, end], ascending by date.
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error)
}
