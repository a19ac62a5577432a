// Package loader normalizes statements and price history from the data
// providers, memoizing results and persisting them to the on-disk cache.
package loader

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/models"
)

var ashareCode = regexp.MustCompile(`^\d{6}$`)

// Service implements interfaces.LoaderService.
type Service struct {
	statements interfaces.StatementClient
	cnPrices   interfaces.PriceClient
	intlPrices interfaces.PriceClient
	cache      interfaces.CacheStore
	logger     *common.Logger

	mu             sync.Mutex
	memoStatements map[string]*models.StatementTable
	memoPrices     map[string]*models.PriceSeries
}

// NewService creates a loader backed by the given clients and cache.
// intlPrices is the fallback provider; either price client may be nil.
func NewService(statements interfaces.StatementClient, cnPrices, intlPrices interfaces.PriceClient, cache interfaces.CacheStore, logger *common.Logger) *Service {
	return &Service{
		statements:     statements,
		cnPrices:       cnPrices,
		intlPrices:     intlPrices,
		cache:          cache,
		logger:         logger,
		memoStatements: make(map[string]*models.StatementTable),
		memoPrices:     make(map[string]*models.PriceSeries),
	}
}

// LoadStatement returns the translated, validated statement for a code.
// Provider failures degrade to an empty table so a single missing
// statement never aborts an analysis run.
func (s *Service) LoadStatement(ctx context.Context, code string, kind models.StatementKind) (*models.StatementTable, error) {
	memoKey := code + ":" + string(kind)

	s.mu.Lock()
	if t, ok := s.memoStatements[memoKey]; ok {
		s.mu.Unlock()
		return t, nil
	}
	s.mu.Unlock()

	// Disk cache next; fetch stays outside the lock.
	if s.cache != nil {
		if t, err := s.cache.GetStatement(ctx, code, kind); err == nil && !t.Empty() {
			s.memoize(memoKey, t)
			return t, nil
		}
	}

	table := s.fetchStatement(ctx, code, kind)

	if s.cache != nil && !table.Empty() {
		if err := s.cache.SaveStatement(ctx, table); err != nil {
			s.logger.Warn().Err(err).Str("code", code).Str("kind", string(kind)).Msg("Failed to cache statement")
		}
	}

	s.memoize(memoKey, table)
	return table, nil
}

// LoadStatements loads all three statements.
func (s *Service) LoadStatements(ctx context.Context, code string) (map[models.StatementKind]*models.StatementTable, error) {
	out := make(map[models.StatementKind]*models.StatementTable, len(models.StatementKinds))
	for _, kind := range models.StatementKinds {
		t, err := s.LoadStatement(ctx, code, kind)
		if err != nil {
			return nil, err
		}
		out[kind] = t
	}
	return out, nil
}

// LoadPrices returns daily bars for [start, end]. A-share codes load from
// the CN provider first and fall back to the international one under the
// converted symbol; failures degrade to an empty series.
func (s *Service) LoadPrices(ctx context.Context, code string, start, end time.Time) (*models.PriceSeries, error) {
	startKey := start.Format("20060102")
	endKey := end.Format("20060102")
	memoKey := fmt.Sprintf("%s:%s:%s", code, startKey, endKey)

	s.mu.Lock()
	if p, ok := s.memoPrices[memoKey]; ok {
		s.mu.Unlock()
		return p, nil
	}
	s.mu.Unlock()

	if s.cache != nil {
		if p, err := s.cache.GetPrices(ctx, code, startKey, endKey); err == nil && !p.Empty() {
			s.memoizePrices(memoKey, p)
			return p, nil
		}
	}

	series := s.fetchPrices(ctx, code, start, end)
	series.Code = code

	if s.cache != nil && !series.Empty() {
		if err := s.cache.SavePrices(ctx, series, startKey, endKey); err != nil {
			s.logger.Warn().Err(err).Str("code", code).Msg("Failed to cache prices")
		}
	}

	s.memoizePrices(memoKey, series)
	return series, nil
}

func (s *Service) fetchStatement(ctx context.Context, code string, kind models.StatementKind) *models.StatementTable {
	empty := &models.StatementTable{Code: code, Kind: kind}
	if s.statements == nil {
		return empty
	}

	raw, err := s.statements.FetchStatement(ctx, code, kind)
	if err != nil {
		s.logger.Warn().Err(err).Str("code", code).Str("kind", string(kind)).Msg("Statement fetch failed")
		return empty
	}

	table := translateTable(raw)
	table.SortDescending()
	s.validateRequired(table)

	s.logger.Info().
		Str("code", code).
		Str("kind", string(kind)).
		Int("periods", table.Len()).
		Int("columns", len(table.Columns)).
		Msg("Statement loaded")

	return table
}

func (s *Service) fetchPrices(ctx context.Context, code string, start, end time.Time) *models.PriceSeries {
	if IsAShare(code) {
		if s.cnPrices != nil {
			series, err := s.cnPrices.FetchDailyBars(ctx, code, start, end)
			if err == nil && !series.Empty() {
				return series
			}
			if err != nil {
				s.logger.Warn().Err(err).Str("code", code).Msg("CN price fetch failed, trying fallback")
			}
		}
		if s.intlPrices != nil {
			series, err := s.intlPrices.FetchDailyBars(ctx, YahooSymbol(code), start, end)
			if err == nil {
				return series
			}
			s.logger.Warn().Err(err).Str("code", code).Msg("Fallback price fetch failed")
		}
		return &models.PriceSeries{Code: code}
	}

	if s.intlPrices != nil {
		series, err := s.intlPrices.FetchDailyBars(ctx, code, start, end)
		if err == nil {
			return series
		}
		s.logger.Warn().Err(err).Str("code", code).Msg("Price fetch failed")
	}
	return &models.PriceSeries{Code: code}
}

func (s *Service) validateRequired(table *models.StatementTable) {
	if table.Empty() {
		return
	}
	for _, col := range models.RequiredColumns[table.Kind] {
		if !table.HasColumn(col) {
			s.logger.Warn().
				Str("code", table.Code).
				Str("kind", string(table.Kind)).
				Str("column", col).
				Msg("Required column missing from statement")
		}
	}
}

func (s *Service) memoize(key string, t *models.StatementTable) {
	s.mu.Lock()
	s.memoStatements[key] = t
	s.mu.Unlock()
}

func (s *Service) memoizePrices(key string, p *models.PriceSeries) {
	s.mu.Lock()
	s.memoPrices[key] = p
	s.mu.Unlock()
}

// translateTable maps provider columns to English names, dropping
// anything without a translation.
func translateTable(raw *models.StatementTable) *models.StatementTable {
	out := &models.StatementTable{Code: raw.Code, Kind: raw.Kind}

	colMap := make(map[string]string, len(raw.Columns))
	for _, col := range raw.Columns {
		en, ok := translateColumn(raw.Kind, col)
		if !ok || en == models.ColReportDate {
			continue
		}
		colMap[col] = en
		out.Columns = append(out.Columns, en)
	}

	for _, row := range raw.Rows {
		if strings.TrimSpace(row.ReportDate) == "" {
			continue
		}
		values := make(map[string]float64, len(row.Values))
		for col, v := range row.Values {
			if en, ok := colMap[col]; ok {
				values[en] = v
			}
		}
		out.Rows = append(out.Rows, models.StatementRow{
			ReportDate: row.ReportDate,
			Values:     values,
		})
	}

	return out
}

// IsAShare reports whether a code is a mainland A-share listing.
func IsAShare(code string) bool {
	return ashareCode.MatchString(code)
}

// YahooSymbol converts an A-share code to its Yahoo ticker: Shanghai
// listings (6xx) get ".SS", Shenzhen listings get ".SZ".
func YahooSymbol(code string) string {
	if strings.HasPrefix(code, "6") {
		return code + ".SS"
	}
	return code + ".SZ"
}

var _ interfaces.LoaderService = (*Service)(nil)
