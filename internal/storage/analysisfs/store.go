// Package analysisfs implements file-based storage for cached market data
// and rendered analysis reports.
package analysisfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/models"
)

var statementFiles = map[models.StatementKind]string{
	models.StatementIncome:   "income_statement",
	models.StatementBalance:  "balance_sheet",
	models.StatementCashFlow: "cashflow",
}

// Store provides file-based JSON caching and report output.
type Store struct {
	cacheDir  string
	reportDir string
	logger    *common.Logger
}

// NewStore creates the cache and report directories and returns a store.
func NewStore(logger *common.Logger, cachePath, reportPath string) (*Store, error) {
	if err := os.MkdirAll(cachePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache path %s: %w", cachePath, err)
	}
	if err := os.MkdirAll(reportPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report path %s: %w", reportPath, err)
	}

	logger.Info().Str("cache", cachePath).Str("reports", reportPath).Msg("Analysis store opened")
	return &Store{
		cacheDir:  cachePath,
		reportDir: reportPath,
		logger:    logger,
	}, nil
}

// GetStatement returns a cached statement, an error when absent or corrupt.
func (s *Store) GetStatement(_ context.Context, code string, kind models.StatementKind) (*models.StatementTable, error) {
	name, ok := statementFiles[kind]
	if !ok {
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}
	var table models.StatementTable
	if err := readJSON(s.codeDir(code), name, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

// SaveStatement stores a statement atomically under the code's cache dir.
func (s *Store) SaveStatement(_ context.Context, table *models.StatementTable) error {
	name, ok := statementFiles[table.Kind]
	if !ok {
		return fmt.Errorf("unknown statement kind %q", table.Kind)
	}
	return writeJSON(s.codeDir(table.Code), name, table)
}

// GetPrices returns a cached price series for an exact date range.
func (s *Store) GetPrices(_ context.Context, code, start, end string) (*models.PriceSeries, error) {
	var series models.PriceSeries
	if err := readJSON(s.codeDir(code), priceKey(start, end), &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// SavePrices stores a price series keyed by its date range.
func (s *Store) SavePrices(_ context.Context, series *models.PriceSeries, start, end string) error {
	return writeJSON(s.codeDir(series.Code), priceKey(start, end), series)
}

// PurgeCode removes all cached files for a code and returns the count.
func (s *Store) PurgeCode(code string) int {
	dir := s.codeDir(code)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
			count++
		}
	}
	return count
}

// WriteReport writes one report file atomically and returns its path.
func (s *Store) WriteReport(_ context.Context, code, filename string, data []byte) (string, error) {
	dir := s.ReportDir(code)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}
	target := filepath.Join(dir, sanitizeKey(filename))
	if err := writeAtomic(dir, target, data); err != nil {
		return "", err
	}
	return target, nil
}

// ReportDir returns the report directory for a code.
func (s *Store) ReportDir(code string) string {
	return filepath.Join(s.reportDir, sanitizeKey(code))
}

// Close is a no-op for file-based storage.
func (s *Store) Close() error {
	return nil
}

var _ interfaces.Store = (*Store)(nil)

// --- helpers ---

func (s *Store) codeDir(code string) string {
	return filepath.Join(s.cacheDir, sanitizeKey(code))
}

func priceKey(start, end string) string {
	return fmt.Sprintf("price_%s_%s", start, end)
}

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func filePath(dir, key string) string {
	return filepath.Join(dir, sanitizeKey(key)+".json")
}

func readJSON(dir, key string, dest interface{}) error {
	path := filePath(dir, key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("'%s' not found", key)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("'%s' is empty", key)
	}
	return json.Unmarshal(data, dest)
}

func writeJSON(dir, key string, data interface{}) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')
	return writeAtomic(dir, filePath(dir, key), jsonData)
}

func writeAtomic(dir, target string, data []byte) error {
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
