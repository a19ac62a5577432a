package report

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/models"
)

type fakeReportStore struct {
	writes  map[string][]byte
	order   []string
	failOn  string
	baseDir string
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{writes: map[string][]byte{}, baseDir: "/reports"}
}

func (s *fakeReportStore) WriteReport(_ context.Context, code, filename string, data []byte) (string, error) {
	if s.failOn != "" && filename == s.failOn {
		return "", errors.New("disk full")
	}
	s.writes[filename] = data
	s.order = append(s.order, filename)
	return filepath.Join(s.baseDir, code, filename), nil
}

func (s *fakeReportStore) ReportDir(code string) string {
	return filepath.Join(s.baseDir, code)
}

func testPrices(closes ...float64) *models.PriceSeries {
	series := &models.PriceSeries{Code: "600519"}
	day := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		series.Bars = append(series.Bars, models.PriceBar{Date: day.AddDate(0, 0, i), Close: c})
	}
	return series
}

func TestWriteReports_AllFiles(t *testing.T) {
	store := newFakeReportStore()
	svc := NewService(store, common.NewSilentLogger())

	state := sampleState()
	state.Prices = testPrices(1500, 1505, 1510.5)

	paths, err := svc.WriteReports(context.Background(), state)
	require.NoError(t, err)

	require.Len(t, paths, 7)
	assert.Equal(t, []string{
		"600519_risk_report.txt",
		"600519_dupont_report.txt",
		"600519_profitability_report.txt",
		"600519_valuation_report.txt",
		"600519_cashflow_report.txt",
		"600519_full_report.txt",
		"600519_price.png",
	}, store.order)

	assert.Contains(t, string(store.writes["600519_risk_report.txt"]), "Altman Z-Score")
	assert.Contains(t, string(store.writes["600519_full_report.txt"]), "Run ID: run-1")

	// PNG magic bytes.
	png := store.writes["600519_price.png"]
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestWriteReports_SkipsChartWithoutPrices(t *testing.T) {
	store := newFakeReportStore()
	svc := NewService(store, common.NewSilentLogger())

	paths, err := svc.WriteReports(context.Background(), sampleState())
	require.NoError(t, err)

	assert.Len(t, paths, 6)
	_, ok := store.writes["600519_price.png"]
	assert.False(t, ok)
}

func TestWriteReports_WriteFailure(t *testing.T) {
	store := newFakeReportStore()
	store.failOn = "600519_valuation_report.txt"
	svc := NewService(store, common.NewSilentLogger())

	paths, err := svc.WriteReports(context.Background(), sampleState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valuation")
	assert.Len(t, paths, 3)
}

func TestRenderPriceChart_NeedsTwoBars(t *testing.T) {
	_, err := renderPriceChart("600519", testPrices(1500))
	assert.Error(t, err)

	_, err = renderPriceChart("600519", nil)
	assert.Error(t, err)

	png, err := renderPriceChart("600519", testPrices(1500, 1505, 1498))
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
