package eastmoney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lishuzheng01/stockfin/internal/models"
)

func TestFetchStatement_DecodesEnvelope(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"result": {"data": [
				{"报告日": "2024-09-30 00:00:00", "营业收入": 1000.5, "净利润": "120", "备注": "--"},
				{"报告日": "2024-06-30", "营业收入": 900}
			]}
		}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	table, err := client.FetchStatement(context.Background(), "600519", models.StatementIncome)
	require.NoError(t, err)

	assert.Equal(t, "600519", table.Code)
	assert.Equal(t, models.StatementIncome, table.Kind)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2024-09-30", table.Rows[0].ReportDate)
	assert.Equal(t, 1000.5, table.Rows[0].Value("营业收入"))
	assert.Equal(t, 120.0, table.Rows[0].Value("净利润"))

	// "--" cells are absent, not zero.
	_, ok := table.Rows[0].Lookup("备注")
	assert.False(t, ok)

	assert.Contains(t, gotQuery, "reportName=RPT_DMSK_FN_INCOME")
	assert.Contains(t, gotQuery, "600519")
}

func TestFetchStatement_NormalizesFieldCodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"success": true,
			"result": {"data": [
				{"REPORT_DATE": "2024-09-30 00:00:00", "TOTAL_ASSETS": 1000, "TOTAL_PARENT_EQUITY": 600, "SHARE_CAPITAL": 120, "SECURITY_NAME_ABBR": "贵州茅台"}
			]}
		}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	table, err := client.FetchStatement(context.Background(), "600519", models.StatementBalance)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2024-09-30", table.Rows[0].ReportDate)
	assert.Equal(t, 1000.0, table.Rows[0].Value("资产总计"))
	assert.Equal(t, 600.0, table.Rows[0].Value("归属于母公司股东权益合计"))
	assert.Equal(t, 120.0, table.Rows[0].Value("实收资本(或股本)"))
	assert.Contains(t, table.Columns, "资产总计")

	// Non-numeric metadata fields are dropped, not aliased.
	_, ok := table.Rows[0].Lookup("SECURITY_NAME_ABBR")
	assert.False(t, ok)
}

func TestFetchStatement_UnknownKind(t *testing.T) {
	client := NewClient()
	_, err := client.FetchStatement(context.Background(), "600519", models.StatementKind("annual"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown statement kind")
}

func TestFetchStatement_APIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "quota exceeded"}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.FetchStatement(context.Background(), "600519", models.StatementBalance)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "quota exceeded", apiErr.Message)
}

func TestFetchStatement_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.FetchStatement(context.Background(), "600519", models.StatementIncome)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestFetchDailyBars_ParsesKlines(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data": {"code": "600519", "klines": [
			"2024-12-02,1500.0,1510.5,1520.0,1495.0,38000",
			"2024-12-03,1511.0,1505.0,1515.0,1500.0,29000",
			"bad line"
		]}}`))
	}))
	defer server.Close()

	client := NewClient(WithKlineURL(server.URL))
	series, err := client.FetchDailyBars(context.Background(), "600519",
		time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, series.Bars, 2)
	first := series.Bars[0]
	assert.Equal(t, 1500.0, first.Open)
	assert.Equal(t, 1510.5, first.Close)
	assert.Equal(t, 1520.0, first.High)
	assert.Equal(t, 1495.0, first.Low)
	assert.Equal(t, 38000.0, first.Volume)
	assert.Equal(t, 1505.0, series.LastClose())

	assert.Contains(t, gotQuery, "secid=1.600519")
	assert.Contains(t, gotQuery, "beg=20241201")
	assert.Contains(t, gotQuery, "end=20241203")
}

func TestSecID(t *testing.T) {
	assert.Equal(t, "1.600519", secID("600519"))
	assert.Equal(t, "0.000001", secID("000001"))
	assert.Equal(t, "0.300750", secID("300750"))
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-09-30", normalizeDate("2024-09-30 00:00:00"))
	assert.Equal(t, "2024-09-30", normalizeDate("2024-09-30"))
	assert.Equal(t, "2024-09-30", normalizeDate("20240930"))
	assert.Equal(t, "", normalizeDate("  "))
}

func TestDecodeCell(t *testing.T) {
	v, ok := decodeCell([]byte(`"1,234.5"`))
	require.True(t, ok)
	assert.Equal(t, 1234.5, v)

	_, ok = decodeCell([]byte(`"--"`))
	assert.False(t, ok)

	_, ok = decodeCell([]byte(`null`))
	assert.False(t, ok)
}
