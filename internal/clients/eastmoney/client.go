// Package eastmoney provides a client for the East Money data center API,
// the primary source for A-share statements and daily price history.
package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/models"
)

const (
	DefaultBaseURL   = "https://datacenter-web.eastmoney.com/api"
	DefaultKlineURL  = "https://push2his.eastmoney.com/api/qt/stock/kline"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

var reportNames = map[models.StatementKind]string{
	models.StatementIncome:   "RPT_DMSK_FN_INCOME",
	models.StatementBalance:  "RPT_DMSK_FN_BALANCE",
	models.StatementCashFlow: "RPT_DMSK_FN_CASHFLOW",
}

// fieldAliases normalizes the data center's uppercase field codes to the
// Chinese headers the statement translation layer expects. Responses
// that already carry Chinese headers pass through untouched.
var fieldAliases = map[string]string{
	// income statement
	"TOTAL_OPERATE_INCOME": "营业收入",
	"OPERATE_INCOME":       "营业收入",
	"OPERATE_COST":         "营业成本",
	"TOTAL_OPERATE_COST":   "营业成本",
	"OPERATE_PROFIT":       "营业利润",
	"TOTAL_PROFIT":         "利润总额",
	"NETPROFIT":            "净利润",
	"PARENT_NETPROFIT":     "归属于母公司所有者的净利润",
	"INCOME_TAX":           "所得税费用",
	"INTEREST_EXPENSE":     "利息费用",
	"FINANCE_EXPENSE":      "财务费用",
	"SALE_EXPENSE":         "销售费用",
	"MANAGE_EXPENSE":       "管理费用",
	"BASIC_EPS":            "基本每股收益",

	// balance sheet
	"TOTAL_ASSETS":             "资产总计",
	"TOTAL_LIABILITIES":        "负债合计",
	"TOTAL_CURRENT_ASSETS":     "流动资产合计",
	"TOTAL_CURRENT_LIAB":       "流动负债合计",
	"TOTAL_NONCURRENT_LIAB":    "非流动负债合计",
	"UNDISTRIBUTED_PROFIT":     "未分配利润",
	"TOTAL_PARENT_EQUITY":      "归属于母公司股东权益合计",
	"TOTAL_EQUITY":             "所有者权益(或股东权益)合计",
	"MONETARYFUNDS":            "货币资金",
	"ACCOUNTS_RECE":            "应收账款",
	"ACCOUNTS_PAYABLE":         "应付账款",
	"INVENTORY":                "存货",
	"FIXED_ASSET":              "固定资产净额",
	"FIXED_ASSET_COST":         "固定资产原值",
	"ACCUMULATED_DEPRECIATION": "累计折旧",
	"SHORT_LOAN":               "短期借款",
	"LONG_LOAN":                "长期借款",
	"SHARE_CAPITAL":            "实收资本(或股本)",

	// cash flow statement
	"NETCASH_OPERATE":        "经营活动产生的现金流量净额",
	"CONSTRUCT_LONG_ASSET":   "购建固定资产、无形资产和其他长期资产所支付的现金",
	"ASSIGN_DIVIDEND_PROFIT": "分配股利、利润或偿付利息所支付的现金",
	"DEPR_FIXED_ASSET":       "折旧费用",
}

// Client implements the StatementClient and PriceClient interfaces for
// the East Money endpoints.
type Client struct {
	baseURL    string
	klineURL   string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the data center base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithKlineURL sets the kline endpoint base URL
func WithKlineURL(klineURL string) ClientOption {
	return func(c *Client) {
		c.klineURL = klineURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new East Money client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		klineURL: DefaultKlineURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("East Money API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// statementResponse is the data center envelope for report queries.
type statementResponse struct {
	Result struct {
		Data []map[string]json.RawMessage `json:"data"`
	} `json:"result"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FetchStatement retrieves one statement for a stock code. Columns keep
// the provider's Chinese headers; one row per report date, newest first.
func (c *Client) FetchStatement(ctx context.Context, code string, kind models.StatementKind) (*models.StatementTable, error) {
	reportName, ok := reportNames[kind]
	if !ok {
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}

	params := url.Values{}
	params.Set("reportName", reportName)
	params.Set("filter", fmt.Sprintf("(SECURITY_CODE=\"%s\")", code))
	params.Set("pageSize", "500")
	params.Set("sortColumns", "REPORT_DATE")
	params.Set("sortTypes", "-1")

	var resp statementResponse
	if err := c.get(ctx, c.baseURL, "/data/v1/get", params, &resp); err != nil {
		return nil, err
	}
	if !resp.Success && resp.Message != "" {
		return nil, &APIError{Message: resp.Message, Endpoint: "/data/v1/get"}
	}

	table := &models.StatementTable{Code: code, Kind: kind}
	seen := map[string]bool{}

	for _, raw := range resp.Result.Data {
		row := models.StatementRow{Values: make(map[string]float64)}
		for key, val := range raw {
			if key == "报告日" || key == "REPORT_DATE" {
				row.ReportDate = normalizeDate(decodeString(val))
				continue
			}
			if alias, ok := fieldAliases[key]; ok {
				key = alias
			}
			num, ok := decodeCell(val)
			if !ok {
				continue
			}
			row.Values[key] = num
			if !seen[key] {
				seen[key] = true
				table.Columns = append(table.Columns, key)
			}
		}
		if row.ReportDate == "" {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	c.logger.Debug().
		Str("code", code).
		Str("kind", string(kind)).
		Int("periods", len(table.Rows)).
		Msg("East Money statement fetched")

	return table, nil
}

// klineResponse is the envelope for daily bar queries.
type klineResponse struct {
	Data struct {
		Code   string   `json:"code"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

// FetchDailyBars retrieves daily bars for an A-share code. Each kline is
// "date,open,close,high,low,volume,..." comma-separated.
func (c *Client) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	params := url.Values{}
	params.Set("secid", secID(symbol))
	params.Set("klt", "101") // daily
	params.Set("fqt", "1")   // forward adjusted
	params.Set("fields1", "f1,f2,f3")
	params.Set("fields2", "f51,f52,f53,f54,f55,f56")
	params.Set("beg", start.Format("20060102"))
	params.Set("end", end.Format("20060102"))

	var resp klineResponse
	if err := c.get(ctx, c.klineURL, "/get", params, &resp); err != nil {
		return nil, err
	}

	series := &models.PriceSeries{Code: symbol}
	for _, line := range resp.Data.Klines {
		bar, ok := parseKline(line)
		if !ok {
			continue
		}
		series.Bars = append(series.Bars, bar)
	}

	c.logger.Debug().
		Str("symbol", symbol).
		Int("bars", len(series.Bars)).
		Msg("East Money daily bars fetched")

	return series, nil
}

// get performs a rate-limited GET request against the given base URL.
func (c *Client) get(ctx context.Context, base, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", base, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", base+path).Msg("East Money API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// secID maps a 6-digit code to the exchange-prefixed kline id.
// Shanghai listings (6xx) use market 1, Shenzhen uses market 0.
func secID(symbol string) string {
	if strings.HasPrefix(symbol, "6") {
		return "1." + symbol
	}
	return "0." + symbol
}

// parseKline parses one "date,open,close,high,low,volume" line.
func parseKline(line string) (models.PriceBar, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 6 {
		return models.PriceBar{}, false
	}
	date, err := time.Parse("2006-01-02", fields[0])
	if err != nil {
		return models.PriceBar{}, false
	}
	nums := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return models.PriceBar{}, false
		}
		nums[i] = v
	}
	return models.PriceBar{
		Date:   date,
		Open:   nums[0],
		Close:  nums[1],
		High:   nums[2],
		Low:    nums[3],
		Volume: nums[4],
	}, true
}

func decodeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

// decodeCell coerces a statement cell to a float. Strings like "--", "-",
// and empty cells report absent.
func decodeCell(raw json.RawMessage) (float64, bool) {
	if string(raw) == "null" {
		return 0, false
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "--" || s == "-" || s == "N/A" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeDate converts provider date strings to YYYY-MM-DD.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("20060102", s); err == nil {
		return t.Format("2006-01-02")
	}
	return s
}

var (
	_ interfaces.StatementClient = (*Client)(nil)
	_ interfaces.PriceClient     = (*Client)(nil)
)
