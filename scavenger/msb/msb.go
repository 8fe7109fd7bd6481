// Package msb fetches the MAS Monthly Statistical Bulletin history tables.
//
// The MAS provides historical monthly statistics via ASP.NET report pages.
// Data is fetched as HTML tables since the XML API is in maintenance.
//
// Source: https://eservices.mas.gov.sg/statistics/msb-xml/msb-statistics-history/
package msb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// ReportURL is the MSB history report endpoint.
	ReportURL = "https://eservices.mas.gov.sg/statistics/msb-xml/msb-statistics-history/Report.aspx"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Table identifies a single MSB table.
type Table struct {
	ID          string // table ID, e.g. "I.1"
	SetID       string // table set ID, e.g. "I.H"
	Description string
}

// AssetName returns the raw-store asset name for the table.
func (t Table) AssetName() string {
	return "msb_" + strings.ReplaceAll(t.ID, ".", "_")
}

// Fetcher fetches MSB history tables.
type Fetcher struct {
	reportURL  string
	httpClient *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// NewFetcher creates a Fetcher for the MSB report pages.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		reportURL: ReportURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// WithReportURL overrides the report endpoint.
func WithReportURL(u string) Option {
	return func(f *Fetcher) {
		f.reportURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = hc
	}
}

// Fetch fetches the HTML report of a single table.
func (f *Fetcher) Fetch(ctx context.Context, table Table) ([]byte, error) {
	query := url.Values{}
	query.Set("tableSetID", table.SetID)
	query.Set("tableID", table.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.reportURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "text/html")
	req.Header.Set("user-agent", userAgent)

	res, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.New(fmt.Sprintf("invalid status code error: %d, value %s", res.StatusCode, res.Status))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("error reading response body: %s", err))
	}

	return body, nil
}

// DefaultTables is the catalog of MSB tables the connector tracks.
var DefaultTables = []Table{
	// === Section I: Money and Banking ===
	{ID: "I.1", SetID: "I.H", Description: "Money Supply (DBU)"},
	{ID: "I.1A", SetID: "I.H", Description: "Money Supply (DBU and ACU)"},
	{ID: "I.2A", SetID: "I.H", Description: "Monetary Survey (DBU)"},
	{ID: "I.2B", SetID: "I.H", Description: "Monetary Survey (DBU and ACU)"},
	{ID: "I.3A", SetID: "I.H", Description: "Commercial Banks: Assets and Liabilities of DBUs"},
	{ID: "I.3B", SetID: "I.H", Description: "Commercial Banks: Assets of DBUs"},
	{ID: "I.3C", SetID: "I.H", Description: "Commercial Banks: Liabilities of DBUs"},
	{ID: "I.4", SetID: "I.H", Description: "Commercial Banks: Deposits by Types of Non-bank Customers"},
	{ID: "I.5A", SetID: "I.H", Description: "Commercial Banks: Loans to Non-Bank Customers by Industry (DBU)"},
	{ID: "I.5B", SetID: "I.H", Description: "Commercial Banks: Loans to Non-Bank Customers by Industry (ACU)"},
	{ID: "I.5C", SetID: "I.H", Description: "Commercial Banks: Loans to SPV for Covered Bond Issuances"},
	{ID: "I.6", SetID: "I.H", Description: "Commercial Banks: Loan Limits by Industry"},
	{ID: "I.7", SetID: "I.H", Description: "Commercial Banks: Types of Loans to Non-Bank Customers"},
	{ID: "I.8", SetID: "I.H", Description: "Commercial Banks: Statutory Liquidity Position of DBUs"},
	{ID: "I.9", SetID: "I.H", Description: "Commercial Banks: Maturities of Assets and Liabilities"},
	{ID: "I.10", SetID: "I.H", Description: "Commercial Banks: External Assets and Liabilities (DBU)"},
	{ID: "I.10A", SetID: "I.H", Description: "Commercial Banks: External Assets and Liabilities (DBU and ACU)"},
	{ID: "I.11", SetID: "I.H", Description: "Commercial Banks: Combined Assets and Liabilities"},
	{ID: "I.12", SetID: "I.H", Description: "Commercial Banks: Classified Exposures"},
	{ID: "I.12A", SetID: "I.H", Description: "Commercial Banks: Non-Performing Loans by Sector"},
	{ID: "I.13", SetID: "I.H", Description: "Asian Dollar Market: Assets of ACUs"},
	{ID: "I.14", SetID: "I.H", Description: "Asian Dollar Market: Liabilities of ACUs"},
	{ID: "I.15", SetID: "I.H", Description: "Asian Dollar Market: Maturities of Assets and Liabilities"},
	{ID: "I.16", SetID: "I.H", Description: "Asian Dollar Market: Interbank and Non-Bank Funds by Region"},
	{ID: "I.18", SetID: "I.H", Description: "Commercial Banks: Non-Bank Loan to Deposit Ratios"},

	// === Section II: Non-Bank Financial Institutions ===
	{ID: "II.3", SetID: "II.H", Description: "Merchant Banks: Assets and Liabilities (Domestic and ACU)"},
	{ID: "II.4", SetID: "II.H", Description: "Merchant Banks: Assets and Liabilities (Domestic)"},

	// === Section III: Financial Markets ===
	{ID: "III.2", SetID: "III.H", Description: "Foreign Exchange Market Turnover"},
	{ID: "III.4", SetID: "III.H", Description: "SGS: Issuance, Redemption and Outstanding"},
}
