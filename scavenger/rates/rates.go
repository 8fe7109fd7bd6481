// Package rates fetches the MAS exchange rates and domestic interest rates pages.
//
// Both pages embed their data tables directly in the HTML, so a single GET per
// page is enough. The pages are ASP.NET forms; ExtractViewState pulls the
// hidden fields needed for postback requests that select other series.
//
// Sources:
//
//	https://eservices.mas.gov.sg/statistics/msb/exchangerates.aspx
//	https://eservices.mas.gov.sg/statistics/dir/domesticinterestrates.aspx
package rates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

const (
	// ExchangeRatesURL is the MAS exchange rates page.
	ExchangeRatesURL = "https://eservices.mas.gov.sg/statistics/msb/exchangerates.aspx"

	// InterestRatesURL is the MAS domestic interest rates page (SORA, SIBOR and other key rates).
	InterestRatesURL = "https://eservices.mas.gov.sg/statistics/dir/domesticinterestrates.aspx"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Fetcher fetches the MAS rates pages.
type Fetcher struct {
	exchangeRatesURL string
	interestRatesURL string
	httpClient       *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// NewFetcher creates a Fetcher for the MAS rates pages.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		exchangeRatesURL: ExchangeRatesURL,
		interestRatesURL: InterestRatesURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// WithExchangeRatesURL overrides the exchange rates page URL.
func WithExchangeRatesURL(u string) Option {
	return func(f *Fetcher) {
		f.exchangeRatesURL = u
	}
}

// WithInterestRatesURL overrides the interest rates page URL.
func WithInterestRatesURL(u string) Option {
	return func(f *Fetcher) {
		f.interestRatesURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = hc
	}
}

// FetchExchangeRates fetches the exchange rates page (contains embedded data table).
func (f *Fetcher) FetchExchangeRates(ctx context.Context) ([]byte, error) {
	return f.fetch(ctx, f.exchangeRatesURL)
}

// FetchInterestRates fetches the domestic interest rates page (contains embedded data).
func (f *Fetcher) FetchInterestRates(ctx context.Context) ([]byte, error) {
	return f.fetch(ctx, f.interestRatesURL)
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
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

var viewStatePatterns = map[string]*regexp.Regexp{
	"__VIEWSTATE":          regexp.MustCompile(`id="__VIEWSTATE"[^>]*value="([^"]*)"`),
	"__VIEWSTATEGENERATOR": regexp.MustCompile(`id="__VIEWSTATEGENERATOR"[^>]*value="([^"]*)"`),
	"__EVENTVALIDATION":    regexp.MustCompile(`id="__EVENTVALIDATION"[^>]*value="([^"]*)"`),
}

// ExtractViewState extracts the ASP.NET ViewState fields from a page for form
// submissions. Fields missing from the page are omitted from the result.
func ExtractViewState(html string) map[string]string {
	result := make(map[string]string)
	for key, pattern := range viewStatePatterns {
		if match := pattern.FindStringSubmatch(html); match != nil {
			result[key] = match[1]
		}
	}
	return result
}
