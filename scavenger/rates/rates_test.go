package rates

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestFetcher_FetchExchangeRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>rates</body></html>")
	}))
	defer server.Close()

	f := NewFetcher(WithExchangeRatesURL(server.URL))
	body, err := f.FetchExchangeRates(context.Background())
	if err != nil {
		t.Fatalf("FetchExchangeRates() error = %v", err)
	}
	if string(body) != "<html><body>rates</body></html>" {
		t.Errorf("FetchExchangeRates() = %q", body)
	}
}

func TestFetcher_FetchInterestRatesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := NewFetcher(WithInterestRatesURL(server.URL))
	if _, err := f.FetchInterestRates(context.Background()); err == nil {
		t.Error("FetchInterestRates() expected error on 502")
	}
}

func TestExtractViewState(t *testing.T) {
	tests := []struct {
		name string
		html string
		want map[string]string
	}{
		{
			name: "all fields present",
			html: `<input type="hidden" id="__VIEWSTATE" value="abc123" />` +
				`<input type="hidden" id="__VIEWSTATEGENERATOR" value="gen456" />` +
				`<input type="hidden" id="__EVENTVALIDATION" value="ev789" />`,
			want: map[string]string{
				"__VIEWSTATE":          "abc123",
				"__VIEWSTATEGENERATOR": "gen456",
				"__EVENTVALIDATION":    "ev789",
			},
		},
		{
			name: "missing fields omitted",
			html: `<input type="hidden" id="__VIEWSTATE" value="only" />`,
			want: map[string]string{
				"__VIEWSTATE": "only",
			},
		},
		{
			name: "no fields",
			html: `<html><body></body></html>`,
			want: map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractViewState(tt.html); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractViewState() = %v, want %v", got, tt.want)
			}
		})
	}
}
