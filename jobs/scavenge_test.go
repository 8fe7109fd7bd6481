package jobs

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/subsets-io/mas-connector/rawstore"
	"github.com/subsets-io/mas-connector/scavenger"
	"github.com/subsets-io/mas-connector/scavenger/msb"
	"github.com/subsets-io/mas-connector/scavenger/rates"
)

func TestScavengeJob_Run(t *testing.T) {
	var requests atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if id := r.URL.Query().Get("tableID"); id != "" {
			fmt.Fprintf(w, "<html><table><tr><td>%s</td></tr></table></html>", id)
			return
		}
		fmt.Fprint(w, "<html><body>rates page</body></html>")
	}))
	defer srv.Close()

	s := &scavenger.Scavenger{
		MSB: msb.NewFetcher(msb.WithReportURL(srv.URL)),
		Rates: rates.NewFetcher(
			rates.WithExchangeRatesURL(srv.URL+"/exchangerates.aspx"),
			rates.WithInterestRatesURL(srv.URL+"/domesticinterestrates.aspx"),
		),
	}
	store := rawstore.New(t.TempDir())
	tables := []msb.Table{
		{ID: "I.1", SetID: "I", Description: "Money supply"},
		{ID: "I.2", SetID: "I", Description: "Deposits"},
	}

	job := NewScavengeJob(s, store).Tables(tables).TableDelay(0)
	job.Run()()

	for _, asset := range []string{"exchange_rates_page", "interest_rates_page", "msb_I_1", "msb_I_2"} {
		html, err := store.LoadFile(asset, "html")
		if err != nil {
			t.Errorf("LoadFile(%s) error = %v", asset, err)
			continue
		}
		if !strings.Contains(string(html), "<html>") {
			t.Errorf("LoadFile(%s) = %q, want HTML", asset, html)
		}
	}

	state, err := store.LoadState("msb_tables")
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	for _, table := range tables {
		if !state.IsCompleted(table.AssetName()) {
			t.Errorf("table %s not marked completed", table.ID)
		}
	}

	// Everything is fetched, so the next run must not touch the server.
	before := requests.Load()
	job.Run()()
	if got := requests.Load(); got != before {
		t.Errorf("second run made %d requests, want 0", got-before)
	}
}
