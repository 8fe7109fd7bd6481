package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/samber/lo"
	"github.com/subsets-io/mas-connector/archivist"
	"github.com/subsets-io/mas-connector/internal/utils"
	"github.com/subsets-io/mas-connector/rawstore"
	"github.com/subsets-io/mas-connector/scavenger"
	"github.com/subsets-io/mas-connector/scavenger/msb"
	"github.com/subsets-io/mas-connector/scavenger/rates"
)

const (
	exchangeRatesStateAsset = "exchange_rates"
	interestRatesStateAsset = "interest_rates"
	msbStateAsset           = "msb_tables"
)

// ScavengeJob pulls the MAS eservices statistics pages: the exchange rates
// page, the domestic interest rates page and the Monthly Statistical Bulletin
// history tables. Pages are kept as raw HTML in the store.
type ScavengeJob struct {
	scavenger *scavenger.Scavenger // eservices fetchers
	store     *rawstore.Store      // raw payload and state persistence
	archivist *archivist.Archivist // database bookkeeping (optional)
	tables    []msb.Table          // MSB tables to fetch
	logger    *slog.Logger         // special logger for the job
	options   *scavengeJobOptions  // job options
}

type scavengeJobOptions struct {
	tableDelay time.Duration // politeness delay between MSB tables
	timeout    time.Duration // overall run timeout
}

// NewScavengeJob creates a new ScavengeJob instance over the default MSB table catalog.
func NewScavengeJob(s *scavenger.Scavenger, store *rawstore.Store) *ScavengeJob {
	return &ScavengeJob{
		scavenger: s,
		store:     store,
		tables:    msb.DefaultTables,
		logger:    slog.Default(),
		options: &scavengeJobOptions{
			tableDelay: 500 * time.Millisecond,
			timeout:    30 * time.Minute,
		},
	}
}

// SaveToDB sets the archivist that will record ingest runs.
func (job *ScavengeJob) SaveToDB(arch *archivist.Archivist) *ScavengeJob {
	job.archivist = arch
	return job
}

// Tables overrides the MSB table catalog.
func (job *ScavengeJob) Tables(tables []msb.Table) *ScavengeJob {
	job.tables = tables
	return job
}

// TableDelay overrides the politeness delay between MSB tables.
func (job *ScavengeJob) TableDelay(d time.Duration) *ScavengeJob {
	job.options.tableDelay = d
	return job
}

// Run returns the job function that will be executed by the scheduler.
func (job *ScavengeJob) Run() JobFunc {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), job.options.timeout)
		defer cancel()

		tx := sentry.StartTransaction(ctx, "Job.Scavenge")
		tx.Op = "job"

		hub, ctx := jobHub(ctx)
		defer func() {
			tx.Finish()
			hub.Flush(2 * time.Second)
		}()

		run := startRun(ctx, job.archivist, "Scavenge", job.logger)

		var assets int
		var runErr error

		span := tx.StartChild("fetchRatesPages")
		n, err := job.fetchRatesPages(ctx)
		span.Finish()
		assets += n
		if err != nil {
			job.logger.Warn("[Scavenge][fetchRatesPages]", "error", err)
			utils.CaptureSentryException("jobScavengeRatesError", hub, err)
			runErr = err
		}

		span = tx.StartChild("fetchMSBTables")
		n, err = job.fetchMSBTables(ctx, hub)
		span.Finish()
		assets += n
		if err != nil {
			job.logger.Warn("[Scavenge][fetchMSBTables]", "error", err)
			utils.CaptureSentryException("jobScavengeMSBError", hub, err)
			runErr = err
		}

		job.logger.Info("scavenge finished", "assets", assets)
		finishRun(ctx, job.archivist, run, 0, assets, runErr, job.logger)
	}
}

// fetchRatesPages fetches the exchange rates and domestic interest rates
// pages, once each. Returns the number of pages saved.
func (job *ScavengeJob) fetchRatesPages(ctx context.Context) (int, error) {
	var saved int

	pages := []struct {
		asset string
		fetch func(context.Context) ([]byte, error)
	}{
		{exchangeRatesStateAsset, job.scavenger.Rates.FetchExchangeRates},
		{interestRatesStateAsset, job.scavenger.Rates.FetchInterestRates},
	}

	for _, page := range pages {
		state, err := job.store.LoadState(page.asset)
		if err != nil {
			return saved, fmt.Errorf("[fetchRatesPages][LoadState] %s: %w", page.asset, err)
		}
		if state.Fetched {
			continue
		}

		job.logger.Info("fetching eservices page", "page", page.asset)

		html, err := page.fetch(ctx)
		if err != nil {
			return saved, fmt.Errorf("[fetchRatesPages][fetch] %s: %w", page.asset, err)
		}

		if err := job.store.SaveFile(page.asset+"_page", "html", html); err != nil {
			return saved, fmt.Errorf("[fetchRatesPages][SaveFile] %s: %w", page.asset, err)
		}

		// TODO: use the form tokens for postback pagination of the full history.
		if tokens := rates.ExtractViewState(string(html)); len(tokens) == 0 {
			job.logger.Warn("page carries no ASP.NET form tokens", "page", page.asset)
		}

		state.Fetched = true
		if err := job.store.SaveState(page.asset, state); err != nil {
			return saved, fmt.Errorf("[fetchRatesPages][SaveState] %s: %w", page.asset, err)
		}

		saved++
	}

	return saved, nil
}

// fetchMSBTables walks the MSB table catalog, skipping already completed
// tables. Returns the number of tables saved.
func (job *ScavengeJob) fetchMSBTables(ctx context.Context, hub *sentry.Hub) (int, error) {
	state, err := job.store.LoadState(msbStateAsset)
	if err != nil {
		return 0, fmt.Errorf("[fetchMSBTables][LoadState]: %w", err)
	}

	pending := lo.Filter(job.tables, func(t msb.Table, _ int) bool {
		return !state.IsCompleted(t.AssetName())
	})

	breadcrumb(hub, "state", fmt.Sprintf("%d of %d MSB tables pending", len(pending), len(job.tables)))
	if len(pending) == 0 {
		job.logger.Info("all MSB tables up to date")
		return 0, nil
	}

	var saved int
	for i, table := range pending {
		asset := table.AssetName()
		job.logger.Info("fetching MSB table", "table", table.ID, "progress", fmt.Sprintf("%d/%d", i+1, len(pending)))

		html, err := job.scavenger.MSB.Fetch(ctx, table)
		if err != nil {
			return saved, fmt.Errorf("[fetchMSBTables][Fetch] %s: %w", table.ID, err)
		}

		if err := job.store.SaveFile(asset, "html", html); err != nil {
			return saved, fmt.Errorf("[fetchMSBTables][SaveFile] %s: %w", asset, err)
		}

		// Sanity check that the page actually carries a data table.
		if parsed, err := msb.ParseTable(html); err != nil {
			job.logger.Warn("MSB page has no parsable table", "table", table.ID, "error", err)
		} else {
			job.logger.Debug("parsed MSB table", "table", table.ID, "rows", len(parsed.Rows))
		}

		state.MarkCompleted(asset)
		if err := job.store.SaveState(msbStateAsset, state); err != nil {
			return saved, fmt.Errorf("[fetchMSBTables][SaveState]: %w", err)
		}

		saved++
		breadcrumb(hub, "successful", fmt.Sprintf("saved MSB table %s", table.ID))

		if i < len(pending)-1 {
			if err := sleepCtx(ctx, job.options.tableDelay); err != nil {
				return saved, err
			}
		}
	}

	return saved, nil
}
