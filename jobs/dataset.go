package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/samber/lo"
	"github.com/subsets-io/mas-connector/archivist"
	"github.com/subsets-io/mas-connector/archivist/models"
	"github.com/subsets-io/mas-connector/datagov"
	"github.com/subsets-io/mas-connector/internal/utils"
	"github.com/subsets-io/mas-connector/rawstore"
)

const datasetStateAsset = "datagovsg"

// DatasetJob syncs the catalogued MAS datasets from the data.gov.sg API into
// the raw store, and optionally into the database.
type DatasetJob struct {
	client    *datagov.Client      // dataset API client
	store     *rawstore.Store      // raw payload and state persistence
	archivist *archivist.Archivist // database bookkeeping (optional)
	catalog   map[string]string    // local dataset name -> data.gov.sg dataset ID
	logger    *slog.Logger         // special logger for the job
	options   *datasetJobOptions   // job options
}

type datasetJobOptions struct {
	shouldSaveToDB  bool          // if true, will upsert dataset bookkeeping rows
	shouldParse     bool          // if true, will parse known series into rate points. Note: requires shouldSaveToDB
	datasetDelay    time.Duration // politeness delay between datasets
	timeout         time.Duration // overall run timeout
	streamThreshold int           // first-batch size that switches to streaming
}

// NewDatasetJob creates a new DatasetJob instance.
func NewDatasetJob(client *datagov.Client, store *rawstore.Store, catalog map[string]string) *DatasetJob {
	return &DatasetJob{
		client:  client,
		store:   store,
		catalog: catalog,
		logger:  slog.Default(),
		options: &datasetJobOptions{
			datasetDelay:    500 * time.Millisecond,
			timeout:         30 * time.Minute,
			streamThreshold: datagov.StreamThreshold,
		},
	}
}

// SaveToDB sets the archivist that will keep dataset bookkeeping rows.
func (job *DatasetJob) SaveToDB(arch *archivist.Archivist) *DatasetJob {
	job.archivist = arch
	job.options.shouldSaveToDB = true
	return job
}

// ParseRates enables parsing of known rate series into observations.
// Note: requires SaveToDB to be set.
func (job *DatasetJob) ParseRates() *DatasetJob {
	job.options.shouldParse = true
	return job
}

// DatasetDelay overrides the politeness delay between datasets.
func (job *DatasetJob) DatasetDelay(d time.Duration) *DatasetJob {
	job.options.datasetDelay = d
	return job
}

// StreamThreshold overrides the streaming threshold.
func (job *DatasetJob) StreamThreshold(n int) *DatasetJob {
	job.options.streamThreshold = n
	return job
}

// Run returns the job function that will be executed by the scheduler.
func (job *DatasetJob) Run() JobFunc {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), job.options.timeout)
		defer cancel()

		tx := sentry.StartTransaction(ctx, "Job.DatasetSync")
		tx.Op = "job"

		hub, ctx := jobHub(ctx)
		defer func() {
			tx.Finish()
			hub.Flush(2 * time.Second)
		}()

		run := startRun(ctx, job.archivist, "DatasetSync", job.logger)

		state, err := job.store.LoadState(datasetStateAsset)
		if err != nil {
			job.logger.Error("[DatasetSync][LoadState]", "error", err)
			utils.CaptureSentryException("jobDatasetLoadStateError", hub, err)
			finishRun(ctx, job.archivist, run, 0, 0, err, job.logger)
			return
		}

		names := lo.Keys(job.catalog)
		sort.Strings(names)
		pending := lo.Filter(names, func(name string, _ int) bool {
			return !state.IsCompleted(name)
		})

		breadcrumb(hub, "state", fmt.Sprintf("%d of %d datasets pending", len(pending), len(names)))
		if len(pending) == 0 {
			job.logger.Info("all data.gov.sg datasets up to date")
			finishRun(ctx, job.archivist, run, 0, 0, nil, job.logger)
			return
		}

		job.logger.Info("fetching datasets from data.gov.sg", "pending", len(pending))

		var totalRows int64
		var assets int
		var runErr error

		for i, name := range pending {
			datasetID := job.catalog[name]
			job.logger.Info("fetching dataset", "name", name, "progress", fmt.Sprintf("%d/%d", i+1, len(pending)))

			span := tx.StartChild("syncDataset")
			span.SetTag("dataset", name)
			rows, err := job.syncDataset(ctx, name, datasetID)
			span.Finish()
			if err != nil {
				job.logger.Warn("[DatasetSync][syncDataset]", "dataset", name, "error", err)
				utils.CaptureSentryException("jobDatasetSyncError", hub, err)
				runErr = err
				break
			}

			totalRows += rows
			assets++

			state.MarkCompleted(name)
			if err := job.store.SaveState(datasetStateAsset, state); err != nil {
				job.logger.Error("[DatasetSync][SaveState]", "error", err)
				utils.CaptureSentryException("jobDatasetSaveStateError", hub, err)
				runErr = err
				break
			}

			breadcrumb(hub, "successful", fmt.Sprintf("synced %s (%d rows)", name, rows))

			if i < len(pending)-1 {
				if err := sleepCtx(ctx, job.options.datasetDelay); err != nil {
					runErr = err
					break
				}
			}
		}

		job.logger.Info("dataset sync finished", "completed", len(state.Completed), "total", len(names))
		finishRun(ctx, job.archivist, run, totalRows, assets, runErr, job.logger)
	}
}

// syncDataset fetches one dataset and persists it. Returns the row count.
func (job *DatasetJob) syncDataset(ctx context.Context, name, datasetID string) (int64, error) {
	metadata, err := job.client.GetMetadata(ctx, datasetID)
	if err != nil {
		return 0, fmt.Errorf("[syncDataset][GetMetadata]: %w", err)
	}

	// Probe with the streaming threshold to decide between accumulating in
	// memory and streaming to disk.
	firstBatch, cursor, err := job.client.ListRows(ctx, datasetID, job.options.streamThreshold, "")
	if err != nil {
		return 0, fmt.Errorf("[syncDataset][ListRows]: %w", err)
	}

	var rows int64
	if cursor != "" && len(firstBatch) >= job.options.streamThreshold {
		rows, err = job.streamDataset(ctx, name, datasetID, firstBatch, cursor, metadata)
	} else {
		rows, err = job.saveDataset(ctx, name, datasetID, firstBatch, cursor, metadata)
	}
	if err != nil {
		return 0, err
	}

	if job.options.shouldSaveToDB {
		if err := job.upsertDataset(ctx, name, datasetID, rows, metadata); err != nil {
			return rows, err
		}
	}

	return rows, nil
}

// streamDataset streams a large dataset to gzip NDJSON, metadata to a sidecar file.
func (job *DatasetJob) streamDataset(ctx context.Context, name, datasetID string, firstBatch []datagov.Row, cursor string, metadata datagov.Metadata) (int64, error) {
	job.logger.Info("large dataset detected, streaming to NDJSON", "name", name)

	w, err := job.store.NewStreamWriter(name)
	if err != nil {
		return 0, fmt.Errorf("[streamDataset][NewStreamWriter]: %w", err)
	}
	defer w.Close()

	for _, row := range firstBatch {
		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("[streamDataset][Write]: %w", err)
		}
	}

	err = job.client.StreamRows(ctx, datasetID, cursor, func(page []datagov.Row) error {
		for _, row := range page {
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("[streamDataset][StreamRows]: %w", err)
	}

	if err := job.store.SaveJSON(name+"_metadata", metadata); err != nil {
		return 0, fmt.Errorf("[streamDataset][SaveJSON] metadata: %w", err)
	}

	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("[streamDataset][Close]: %w", err)
	}

	return int64(w.Rows()), nil
}

// saveDataset accumulates a small dataset in memory and saves it as one JSON document.
func (job *DatasetJob) saveDataset(ctx context.Context, name, datasetID string, firstBatch []datagov.Row, cursor string, metadata datagov.Metadata) (int64, error) {
	allRows := firstBatch

	// The probe may have returned everything already; only continue paginating
	// when the source handed back a cursor.
	if cursor != "" {
		err := job.client.StreamRows(ctx, datasetID, cursor, func(page []datagov.Row) error {
			allRows = append(allRows, page...)
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("[saveDataset][StreamRows]: %w", err)
		}
	}

	doc := map[string]any{
		"metadata": metadata,
		"rows":     allRows,
	}
	if err := job.store.SaveJSON(name, doc); err != nil {
		return 0, fmt.Errorf("[saveDataset][SaveJSON]: %w", err)
	}

	if job.options.shouldParse {
		if err := job.parseRates(ctx, name, allRows); err != nil {
			return 0, err
		}
	}

	return int64(len(allRows)), nil
}

// upsertDataset keeps the catalog row of the dataset current.
func (job *DatasetJob) upsertDataset(ctx context.Context, name, datasetID string, rows int64, metadata datagov.Metadata) error {
	dataset, err := datasetRecord(name, datasetID, rows, metadata)
	if err != nil {
		return err
	}

	if err := job.archivist.Entities.Datasets.Upsert(ctx, dataset); err != nil {
		return fmt.Errorf("[upsertDataset][Datasets.Upsert]: %w", err)
	}

	return nil
}

// datasetRecord builds the catalog row for a synced dataset.
func datasetRecord(name, datasetID string, rows int64, metadata datagov.Metadata) (*models.Dataset, error) {
	meta, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("[datasetRecord][json.Marshal] metadata: %w", err)
	}

	return &models.Dataset{
		Name:         name,
		SourceID:     datasetID,
		Title:        metadata.Name(),
		Frequency:    metadata.Frequency(),
		RowCount:     rows,
		Metadata:     meta,
		LastSyncedAt: time.Now().UTC(),
	}, nil
}

// parseRates stores typed observations for datasets with a known row schema.
func (job *DatasetJob) parseRates(ctx context.Context, name string, rows []datagov.Row) error {
	if job.archivist == nil {
		job.logger.Warn("rate parsing needs a database, skipping", "dataset", name)
		return nil
	}

	schema, ok := rateSchemas[name]
	if !ok {
		return nil
	}

	points := parseRatePoints(name, schema, rows)
	if len(points) == 0 {
		return nil
	}

	if err := job.archivist.Entities.RatePoints.CreateBatch(ctx, points); err != nil {
		return fmt.Errorf("[parseRates][RatePoints.CreateBatch]: %w", err)
	}

	job.logger.Info("parsed rate observations", "dataset", name, "points", len(points))
	return nil
}

// sleepCtx waits for the given duration unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
