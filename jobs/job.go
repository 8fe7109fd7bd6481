// Package jobs holds the scheduled units of work of the connector: dataset
// syncs, eservices page scavenging, announcement monitoring and the daily
// ops digest.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/subsets-io/mas-connector/archivist"
	"github.com/subsets-io/mas-connector/archivist/models"
)

// JobFunc is a type for job function that will be executed by the scheduler.
type JobFunc func()

// jobHub returns a sentry hub bound to the context, creating one if needed.
func jobHub(ctx context.Context) (*sentry.Hub, context.Context) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
		ctx = sentry.SetHubOnContext(ctx, hub)
	}
	return hub, ctx
}

// breadcrumb adds an informational breadcrumb to the hub.
func breadcrumb(hub *sentry.Hub, category, message string) {
	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Category: category,
		Message:  message,
		Level:    sentry.LevelInfo,
	}, nil)
}

// startRun opens an IngestRun record for the job. Returns nil when the job
// runs without a database.
func startRun(ctx context.Context, arch *archivist.Archivist, jobName string, logger *slog.Logger) *models.IngestRun {
	if arch == nil {
		return nil
	}

	run := &models.IngestRun{
		JobName:   jobName,
		Status:    models.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := arch.Entities.Runs.Create(ctx, run); err != nil {
		logger.Warn("failed to record run start", "job", jobName, "error", err)
		return nil
	}

	return run
}

// finishRun closes the IngestRun record with the final counters.
func finishRun(ctx context.Context, arch *archivist.Archivist, run *models.IngestRun, rows int64, assets int, runErr error, logger *slog.Logger) {
	if arch == nil || run == nil {
		return
	}

	run.RowsFetched = rows
	run.AssetsWritten = assets
	run.FinishedAt = time.Now().UTC()
	if runErr != nil {
		run.Status = models.RunStatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = models.RunStatusCompleted
	}

	if err := arch.Entities.Runs.Update(ctx, run); err != nil {
		logger.Warn("failed to record run finish", "job", run.JobName, "error", err)
	}
}
