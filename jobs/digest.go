package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/getsentry/sentry-go"
	"github.com/subsets-io/mas-connector/archivist"
	"github.com/subsets-io/mas-connector/archivist/models"
	"github.com/subsets-io/mas-connector/internal/utils"
	"github.com/subsets-io/mas-connector/notifier"
)

// DigestJob sends a daily ops summary of the ingest runs to the notifier.
type DigestJob struct {
	archivist *archivist.Archivist // database of ingest runs
	notifier  notifier.Notifier    // destination of the digest
	logger    *slog.Logger         // special logger for the job
	options   *digestJobOptions    // job options
}

type digestJobOptions struct {
	window  time.Duration // period of time the digest covers
	timeout time.Duration // timeout of a single delivery attempt
}

// NewDigestJob creates a new DigestJob instance.
func NewDigestJob(arch *archivist.Archivist, n notifier.Notifier) *DigestJob {
	return &DigestJob{
		archivist: arch,
		notifier:  n,
		logger:    slog.Default(),
		options: &digestJobOptions{
			window:  24 * time.Hour,
			timeout: 30 * time.Second,
		},
	}
}

// Window sets the period of time the digest covers.
func (job *DigestJob) Window(d time.Duration) *DigestJob {
	job.options.window = d
	return job
}

// Run returns the job function that will be executed by the scheduler.
// Delivery is retried with long pauses because a missed digest is better
// late than lost.
func (job *DigestJob) Run() JobFunc {
	return func() {
		_ = retry.Do(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), job.options.timeout)
			defer cancel()

			tx := sentry.StartTransaction(ctx, "Job.Digest")
			tx.Op = "job"

			hub, ctx := jobHub(ctx)
			defer func() {
				tx.Finish()
				hub.Flush(2 * time.Second)
			}()

			span := tx.StartChild("Runs.FindRecent")
			runs, err := job.archivist.Entities.Runs.FindRecent(ctx, time.Now().Add(-job.options.window))
			span.Finish()
			if err != nil {
				e := fmt.Errorf("[Digest][Runs.FindRecent]: %w", err)
				job.logger.Error(e.Error())
				utils.CaptureSentryException("jobDigestFindRunsError", hub, e)
				return e
			}

			breadcrumb(hub, "database", fmt.Sprintf("found %d runs in window", len(runs)))

			msg := formatDigest(runs, job.options.window)
			if err := job.notifier.Notify(msg); err != nil {
				e := fmt.Errorf("[Digest][Notify]: %w", err)
				job.logger.Error(e.Error())
				utils.CaptureSentryException("jobDigestNotifyError", hub, e)
				return e
			}

			job.logger.Info("digest sent", "runs", len(runs))
			return nil
		},
			retry.Attempts(5),
			retry.Delay(10*time.Minute),
		)
	}
}

// formatDigest renders the ingest runs into a plain text report.
func formatDigest(runs []*models.IngestRun, window time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MAS connector digest (last %s)\n", window)

	if len(runs) == 0 {
		b.WriteString("No ingest runs recorded.\n")
		return b.String()
	}

	var failed int
	for _, run := range runs {
		if run.Status == models.RunStatusFailed {
			failed++
		}
	}
	fmt.Fprintf(&b, "%d runs, %d failed\n\n", len(runs), failed)

	for _, run := range runs {
		fmt.Fprintf(&b, "%s %s: %d rows, %d assets", run.StartedAt.Format("02 Jan 15:04"), run.JobName, run.RowsFetched, run.AssetsWritten)
		if run.Status == models.RunStatusFailed {
			fmt.Fprintf(&b, " FAILED: %s", run.Error)
		}
		b.WriteString("\n")
	}

	return b.String()
}
