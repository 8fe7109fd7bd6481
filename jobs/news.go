package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/samber/lo"
	"github.com/subsets-io/mas-connector/archivist"
	"github.com/subsets-io/mas-connector/archivist/models"
	"github.com/subsets-io/mas-connector/internal/utils"
	"github.com/subsets-io/mas-connector/journalist"
)

// NewsJob monitors the MAS announcement feeds and stores new entries.
type NewsJob struct {
	journalist *journalist.Journalist // announcements aggregator
	archivist  *archivist.Archivist   // database of announcements
	logger     *slog.Logger           // special logger for the job
	options    *newsJobOptions        // job options
}

type newsJobOptions struct {
	until   time.Duration // window of time to look back for announcements
	timeout time.Duration // overall run timeout
}

// NewNewsJob creates a new NewsJob instance.
func NewNewsJob(j *journalist.Journalist, arch *archivist.Archivist) *NewsJob {
	return &NewsJob{
		journalist: j,
		archivist:  arch,
		logger:     slog.Default(),
		options: &newsJobOptions{
			until:   time.Hour,
			timeout: 5 * time.Minute,
		},
	}
}

// FetchUntil sets the window of time to look back for announcements.
func (job *NewsJob) FetchUntil(d time.Duration) *NewsJob {
	job.options.until = d
	return job
}

// Run returns the job function that will be executed by the scheduler.
func (job *NewsJob) Run() JobFunc {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), job.options.timeout)
		defer cancel()

		tx := sentry.StartTransaction(ctx, "Job.News")
		tx.Op = "job"

		hub, ctx := jobHub(ctx)
		defer func() {
			tx.Finish()
			hub.Flush(2 * time.Second)
		}()

		run := startRun(ctx, job.archivist, "News", job.logger)

		span := tx.StartChild("GetLatestNews")
		news, err := job.journalist.GetLatestNews(ctx, time.Now().Add(-job.options.until))
		span.Finish()
		if err != nil {
			// Partial results are still usable, so log and carry on.
			job.logger.Warn("[News][GetLatestNews]", "error", err)
			utils.CaptureSentryException("jobNewsFetchError", hub, err)
		}

		breadcrumb(hub, "fetched", fmt.Sprintf("%d announcements in window", len(news)))
		if len(news) == 0 {
			finishRun(ctx, job.archivist, run, 0, 0, err, job.logger)
			return
		}

		span = tx.StartChild("saveAnnouncements")
		saved, saveErr := job.saveAnnouncements(ctx, news)
		span.Finish()
		if saveErr != nil {
			job.logger.Error("[News][saveAnnouncements]", "error", saveErr)
			utils.CaptureSentryException("jobNewsSaveError", hub, saveErr)
			finishRun(ctx, job.archivist, run, int64(len(news)), 0, saveErr, job.logger)
			return
		}

		job.logger.Info("announcements job finished", "fetched", len(news), "new", saved)
		finishRun(ctx, job.archivist, run, int64(len(news)), saved, err, job.logger)
	}
}

// saveAnnouncements stores announcements that are not in the database yet.
// Returns the number of newly stored entries.
func (job *NewsJob) saveAnnouncements(ctx context.Context, news journalist.NewsList) (int, error) {
	candidates := lo.Map(news, func(n *journalist.News, _ int) *models.Announcement {
		a := &models.Announcement{
			ProviderName: n.ProviderName,
			Title:        n.Title,
			Description:  n.Description,
			URL:          n.Link,
			IsSuspicious: n.IsSuspicious,
			PublishedAt:  n.Date,
		}
		a.GenerateHash()
		return a
	})

	hashes := lo.Map(candidates, func(a *models.Announcement, _ int) string {
		return a.Hash
	})

	existing, err := job.archivist.Entities.Announcements.FindAllByHashes(ctx, hashes)
	if err != nil {
		return 0, fmt.Errorf("[saveAnnouncements][FindAllByHashes]: %w", err)
	}

	known := lo.SliceToMap(existing, func(a *models.Announcement) (string, struct{}) {
		return a.Hash, struct{}{}
	})

	fresh := lo.Filter(candidates, func(a *models.Announcement, _ int) bool {
		_, ok := known[a.Hash]
		return !ok
	})
	if len(fresh) == 0 {
		return 0, nil
	}

	if err := job.archivist.Entities.Announcements.Create(ctx, fresh); err != nil {
		return 0, fmt.Errorf("[saveAnnouncements][Create]: %w", err)
	}

	return len(fresh), nil
}
