package main

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-co-op/gocron/v2"
	"github.com/subsets-io/mas-connector/archivist"
	"github.com/subsets-io/mas-connector/datagov"
	"github.com/subsets-io/mas-connector/jobs"
	"github.com/subsets-io/mas-connector/journalist"
	"github.com/subsets-io/mas-connector/notifier"
	"github.com/subsets-io/mas-connector/rawstore"
	"github.com/subsets-io/mas-connector/scavenger"
)

// App wires the connector together: the dataset API client, the eservices
// scavenger, the announcements journalist, the raw store and the database.
type App struct {
	config     *Config
	archivist  *archivist.Archivist
	store      *rawstore.Store
	client     *datagov.Client
	scavenger  *scavenger.Scavenger
	journalist *journalist.Journalist
	notifier   notifier.Notifier // nil when Telegram is not configured
	logger     *slog.Logger
}

// NewApp creates the App from the config, connecting to the database.
func NewApp(config *Config) (*App, error) {
	arch, err := archivist.NewArchivist(config.env.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("create archivist: %w", err)
	}

	// Feed order is fixed so provider errors read the same between runs.
	names := make([]string, 0, len(config.announcementFeeds))
	for name := range config.announcementFeeds {
		names = append(names, name)
	}
	sort.Strings(names)

	providers := make([]journalist.NewsProvider, 0, len(names))
	for _, name := range names {
		providers = append(providers, journalist.NewRssProvider(name, config.announcementFeeds[name]))
	}

	app := &App{
		config:     config,
		archivist:  arch,
		store:      rawstore.New(config.env.DataDir),
		client:     datagov.NewClient(),
		scavenger:  scavenger.New(),
		journalist: journalist.NewJournalist("MASAnnouncements", providers).FlagByKeys(config.suspiciousKeywords),
		logger:     slog.Default(),
	}

	if config.env.TelegramBotToken != "" && config.env.TelegramChannelID != "" {
		n, err := notifier.NewTelegramNotifier(config.env.TelegramChannelID, config.env.TelegramBotToken)
		if err != nil {
			return nil, fmt.Errorf("create telegram notifier: %w", err)
		}
		app.notifier = n
	}

	return app, nil
}

func (a *App) start() {
	datasetJob := jobs.NewDatasetJob(a.client, a.store, a.config.datasets).
		SaveToDB(a.archivist).
		ParseRates()

	scavengeJob := jobs.NewScavengeJob(a.scavenger, a.store).
		SaveToDB(a.archivist)

	newsJob := jobs.NewNewsJob(a.journalist, a.archivist).
		FetchUntil(45 * time.Minute)

	// Sentry hub for fatal errors
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelFatal)
	})
	defer hub.Flush(2 * time.Second)

	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		hub.CaptureException(err)
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(12*time.Hour),
		gocron.NewTask(datasetJob.Run()),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		hub.CaptureException(fmt.Errorf("schedule dataset job: %w", err))
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(scavengeJob.Run()),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		hub.CaptureException(fmt.Errorf("schedule scavenge job: %w", err))
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(newsJob.Run()),
	)
	if err != nil {
		hub.CaptureException(fmt.Errorf("schedule news job: %w", err))
		panic(err)
	}

	if a.notifier != nil {
		digestJob := jobs.NewDigestJob(a.archivist, a.notifier)
		_, err = s.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(7, 0, 0))),
			gocron.NewTask(digestJob.Run()),
		)
		if err != nil {
			hub.CaptureException(fmt.Errorf("schedule digest job: %w", err))
			panic(err)
		}
	} else {
		a.logger.Info("telegram notifier not configured, digest job disabled")
	}

	s.Start()
	defer func() {
		if err := s.Shutdown(); err != nil {
			a.logger.Error("scheduler shutdown", "error", err)
		}
	}()

	a.logger.Info("started mas-connector successfully", "name", a.config.env.ConnectorName)
	select {}
}
