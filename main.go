package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func main() {
	env, err := loadEnv()
	if err != nil {
		slog.Error("failed to load environment", "error", err)
		os.Exit(1)
	}

	err = sentry.Init(sentry.ClientOptions{
		Dsn:              env.SentryDSN,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		slog.Error("failed to initialize sentry", "error", err)
		os.Exit(1)
	}
	defer sentry.Flush(2 * time.Second)

	app, err := NewApp(NewConfig(env))
	if err != nil {
		slog.Error("failed to create app", "error", err)
		sentry.CaptureException(err)
		os.Exit(1)
	}

	app.start()
}

// loadEnv reads the environment into an Env struct and validates it.
func loadEnv() (*Env, error) {
	viper.AutomaticEnv()
	keys := []string{
		"POSTGRES_DSN",
		"SENTRY_DSN",
		"DATA_DIR",
		"TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHANNEL_ID",
		"CONNECTOR_NAME",
	}
	for _, key := range keys {
		if err := viper.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("CONNECTOR_NAME", "mas-connector")

	var env Env
	if err := viper.Unmarshal(&env); err != nil {
		return nil, fmt.Errorf("unmarshal environment: %w", err)
	}

	if err := validator.New().Struct(&env); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	return &env, nil
}
