package main

// Env is a structure that holds all the environment variables that are used in the app.
type Env struct {
	PostgresDSN       string `mapstructure:"POSTGRES_DSN" validate:"required"`
	SentryDSN         string `mapstructure:"SENTRY_DSN" validate:"required"`
	DataDir           string `mapstructure:"DATA_DIR"`
	TelegramBotToken  string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChannelID string `mapstructure:"TELEGRAM_CHANNEL_ID"`
	ConnectorName     string `mapstructure:"CONNECTOR_NAME"`
}

type Config struct {
	env                *Env              // Holds all the environment variables that are used in the app
	datasets           map[string]string // data.gov.sg catalog: local dataset name -> dataset ID
	announcementFeeds  map[string]string // MAS RSS feeds: provider name -> feed URL
	suspiciousKeywords []string          // Used to "flag" suspicious announcements by the journalist.Journalist
}

// NewConfig creates a new Config object with the given Env and default values from DefaultConfig.
func NewConfig(env *Env) *Config {
	c := DefaultConfig()
	c.env = env
	return c
}

// DefaultConfig creates a new Config object with default values.
func DefaultConfig() *Config {
	return &Config{
		env: &Env{},
		// MAS and MAS-sourced datasets on data.gov.sg
		datasets: map[string]string{
			// Exchange rates (MAS)
			"exchange_rates_usd_daily":  "d_046ff8d521a218d9178178cfbfc45c2c",
			"exchange_rates_usd_annual": "d_6cb7c12d5f25f0a04e70657dfebcb514",

			// Exchange rates (SINGSTAT, sourced from MAS)
			"exchange_rates_avg_annual":      "d_b09aeaf8eb591c4bfe347b66148c6b53",
			"exchange_rates_avg_monthly":     "d_b2b7ffe00aaec3936ed379369fdf531b",
			"exchange_rates_avg_monthly_alt": "d_3c62d5eed03c40aeafbb6d0fa324e976",

			// Interest rates
			"bank_interest_rates_monthly": "d_5fe5a4bb4a1ecc4d8a56a095832e2b24",

			// Money supply
			"money_supply_monthly":            "d_7ed3eccba609ac0bdfcf406d939bdb0b",
			"money_supply_historical_monthly": "d_4c6bd8b2c4aa7041a31f3ed0cd122c47",

			// Currency
			"currency_in_circulation_monthly": "d_10036483fced016b239ce7d2ab175125",

			// Commercial banks, loans
			"commercial_banks_loans_quarterly": "d_0396bc943075a37d44c720ceb5be660a",
			"commercial_banks_loans_monthly":   "d_af0415517a3a3a94b3b74039934ef976",
			"total_loans_non_bank_customers":   "d_c2e116320c9d36f6ea6cdd82fb763de2",

			// Finance companies
			"finance_companies_loans_monthly": "d_4f73f4471a84f944ed37b651a8227ad8",

			// Foreign exchange market
			"fx_market_turnover_monthly": "d_6dd6162d59737d67edfb35026dfd58c2",

			// Government debt
			"govt_debt_by_maturity_annual":   "d_fd4b8728cb059c04fc0322199f4b2696",
			"govt_debt_by_instrument_annual": "d_d4f7c9d15692b3c08aa9bc8bc56c0a72",

			// Credit cards
			"credit_charge_cards_annual": "d_b40deadbdc470e97b9e16de99c5e6ee2",
		},
		announcementFeeds: map[string]string{
			"mas:media-releases": "https://www.mas.gov.sg/rss/api/media-releases",
			"mas:speeches":       "https://www.mas.gov.sg/rss/api/speeches",
			"mas:regulations":    "https://www.mas.gov.sg/rss/api/regulation",
		},
		suspiciousKeywords: []string{
			"sign up",
			"subscribe",
			"webinar",
			"career",
			"careers",
			"recruitment",
			"phishing",
			"scam",
			"survey",
			"tender",
			"feedback",
		},
	}
}
