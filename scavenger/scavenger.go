// Package scavenger fetches statistics pages from the MAS eservices portal.
//
// It shouldn't be confused with the datagov client: the portal has no API, so
// the Scavenger pulls whole pages (exchange rates, domestic interest rates and
// the Monthly Statistical Bulletin history tables) and leaves the HTML intact
// for parsing.
package scavenger

import (
	"github.com/subsets-io/mas-connector/scavenger/msb"
	"github.com/subsets-io/mas-connector/scavenger/rates"
)

// Scavenger holds all available MAS eservices fetchers.
type Scavenger struct {
	MSB   *msb.Fetcher
	Rates *rates.Fetcher
}

// New creates a Scavenger with default fetchers.
func New() *Scavenger {
	return &Scavenger{
		MSB:   msb.NewFetcher(),
		Rates: rates.NewFetcher(),
	}
}
