// Package journalist monitors MAS announcement feeds (media releases, speeches,
// monetary policy statements) so that series consumers can see publications
// affecting the statistics the connector ingests.
package journalist

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/subsets-io/mas-connector/pkg/errlvl"
	"golang.org/x/sync/errgroup"
)

// Journalist fetches announcements from all its providers.
type Journalist struct {
	Name      string // Name of the journalist, used for logging
	providers []NewsProvider
	flagKeys  []string
	limit     int
}

// NewJournalist creates a new Journalist instance.
func NewJournalist(name string, providers []NewsProvider) *Journalist {
	return &Journalist{
		Name:      name,
		providers: providers,
	}
}

// FlagByKeys sets the keywords that mark an announcement as suspicious.
func (j *Journalist) FlagByKeys(keys []string) *Journalist {
	j.flagKeys = keys
	return j
}

// Limit sets the maximum number of announcements returned per fetch.
func (j *Journalist) Limit(limit int) *Journalist {
	j.limit = limit
	return j
}

// GetLatestNews fetches announcements from all providers in parallel and
// returns the distinct ones published after the until date, newest first.
//
// A failing provider does not discard the results of the others: the fetched
// announcements are returned together with the joined provider errors.
func (j *Journalist) GetLatestNews(ctx context.Context, until time.Time) (NewsList, error) {
	var (
		mu       sync.Mutex
		allNews  NewsList
		provErrs []error
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, provider := range j.providers {
		provider := provider
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					provErrs = append(provErrs, newError(errlvl.ERROR, errPanicGetLatestNews))
					mu.Unlock()
				}
			}()

			news, err := provider.Fetch(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				provErrs = append(provErrs, err)
				return nil
			}
			allNews = append(allNews, news...)
			return nil
		})
	}
	_ = g.Wait()

	result := allNews.
		Since(until).
		Distinct().
		FlagByKeys(j.flagKeys).
		SortByDateDesc().
		Limit(j.limit)

	return result, errors.Join(provErrs...)
}
