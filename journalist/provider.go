package journalist

import (
	"context"

	"github.com/mmcdole/gofeed"
	"github.com/subsets-io/mas-connector/pkg/errlvl"
)

// NewsProvider is the interface for an announcement fetcher (via RSS, API, etc.)
type NewsProvider interface {
	Fetch(ctx context.Context) (NewsList, error)
}

// RssProvider fetches announcements from an RSS feed.
type RssProvider struct {
	Name string // Name is used for logging and provenance
	URL  string
}

// NewRssProvider creates a new RssProvider instance.
func NewRssProvider(name, url string) *RssProvider {
	return &RssProvider{
		Name: name,
		URL:  url,
	}
}

// Fetch fetches the announcements from the RSS feed.
func (r *RssProvider) Fetch(ctx context.Context) (NewsList, error) {
	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(r.URL, ctx)
	if err != nil {
		return nil, newError(errlvl.WARN, errFetchingNews, err).WithProvider(r.Name)
	}

	var news NewsList
	for _, item := range feed.Items {
		newsItem, err := NewNews(item.Title, item.Description, item.Link, item.Published, r.Name)
		if err != nil {
			return nil, err
		}
		news = append(news, newsItem)
	}

	return news, nil
}
