package journalist

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/subsets-io/mas-connector/pkg/errlvl"
	"github.com/subsets-io/mas-connector/utils"
)

// News is a single MAS announcement (media release, speech, policy statement).
type News struct {
	ID           string    // ID is the md5 hash of link + date
	Title        string    // Title of the announcement
	Description  string    // Description with HTML stripped
	Link         string    // Link to the announcement
	Date         time.Time // Publication date
	ProviderName string    // Name of the feed that carried the announcement
	IsSuspicious bool      // Announcement contains flagged keywords
}

// strictPolicy strips all HTML from feed content.
var strictPolicy = bluemonday.StrictPolicy()

// NewNews creates a News instance with sanitized content and a deterministic ID.
func NewNews(title, description, link, date, provider string) (*News, error) {
	dateTime, err := utils.ParseDate(date)
	if err != nil {
		return nil, newError(errlvl.WARN, errParseDate).WithProvider(provider)
	}

	hash := md5.Sum([]byte(link + dateTime.String()))

	return &News{
		ID:           hex.EncodeToString(hash[:]),
		Title:        strings.TrimSpace(strictPolicy.Sanitize(title)),
		Description:  strings.TrimSpace(strictPolicy.Sanitize(description)),
		Link:         link,
		Date:         dateTime,
		ProviderName: provider,
	}, nil
}

// NewsList is a list of News with filtering helpers.
type NewsList []*News

// Since returns announcements published after the given time.
func (n NewsList) Since(until time.Time) NewsList {
	var filtered NewsList
	for _, news := range n {
		if news.Date.After(until) {
			filtered = append(filtered, news)
		}
	}
	return filtered
}

// Distinct removes duplicate announcements by ID, keeping the first occurrence.
func (n NewsList) Distinct() NewsList {
	seen := make(map[string]bool, len(n))
	var distinct NewsList
	for _, news := range n {
		if !seen[news.ID] {
			seen[news.ID] = true
			distinct = append(distinct, news)
		}
	}
	return distinct
}

// FlagByKeys marks announcements whose title or description contains any of the
// given keywords (case-insensitive) as suspicious.
func (n NewsList) FlagByKeys(keys []string) NewsList {
	for _, news := range n {
		text := strings.ToLower(news.Title + " " + news.Description)
		for _, key := range keys {
			if strings.Contains(text, strings.ToLower(key)) {
				news.IsSuspicious = true
				break
			}
		}
	}
	return n
}

// SortByDateDesc sorts announcements newest first.
func (n NewsList) SortByDateDesc() NewsList {
	sort.Slice(n, func(i, j int) bool {
		return n[i].Date.After(n[j].Date)
	})
	return n
}

// Limit returns at most max announcements.
func (n NewsList) Limit(max int) NewsList {
	if max <= 0 || len(n) <= max {
		return n
	}
	return n[:max]
}
