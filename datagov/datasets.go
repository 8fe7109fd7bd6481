package datagov

import (
	"context"
	"fmt"
	"time"
)

// Row is a single dataset row. Column names vary per dataset, so rows stay
// untyped until a parser picks them up.
type Row map[string]any

// Metadata is the dataset metadata document returned by the API.
// Only identifying fields are typed, the rest is preserved verbatim.
type Metadata map[string]any

// Name returns the dataset title from the metadata, if present.
func (m Metadata) Name() string {
	if name, ok := m["name"].(string); ok {
		return name
	}
	return ""
}

// Frequency returns the dataset update frequency from the metadata, if present.
func (m Metadata) Frequency() string {
	if frequency, ok := m["frequency"].(string); ok {
		return frequency
	}
	return ""
}

type metadataResponse struct {
	Data Metadata `json:"data"`
}

type listRowsResponse struct {
	Data struct {
		Rows  []Row `json:"rows"`
		Links struct {
			Next string `json:"next"`
		} `json:"links"`
	} `json:"data"`
}

// GetMetadata fetches the metadata document of a dataset.
func (c *Client) GetMetadata(ctx context.Context, datasetID string) (Metadata, error) {
	var resp metadataResponse
	url := fmt.Sprintf("%s/%s/metadata", c.baseURL, datasetID)
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("get metadata %s: %w", datasetID, err)
	}

	return resp.Data, nil
}

// ListRows fetches a single page of rows. The cursor is the opaque query
// fragment from the previous page's next link; empty for the first page.
// Returns the rows and the cursor of the next page ("" on the last page).
func (c *Client) ListRows(ctx context.Context, datasetID string, limit int, cursor string) ([]Row, string, error) {
	url := fmt.Sprintf("%s/%s/list-rows?limit=%d", c.baseURL, datasetID, limit)
	if cursor != "" {
		url = url + "&" + cursor
	}

	var resp listRowsResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, "", fmt.Errorf("list rows %s: %w", datasetID, err)
	}

	return resp.Data.Rows, resp.Data.Links.Next, nil
}

// StreamRows fetches all rows starting from the given cursor and hands each
// page to fn. Used for datasets too large to accumulate in memory.
func (c *Client) StreamRows(ctx context.Context, datasetID, cursor string, fn func(rows []Row) error) error {
	for {
		rows, next, err := c.ListRows(ctx, datasetID, PageLimit, cursor)
		if err != nil {
			return err
		}

		if len(rows) > 0 {
			if err := fn(rows); err != nil {
				return err
			}
		}

		if next == "" || len(rows) == 0 {
			return nil
		}
		cursor = next

		if err := c.sleep(ctx, c.pageDelay); err != nil {
			return err
		}
	}
}

// sleep waits for the given duration unless the context ends first.
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

const (
	// PageLimit is the page size used for cursor pagination.
	PageLimit = 1000

	// StreamThreshold is the probe size that decides between accumulating a
	// dataset in memory and streaming it to disk. If the first batch fills the
	// threshold and a cursor remains, the dataset is considered large.
	StreamThreshold = 50000
)
