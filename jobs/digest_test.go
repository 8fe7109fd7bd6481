package jobs

import (
	"strings"
	"testing"
	"time"

	"github.com/subsets-io/mas-connector/archivist/models"
)

func TestFormatDigest(t *testing.T) {
	started := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		runs     []*models.IngestRun
		contains []string
	}{
		{
			name:     "no runs",
			runs:     nil,
			contains: []string{"No ingest runs recorded."},
		},
		{
			name: "successful runs",
			runs: []*models.IngestRun{
				{JobName: "DatasetSync", Status: models.RunStatusCompleted, RowsFetched: 1234, AssetsWritten: 17, StartedAt: started},
				{JobName: "Scavenge", Status: models.RunStatusCompleted, AssetsWritten: 31, StartedAt: started},
			},
			contains: []string{
				"2 runs, 0 failed",
				"DatasetSync: 1234 rows, 17 assets",
				"Scavenge: 0 rows, 31 assets",
			},
		},
		{
			name: "failed run carries the error",
			runs: []*models.IngestRun{
				{JobName: "News", Status: models.RunStatusFailed, Error: "feed unreachable", StartedAt: started},
			},
			contains: []string{
				"1 runs, 1 failed",
				"FAILED: feed unreachable",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDigest(tt.runs, 24*time.Hour)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("formatDigest() = %q, want it to contain %q", got, want)
				}
			}
		})
	}
}
