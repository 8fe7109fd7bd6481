package models

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestAnnouncement_BeforeCreate(t *testing.T) {
	tests := []struct {
		name    string
		fields  Announcement
		wantErr bool
	}{
		{
			name: "valid announcement",
			fields: Announcement{
				ProviderName: "mas:media-releases",
				URL:          "https://www.mas.gov.sg/news/media-releases/2024/example",
				Title:        "MAS Monetary Policy Statement",
				Description:  "Statement description",
				PublishedAt:  time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing url",
			fields: Announcement{
				ProviderName: "mas:media-releases",
				Title:        "Title",
				PublishedAt:  time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing published date",
			fields: Announcement{
				ProviderName: "mas:media-releases",
				URL:          "https://www.mas.gov.sg/news/x",
				Title:        "Title",
			},
			wantErr: true,
		},
		{
			name: "oversized description is truncated",
			fields: Announcement{
				ProviderName: "mas:media-releases",
				URL:          "https://www.mas.gov.sg/news/y",
				Title:        "Title",
				Description:  strings.Repeat("a", 2000),
				PublishedAt:  time.Now(),
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fields.BeforeCreate(&gorm.DB{}); (err != nil) != tt.wantErr {
				t.Errorf("BeforeCreate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(tt.fields.Description) > 1024 {
				t.Errorf("Description not truncated, len = %d", len(tt.fields.Description))
			}
		})
	}
}

func TestAnnouncement_GenerateHash(t *testing.T) {
	a := Announcement{
		URL:         "https://www.mas.gov.sg/news/media-releases/2024/example",
		PublishedAt: time.Date(2024, 1, 29, 8, 0, 0, 0, time.UTC),
	}
	a.GenerateHash()

	want := md5.Sum([]byte(a.URL + a.PublishedAt.String()))
	if a.Hash != hex.EncodeToString(want[:]) {
		t.Errorf("GenerateHash() = %v, want %v", a.Hash, hex.EncodeToString(want[:]))
	}
}

func TestDataset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fields  Dataset
		wantErr bool
	}{
		{
			name:    "valid dataset",
			fields:  Dataset{Name: "exchange_rates_usd_daily", SourceID: "d_046ff8d521a218d9178178cfbfc45c2c"},
			wantErr: false,
		},
		{
			name:    "empty name",
			fields:  Dataset{SourceID: "d_123"},
			wantErr: true,
		},
		{
			name:    "name too long",
			fields:  Dataset{Name: strings.Repeat("x", 65)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fields.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRatePoint_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fields  RatePoint
		wantErr bool
	}{
		{
			name:    "valid point",
			fields:  RatePoint{Series: "usd_sgd", Date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Value: 1.3421},
			wantErr: false,
		},
		{
			name:    "empty series",
			fields:  RatePoint{Date: time.Now()},
			wantErr: true,
		},
		{
			name:    "zero date",
			fields:  RatePoint{Series: "usd_sgd"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fields.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIngestRun_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fields  IngestRun
		wantErr bool
	}{
		{name: "valid run", fields: IngestRun{JobName: "DatasetSync", Status: RunStatusRunning}},
		{name: "missing job name", fields: IngestRun{Status: RunStatusCompleted}, wantErr: true},
		{name: "unknown status", fields: IngestRun{JobName: "DatasetSync", Status: "paused"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fields.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
