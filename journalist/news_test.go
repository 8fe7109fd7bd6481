package journalist

import (
	"testing"
	"time"
)

func TestNewNews(t *testing.T) {
	type args struct {
		title       string
		description string
		link        string
		date        string
		provider    string
	}
	tests := []struct {
		name      string
		args      args
		wantTitle string
		wantDesc  string
		wantDate  time.Time
		wantErr   bool
	}{
		{
			name: "valid announcement",
			args: args{
				title:       "MAS Monetary Policy Statement",
				description: "The Monetary Authority of Singapore will maintain the prevailing rate of appreciation.",
				link:        "https://www.mas.gov.sg/news/monetary-policy-statements/2024/mps-jan",
				date:        "Mon, 29 Jan 2024 08:00:00 UTC",
				provider:    "mas:media-releases",
			},
			wantTitle: "MAS Monetary Policy Statement",
			wantDesc:  "The Monetary Authority of Singapore will maintain the prevailing rate of appreciation.",
			wantDate:  time.Date(2024, 1, 29, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "html tags are stripped",
			args: args{
				title:       "SORA <i>update</i>",
				description: "New <b>benchmark</b> rates <a href=\"x\">published</a>",
				link:        "https://www.mas.gov.sg/news/sora",
				date:        "Mon, 29 Jan 2024 08:00:00 UTC",
				provider:    "mas:media-releases",
			},
			wantTitle: "SORA update",
			wantDesc:  "New benchmark rates published",
			wantDate:  time.Date(2024, 1, 29, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "invalid date",
			args: args{
				title:    "title",
				link:     "https://www.mas.gov.sg/news/x",
				date:     "tomorrow-ish",
				provider: "mas:media-releases",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewNews(tt.args.title, tt.args.description, tt.args.link, tt.args.date, tt.args.provider)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewNews() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", got.Description, tt.wantDesc)
			}
			if !got.Date.Equal(tt.wantDate) {
				t.Errorf("Date = %v, want %v", got.Date, tt.wantDate)
			}
			if len(got.ID) != 32 {
				t.Errorf("ID = %q, want 32 hex chars", got.ID)
			}

			// The ID must be deterministic for the same link and date
			again, err := NewNews(tt.args.title, tt.args.description, tt.args.link, tt.args.date, tt.args.provider)
			if err != nil {
				t.Fatalf("NewNews() second call error = %v", err)
			}
			if got.ID != again.ID {
				t.Errorf("ID is not deterministic: %q != %q", got.ID, again.ID)
			}
		})
	}
}

func TestNewsList_Helpers(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	list := NewsList{
		{ID: "a", Title: "MAS launches new subscribe promo", Date: day(1)},
		{ID: "b", Title: "Money Supply statistics released", Date: day(3)},
		{ID: "b", Title: "Money Supply statistics released", Date: day(3)},
		{ID: "c", Title: "SORA benchmark update", Date: day(2)},
	}

	got := list.
		Since(day(1)).
		Distinct().
		FlagByKeys([]string{"subscribe"}).
		SortByDateDesc()

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("order = [%s %s], want [b c]", got[0].ID, got[1].ID)
	}
	for _, n := range got {
		if n.IsSuspicious {
			t.Errorf("news %s flagged unexpectedly", n.ID)
		}
	}

	flagged := NewsList{{ID: "d", Title: "Please Subscribe now", Date: day(5)}}.FlagByKeys([]string{"subscribe"})
	if !flagged[0].IsSuspicious {
		t.Error("expected keyword flagging to be case-insensitive")
	}

	limited := got.Limit(1)
	if len(limited) != 1 || limited[0].ID != "b" {
		t.Errorf("Limit(1) = %v", limited)
	}
}
