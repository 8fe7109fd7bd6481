package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "daily value",
			value: "2024-01-31",
			want:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "monthly value",
			value: "2024-01",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "monthly value with name",
			value: "2024 Jan",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "quarterly value",
			value: "2024-Q3",
			want:  time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "quarterly value with space",
			value: "2024 Q1",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "annual value",
			value: "2024",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "full timestamp",
			value: "2024-01-31T15:04:05",
			want:  time.Date(2024, 1, 31, 15, 4, 5, 0, time.UTC),
		},
		{
			name:  "rss date",
			value: "Mon, 02 Jan 2006 15:04:05 UTC",
			want:  time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC),
		},
		{
			name:  "empty value",
			value: "",
			want:  time.Time{},
		},
		{
			name:    "garbage value",
			value:   "not-a-date",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   float64
		wantOk bool
	}{
		{name: "plain value", value: "1.3520", want: 1.3520, wantOk: true},
		{name: "thousands separators", value: "12,345.6", want: 12345.6, wantOk: true},
		{name: "negative in parentheses", value: "(42.5)", want: -42.5, wantOk: true},
		{name: "missing na", value: "na", wantOk: false},
		{name: "missing dash", value: "-", wantOk: false},
		{name: "empty", value: "", wantOk: false},
		{name: "garbage", value: "abc", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseValue(tt.value)
			if ok != tt.wantOk {
				t.Errorf("ParseValue() ok = %v, wantOk %v", ok, tt.wantOk)
				return
			}
			if got != tt.want {
				t.Errorf("ParseValue() = %v, want %v", got, tt.want)
			}
		})
	}
}
