package rawstore

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"os"
	"reflect"
	"testing"
)

func TestStore_SaveLoadJSON(t *testing.T) {
	s := New(t.TempDir())

	type doc struct {
		Name string `json:"name"`
		Rows int    `json:"rows"`
	}

	want := doc{Name: "money_supply_monthly", Rows: 42}
	if err := s.SaveJSON("money_supply_monthly", want); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}

	var got doc
	if err := s.LoadJSON("money_supply_monthly", &got); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadJSON() = %v, want %v", got, want)
	}
}

func TestStore_SaveFile(t *testing.T) {
	s := New(t.TempDir())

	if err := s.SaveFile("msb_I_1", "html", []byte("<html></html>")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	got, err := s.LoadFile("msb_I_1", "html")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if string(got) != "<html></html>" {
		t.Errorf("LoadFile() = %q, want %q", got, "<html></html>")
	}

	names, err := s.ListRaw()
	if err != nil {
		t.Fatalf("ListRaw() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"msb_I_1.html"}) {
		t.Errorf("ListRaw() = %v", names)
	}
}

func TestStore_State(t *testing.T) {
	s := New(t.TempDir())

	// Missing state loads as empty
	st, err := s.LoadState("datagovsg")
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if st.IsCompleted("anything") || st.Fetched {
		t.Errorf("LoadState() on missing file = %+v, want empty state", st)
	}

	st.MarkCompleted("exchange_rates_usd_daily")
	st.MarkCompleted("exchange_rates_usd_daily") // idempotent
	if err := s.SaveState("datagovsg", st); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	loaded, err := s.LoadState("datagovsg")
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if !loaded.IsCompleted("exchange_rates_usd_daily") {
		t.Error("LoadState() lost completed entry")
	}
	if len(loaded.Completed) != 1 {
		t.Errorf("Completed = %v, want single entry", loaded.Completed)
	}
}

func TestStreamWriter(t *testing.T) {
	s := New(t.TempDir())

	w, err := s.NewStreamWriter("commercial_banks_loans_monthly")
	if err != nil {
		t.Fatalf("NewStreamWriter() error = %v", err)
	}

	rows := []map[string]any{
		{"month": "2024-01", "loans": "812345.6"},
		{"month": "2024-02", "loans": "815000.1"},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if w.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", w.Rows())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Decode the stream back
	file, err := os.Open(s.RawPath("commercial_banks_loans_monthly", "ndjson.gz"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}

	var got []map[string]any
	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		var row map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		got = append(got, row)
	}

	if !reflect.DeepEqual(got, rows) {
		t.Errorf("stream rows = %v, want %v", got, rows)
	}
}
