package thirteenf

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExportCSV(t *testing.T) {
	pct := 100.0
	analysis := &Analysis{
		CIK: "1067983",
		TopHoldings: []PositionChange{
			{
				CUSIP: "12345A10", CompanyName: "ACME CORP", Ticker: "N/A",
				CurrentValue: 2000000, PreviousValue: 1000000,
				CurrentShares: 10000, PreviousShares: 5000,
				WeightCurrent: 80, WeightPrevious: 76.5, WeightChange: 3.5,
				ShareChange: 5000, ShareChangePct: &pct,
				Status: StatusChange,
			},
		},
		TopBuys: []PositionChange{
			{
				CUSIP: "99999B10", CompanyName: "NEWCO INC", Ticker: "N/A",
				CurrentValue: 500000, CurrentShares: 2000,
				WeightCurrent: 20, WeightChange: 20,
				ShareChange: 2000, ShareChangePct: nil,
				Status: StatusNew,
			},
		},
		TopSells: nil,
	}

	dir := t.TempDir()
	paths, err := ExportCSV(analysis, dir)
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 exported files, got %d", len(paths))
	}

	namePattern := regexp.MustCompile(`^cik_1067983_(holdings|buys|sells)_\d{8}_\d{6}\.csv$`)
	for _, p := range paths {
		if filepath.Dir(p) != dir {
			t.Errorf("file %s written outside export dir", p)
		}
		if !namePattern.MatchString(filepath.Base(p)) {
			t.Errorf("unexpected file name %s", filepath.Base(p))
		}
	}

	records := readCSV(t, paths[0])
	if diff := cmp.Diff(csvHeader, records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	want := []string{
		"12345A10", "ACME CORP", "N/A",
		"2000000", "1000000",
		"10000", "5000",
		"80", "76.5", "3.5",
		"5000", "100",
		"CHANGE",
	}
	if diff := cmp.Diff(want, records[1]); diff != "" {
		t.Errorf("holdings row mismatch (-want +got):\n%s", diff)
	}

	// A nil share-change percentage exports as an empty cell.
	buys := readCSV(t, paths[1])
	if got := buys[1][11]; got != "" {
		t.Errorf("expected empty share_change_pct for new position, got %q", got)
	}

	// An empty table still gets a file with just the header.
	sells := readCSV(t, paths[2])
	if len(sells) != 1 {
		t.Errorf("expected header-only sells file, got %d records", len(sells))
	}
}

func TestExportCSVCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	paths, err := ExportCSV(&Analysis{CIK: "78003"}, dir)
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 exported files, got %d", len(paths))
	}
	if _, err := os.Stat(paths[0]); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return records
}
