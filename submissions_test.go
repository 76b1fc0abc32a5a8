package thirteenf

import (
	"strings"
	"testing"
)

const submissionsFixture = `{
  "cik": "1067983",
  "name": "BERKSHIRE HATHAWAY INC",
  "filings": {
    "recent": {
      "accessionNumber": ["0000950123-25-002701", "0000950123-25-001234", "0000950123-24-009876", "0000950123-24-005555", "0000950123-24-001111"],
      "filingDate": ["2025-02-14", "2025-01-03", "2024-11-14", "2024-08-14", "2024-05-15"],
      "form": ["13F-HR", "8-K", "13F-HR/A", "13F-HR", "13F-HR"]
    }
  }
}`

func TestParseSubmissions(t *testing.T) {
	subs, err := ParseSubmissions(strings.NewReader(submissionsFixture))
	if err != nil {
		t.Fatalf("failed to parse submissions: %v", err)
	}

	if subs.CIK != "1067983" {
		t.Errorf("expected CIK 1067983, got %s", subs.CIK)
	}
	if subs.Name != "BERKSHIRE HATHAWAY INC" {
		t.Errorf("expected name BERKSHIRE HATHAWAY INC, got %s", subs.Name)
	}

	filings := subs.GetRecentFilings()
	if len(filings) != 5 {
		t.Fatalf("expected 5 filings, got %d", len(filings))
	}
	if filings[0].Form != "13F-HR" || filings[0].FilingDate != "2025-02-14" {
		t.Errorf("unexpected first filing %+v", filings[0])
	}
}

func TestGetRecentFilingsBoundsChecking(t *testing.T) {
	subs := &Submissions{}
	subs.Filings.Recent = FilingArrays{
		AccessionNumber: []string{"a", "b"},
		Form:            []string{"13F-HR"}, // shorter on purpose
	}

	filings := subs.GetRecentFilings()
	if len(filings) != 2 {
		t.Fatalf("expected 2 filings, got %d", len(filings))
	}
	if filings[1].Form != "" {
		t.Errorf("expected empty form for missing array entry, got %q", filings[1].Form)
	}
}

func TestFilterHoldingsReports(t *testing.T) {
	subs, err := ParseSubmissions(strings.NewReader(submissionsFixture))
	if err != nil {
		t.Fatalf("failed to parse submissions: %v", err)
	}

	kept := filterHoldingsReports(subs.GetRecentFilings())
	if len(kept) != 4 {
		t.Fatalf("expected 4 13F filings, got %d", len(kept))
	}
	for _, f := range kept {
		if f.Form != "13F-HR" && f.Form != "13F-HR/A" {
			t.Errorf("unexpected form %q in filtered set", f.Form)
		}
	}
	// Most recent first.
	for i := 1; i < len(kept); i++ {
		if kept[i].FilingDate > kept[i-1].FilingDate {
			t.Fatal("filtered filings not sorted by date descending")
		}
	}
	if kept[0].AccessionNumber != "0000950123-25-002701" {
		t.Errorf("unexpected newest filing %+v", kept[0])
	}
}

func TestPadCIK(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1067983", "0001067983", false},
		{"0001067983", "0001067983", false},
		{" 78003 ", "0000078003", false},
		{"not-a-cik", "", true},
	}
	for _, tt := range tests {
		got, err := padCIK(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("padCIK(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("padCIK(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCIKNumber(t *testing.T) {
	if got := cikNumber("0001067983"); got != "1067983" {
		t.Errorf("cikNumber() = %q, want 1067983", got)
	}
	if got := cikNumber("0000000000"); got != "0" {
		t.Errorf("cikNumber() = %q, want 0", got)
	}
}
