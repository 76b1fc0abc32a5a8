package thirteenf

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Submissions is the slice of the SEC submissions JSON this package needs:
// entity identity plus the recent-filings parallel arrays.
type Submissions struct {
	CIK     string      `json:"cik"`
	Name    string      `json:"name"`
	Filings FilingsData `json:"filings"`
}

// FilingsData contains the recent filings block.
type FilingsData struct {
	Recent FilingArrays `json:"recent"`
}

// FilingArrays contains parallel arrays of filing data.
// Each index in the arrays represents one filing.
type FilingArrays struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
}

// Filing is a single filing from the submissions index.
type Filing struct {
	Form            string
	AccessionNumber string
	FilingDate      string
}

// ParseSubmissions parses a submissions JSON from a reader (for local files
// or testing).
func ParseSubmissions(r io.Reader) (*Submissions, error) {
	var subs Submissions
	if err := json.NewDecoder(r).Decode(&subs); err != nil {
		return nil, fmt.Errorf("failed to parse submissions JSON: %w", err)
	}
	return &subs, nil
}

// GetRecentFilings converts the parallel arrays into a slice of Filing
// structs, with bounds checking on the optional arrays.
func (s *Submissions) GetRecentFilings() []Filing {
	fa := s.Filings.Recent
	count := len(fa.AccessionNumber)
	filings := make([]Filing, count)
	for i := 0; i < count; i++ {
		filings[i] = Filing{AccessionNumber: fa.AccessionNumber[i]}
		if i < len(fa.Form) {
			filings[i].Form = fa.Form[i]
		}
		if i < len(fa.FilingDate) {
			filings[i].FilingDate = fa.FilingDate[i]
		}
	}
	return filings
}

// filterHoldingsReports keeps 13F-HR filings and their amendments, most
// recent filing date first.
func filterHoldingsReports(filings []Filing) []Filing {
	var kept []Filing
	for _, f := range filings {
		if f.Form == "13F-HR" || f.Form == "13F-HR/A" {
			kept = append(kept, f)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].FilingDate > kept[j].FilingDate
	})
	return kept
}

// FetchSubmissions fetches and parses the CIK submissions JSON from SEC.
func (c *Client) FetchSubmissions(cik string) (*Submissions, error) {
	padded, err := padCIK(cik)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://data.sec.gov/submissions/CIK%s.json", padded)
	status, body, err := c.get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("SEC returned status %d for submissions of CIK %s", status, padded)
	}

	return ParseSubmissions(strings.NewReader(body))
}

// LocateFilings finds the two most recent 13F filings for an institution
// and returns their accession numbers. The current filing is picked
// unconditionally; for the previous one, up to four older candidates are
// probed in date order and the first whose content actually carries an
// information table wins. Amended filings sometimes replace a quarter's
// data with a cover-only document, and comparing against one of those
// would produce an all-NEW portfolio.
//
// If none of the probed candidates passes, the chronologically second
// filing is used regardless.
func (c *Client) LocateFilings(cik string) (current, previous string, err error) {
	subs, err := c.FetchSubmissions(cik)
	if err != nil {
		return "", "", err
	}

	candidates := filterHoldingsReports(subs.GetRecentFilings())
	if len(candidates) < 2 {
		return "", "", fmt.Errorf("CIK %s: %w", cik, ErrInsufficientFilings)
	}

	current = candidates[0].AccessionNumber

	scan := candidates[1:]
	if len(scan) > 4 {
		scan = scan[:4]
	}
	for _, f := range scan {
		if _, err := c.FetchHoldingsDocument(cik, f.AccessionNumber); err == nil {
			previous = f.AccessionNumber
			break
		}
		log.Debug().
			Str("cik", cik).
			Str("accession", f.AccessionNumber).
			Msg("candidate previous filing has no information table, scanning further back")
	}
	if previous == "" {
		previous = candidates[1].AccessionNumber
	}

	return current, previous, nil
}
