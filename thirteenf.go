// Package thirteenf retrieves institutional 13F holdings reports from SEC
// EDGAR, compares the two most recent filings for an institution, and
// derives ranked tables of the largest holdings, buys, and sells.
//
// The whole pipeline is sequential: locate the filings, fetch the current
// and previous information tables, parse each into a holdings snapshot,
// compute per-position changes, and rank. Every analysis run stands alone;
// nothing is cached between calls.
package thirteenf

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Analyzer runs 13F portfolio comparisons against SEC EDGAR.
type Analyzer struct {
	client *Client
}

// NewAnalyzer constructs an Analyzer. The userAgent must include a
// contactable email address, per SEC fair-access policy; construction
// fails immediately otherwise.
func NewAnalyzer(userAgent string) (*Analyzer, error) {
	client, err := NewClient(userAgent)
	if err != nil {
		return nil, err
	}
	return &Analyzer{client: client}, nil
}

// AnalyzeOptions controls one analysis run.
type AnalyzeOptions struct {
	// ExportCSV writes the three ranked tables as timestamped CSV files.
	ExportCSV bool
	// ExportDir is the target directory for CSV export ("" = current dir).
	ExportDir string
	// SortByShareChange is recorded in the result for report consumers;
	// table ranking itself always follows portfolio weight change.
	SortByShareChange bool
	// FullCUSIP aggregates by the full 9-character CUSIP instead of the
	// 8-character issue prefix.
	FullCUSIP bool
}

// Analysis is the result of comparing an institution's two most recent
// 13F filings.
type Analysis struct {
	CIK               string
	CurrentAccession  string
	PreviousAccession string

	TopHoldings []PositionChange
	TopBuys     []PositionChange
	TopSells    []PositionChange
	AllChanges  []PositionChange

	// HasPreviousData is false when no information table could be located
	// for the previous period; every current holding then reads as NEW.
	HasPreviousData   bool
	SortByShareChange bool

	// Parser diagnostics for each period.
	CurrentStats  ParseStats
	PreviousStats ParseStats

	// ExportedFiles lists CSV paths written when export was requested.
	ExportedFiles []string
}

// Analyze locates, fetches, parses, and compares the two most recent 13F
// filings for the institution identified by cik.
//
// Failure to locate two eligible filings or to fetch the current period's
// information table is fatal. A missing previous-period table degrades to
// an empty baseline snapshot instead.
func (a *Analyzer) Analyze(cik string, opts AnalyzeOptions) (*Analysis, error) {
	current, previous, err := a.client.LocateFilings(cik)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("cik", cik).
		Str("current", current).
		Str("previous", previous).
		Msg("located 13F filings")

	currentRaw, err := a.client.FetchHoldingsDocument(cik, current)
	if err != nil {
		return nil, fmt.Errorf("current filing: %w", err)
	}

	previousRaw, err := a.client.FetchHoldingsDocument(cik, previous)
	if err != nil {
		if !errors.Is(err, ErrNoInfoTable) {
			log.Warn().Err(err).Str("accession", previous).Msg("previous filing fetch failed")
		}
		log.Warn().
			Str("cik", cik).
			Str("accession", previous).
			Msg("no previous information table, comparing against empty baseline")
		previousRaw = ""
	}

	currentHoldings, currentStats := ParseHoldings(currentRaw, opts.FullCUSIP)
	previousHoldings := Snapshot{}
	var previousStats ParseStats
	if previousRaw != "" {
		previousHoldings, previousStats = ParseHoldings(previousRaw, opts.FullCUSIP)
	}

	rows := ComputeChanges(currentHoldings, previousHoldings)
	tables := GenerateTables(rows)

	analysis := &Analysis{
		CIK:               cik,
		CurrentAccession:  current,
		PreviousAccession: previous,
		TopHoldings:       tables.Holdings,
		TopBuys:           tables.Buys,
		TopSells:          tables.Sells,
		AllChanges:        rows,
		HasPreviousData:   len(previousHoldings) > 0,
		SortByShareChange: opts.SortByShareChange,
		CurrentStats:      currentStats,
		PreviousStats:     previousStats,
	}

	if opts.ExportCSV {
		paths, err := ExportCSV(analysis, opts.ExportDir)
		if err != nil {
			return nil, fmt.Errorf("failed to export CSV: %w", err)
		}
		analysis.ExportedFiles = paths
	}

	log.Info().
		Str("cik", cik).
		Int("positions", len(currentHoldings)).
		Bool("has_previous", analysis.HasPreviousData).
		Msg("analysis complete")
	return analysis, nil
}
