package thirteenf

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// csvHeader is the stable column order for exported tables.
var csvHeader = []string{
	"cusip", "company_name", "ticker",
	"current_value", "previous_value",
	"current_shares", "previous_shares",
	"weight_current", "weight_previous", "weight_change",
	"share_change_abs", "share_change_pct",
	"status",
}

// ExportCSV writes the three ranked tables to timestamped CSV files named
// cik_{cik}_{table}_{timestamp}.csv in dir (current directory when dir is
// empty) and returns the written paths.
func ExportCSV(a *Analysis, dir string) ([]string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	ts := time.Now().Format("20060102_150405")
	tables := []struct {
		name string
		rows []PositionChange
	}{
		{"holdings", a.TopHoldings},
		{"buys", a.TopBuys},
		{"sells", a.TopSells},
	}

	var paths []string
	for _, table := range tables {
		path := filepath.Join(dir, fmt.Sprintf("cik_%s_%s_%s.csv", a.CIK, table.name, ts))
		if err := writeTableCSV(path, table.rows); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeTableCSV(path string, rows []PositionChange) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		sharePct := ""
		if r.ShareChangePct != nil {
			sharePct = formatFloat(*r.ShareChangePct)
		}
		record := []string{
			r.CUSIP, r.CompanyName, r.Ticker,
			formatFloat(r.CurrentValue), formatFloat(r.PreviousValue),
			strconv.FormatInt(r.CurrentShares, 10), strconv.FormatInt(r.PreviousShares, 10),
			formatFloat(r.WeightCurrent), formatFloat(r.WeightPrevious), formatFloat(r.WeightChange),
			strconv.FormatInt(r.ShareChange, 10), sharePct,
			string(r.Status),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
