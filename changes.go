package thirteenf

// PositionStatus classifies a position's lifecycle between two filings.
type PositionStatus string

const (
	StatusNew    PositionStatus = "NEW"    // no value in the previous filing
	StatusExit   PositionStatus = "EXIT"   // no value in the current filing
	StatusChange PositionStatus = "CHANGE" // held in both filings
)

// PositionChange compares one security across two holdings snapshots.
// Weights are portfolio percentages within each snapshot.
// ShareChangePct is nil when the previous filing reported no shares, since
// a percentage change from zero is undefined.
type PositionChange struct {
	CUSIP       string
	CompanyName string
	Ticker      string

	CurrentValue  float64
	PreviousValue float64

	CurrentShares  int64
	PreviousShares int64

	WeightCurrent  float64
	WeightPrevious float64
	WeightChange   float64

	ShareChange    int64
	ShareChangePct *float64

	Status PositionStatus
}

// ComputeChanges derives one PositionChange for every CUSIP present in
// either snapshot. A key absent from one side contributes a zero-valued
// record there. Snapshot totals are floored at 1 dollar so an empty
// snapshot produces zero weights instead of dividing by zero.
//
// The returned slice has no ordering guarantee; GenerateTables owns the
// sorting.
func ComputeChanges(current, previous Snapshot) []PositionChange {
	totalCurrent := current.TotalValue()
	if totalCurrent == 0 {
		totalCurrent = 1
	}
	totalPrevious := previous.TotalValue()
	if totalPrevious == 0 {
		totalPrevious = 1
	}

	keys := make(map[string]struct{}, len(current)+len(previous))
	for k := range current {
		keys[k] = struct{}{}
	}
	for k := range previous {
		keys[k] = struct{}{}
	}

	changes := make([]PositionChange, 0, len(keys))
	for k := range keys {
		cur := current[k]
		prev := previous[k]

		name := cur.CompanyName
		if name == "" {
			name = prev.CompanyName
		}

		row := PositionChange{
			CUSIP:          k,
			CompanyName:    name,
			Ticker:         TickerSymbol(name),
			CurrentValue:   cur.MarketValue,
			PreviousValue:  prev.MarketValue,
			CurrentShares:  cur.Shares,
			PreviousShares: prev.Shares,
			WeightCurrent:  cur.MarketValue / totalCurrent * 100,
			WeightPrevious: prev.MarketValue / totalPrevious * 100,
			ShareChange:    cur.Shares - prev.Shares,
		}
		row.WeightChange = row.WeightCurrent - row.WeightPrevious

		if prev.Shares > 0 {
			pct := float64(cur.Shares-prev.Shares) / float64(prev.Shares) * 100
			row.ShareChangePct = &pct
		}

		switch {
		case prev.MarketValue == 0:
			row.Status = StatusNew
		case cur.MarketValue == 0:
			row.Status = StatusExit
		default:
			row.Status = StatusChange
		}

		changes = append(changes, row)
	}
	return changes
}
