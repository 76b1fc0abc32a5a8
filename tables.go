package thirteenf

import "sort"

// Table size caps. Buys use a stricter filter than the other two tables —
// a position only counts as a real buy when both the share count and the
// portfolio weight increased — and keep a shorter list.
const (
	maxHoldings = 20
	maxBuys     = 10
	maxSells    = 20
)

// RankedTables holds the three derived views of a portfolio comparison.
type RankedTables struct {
	Holdings []PositionChange // current positions by weight, descending
	Buys     []PositionChange // share and weight increases, by weight gain
	Sells    []PositionChange // share and weight decreases, by weight loss
}

// GenerateTables filters and ranks change rows into the three output
// tables. Pure function over its input; the input slice is not reordered.
func GenerateTables(rows []PositionChange) RankedTables {
	var holdings, buys, sells []PositionChange
	for _, r := range rows {
		if r.CurrentValue > 0 {
			holdings = append(holdings, r)
		}
		if r.ShareChange > 0 && r.WeightChange > 0 {
			buys = append(buys, r)
		}
		if r.ShareChange < 0 && r.WeightChange < 0 {
			sells = append(sells, r)
		}
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].WeightCurrent > holdings[j].WeightCurrent
	})
	sort.SliceStable(buys, func(i, j int) bool {
		return buys[i].WeightChange > buys[j].WeightChange
	})
	sort.SliceStable(sells, func(i, j int) bool {
		return sells[i].WeightChange < sells[j].WeightChange
	})

	return RankedTables{
		Holdings: truncate(holdings, maxHoldings),
		Buys:     truncate(buys, maxBuys),
		Sells:    truncate(sells, maxSells),
	}
}

func truncate(rows []PositionChange, n int) []PositionChange {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
