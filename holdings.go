package thirteenf

// Holding is one aggregated security position from a 13F information
// table. MarketValue is in dollars (filings state it in thousands; parsers
// normalize). Shares is zero when the filing did not state a share count.
type Holding struct {
	CompanyName string
	MarketValue float64
	Shares      int64
}

// Snapshot maps a CUSIP key to its aggregated holding. One snapshot
// represents the full set of positions in a single filing. Snapshots are
// never mutated after a parser returns them.
type Snapshot map[string]Holding

// TotalValue sums the market value across all positions.
func (s Snapshot) TotalValue() float64 {
	var total float64
	for _, h := range s {
		total += h.MarketValue
	}
	return total
}

// ParseStats reports how much of a document a parser could use. Row-level
// failures are skipped rather than aborting the parse; the counts make
// that policy observable.
type ParseStats struct {
	Rows    int // rows accumulated into the snapshot
	Skipped int // rows rejected for missing or malformed fields
}

// cusipKeyLen is the default aggregation key length. Truncating the
// 9-character CUSIP to its 8-character issue prefix folds share-class
// variants of the same security into one position.
const cusipKeyLen = 8

// snapshotBuilder accumulates raw table rows into a Snapshot. Entries with
// the same key sum their value and shares; the first non-empty company
// name wins. The builder is local to one parse call and never escapes it.
type snapshotBuilder struct {
	fullCUSIP bool
	holdings  Snapshot
}

func newSnapshotBuilder(fullCUSIP bool) *snapshotBuilder {
	return &snapshotBuilder{fullCUSIP: fullCUSIP, holdings: Snapshot{}}
}

func (b *snapshotBuilder) add(cusip, companyName string, marketValue float64, shares int64) {
	key := cusip
	if !b.fullCUSIP && len(key) > cusipKeyLen {
		key = key[:cusipKeyLen]
	}

	h := b.holdings[key]
	h.MarketValue += marketValue
	h.Shares += shares
	if h.CompanyName == "" && companyName != "" {
		h.CompanyName = companyName
	}
	b.holdings[key] = h
}

func (b *snapshotBuilder) size() int {
	return len(b.holdings)
}

func (b *snapshotBuilder) snapshot() Snapshot {
	return b.holdings
}
