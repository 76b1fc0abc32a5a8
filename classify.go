package thirteenf

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// looksLikeInfoTable reports whether content plausibly contains a 13F
// information table. It needs at least two of the four field markers, and
// a submission envelope without any table marker is rejected outright —
// that is the cover/summary document, not the holdings table.
func looksLikeInfoTable(content string) bool {
	s := strings.ToLower(content)
	if s == "" {
		return false
	}

	markers := []string{"informationtable", "infotable", "nameofissuer", "cusip"}
	hits := 0
	for _, m := range markers {
		if strings.Contains(s, m) {
			hits++
		}
	}

	if strings.Contains(s, "edgarsubmission") &&
		!strings.Contains(s, "infotable") && !strings.Contains(s, "informationtable") {
		return false
	}
	return hits >= 2
}

// parseStrategy is one extraction strategy in the format cascade. applies
// inspects the payload shape; parse produces a normalized snapshot plus
// row diagnostics.
type parseStrategy struct {
	name    string
	applies func(content string) bool
	parse   func(content string, fullCUSIP bool) (Snapshot, ParseStats)
}

// parserCascade orders the strategies from most to least structured. The
// last entry always applies, so dispatch cannot fall through.
var parserCascade = []parseStrategy{
	{
		name: "xml",
		applies: func(content string) bool {
			trimmed := strings.TrimLeft(content, " \t\r\n")
			if !strings.HasPrefix(trimmed, "<") {
				return false
			}
			lower := strings.ToLower(trimmed)
			return strings.Contains(lower, "informationtable") || strings.Contains(lower, "infotable")
		},
		parse: parseInfoTableXML,
	},
	{
		name: "markup-window",
		applies: func(content string) bool {
			return strings.HasPrefix(strings.TrimLeft(content, " \t\r\n"), "<")
		},
		parse: parseMarkupWindows,
	},
	{
		name: "text",
		applies: func(string) bool { return true },
		parse:   parseInfoTableText,
	},
}

// ParseHoldings classifies a raw information-table payload and parses it
// with the first applicable strategy. When fullCUSIP is false (the
// default mode), positions aggregate by the 8-character CUSIP prefix.
func ParseHoldings(content string, fullCUSIP bool) (Snapshot, ParseStats) {
	for _, strat := range parserCascade {
		if !strat.applies(content) {
			continue
		}
		snapshot, stats := strat.parse(content, fullCUSIP)
		log.Debug().
			Str("format", strat.name).
			Int("positions", len(snapshot)).
			Int("rows", stats.Rows).
			Int("skipped", stats.Skipped).
			Msg("parsed information table")
		return snapshot, stats
	}
	return Snapshot{}, ParseStats{}
}
