package thirteenf

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	cusipTokenPattern = regexp.MustCompile(`\b([A-Z0-9]{9})\b`)
	numberPattern     = regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})*|\d+)\b`)
	angleBrackets     = regexp.MustCompile(`[<>]`)

	// Labelled-field patterns for the windowed fallback.
	labelledCUSIPPattern  = regexp.MustCompile(`(?:CUSIP|cusip)\s*[: ]\s*([A-Z0-9]{9})`)
	labelledNamePattern   = regexp.MustCompile(`(?i)(?:NAMEOFISSUER|NAME OF ISSUER)\s*[: ]\s*([^\n<]+)`)
	labelledValuePattern  = regexp.MustCompile(`(?:VALUE|value)\s*[: ]\s*(\d{1,3}(?:,\d{3})*|\d+)`)
	labelledSharesPattern = regexp.MustCompile(`(?:SSHPRNAMT|sshprnamt|SHARES)\s*[: ]\s*(\d{1,3}(?:,\d{3})*|\d+)`)

	nameJunkPattern = regexp.MustCompile(`[<>/]`)
)

var (
	tableStartMarkers = []string{"information table", "<informationtable", "<infotable", "info table"}
	tableEndMarkers   = []string{"</informationtable", "</infotable", "<signature", "<signatures"}
)

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// parseInfoTableText extracts holdings from a TXT/SGML information table.
// A line inside the table region qualifies as a data row iff it carries a
// 9-character CUSIP token; the text before that token is taken as the
// issuer name and the numbers on the line are split by the
// largest-is-shares, smallest-is-value-in-thousands heuristic.
//
// The heuristic misreads rows whose share count is smaller than the value
// figure (thousands-denominated share counts, for instance). That is a
// known accuracy limit of the free-text path, bounded by the acceptance
// threshold below.
//
// When fewer than 5 distinct positions come out of the line scan, the
// result is discarded and the labelled-field window extraction runs over
// the whole document instead.
func parseInfoTableText(content string, fullCUSIP bool) (Snapshot, ParseStats) {
	builder := newSnapshotBuilder(fullCUSIP)
	var stats ParseStats

	inTable := false
	for _, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(line)
		if !inTable && containsAny(lower, tableStartMarkers) {
			inTable = true
			continue
		}
		if inTable && containsAny(lower, tableEndMarkers) {
			inTable = false
		}
		if !inTable {
			continue
		}

		cusipMatch := cusipTokenPattern.FindStringSubmatch(line)
		if cusipMatch == nil {
			continue
		}
		cusip := cusipMatch[1]

		// Issuer name: everything before the CUSIP token. Crude but
		// effective for the columnar layouts filers actually used.
		name := ""
		parts := strings.Fields(line)
		for i, p := range parts {
			if strings.Contains(p, cusip) {
				name = strings.ToUpper(strings.TrimSpace(strings.Join(parts[:i], " ")))
				name = angleBrackets.ReplaceAllString(name, "")
				break
			}
		}

		nums := lineNumbers(line)
		if len(nums) == 0 {
			stats.Skipped++
			continue
		}

		shares, valueThousands := splitSharesValue(nums)
		builder.add(cusip, name, float64(valueThousands)*1000, shares)
		stats.Rows++
	}

	if builder.size() < 5 {
		return parseLabelledWindows(content, fullCUSIP)
	}
	return builder.snapshot(), stats
}

// lineNumbers collects the integer tokens on a line, largest first.
func lineNumbers(line string) []int64 {
	matches := numberPattern.FindAllStringSubmatch(line, -1)
	nums := make([]int64, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] > nums[j] })
	return nums
}

// splitSharesValue applies the shared magnitude heuristic: the largest
// number on a row is the share count, the smallest is the value in
// thousands. With a single number, value is approximated as shares/1000.
func splitSharesValue(nums []int64) (shares, valueThousands int64) {
	shares = nums[0]
	if len(nums) > 1 {
		valueThousands = nums[len(nums)-1]
	} else {
		valueThousands = shares / 1000
		if valueThousands < 0 {
			valueThousands = 0
		}
	}
	return shares, valueThousands
}

// parseLabelledWindows is the fallback extraction for SGML documents whose
// table rows did not line-scan cleanly. Every CUSIP-labelled token anchors
// a fixed window of surrounding text, and name/value/shares are fished out
// of the window independently by their field labels.
func parseLabelledWindows(content string, fullCUSIP bool) (Snapshot, ParseStats) {
	builder := newSnapshotBuilder(fullCUSIP)
	var stats ParseStats

	for _, loc := range labelledCUSIPPattern.FindAllStringSubmatchIndex(content, -1) {
		cusip := content[loc[2]:loc[3]]

		start := loc[0] - 500
		if start < 0 {
			start = 0
		}
		end := loc[1] + 500
		if end > len(content) {
			end = len(content)
		}
		window := content[start:end]

		name := ""
		if m := labelledNamePattern.FindStringSubmatch(window); m != nil {
			name = strings.ToUpper(strings.TrimSpace(nameJunkPattern.ReplaceAllString(m[1], "")))
		}

		var marketValue float64
		if m := labelledValuePattern.FindStringSubmatch(window); m != nil {
			if n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64); err == nil {
				marketValue = float64(n) * 1000
			}
		}

		var shares int64
		if m := labelledSharesPattern.FindStringSubmatch(window); m != nil {
			if n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64); err == nil {
				shares = n
			}
		}

		if marketValue <= 0 && shares <= 0 {
			stats.Skipped++
			continue
		}
		builder.add(cusip, name, marketValue, shares)
		stats.Rows++
	}

	return builder.snapshot(), stats
}
