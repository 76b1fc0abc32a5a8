package thirteenf

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	bareCUSIPPattern   = regexp.MustCompile(`([A-Z0-9]{9})`)
	taggedNamePattern  = regexp.MustCompile(`(?i)NAMEOFISSUER[^>]*>([^<]+)`)
	taggedNumberRegexp = regexp.MustCompile(`>(\d{1,3}(?:,\d{3})*)<`)
	htmlEntityPattern  = regexp.MustCompile(`&[^;]+;`)
)

// parseMarkupWindows is the last-resort extractor for markup payloads that
// carry holdings data without an <infoTable> structure (HTML-rendered
// tables, mostly). Each 9-character CUSIP token anchors a window of
// surrounding markup; the issuer name comes from a nameOfIssuer-tagged
// cell, and the numbers between tag delimiters get the same
// largest-is-shares, smallest-is-value heuristic as the text parser.
func parseMarkupWindows(content string, fullCUSIP bool) (Snapshot, ParseStats) {
	builder := newSnapshotBuilder(fullCUSIP)
	var stats ParseStats

	for _, loc := range bareCUSIPPattern.FindAllStringSubmatchIndex(content, -1) {
		cusip := content[loc[2]:loc[3]]

		start := loc[0] - 800
		if start < 0 {
			start = 0
		}
		end := loc[1] + 800
		if end > len(content) {
			end = len(content)
		}
		window := content[start:end]

		name := ""
		if m := taggedNamePattern.FindStringSubmatch(window); m != nil {
			name = strings.ToUpper(strings.TrimSpace(htmlEntityPattern.ReplaceAllString(m[1], "")))
		}

		var nums []int64
		for _, m := range taggedNumberRegexp.FindAllStringSubmatch(window, -1) {
			n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
			if err != nil {
				continue
			}
			nums = append(nums, n)
		}
		if len(nums) == 0 {
			stats.Skipped++
			continue
		}
		sort.Slice(nums, func(i, j int) bool { return nums[i] > nums[j] })

		shares, valueThousands := splitSharesValue(nums)
		builder.add(cusip, name, float64(valueThousands)*1000, shares)
		stats.Rows++
	}

	return builder.snapshot(), stats
}
