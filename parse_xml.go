package thirteenf

import (
	"encoding/xml"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// defaultNamespacePattern matches the default xmlns declaration on the
// document root. Only the first occurrence is removed so that the element
// names can be matched without namespace qualification.
var defaultNamespacePattern = regexp.MustCompile(` xmlns="[^"]+"`)

// infoTableEntry is one <infoTable> row of a 13F information table.
// Numeric fields stay as strings here; tolerant conversion happens per
// row so a bad number skips that row only.
type infoTableEntry struct {
	NameOfIssuer string `xml:"nameOfIssuer"`
	CUSIP        string `xml:"cusip"`
	Value        string `xml:"value"`
	ShrsOrPrnAmt struct {
		SshPrnamt string `xml:"sshPrnamt"`
	} `xml:"shrsOrPrnAmt"`
}

// parseInfoTableXML extracts holdings from a structured XML information
// table. Values are stated in thousands of dollars and normalized here.
// Rows missing a CUSIP or a parseable value are counted and skipped; a
// document that fails to tokenize at all yields an empty snapshot rather
// than an error, and downstream weight math degrades gracefully.
func parseInfoTableXML(content string, fullCUSIP bool) (Snapshot, ParseStats) {
	clean := content
	if loc := defaultNamespacePattern.FindStringIndex(content); loc != nil {
		clean = content[:loc[0]] + content[loc[1]:]
	}

	builder := newSnapshotBuilder(fullCUSIP)
	var stats ParseStats

	dec := xml.NewDecoder(strings.NewReader(clean))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed markup yields an empty snapshot, not an error; the
			// run continues and weight math falls back to the zero floor.
			return Snapshot{}, stats
		}

		start, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(start.Name.Local, "infoTable") {
			continue
		}

		var row infoTableEntry
		if err := dec.DecodeElement(&row, &start); err != nil {
			stats.Skipped++
			continue
		}

		cusip := strings.TrimSpace(row.CUSIP)
		valueThousands, valErr := strconv.ParseFloat(strings.TrimSpace(row.Value), 64)
		if cusip == "" || valErr != nil {
			stats.Skipped++
			continue
		}

		var shares int64
		if s := strings.TrimSpace(row.ShrsOrPrnAmt.SshPrnamt); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				stats.Skipped++
				continue
			}
			shares = int64(f)
		}

		name := strings.ToUpper(strings.TrimSpace(row.NameOfIssuer))
		builder.add(cusip, name, valueThousands*1000, shares)
		stats.Rows++
	}

	return builder.snapshot(), stats
}
