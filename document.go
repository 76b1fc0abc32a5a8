package thirteenf

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

const archivesBase = "https://www.sec.gov/Archives/edgar/data"

// FetchHoldingsDocument retrieves the raw information-table document for a
// filing. Filers have used several file layouts over the years, so three
// tiers are tried in order of decreasing structure:
//
//  1. the filing's directory listing, probing every .xml file it names
//  2. the legacy primary document {accession}.txt (SGML/TXT bundle)
//  3. a fixed list of conventional file names
//
// The first payload that passes the information-table shape check wins.
// When every tier misses, the error wraps ErrNoInfoTable; callers decide
// whether that is fatal (current period) or merely degraded (previous
// period).
func (c *Client) FetchHoldingsDocument(cik, accession string) (string, error) {
	if content := c.fetchFromDirectoryListing(cik, accession); content != "" {
		return content, nil
	}
	if content := c.fetchPrimaryDocument(cik, accession); content != "" {
		return content, nil
	}
	if content := c.fetchByCommonNames(cik, accession); content != "" {
		return content, nil
	}
	return "", fmt.Errorf("filing %s: %w", accession, ErrNoInfoTable)
}

// filingDirURL is the Archives directory holding one filing's documents.
// Accession numbers appear without hyphens in the path, CIKs without
// leading zeros.
func filingDirURL(cik, accession string) string {
	acc := strings.ReplaceAll(accession, "-", "")
	return fmt.Sprintf("%s/%s/%s", archivesBase, cikNumber(cik), acc)
}

// directoryIndex mirrors the filing directory's index.json.
type directoryIndex struct {
	Directory struct {
		Item []struct {
			Name string `json:"name"`
		} `json:"item"`
	} `json:"directory"`
}

// fetchFromDirectoryListing reads the filing's machine-readable file index
// and probes every XML file in it. Many modern 13F filings store the
// information table under an arbitrary numeric name (39042.xml and the
// like), so the listing is the only reliable way to find it.
func (c *Client) fetchFromDirectoryListing(cik, accession string) string {
	base := filingDirURL(cik, accession)

	names := c.directoryFileNames(base, accession)
	for _, name := range names {
		if !strings.HasSuffix(strings.ToLower(name), ".xml") {
			continue
		}
		status, body, err := c.get(base + "/" + name)
		if err != nil || status != http.StatusOK {
			continue
		}
		if looksLikeInfoTable(body) {
			return body
		}
	}
	return ""
}

// directoryFileNames lists the files in a filing directory, preferring
// index.json and falling back to scraping anchors out of the HTML index
// page when the JSON listing is not served.
func (c *Client) directoryFileNames(base, accession string) []string {
	status, body, err := c.get(base + "/index.json")
	if err == nil && status == http.StatusOK {
		var idx directoryIndex
		if jsonErr := json.Unmarshal([]byte(body), &idx); jsonErr == nil {
			names := make([]string, 0, len(idx.Directory.Item))
			for _, item := range idx.Directory.Item {
				names = append(names, item.Name)
			}
			return names
		}
	}

	status, body, err = c.get(base + "/" + accession + "-index.htm")
	if err != nil || status != http.StatusOK {
		return nil
	}
	return htmlIndexFileNames(body)
}

// htmlIndexFileNames extracts document file names from the anchors of an
// EDGAR filing index page.
func htmlIndexFileNames(page string) []string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}

	var names []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := attr.Val
				if i := strings.LastIndex(href, "/"); i >= 0 {
					href = href[i+1:]
				}
				if href != "" && strings.Contains(href, ".") {
					names = append(names, href)
				}
				break
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return names
}

// fetchPrimaryDocument tries the {accession}.txt primary bundle, which for
// many historical filings embeds the information table as SGML/TXT.
func (c *Client) fetchPrimaryDocument(cik, accession string) string {
	url := filingDirURL(cik, accession) + "/" + accession + ".txt"
	status, body, err := c.get(url)
	if err != nil || status != http.StatusOK {
		return ""
	}
	if looksLikeInfoTable(body) {
		return body
	}
	return ""
}

// fetchByCommonNames probes conventionally-named information-table files
// as a last resort, including the derived d{acc12}inftable.xml name some
// filing agents generate.
func (c *Client) fetchByCommonNames(cik, accession string) string {
	acc := strings.ReplaceAll(accession, "-", "")
	derived := acc
	if len(derived) > 12 {
		derived = derived[:12]
	}

	patterns := []string{
		"form13fInfoTable.xml",
		"InfoTable.xml",
		"xslForm13F_X01/form13fInfoTable.xml",
		"xslForm13F_X01/InfoTable.xml",
		"d" + derived + "inftable.xml",
		"informationTable.xml",
		"table.xml",
		"holdings.xml",
		"primary_doc.xml",
	}

	base := filingDirURL(cik, accession)
	for _, pattern := range patterns {
		status, body, err := c.get(base + "/" + pattern)
		if err != nil || status != http.StatusOK {
			continue
		}
		if looksLikeInfoTable(body) {
			log.Debug().Str("accession", accession).Str("file", pattern).Msg("information table found by common name")
			return body
		}
	}
	return ""
}
