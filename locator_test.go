package thirteenf

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const submissionsURL = "https://data.sec.gov/submissions/CIK0001067983.json"

// registerSubmissions serves a submissions index built from parallel
// (accession, date, form) triples.
func registerSubmissions(filings ...[3]string) {
	var accs, dates, forms []string
	for _, f := range filings {
		accs = append(accs, fmt.Sprintf("%q", f[0]))
		dates = append(dates, fmt.Sprintf("%q", f[1]))
		forms = append(forms, fmt.Sprintf("%q", f[2]))
	}
	body := fmt.Sprintf(`{"cik":"1067983","name":"TEST FUND","filings":{"recent":{
		"accessionNumber":[%s],"filingDate":[%s],"form":[%s]}}}`,
		strings.Join(accs, ","), strings.Join(dates, ","), strings.Join(forms, ","))
	httpmock.RegisterResponder("GET", submissionsURL, httpmock.NewStringResponder(200, body))
}

// registerInfoTable makes a filing's directory listing serve a valid table.
func registerInfoTable(accession string) {
	dir := filingDirURL(testCIK, accession)
	httpmock.RegisterResponder("GET", dir+"/index.json",
		httpmock.NewStringResponder(200, `{"directory":{"item":[{"name":"39042.xml"}]}}`))
	httpmock.RegisterResponder("GET", dir+"/39042.xml",
		httpmock.NewStringResponder(200, infoTableXML))
}

func TestLocateFilings(t *testing.T) {
	c := newTestClient(t)
	registerSubmissions(
		[3]string{"0001-25-000001", "2025-02-14", "13F-HR"},
		[3]string{"0001-25-000000", "2025-01-03", "8-K"},
		[3]string{"0001-24-000004", "2024-11-14", "13F-HR"},
	)
	registerInfoTable("0001-24-000004")

	current, previous, err := c.LocateFilings(testCIK)
	require.NoError(t, err)
	assert.Equal(t, "0001-25-000001", current)
	assert.Equal(t, "0001-24-000004", previous)
}

func TestLocateFilingsSkipsCoverOnlyFiling(t *testing.T) {
	c := newTestClient(t)
	registerSubmissions(
		[3]string{"0001-25-000001", "2025-02-14", "13F-HR"},
		[3]string{"0001-24-000009", "2024-11-20", "13F-HR/A"},
		[3]string{"0001-24-000004", "2024-11-14", "13F-HR"},
	)

	// The amendment's directory exists but only serves a cover page, so
	// the locator has to scan one further back.
	amendDir := filingDirURL(testCIK, "0001-24-000009")
	httpmock.RegisterResponder("GET", amendDir+"/index.json",
		httpmock.NewStringResponder(200, `{"directory":{"item":[{"name":"primary_doc.xml"}]}}`))
	httpmock.RegisterResponder("GET", amendDir+"/primary_doc.xml",
		httpmock.NewStringResponder(200, coverPageXML))
	registerInfoTable("0001-24-000004")

	current, previous, err := c.LocateFilings(testCIK)
	require.NoError(t, err)
	assert.Equal(t, "0001-25-000001", current)
	assert.Equal(t, "0001-24-000004", previous)
}

func TestLocateFilingsFallsBackToSecondCandidate(t *testing.T) {
	c := newTestClient(t)
	registerSubmissions(
		[3]string{"0001-25-000001", "2025-02-14", "13F-HR"},
		[3]string{"0001-24-000004", "2024-11-14", "13F-HR"},
	)
	// No filing directory responds, so probing fails everywhere; the
	// chronologically second filing is still reported as previous.

	current, previous, err := c.LocateFilings(testCIK)
	require.NoError(t, err)
	assert.Equal(t, "0001-25-000001", current)
	assert.Equal(t, "0001-24-000004", previous)
}

func TestLocateFilingsInsufficientFilings(t *testing.T) {
	c := newTestClient(t)
	registerSubmissions(
		[3]string{"0001-25-000001", "2025-02-14", "13F-HR"},
		[3]string{"0001-25-000000", "2025-01-03", "10-K"},
	)

	_, _, err := c.LocateFilings(testCIK)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientFilings))
}

func TestFetchSubmissionsError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.FetchSubmissions(testCIK)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
