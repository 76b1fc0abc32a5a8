package thirteenf

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the locator and the document fetcher.
// ErrNoInfoTable is an expected outcome for some filings (a cover-only
// amendment, for example) and callers are expected to test for it with
// errors.Is rather than treat every error as fatal.
var (
	// ErrNoInfoTable means no candidate document in the filing passed the
	// information-table shape check.
	ErrNoInfoTable = errors.New("no information table document found")

	// ErrInsufficientFilings means fewer than two eligible 13F filings
	// exist for the institution, so there is nothing to compare.
	ErrInsufficientFilings = errors.New("fewer than two 13F filings available")
)

// validateUserAgent checks the SEC User-Agent requirement: the header must
// identify the requester with a contactable email address.
func validateUserAgent(userAgent string) error {
	if strings.TrimSpace(userAgent) == "" {
		return fmt.Errorf("user agent is required for SEC requests")
	}
	if !strings.Contains(userAgent, "@") {
		return fmt.Errorf("SEC requires the User-Agent to include a contact email address, got %q", userAgent)
	}
	return nil
}
