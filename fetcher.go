package thirteenf

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	VERSION = "0.1.0"

	// RateLimit is the minimum delay between requests. SEC allows at most
	// 10 requests/second; the original analyzer spaced calls 200ms apart.
	RateLimit = 200 * time.Millisecond

	requestTimeout = 30 * time.Second
)

// Client is a sequential, rate-limited HTTP client for SEC EDGAR.
// Every request carries a User-Agent identifying the requester with a
// contact email, which SEC requires.
type Client struct {
	userAgent   string
	httpClient  *http.Client
	lastRequest time.Time
}

// NewClient returns a Client for the given User-Agent string.
// The User-Agent must contain a contactable email address.
func NewClient(userAgent string) (*Client, error) {
	if err := validateUserAgent(userAgent); err != nil {
		return nil, err
	}
	return &Client{
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

// get fetches a URL and returns the status code and body.
// A non-200 status is not an error here; the multi-tier fetch logic probes
// candidate URLs and treats misses as a normal outcome.
func (c *Client) get(url string) (int, string, error) {
	// Rate limiting
	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < RateLimit {
			time.Sleep(RateLimit - elapsed)
		}
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	c.lastRequest = time.Now()
	if err != nil {
		return 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("edgar request")
	return resp.StatusCode, string(body), nil
}

// padCIK normalizes a CIK to the zero-padded 10-digit form used by the
// submissions API. The input may carry or omit leading zeros.
func padCIK(cik string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(cik))
	if err != nil {
		return "", fmt.Errorf("invalid CIK %q: %w", cik, err)
	}
	return fmt.Sprintf("%010d", n), nil
}

// cikNumber strips leading zeros for Archives URL paths, which use the
// bare integer form of the CIK.
func cikNumber(cik string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(cik), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
