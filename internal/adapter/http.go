package adapter

import (
	"net/http"
	"strconv"
	"time"
)

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports the seconds format ("120") and the HTTP-date format. Returns
// zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// setCommonHeaders applies the headers every career-site request carries.
// Some Workday tenants reject requests without a browser-ish user agent.
func setCommonHeaders(req *http.Request, userAgent string) {
	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
}
