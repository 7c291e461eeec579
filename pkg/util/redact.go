package util

import (
	"net/url"
)

// Redacted replaces the value of sensitive query parameters
const Redacted = "[REDACTED]"

// sensitiveParams never reach logs or stored click events
var sensitiveParams = []string{"password"}

// RedactQuery masks sensitive parameters in a raw query string. A query
// without them is returned unchanged; otherwise it is re-encoded.
func RedactQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	values, err := url.ParseQuery(rawQuery)
	found := false
	for _, name := range sensitiveParams {
		if _, ok := values[name]; ok {
			values.Set(name, Redacted)
			found = true
		}
	}
	if !found && err == nil {
		return rawQuery
	}
	// Pairs that failed to parse are dropped rather than logged raw.
	return values.Encode()
}

// RedactURL returns u as a string with sensitive query parameters masked
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	masked := *u
	masked.RawQuery = RedactQuery(u.RawQuery)
	return masked.String()
}
