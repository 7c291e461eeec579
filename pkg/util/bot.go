package util

import (
	"regexp"
)

var botPattern = regexp.MustCompile(`(?i)bot|crawler|spider|scraper|curl|wget|python|java/|php/`)

// IsBot reports whether the User-Agent looks like an automated client
func IsBot(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	return botPattern.MatchString(userAgent)
}
