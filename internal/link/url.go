package link

import (
	"net/url"
	"regexp"
	"strings"
)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL trims a destination and prepends https:// when no http or
// https scheme is present. An empty input stays empty.
func NormalizeURL(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	if schemeRe.MatchString(trimmed) {
		return trimmed
	}

	return "https://" + trimmed
}

// ValidDestination reports whether a normalized URL is followable: an http or
// https scheme plus either a dotted domain or localhost.
func ValidDestination(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	hostname := strings.ToLower(parsed.Hostname())
	if hostname == "localhost" {
		return true
	}

	if !strings.Contains(hostname, ".") || strings.HasSuffix(hostname, ".") {
		return false
	}

	for _, label := range strings.Split(hostname, ".") {
		if label == "" {
			return false
		}
	}

	return true
}
