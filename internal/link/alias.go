package link

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	invalidRe    = regexp.MustCompile(`[^a-z0-9-]`)
)

// NormalizeAlias lowercases an alias, collapses whitespace runs into single
// dashes, and strips every character outside [a-z0-9-]. The result may be
// empty when the input has no usable characters.
func NormalizeAlias(alias string) string {
	s := strings.ToLower(strings.TrimSpace(alias))
	s = whitespaceRe.ReplaceAllString(s, "-")

	return invalidRe.ReplaceAllString(s, "")
}
