// Package sanitize strips markup from user supplied free text.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes every HTML element from s and returns plain, trimmed text.
// Entities escaped by the policy are decoded since responses are JSON.
func Text(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

// Ptr applies Text to an optional value.
func Ptr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := Text(*s)
	return &clean
}
