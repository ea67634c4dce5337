package utils

import "regexp"

var urlPasswordRegex = regexp.MustCompile(`(:)([^:@/]+)(@)`)

// MaskURLCredentials replaces the password of a user:password@host URL with ***.
// It also works on error text that embeds such a URL.
func MaskURLCredentials(s string) string {
	return urlPasswordRegex.ReplaceAllString(s, ":***@")
}
