// Package shared provides common utility functions used across multiple
// packages in the registry-config codebase.
package shared

import (
	"net/url"
	"strings"
)

// NormalizeHost lowercases and trims a host string so that lookups
// keyed by host are case-insensitive.
func NormalizeHost(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// HostOf extracts the normalized hostname (without port) from a raw
// URL string. It returns "" when the URL cannot be parsed or carries
// no host component.
func HostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return NormalizeHost(parsed.Hostname())
}
