// Package url normalizes addresses typed into the shell before navigation.
package url

import (
	"net/url"
	"strings"
)

// InternalScheme is the scheme of pages served by the shell itself.
const InternalScheme = "chromic://"

// Blank is the placeholder document loaded into fresh panel surfaces.
const Blank = "about:blank"

var knownSchemes = []string{"http://", "https://", InternalScheme, "file://", "about:", "data:"}

// Normalize adds https:// prefix if missing for URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if hasKnownScheme(input) {
		return input
	}

	if looksLikeHost(input) {
		return "https://" + input
	}

	return input
}

// LooksLikeURL checks if the input appears to be a URL (not a search query).
func LooksLikeURL(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	return hasKnownScheme(input) || looksLikeHost(input)
}

// IsInternal reports whether the address is served by the shell.
func IsInternal(input string) bool {
	return strings.HasPrefix(input, InternalScheme)
}

// ExtractDomain extracts the host from a URL string, without "www.".
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

func hasKnownScheme(input string) bool {
	lower := strings.ToLower(input)
	for _, scheme := range knownSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

func looksLikeHost(input string) bool {
	if strings.Contains(input, " ") {
		return false
	}
	if strings.HasPrefix(input, "localhost") {
		return true
	}
	return strings.Contains(input, ".")
}
