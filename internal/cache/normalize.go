// Package cache provides URL normalization and the TTL-bounded result store.
package cache

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned when a raw string cannot be canonicalized.
var ErrInvalidURL = errors.New("invalid URL")

// Normalize canonicalizes a raw URL string into a comparable cache key that
// is also a fetchable absolute URL. A missing scheme defaults to https and
// http folds to https so both forms of a site share one key, the host is
// lower-cased, a trailing slash is stripped from the path, and query and
// fragment are discarded. Normalize is pure and idempotent.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "", ErrInvalidURL
	}

	if strings.EqualFold(parsed.Scheme, "http") {
		parsed.Scheme = "https"
	}
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	parsed.RawQuery = ""
	parsed.Fragment = ""

	return parsed.String(), nil
}

// Domain returns the host portion of a URL with any www prefix removed.
// Returns an empty string for unparseable input.
func Domain(raw string) string {
	normalized, err := Normalize(raw)
	if err != nil {
		return ""
	}
	parsed, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
