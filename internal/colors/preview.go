package colors

import (
	"regexp"

	"github.com/jonathan/company-profiler/internal/types"
)

// previewPatterns match social-preview-image declarations in raw HTML.
// Attribute order varies across sites, so both orders are covered.
var previewPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`),
	regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:image["']`),
	regexp.MustCompile(`(?i)<meta[^>]+name=["']twitter:image["'][^>]+content=["']([^"']+)["']`),
	regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+name=["']twitter:image["']`),
}

// FindPreviewImage scans raw HTML for a social-preview-image reference and
// returns the first match, or an empty string.
func FindPreviewImage(html string) string {
	for _, pattern := range previewPatterns {
		if m := pattern.FindStringSubmatch(html); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// FirstPreviewImage scans the fetched pages in order and returns the first
// preview-image reference found in any page's raw content.
func FirstPreviewImage(pages []*types.ScrapedPage) string {
	for _, page := range pages {
		if page == nil {
			continue
		}
		if preview := FindPreviewImage(page.RawHTML); preview != "" {
			return preview
		}
	}
	return ""
}
