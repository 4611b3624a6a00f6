// Package sitemap discovers candidate URLs on a target site by enumerating
// its sitemap. Failure is always recoverable for the caller: the pipeline
// falls back to homepage links when enumeration returns nothing.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/company-profiler/internal/fetch"
)

// MaxURLs is the hard cap on discovered URLs per site.
const MaxURLs = 200

// maxChildSitemaps bounds how many child sitemaps of a sitemap index are
// followed. One level of indirection only.
const maxChildSitemaps = 3

type urlSet struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

type sitemapIndex struct {
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

// Mapper enumerates site URLs from sitemap.xml.
type Mapper struct {
	options *fetch.Options
}

// NewMapper creates a Mapper. A nil options uses fetch defaults.
func NewMapper(options *fetch.Options) *Mapper {
	if options == nil {
		options = fetch.DefaultOptions()
	}
	return &Mapper{options: options}
}

// Map fetches and parses the site's sitemap.xml and returns up to limit
// same-origin URLs. A limit of 0 or above MaxURLs uses MaxURLs. Single
// attempt, no retries; any failure surfaces as an error the caller logs
// and ignores.
func (m *Mapper) Map(ctx context.Context, siteURL string, limit int) ([]string, error) {
	if limit <= 0 || limit > MaxURLs {
		limit = MaxURLs
	}

	base, err := url.Parse(siteURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid site URL %q", siteURL)
	}

	sitemapURL := base.Scheme + "://" + base.Host + "/sitemap.xml"
	body, err := m.fetchBody(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	locs, children, err := parseSitemap(body)
	if err != nil {
		return nil, err
	}

	// A sitemap index points at child sitemaps instead of pages.
	for i, child := range children {
		if i >= maxChildSitemaps || len(locs) >= limit {
			break
		}
		childBody, err := m.fetchBody(ctx, child)
		if err != nil {
			continue
		}
		childLocs, _, err := parseSitemap(childBody)
		if err != nil {
			continue
		}
		locs = append(locs, childLocs...)
	}

	return filterSameOrigin(locs, base.Host, limit), nil
}

func (m *Mapper) fetchBody(ctx context.Context, urlStr string) (string, error) {
	result, err := fetch.URL(ctx, urlStr, m.options)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// parseSitemap returns page locations and child sitemap locations from a
// sitemap document, which may be a urlset or a sitemap index.
func parseSitemap(body string) (locs []string, children []string, err error) {
	var set urlSet
	if err := xml.Unmarshal([]byte(body), &set); err == nil && len(set.URLs) > 0 {
		for _, u := range set.URLs {
			if loc := strings.TrimSpace(u.Loc); loc != "" {
				locs = append(locs, loc)
			}
		}
		return locs, nil, nil
	}

	var index sitemapIndex
	if err := xml.Unmarshal([]byte(body), &index); err == nil && len(index.Sitemaps) > 0 {
		for _, s := range index.Sitemaps {
			if loc := strings.TrimSpace(s.Loc); loc != "" {
				children = append(children, loc)
			}
		}
		return nil, children, nil
	}

	return nil, nil, fmt.Errorf("not a recognizable sitemap document")
}

func filterSameOrigin(locs []string, host string, limit int) []string {
	seen := make(map[string]bool)
	filtered := make([]string, 0, len(locs))
	for _, loc := range locs {
		parsed, err := url.Parse(loc)
		if err != nil || !strings.EqualFold(parsed.Host, host) {
			continue
		}
		cleaned := strings.TrimSuffix(loc, "/")
		if seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		filtered = append(filtered, cleaned)
		if len(filtered) >= limit {
			break
		}
	}
	return filtered
}
