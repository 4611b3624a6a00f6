package fetch

import (
	"context"

	"github.com/jonathan/company-profiler/internal/types"
)

// PageFetcher turns URLs into ScrapedPages: fetch, optional browser
// fallback for SPA sites, metadata extraction, markdown conversion.
type PageFetcher struct {
	options    *Options
	useBrowser bool
	verbose    bool
}

// NewPageFetcher creates a PageFetcher. A nil options uses DefaultOptions.
func NewPageFetcher(options *Options, useBrowser, verbose bool) *PageFetcher {
	if options == nil {
		options = DefaultOptions()
	}
	return &PageFetcher{
		options:    options,
		useBrowser: useBrowser,
		verbose:    verbose,
	}
}

// FetchPage fetches a single page and extracts its title, markdown body,
// and logo hint.
func (f *PageFetcher) FetchPage(ctx context.Context, urlStr string) (*types.ScrapedPage, error) {
	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	html := result.HTML
	text, _ := ExtractMainText(html, CompanyPageSelectors())
	if f.useBrowser && ShouldUseBrowser(text) {
		if rendered, browserErr := BrowserSimple(ctx, urlStr, f.verbose); browserErr == nil {
			html = rendered
		}
	}

	meta := ExtractMetadata(html, urlStr)

	return &types.ScrapedPage{
		URL:      urlStr,
		Title:    meta.Title,
		Content:  ToMarkdown(html),
		LogoHint: meta.BestImageHint(),
		RawHTML:  html,
	}, nil
}
