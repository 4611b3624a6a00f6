package pipeline

import (
	"context"

	"github.com/jonathan/company-profiler/internal/cache"
	"github.com/jonathan/company-profiler/internal/colors"
	"github.com/jonathan/company-profiler/internal/fetch"
	"github.com/jonathan/company-profiler/internal/llm"
	"github.com/jonathan/company-profiler/internal/logos"
	"github.com/jonathan/company-profiler/internal/sitemap"
	"github.com/jonathan/company-profiler/internal/types"
)

// SiteMapper enumerates candidate URLs for a site.
type SiteMapper interface {
	Map(ctx context.Context, siteURL string, limit int) ([]string, error)
}

// PageFetcher turns a URL into a scraped page.
type PageFetcher interface {
	FetchPage(ctx context.Context, urlStr string) (*types.ScrapedPage, error)
}

// LogoResolver finds logo candidates for a company name.
type LogoResolver interface {
	Resolve(ctx context.Context, companyName, domain string) []types.LogoCandidate
}

// PaletteExtractor derives color swatches from an image URL.
type PaletteExtractor interface {
	PaletteOf(ctx context.Context, imageURL string) (*colors.Palette, error)
}

// Services are the collaborators a Runner orchestrates. LLM, Fetcher, and
// Cache are required; the rest degrade to no-ops when nil.
type Services struct {
	LLM     llm.Client
	Mapper  SiteMapper
	Fetcher PageFetcher
	Logos   LogoResolver
	Palette PaletteExtractor
	Cache   *cache.Store
}

// DefaultServices wires the production collaborators. searcher may be nil,
// which disables logo search; everything else gets a real implementation.
func DefaultServices(client llm.Client, searcher logos.Searcher, store *cache.Store, useBrowser, verbose bool) Services {
	services := Services{
		LLM:     client,
		Mapper:  sitemap.NewMapper(nil),
		Fetcher: fetch.NewPageFetcher(nil, useBrowser, verbose),
		Palette: colors.NewExtractor(),
		Cache:   store,
	}
	if searcher != nil {
		services.Logos = logos.NewResolver(searcher, verbose)
	}
	return services
}
