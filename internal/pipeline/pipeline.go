// Package pipeline orchestrates a research run: site mapping, homepage scan,
// link selection, batched page fetching, logo search, streaming extraction,
// and color resolution, reported as an ordered stream of progress events.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/company-profiler/internal/cache"
	"github.com/jonathan/company-profiler/internal/colors"
	"github.com/jonathan/company-profiler/internal/extraction"
	"github.com/jonathan/company-profiler/internal/fetch"
	"github.com/jonathan/company-profiler/internal/logos"
	"github.com/jonathan/company-profiler/internal/selection"
	"github.com/jonathan/company-profiler/internal/sitemap"
	"github.com/jonathan/company-profiler/internal/types"
)

const (
	// BatchSize is how many candidate pages are fetched concurrently.
	// Batch N+1 starts only after batch N has fully drained.
	BatchSize = 5
	// DefaultMaxPages bounds how many candidate pages a run fetches beyond
	// the homepage.
	DefaultMaxPages = 10
)

// RunOptions configure a single research run.
type RunOptions struct {
	TargetURL  string
	MaxPages   int  // 0 means DefaultMaxPages
	Refresh    bool // skip the cache read, overwrite on completion
	OnProgress ProgressFunc
	Verbose    bool
}

func (o RunOptions) maxPages() int {
	if o.MaxPages <= 0 {
		return DefaultMaxPages
	}
	return o.MaxPages
}

// Runner executes research runs over a fixed set of collaborators.
type Runner struct {
	services Services
}

// NewRunner creates a Runner. Services.LLM, Services.Fetcher, and
// Services.Cache must be set.
func NewRunner(services Services) *Runner {
	return &Runner{services: services}
}

// Run researches the target site and returns its profile. Progress is
// reported through opts.OnProgress; the event stream always ends with
// exactly one complete or error event. Only an unusable target URL or a
// failed homepage fetch aborts the run - every other collaborator failure
// degrades the result instead.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*types.CompanyProfile, error) {
	run := newRun(opts.OnProgress)

	key, err := cache.Normalize(opts.TargetURL)
	if err != nil {
		err = fmt.Errorf("invalid target URL %q: %w", opts.TargetURL, err)
		run.fail(err)
		return nil, err
	}
	if err := r.checkServices(); err != nil {
		run.fail(err)
		return nil, err
	}

	if !opts.Refresh {
		if entry := r.services.Cache.Get(key); entry != nil && entry.Profile != nil {
			if opts.Verbose {
				log.Printf("[PIPELINE] Cache hit for %s", key)
			}
			run.complete(entry.Profile)
			return entry.Profile, nil
		}
	}

	domain := cache.Domain(key)

	var siteURLs []string
	if r.services.Mapper != nil {
		run.status("Mapping site structure")
		siteURLs, err = r.services.Mapper.Map(ctx, key, sitemap.MaxURLs)
		if err != nil {
			if opts.Verbose {
				log.Printf("[PIPELINE] Sitemap unavailable for %s: %v", key, err)
			}
			siteURLs = nil
		}
	}

	run.status("Scanning homepage")
	homepage, err := r.services.Fetcher.FetchPage(ctx, key)
	if err != nil {
		err = fmt.Errorf("homepage fetch failed: %w", err)
		run.fail(err)
		return nil, err
	}
	run.pageScraped(homepage)

	// Logo search runs concurrently with selection and page fetching; it
	// only needs a name guess, which the homepage title already provides.
	name := logos.NameGuess(homepage.Title)
	if name == "" {
		name = logos.NameFromDomain(domain)
	}
	run.emit(Event{Type: EventLogoSearch, Message: name})
	logoCh := make(chan []types.LogoCandidate, 1)
	go func() {
		if r.services.Logos == nil {
			logoCh <- nil
			return
		}
		logoCh <- r.services.Logos.Resolve(ctx, name, domain)
	}()

	links := siteURLs
	if len(links) == 0 {
		links, err = fetch.ExtractLinks(homepage.RawHTML, key)
		if err != nil {
			if opts.Verbose {
				log.Printf("[PIPELINE] Link extraction failed for %s: %v", key, err)
			}
			links = nil
		}
	}
	links = excludeURL(links, key)

	run.emit(Event{Type: EventAnalyzing, Message: fmt.Sprintf("Selecting from %d links", len(links))})
	candidates := selection.RankPages(ctx, r.services.LLM, homepage.Content, selection.FilterCandidates(links))

	toFetch, remaining := splitCandidates(candidates, opts.maxPages())
	fetched := map[string]bool{key: true, homepage.URL: true}
	pages := r.fetchBatches(ctx, run, toFetch, fetched)
	allPages := append([]*types.ScrapedPage{homepage}, pages...)

	logoCandidates := <-logoCh
	if len(logoCandidates) > 0 {
		run.emit(Event{Type: EventLogoFound, URL: logoCandidates[0].URL, Candidates: logoCandidates})
	} else {
		run.status("No logo found")
	}

	// Palette extraction overlaps the (slow) streaming extraction and is
	// joined after it.
	paletteCh := make(chan *colors.Palette, 1)
	go func() {
		paletteCh <- r.resolvePalette(ctx, logoCandidates, allPages, opts.Verbose)
	}()

	run.emit(Event{Type: EventExtracting, Message: fmt.Sprintf("Extracting from %d pages", len(allPages))})
	corpus := BuildCorpus(allPages)
	extracted := extraction.Extract(ctx, r.services.LLM, corpus, domain, func(chunk string) {
		run.emit(Event{Type: EventExtractionChunk, Chunk: chunk})
	})

	palette := <-paletteCh

	profile := &types.CompanyProfile{
		Name:           extracted.Name,
		Industry:       extracted.Industry,
		Description:    extracted.Description,
		Logo:           pickLogo(logoCandidates, extracted.Logo, homepage.LogoHint),
		LogoCandidates: logoCandidates,
		Colors:         colors.Merge(palette, extracted.Colors),
		PagesScraped:   pageURLs(allPages),
		ScrapedAt:      time.Now(),
		CanScanMore:    len(remaining) > 0,
		RemainingLinks: remaining,
	}

	r.services.Cache.Put(key, &cache.Entry{
		Profile:             profile,
		RawContent:          corpus,
		RemainingCandidates: remaining,
	})

	run.complete(profile)
	return profile, nil
}

// ScanMore continues a previous run from its cached remaining links,
// skipping mapping and selection. Without a usable cache entry it degrades
// to a fresh run.
func (r *Runner) ScanMore(ctx context.Context, opts RunOptions) (*types.CompanyProfile, error) {
	key, err := cache.Normalize(opts.TargetURL)
	if err != nil {
		run := newRun(opts.OnProgress)
		err = fmt.Errorf("invalid target URL %q: %w", opts.TargetURL, err)
		run.fail(err)
		return nil, err
	}
	if err := r.checkServices(); err != nil {
		run := newRun(opts.OnProgress)
		run.fail(err)
		return nil, err
	}

	entry := r.services.Cache.Get(key)
	if entry == nil || entry.Profile == nil {
		if opts.Verbose {
			log.Printf("[PIPELINE] No cached run for %s, starting fresh", key)
		}
		opts.Refresh = true
		return r.Run(ctx, opts)
	}

	run := newRun(opts.OnProgress)

	if len(entry.RemainingCandidates) == 0 {
		run.complete(entry.Profile)
		return entry.Profile, nil
	}

	domain := cache.Domain(key)

	limit := opts.maxPages()
	urls := entry.RemainingCandidates
	if len(urls) > limit {
		urls = urls[:limit]
	}
	remaining := entry.RemainingCandidates[len(urls):]

	run.status(fmt.Sprintf("Scanning %d more pages", len(urls)))
	fetched := make(map[string]bool, len(entry.Profile.PagesScraped)+1)
	fetched[key] = true
	for _, u := range entry.Profile.PagesScraped {
		fetched[u] = true
	}
	pages := r.fetchBatches(ctx, run, asCandidates(urls), fetched)

	corpus := entry.RawContent + BuildCorpus(pages)

	run.emit(Event{Type: EventExtracting, Message: fmt.Sprintf("Re-extracting with %d new pages", len(pages))})
	extracted := extraction.Extract(ctx, r.services.LLM, corpus, domain, func(chunk string) {
		run.emit(Event{Type: EventExtractionChunk, Chunk: chunk})
	})

	updated := *entry.Profile
	// Only adopt the new facts when extraction produced a real description;
	// a degraded extraction must not clobber a good earlier profile.
	if extracted.Description != "" {
		updated.Name = extracted.Name
		updated.Description = extracted.Description
		if extracted.Industry != "" {
			updated.Industry = extracted.Industry
		}
	}
	updated.PagesScraped = append(append([]string{}, entry.Profile.PagesScraped...), pageURLs(pages)...)
	updated.ScrapedAt = time.Now()
	updated.CanScanMore = len(remaining) > 0
	updated.RemainingLinks = remaining

	r.services.Cache.Put(key, &cache.Entry{
		Profile:             &updated,
		RawContent:          corpus,
		RemainingCandidates: remaining,
	})

	run.complete(&updated)
	return &updated, nil
}

func (r *Runner) checkServices() error {
	switch {
	case r.services.LLM == nil:
		return fmt.Errorf("pipeline requires an LLM client")
	case r.services.Fetcher == nil:
		return fmt.Errorf("pipeline requires a page fetcher")
	case r.services.Cache == nil:
		return fmt.Errorf("pipeline requires a result cache")
	}
	return nil
}

// fetchBatches fetches candidates in batches of BatchSize. Each batch fans
// out one goroutine per URL and is fully drained before the next starts;
// per-page failures are logged and dropped. Events for a batch are emitted
// in original candidate order.
func (r *Runner) fetchBatches(ctx context.Context, run *run, candidates []types.PageCandidate, fetched map[string]bool) []*types.ScrapedPage {
	var pages []*types.ScrapedPage
	for start := 0; start < len(candidates); start += BatchSize {
		end := start + BatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]
		results := make([]*types.ScrapedPage, len(batch))

		g, batchCtx := errgroup.WithContext(ctx)
		for i, candidate := range batch {
			if fetched[candidate.URL] {
				continue
			}
			fetched[candidate.URL] = true
			g.Go(func() error {
				page, err := r.services.Fetcher.FetchPage(batchCtx, candidate.URL)
				if err != nil {
					log.Printf("[PIPELINE] Skipping %s: %v", candidate.URL, err)
					return nil
				}
				results[i] = page
				return nil
			})
		}
		_ = g.Wait()

		for _, page := range results {
			if page == nil {
				continue
			}
			run.pageScraped(page)
			pages = append(pages, page)
		}
	}
	return pages
}

func (r *Runner) resolvePalette(ctx context.Context, logoCandidates []types.LogoCandidate, pages []*types.ScrapedPage, verbose bool) *colors.Palette {
	if r.services.Palette == nil {
		return nil
	}

	if len(logoCandidates) > 0 {
		palette, err := r.services.Palette.PaletteOf(ctx, logoCandidates[0].URL)
		if err == nil {
			return palette
		}
		if verbose {
			log.Printf("[PIPELINE] Logo palette failed: %v", err)
		}
	}

	if preview := colors.FirstPreviewImage(pages); preview != "" {
		palette, err := r.services.Palette.PaletteOf(ctx, preview)
		if err == nil {
			return palette
		}
		if verbose {
			log.Printf("[PIPELINE] Preview palette failed: %v", err)
		}
	}

	return nil
}

// BuildCorpus concatenates scraped pages into the extraction corpus.
func BuildCorpus(pages []*types.ScrapedPage) string {
	var sb strings.Builder
	for _, page := range pages {
		sb.WriteString("# Page: ")
		sb.WriteString(page.URL)
		sb.WriteString("\n\n")
		if page.Title != "" {
			sb.WriteString(page.Title)
			sb.WriteString("\n\n")
		}
		sb.WriteString(page.Content)
		sb.WriteString("\n\n---\n\n")
	}
	return sb.String()
}

// splitCandidates divides ranked candidates into the slice to fetch now and
// the remaining URLs kept for a later "scan more" run.
func splitCandidates(candidates []types.PageCandidate, limit int) ([]types.PageCandidate, []string) {
	if len(candidates) <= limit {
		return candidates, nil
	}
	remaining := make([]string, 0, len(candidates)-limit)
	for _, candidate := range candidates[limit:] {
		remaining = append(remaining, candidate.URL)
	}
	return candidates[:limit], remaining
}

func asCandidates(urls []string) []types.PageCandidate {
	candidates := make([]types.PageCandidate, 0, len(urls))
	for _, u := range urls {
		candidates = append(candidates, types.PageCandidate{URL: u})
	}
	return candidates
}

func excludeURL(links []string, target string) []string {
	target = strings.TrimSuffix(target, "/")
	filtered := links[:0]
	for _, link := range links {
		if strings.TrimSuffix(link, "/") == target {
			continue
		}
		filtered = append(filtered, link)
	}
	return filtered
}

func pickLogo(candidates []types.LogoCandidate, extracted, homepageHint string) string {
	if len(candidates) > 0 {
		return candidates[0].URL
	}
	if extracted != "" {
		return extracted
	}
	return homepageHint
}

func pageURLs(pages []*types.ScrapedPage) []string {
	urls := make([]string, 0, len(pages))
	for _, page := range pages {
		urls = append(urls, page.URL)
	}
	return urls
}
