package logos

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/company-profiler/internal/types"
)

// maxSearchResults is how many image hits each query requests.
const maxSearchResults = 10

// avatarMarkers flag results that are probably people or site chrome
// rather than a company mark.
var avatarMarkers = []string{
	"avatar", "favicon", "profile", "headshot", "gravatar", "user-photo",
}

// Resolver finds logo candidates for a company. It never returns an error:
// every failure path yields a shorter (possibly empty) candidate list.
type Resolver struct {
	searcher Searcher
	verbose  bool
}

// NewResolver creates a Resolver over the given search capability.
func NewResolver(searcher Searcher, verbose bool) *Resolver {
	return &Resolver{
		searcher: searcher,
		verbose:  verbose,
	}
}

// Resolve searches for logo images matching the company name, retrying once
// with a domain-derived name when the first query yields nothing and the
// alternative is materially different. The first candidate is the best guess.
func (r *Resolver) Resolve(ctx context.Context, companyName, domain string) []types.LogoCandidate {
	if r == nil || r.searcher == nil {
		return nil
	}

	candidates := r.searchOnce(ctx, companyName)
	if len(candidates) > 0 {
		return candidates
	}

	alternative := NameFromDomain(domain)
	if alternative == "" || !materiallyDifferent(companyName, alternative) {
		return nil
	}

	if r.verbose {
		log.Printf("[LOGO] No results for %q, retrying as %q", companyName, alternative)
	}
	return r.searchOnce(ctx, alternative)
}

func (r *Resolver) searchOnce(ctx context.Context, name string) []types.LogoCandidate {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	results, err := r.searcher.SearchImages(ctx, name+" logo", maxSearchResults)
	if err != nil {
		log.Printf("[LOGO] Search for %q failed: %v", name, err)
		return nil
	}

	return FilterLogoLike(results)
}

// FilterLogoLike applies the logo heuristics: results that mention "logo"
// or "brand" in their URL or title always pass; the rest pass unless they
// look like avatars, favicons, or profile pictures.
func FilterLogoLike(results []ImageResult) []types.LogoCandidate {
	candidates := make([]types.LogoCandidate, 0, len(results))
	for _, result := range results {
		haystack := strings.ToLower(result.URL + " " + result.Title)
		if !strings.Contains(haystack, "logo") && !strings.Contains(haystack, "brand") {
			if looksLikeAvatar(haystack) {
				continue
			}
		}
		candidates = append(candidates, types.LogoCandidate{
			URL:          result.URL,
			ThumbnailURL: result.ThumbnailURL,
			Title:        result.Title,
			Source:       result.Source,
		})
	}
	return candidates
}

func looksLikeAvatar(haystack string) bool {
	for _, marker := range avatarMarkers {
		if strings.Contains(haystack, marker) {
			return true
		}
	}
	return false
}

func materiallyDifferent(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return a != b
	}
	return !strings.Contains(a, b) && !strings.Contains(b, a)
}
