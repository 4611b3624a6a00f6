// Package selection ranks discovered links by relevance using the
// text-generation service. Selection is an optimization, not a correctness
// requirement: every failure degrades to an empty candidate list.
package selection

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/jonathan/company-profiler/internal/fetch"
	"github.com/jonathan/company-profiler/internal/llm"
	"github.com/jonathan/company-profiler/internal/prompts"
	"github.com/jonathan/company-profiler/internal/types"
)

const (
	// MaxHomepageChars caps the homepage text included in the ranking prompt.
	MaxHomepageChars = 15000
	// MaxCandidateLinks caps how many filtered links are sent for ranking.
	MaxCandidateLinks = 100
)

// denylist marks URL substrings that never lead to useful company content.
var denylist = []string{
	"login", "signin", "sign-in", "signup", "sign-up", "register",
	"cart", "checkout", "account", "password",
	"privacy", "terms", "legal", "cookie",
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".svg", ".zip", ".mp4",
	"mailto:", "tel:",
}

// FilterCandidates removes denylisted links and caps the result at
// MaxCandidateLinks, preserving source order.
func FilterCandidates(links []string) []string {
	filtered := make([]string, 0, len(links))
	for _, link := range links {
		if isDenied(link) {
			continue
		}
		filtered = append(filtered, link)
		if len(filtered) >= MaxCandidateLinks {
			break
		}
	}
	return filtered
}

func isDenied(link string) bool {
	lower := strings.ToLower(link)
	for _, pattern := range denylist {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// RankPages asks the LLM to rank candidate links against the priority
// taxonomy and returns them sorted by priority descending, ties keeping
// source order. Any failure - request, parse, or empty response - returns
// an empty list silently.
func RankPages(ctx context.Context, client llm.Client, homepageText string, links []string) []types.PageCandidate {
	if len(links) == 0 || client == nil {
		return nil
	}

	template := prompts.MustGet("profiler.json", "rank-pages")
	prompt := prompts.Format(template, map[string]string{
		"HomepageText": fetch.Truncate(homepageText, MaxHomepageChars),
		"Links":        strings.Join(links, "\n"),
	})

	response, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("[SELECT] Ranking request failed: %v", err)
		return nil
	}

	candidates := ParseCandidates(response)
	SortByPriority(candidates)
	return candidates
}

// ParseCandidates extracts the first balanced JSON array from free-form LLM
// output and decodes it. Returns nil on any parse failure.
func ParseCandidates(response string) []types.PageCandidate {
	arrayText, ok := llm.FirstJSONArray(llm.CleanJSONBlock(response))
	if !ok {
		return nil
	}

	var candidates []types.PageCandidate
	if err := json.Unmarshal([]byte(arrayText), &candidates); err != nil {
		return nil
	}

	// Clamp out-of-range priorities instead of rejecting the whole batch.
	for i := range candidates {
		if candidates[i].Priority < 1 {
			candidates[i].Priority = 1
		}
		if candidates[i].Priority > 10 {
			candidates[i].Priority = 10
		}
	}

	return candidates
}

// SortByPriority sorts candidates by priority descending; the sort is
// stable so ties preserve source order.
func SortByPriority(candidates []types.PageCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
}
