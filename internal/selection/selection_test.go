package selection

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-profiler/internal/llm"
	"github.com/jonathan/company-profiler/internal/types"
)

// fakeClient returns canned responses for ranking tests.
type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) GenerateStream(_ context.Context, _ string, _ llm.ModelTier, onChunk llm.ChunkFunc) (string, error) {
	if onChunk != nil {
		onChunk(f.response)
	}
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestFilterCandidates_Denylist(t *testing.T) {
	links := []string{
		"https://acme.com/about",
		"https://acme.com/login",
		"https://acme.com/careers",
		"https://acme.com/privacy-policy",
		"https://acme.com/brochure.pdf",
		"https://acme.com/cart",
		"https://acme.com/team",
	}
	got := FilterCandidates(links)
	assert.Equal(t, []string{
		"https://acme.com/about",
		"https://acme.com/careers",
		"https://acme.com/team",
	}, got)
}

func TestFilterCandidates_Cap(t *testing.T) {
	links := make([]string, 0, MaxCandidateLinks+50)
	for i := 0; i < MaxCandidateLinks+50; i++ {
		links = append(links, fmt.Sprintf("https://acme.com/page-%d", i))
	}
	assert.Len(t, FilterCandidates(links), MaxCandidateLinks)
}

func TestRankPages_SortedByPriority(t *testing.T) {
	client := &fakeClient{response: `Here are the ranked pages:
	[
		{"url": "https://acme.com/blog", "reason": "posts", "priority": 3},
		{"url": "https://acme.com/about", "reason": "about page", "priority": 9},
		{"url": "https://acme.com/careers", "reason": "careers page", "priority": 9},
		{"url": "https://acme.com/misc", "reason": "misc", "priority": 1}
	]`}

	got := RankPages(context.Background(), client, "homepage text", []string{"https://acme.com/about"})
	require.Len(t, got, 4)
	// Stable: both priority-9 entries keep their source order.
	assert.Equal(t, []int{9, 9, 3, 1}, priorities(got))
	assert.Equal(t, "https://acme.com/about", got[0].URL)
	assert.Equal(t, "https://acme.com/careers", got[1].URL)
}

func TestRankPages_RequestFailure(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("quota exceeded")}
	got := RankPages(context.Background(), client, "text", []string{"https://acme.com/about"})
	assert.Empty(t, got)
}

func TestRankPages_NoLinks(t *testing.T) {
	client := &fakeClient{response: "[]"}
	assert.Empty(t, RankPages(context.Background(), client, "text", nil))
}

func TestParseCandidates_ProseWithEmbeddedArray(t *testing.T) {
	got := ParseCandidates(`Sure! Based on the links: [{"url": "https://a.com/x", "reason": "r", "priority": 7}] hope that helps.`)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Priority)
}

func TestParseCandidates_MalformedReturnsEmpty(t *testing.T) {
	assert.Nil(t, ParseCandidates("no json here at all"))
	assert.Nil(t, ParseCandidates(`[{"url": "broken"`))
	assert.Nil(t, ParseCandidates(`[1, 2, "not objects"]`))
}

func TestParseCandidates_ClampsPriorities(t *testing.T) {
	got := ParseCandidates(`[
		{"url": "https://a.com/low", "reason": "r", "priority": 0},
		{"url": "https://a.com/high", "reason": "r", "priority": 15}
	]`)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Priority)
	assert.Equal(t, 10, got[1].Priority)
}

func TestSortByPriority_Stable(t *testing.T) {
	candidates := []types.PageCandidate{
		{URL: "a", Priority: 3},
		{URL: "b", Priority: 9},
		{URL: "c", Priority: 9},
		{URL: "d", Priority: 1},
	}
	SortByPriority(candidates)
	assert.Equal(t, []int{9, 9, 3, 1}, priorities(candidates))
	assert.Equal(t, "b", candidates[0].URL)
	assert.Equal(t, "c", candidates[1].URL)
}

func priorities(candidates []types.PageCandidate) []int {
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.Priority
	}
	return out
}
