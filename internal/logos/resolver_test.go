package logos

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher records queries and serves canned results per query.
type fakeSearcher struct {
	results map[string][]ImageResult
	err     error
	queries []string
}

func (f *fakeSearcher) SearchImages(_ context.Context, query string, _ int64) ([]ImageResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func TestResolve_FirstQueryHits(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]ImageResult{
		"Acme logo": {
			{URL: "https://cdn.acme.com/logo.png", Title: "Acme logo"},
		},
	}}

	got := NewResolver(searcher, false).Resolve(context.Background(), "Acme", "acme.com")
	require.Len(t, got, 1)
	assert.Equal(t, "https://cdn.acme.com/logo.png", got[0].URL)
	assert.Equal(t, []string{"Acme logo"}, searcher.queries)
}

func TestResolve_FallsBackToDomainName(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]ImageResult{
		"Globex logo": {
			{URL: "https://img.example/globex-logo.svg", Title: "Globex brand mark"},
		},
	}}

	// Homepage title guess found nothing; the domain-derived name does.
	got := NewResolver(searcher, false).Resolve(context.Background(), "Welcome Portal", "globex.com")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Welcome Portal logo", "Globex logo"}, searcher.queries)
}

func TestResolve_SkipsRetryWhenNamesMatch(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]ImageResult{}}

	got := NewResolver(searcher, false).Resolve(context.Background(), "Acme", "acme.com")
	assert.Empty(t, got)
	// "Acme" and domain-derived "Acme" are not materially different.
	assert.Equal(t, []string{"Acme logo"}, searcher.queries)
}

func TestResolve_SearchErrorYieldsEmpty(t *testing.T) {
	searcher := &fakeSearcher{err: fmt.Errorf("quota exhausted")}
	got := NewResolver(searcher, false).Resolve(context.Background(), "Acme Industrial", "other-name.com")
	assert.Empty(t, got)
}

func TestFilterLogoLike(t *testing.T) {
	results := []ImageResult{
		{URL: "https://cdn.acme.com/logo.png", Title: "Acme"},
		{URL: "https://cdn.acme.com/brand-assets.png", Title: "Assets"},
		{URL: "https://cdn.acme.com/team.jpg", Title: "CEO headshot"},
		{URL: "https://acme.com/favicon.ico", Title: "Acme"},
		{URL: "https://cdn.acme.com/building.jpg", Title: "Acme HQ"},
	}

	got := FilterLogoLike(results)
	urls := make([]string, len(got))
	for i, c := range got {
		urls[i] = c.URL
	}
	assert.Equal(t, []string{
		"https://cdn.acme.com/logo.png",
		"https://cdn.acme.com/brand-assets.png",
		"https://cdn.acme.com/building.jpg", // neither logo-ish nor avatar-ish: kept
	}, urls)
}

func TestNameGuess(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Acme Corp - Home", "Acme Corp"},
		{"Acme Corp | Official Site", "Acme Corp"},
		{"Acme Corp – Build Anything Faster", "Acme Corp"},
		{"Acme Homepage", "Acme"},
		{"Acme", "Acme"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NameGuess(tt.title), "title %q", tt.title)
	}
}

func TestNameFromDomain(t *testing.T) {
	assert.Equal(t, "Acme", NameFromDomain("acme.com"))
	assert.Equal(t, "Acme Corp", NameFromDomain("acme-corp.io"))
	assert.Equal(t, "Acme", NameFromDomain("www.acme.com"))
	assert.Equal(t, "", NameFromDomain(""))
}
