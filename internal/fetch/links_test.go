package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks_SameOriginOnly(t *testing.T) {
	html := `
		<html><body>
			<nav>
				<a href="/about">About</a>
				<a href="/careers">Careers</a>
			</nav>
			<main>
				<a href="https://other.com/external">External</a>
				<a href="https://example.com/blog">Blog</a>
			</main>
		</body></html>
	`
	links, err := ExtractLinks(html, "https://example.com")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"https://example.com/about",
		"https://example.com/careers",
		"https://example.com/blog",
	}, links)
}

func TestExtractLinks_ResolvesRelative(t *testing.T) {
	html := `
		<html><body>
			<a href="/relative">A</a>
			<a href="sibling">B</a>
		</body></html>
	`
	links, err := ExtractLinks(html, "https://example.com/path/to/page")
	require.NoError(t, err)
	assert.Contains(t, links, "https://example.com/relative")
	assert.Contains(t, links, "https://example.com/path/to/sibling")
}

func TestExtractLinks_DedupesAndStripsFragments(t *testing.T) {
	html := `
		<html><body>
			<a href="/page#a">One</a>
			<a href="/page#b">Two</a>
			<a href="/page">Three</a>
		</body></html>
	`
	links, err := ExtractLinks(html, "https://example.com")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/page", links[0])
}

func TestExtractLinks_InvalidBaseURL(t *testing.T) {
	_, err := ExtractLinks(`<a href="/x">x</a>`, "not-a-valid-url")
	require.Error(t, err)
	var linkErr *LinkExtractionError
	assert.ErrorAs(t, err, &linkErr)
}

func TestExtractLinks_EmptyHTML(t *testing.T) {
	links, err := ExtractLinks("", "https://example.com")
	require.NoError(t, err)
	assert.Empty(t, links)
}
