package sitemap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_URLSet(t *testing.T) {
	var serverHost string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sitemap.xml" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
			<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
				<url><loc>http://%[1]s/about/</loc></url>
				<url><loc>http://%[1]s/careers</loc></url>
				<url><loc>http://other.com/external</loc></url>
			</urlset>`, serverHost)
	}))
	defer server.Close()
	serverHost = mustHost(t, server.URL)

	urls, err := NewMapper(nil).Map(context.Background(), server.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://" + serverHost + "/about",
		"http://" + serverHost + "/careers",
	}, urls)
}

func TestMap_SitemapIndex(t *testing.T) {
	var serverHost string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			fmt.Fprintf(w, `<sitemapindex>
				<sitemap><loc>http://%[1]s/sitemap-pages.xml</loc></sitemap>
			</sitemapindex>`, serverHost)
		case "/sitemap-pages.xml":
			fmt.Fprintf(w, `<urlset>
				<url><loc>http://%[1]s/team</loc></url>
			</urlset>`, serverHost)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()
	serverHost = mustHost(t, server.URL)

	urls, err := NewMapper(nil).Map(context.Background(), server.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://" + serverHost + "/team"}, urls)
}

func TestMap_RespectsLimit(t *testing.T) {
	var serverHost string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<urlset>`)
		for i := 0; i < 20; i++ {
			fmt.Fprintf(w, `<url><loc>http://%s/page-%d</loc></url>`, serverHost, i)
		}
		fmt.Fprint(w, `</urlset>`)
	}))
	defer server.Close()
	serverHost = mustHost(t, server.URL)

	urls, err := NewMapper(nil).Map(context.Background(), server.URL, 5)
	require.NoError(t, err)
	assert.Len(t, urls, 5)
}

func TestMap_MissingSitemap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	_, err := NewMapper(nil).Map(context.Background(), server.URL, 0)
	assert.Error(t, err)
}

func TestMap_NotXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>not a sitemap</body></html>")
	}))
	defer server.Close()

	_, err := NewMapper(nil).Map(context.Background(), server.URL, 0)
	assert.Error(t, err)
}

func TestMap_InvalidURL(t *testing.T) {
	_, err := NewMapper(nil).Map(context.Background(), "not-a-url", 0)
	assert.Error(t, err)
}

func mustHost(t *testing.T, rawURL string) string {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	return parsed.Host
}
