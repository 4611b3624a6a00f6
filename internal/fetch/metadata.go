package fetch

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata holds page-level metadata used for naming and logo discovery.
type Metadata struct {
	Title        string
	Description  string
	LogoHint     string // explicit logo markup, if the page declares one
	PreviewImage string // og:image / twitter:image social preview
}

// ExtractMetadata pulls the title, description, and image hints out of a
// page. Relative image URLs are resolved against baseURL. Parsing failures
// yield an empty Metadata rather than an error; metadata is best-effort.
func ExtractMetadata(html string, baseURL string) *Metadata {
	meta := &Metadata{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return meta
	}

	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if meta.Title == "" {
		if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			meta.Title = strings.TrimSpace(og)
		}
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		meta.Description = strings.TrimSpace(desc)
	}

	// Explicit logo markup wins over social preview images.
	logoSelectors := []string{
		`meta[property="og:logo"]`,
		`link[rel="logo"]`,
		`link[rel="apple-touch-icon"]`,
	}
	for _, selector := range logoSelectors {
		sel := doc.Find(selector).First()
		if content, ok := sel.Attr("content"); ok && content != "" {
			meta.LogoHint = resolveURL(baseURL, content)
			break
		}
		if href, ok := sel.Attr("href"); ok && href != "" {
			meta.LogoHint = resolveURL(baseURL, href)
			break
		}
	}

	previewSelectors := []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
	}
	for _, selector := range previewSelectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok && content != "" {
			meta.PreviewImage = resolveURL(baseURL, content)
			break
		}
	}

	return meta
}

// BestImageHint returns the strongest logo guess the page offers: explicit
// logo markup first, then the social preview image.
func (m *Metadata) BestImageHint() string {
	if m.LogoHint != "" {
		return m.LogoHint
	}
	return m.PreviewImage
}

func resolveURL(baseURL, ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if refURL.IsAbs() {
		return refURL.String()
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ref
	}
	return base.ResolveReference(refURL).String()
}
