package fetch

import (
	md "github.com/JohannesKaufmann/html-to-markdown"
)

// ToMarkdown converts page HTML into markdown, preserving headings, lists,
// and emphasis so the extractor sees the page's own structure. Falls back
// to plain extracted text when conversion fails.
func ToMarkdown(html string) string {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		text, _ := ExtractMainText(html, CompanyPageSelectors())
		return text
	}
	return markdown
}
