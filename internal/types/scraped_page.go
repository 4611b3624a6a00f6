package types

// ScrapedPage is one fetched page of the target site, reduced to the
// content the extractor consumes. RawHTML is kept for preview-image and
// link scanning but never serialized.
type ScrapedPage struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	LogoHint string `json:"logo_hint,omitempty"`
	RawHTML  string `json:"-"`
}

// PageCandidate is a discovered link ranked for fetching. Priority runs
// 1 (skip unless desperate) to 10 (careers/about/team pages).
type PageCandidate struct {
	URL      string `json:"url"`
	Reason   string `json:"reason"`
	Priority int    `json:"priority"`
}
