// Package types provides shared domain types for the company profiler.
package types

import "time"

// BrandColors is the six-field palette attached to a company profile.
// Each field is resolved independently through its own fallback chain,
// so a profile never carries an empty primary color.
type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	TextColor string `json:"text_color"`
	ButtonBg  string `json:"button_bg"`
	ButtonFg  string `json:"button_fg"`
}

// LogoCandidate is a single image-search hit that passed the logo heuristics.
// The first candidate in a list is treated as the best guess; the full list
// is surfaced so a caller can override the choice manually.
type LogoCandidate struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Title        string `json:"title,omitempty"`
	Source       string `json:"source,omitempty"`
}

// CompanyProfile is the final artifact of a research run. It is created once
// per run and never mutated; a later run for the same site supersedes it.
type CompanyProfile struct {
	Name           string          `json:"name"`
	Industry       string          `json:"industry"`
	Description    string          `json:"description"`
	Logo           string          `json:"logo,omitempty"`
	LogoCandidates []LogoCandidate `json:"logo_candidates,omitempty"`
	Colors         BrandColors     `json:"colors"`
	PagesScraped   []string        `json:"pages_scraped"`
	ScrapedAt      time.Time       `json:"scraped_at"`
	CanScanMore    bool            `json:"can_scan_more"`
	RemainingLinks []string        `json:"remaining_links,omitempty"`
}
