package logos

import (
	"strings"
)

// titleSeparators split a homepage title into a name part and a tagline.
var titleSeparators = []string{" | ", " — ", " – ", " - ", " :: ", " · "}

// marketingSuffixes are trailing phrases that homepage titles often carry
// after the company name.
var marketingSuffixes = []string{
	"home", "homepage", "official site", "official website", "welcome",
}

// NameGuess extracts a company-name guess from a homepage title by taking
// the part before the first separator and stripping common marketing
// suffixes. Returns an empty string when nothing usable remains.
func NameGuess(title string) string {
	name := strings.TrimSpace(title)
	for _, sep := range titleSeparators {
		if idx := strings.Index(name, sep); idx > 0 {
			name = name[:idx]
			break
		}
	}

	for _, suffix := range marketingSuffixes {
		lower := strings.ToLower(name)
		if strings.HasSuffix(lower, suffix) {
			name = strings.TrimSpace(name[:len(name)-len(suffix)])
			name = strings.TrimRight(name, "-–—|:·")
			name = strings.TrimSpace(name)
		}
	}

	return strings.TrimSpace(name)
}

// NameFromDomain derives a display name from a domain: the registrable
// label, hyphens turned into spaces, words title-cased. "acme-corp.com"
// becomes "Acme Corp".
func NameFromDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	domain = strings.TrimPrefix(domain, "www.")
	if domain == "" {
		return ""
	}

	label := domain
	if idx := strings.IndexByte(label, '.'); idx > 0 {
		label = label[:idx]
	}
	if label == "" {
		return ""
	}

	words := strings.Split(strings.ReplaceAll(label, "-", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
