// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/company-profiler/internal/pipeline"
	"github.com/jonathan/company-profiler/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEvent writes a single progress line for a pipeline event. Extraction
// chunks are written raw so the streamed description renders as it arrives.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEvent(event pipeline.Event) {
	switch event.Type {
	case pipeline.EventStatus:
		fmt.Fprintf(p.out, "→ %s\n", event.Message)
	case pipeline.EventPageScraped:
		title := event.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(p.out, "  ✓ %s — %s\n", event.URL, title)
	case pipeline.EventAnalyzing:
		fmt.Fprintf(p.out, "→ Analyzing: %s\n", event.Message)
	case pipeline.EventLogoSearch:
		fmt.Fprintf(p.out, "→ Searching logo for %q\n", event.Message)
	case pipeline.EventLogoFound:
		fmt.Fprintf(p.out, "  ✓ Logo: %s (%d candidates)\n", event.URL, len(event.Candidates))
	case pipeline.EventExtracting:
		fmt.Fprintf(p.out, "→ %s\n", event.Message)
	case pipeline.EventExtractionChunk:
		fmt.Fprint(p.out, event.Chunk)
	case pipeline.EventError:
		fmt.Fprintf(p.out, "\n✗ %s\n", event.Error)
	case pipeline.EventComplete:
		fmt.Fprintln(p.out)
	}
}

// PrintCompanyProfile outputs a human-readable summary of the final profile.
func (p *Printer) PrintCompanyProfile(profile *types.CompanyProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Industry: %s\n", profile.Industry))
	if profile.Logo != "" {
		logo := profile.Logo
		if len(logo) > 45 {
			logo = logo[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Logo:     %s\n", logo))
	}
	sb.WriteString("\n")

	sb.WriteString("Colors:\n")
	sb.WriteString(fmt.Sprintf("  primary %s  secondary %s\n", profile.Colors.Primary, profile.Colors.Secondary))
	sb.WriteString(fmt.Sprintf("  accent  %s  text      %s\n", profile.Colors.Accent, profile.Colors.TextColor))
	sb.WriteString("\n")

	if len(profile.PagesScraped) > 0 {
		sb.WriteString(fmt.Sprintf("Pages scraped (%d):\n", len(profile.PagesScraped)))
		count := min(len(profile.PagesScraped), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.PagesScraped[i]))
		}
		if len(profile.PagesScraped) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.PagesScraped)-maxItemsToShow))
		}
	}

	if profile.CanScanMore {
		sb.WriteString(fmt.Sprintf("\n%d links left — rerun with --more to continue\n", len(profile.RemainingLinks)))
	}

	p.printBox("COMPANY PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDescription outputs the long-form description on its own, after the
// summary box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDescription(profile *types.CompanyProfile) {
	if profile == nil || profile.Description == "" {
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", profile.Description)
}
