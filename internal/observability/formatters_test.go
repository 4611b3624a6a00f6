package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/company-profiler/internal/pipeline"
	"github.com/jonathan/company-profiler/internal/types"
)

func TestPrintCompanyProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.CompanyProfile{
		Name:     "Acme Corp",
		Industry: "Industrial automation",
		Logo:     "https://acme.com/logo.png",
		Colors: types.BrandColors{
			Primary:   "#112233",
			Secondary: "#223344",
			Accent:    "#334455",
			TextColor: "#1F2937",
		},
		PagesScraped: []string{
			"https://acme.com",
			"https://acme.com/about",
		},
		CanScanMore:    true,
		RemainingLinks: []string{"https://acme.com/team"},
	}

	p.PrintCompanyProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "COMPANY PROFILE")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Industrial automation")
	assert.Contains(t, output, "#112233")
	assert.Contains(t, output, "https://acme.com/about")
	assert.Contains(t, output, "1 links left")
}

func TestPrintCompanyProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompanyProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvent(pipeline.Event{Type: pipeline.EventStatus, Message: "Scanning homepage"})
	p.PrintEvent(pipeline.Event{Type: pipeline.EventPageScraped, URL: "https://acme.com", Title: "Acme"})
	p.PrintEvent(pipeline.Event{Type: pipeline.EventExtractionChunk, Chunk: "{\"name\""})
	p.PrintEvent(pipeline.Event{Type: pipeline.EventError, Error: "homepage fetch failed"})

	output := buf.String()
	assert.Contains(t, output, "Scanning homepage")
	assert.Contains(t, output, "https://acme.com — Acme")
	assert.Contains(t, output, "{\"name\"")
	assert.Contains(t, output, "homepage fetch failed")
}

func TestPrintDescription(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDescription(&types.CompanyProfile{Description: "Acme makes robots."})
	assert.Contains(t, buf.String(), "Acme makes robots.")

	buf.Reset()
	p.PrintDescription(&types.CompanyProfile{})
	assert.Empty(t, buf.String())
}
