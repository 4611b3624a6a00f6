// Package extraction turns the scraped corpus into structured company facts
// via the text-generation service, consumed as an incremental token stream.
// Extraction never fails a run: parse failures fall back to a non-streaming
// request, and then to a default record.
package extraction

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/company-profiler/internal/fetch"
	"github.com/jonathan/company-profiler/internal/llm"
	"github.com/jonathan/company-profiler/internal/logos"
	"github.com/jonathan/company-profiler/internal/prompts"
	"github.com/jonathan/company-profiler/internal/schemas"
	"github.com/jonathan/company-profiler/internal/types"
)

// MaxCorpusChars caps the scraped corpus included in the extraction prompt.
const MaxCorpusChars = 80000

//go:embed extraction_schema.json
var extractionSchema string

// Extraction is the structured result decoded from the LLM response.
// Colors is nil when the model suggested no palette.
type Extraction struct {
	Name        string             `json:"name"`
	Industry    string             `json:"industry"`
	Description string             `json:"description"`
	Logo        string             `json:"logo"`
	Colors      *types.BrandColors `json:"colors"`
}

// BuildPrompt assembles the extraction prompt from the corpus and domain.
func BuildPrompt(corpus, domain string) string {
	template := prompts.MustGet("profiler.json", "extract-profile")
	return prompts.Format(template, map[string]string{
		"Corpus": fetch.Truncate(corpus, MaxCorpusChars),
		"Domain": domain,
	})
}

// Extract streams an extraction from the corpus, forwarding every text
// fragment to onChunk as it arrives. The accumulated stream is parsed for
// the first balanced JSON object; on failure a non-streaming request is
// tried, and on failure again the default record for the domain is returned.
func Extract(ctx context.Context, client llm.Client, corpus, domain string, onChunk llm.ChunkFunc) *Extraction {
	prompt := BuildPrompt(corpus, domain)

	streamed, err := client.GenerateStream(ctx, prompt, llm.TierStandard, onChunk)
	if err != nil {
		log.Printf("[EXTRACT] Stream failed: %v", err)
	}
	// A failed stream can still hold a complete object; always try the buffer.
	if result, parseErr := Parse(streamed); parseErr == nil {
		return result
	} else if streamed != "" {
		log.Printf("[EXTRACT] Streamed output unparseable (%v), retrying non-streaming", parseErr)
	}

	text, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err == nil {
		if result, parseErr := Parse(text); parseErr == nil {
			return result
		}
	} else {
		log.Printf("[EXTRACT] Non-streaming fallback failed: %v", err)
	}

	return Default(domain)
}

// Parse scans free-form LLM output for the first balanced JSON object,
// decodes it, and validates it against the extraction schema.
func Parse(text string) (*Extraction, error) {
	objectText, ok := llm.FirstJSONObject(llm.CleanJSONBlock(text))
	if !ok {
		return nil, fmt.Errorf("no JSON object in response")
	}

	if err := schemas.ValidateJSONString(extractionSchema, objectText); err != nil {
		return nil, fmt.Errorf("extraction rejected by schema: %w", err)
	}

	var result Extraction
	if err := json.Unmarshal([]byte(objectText), &result); err != nil {
		return nil, fmt.Errorf("failed to decode extraction: %w", err)
	}

	if result.Name == "" {
		return nil, fmt.Errorf("extraction missing company name")
	}

	return &result, nil
}

// Default returns the degraded extraction used when the service produced
// nothing usable: a domain-derived name and empty facts.
func Default(domain string) *Extraction {
	return &Extraction{
		Name: logos.NameFromDomain(domain),
	}
}
