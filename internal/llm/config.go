package llm

// Provider identifies an LLM provider.
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// ModelTier selects between model capability/cost levels.
type ModelTier string

const (
	// TierLite is the fast, cheap tier used for link ranking.
	TierLite ModelTier = "lite"
	// TierStandard is the default tier used for structured extraction.
	TierStandard ModelTier = "standard"
)

// Config holds LLM provider and model selection.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the standard Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.0-flash-lite",
			TierStandard: "gemini-2.0-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to the standard
// tier when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}
