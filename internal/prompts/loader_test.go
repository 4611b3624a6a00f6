package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	for _, key := range []string{"rank-pages", "extract-profile"} {
		prompt, err := Get("profiler.json", key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, prompt, key)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("profiler.json", "does-not-exist")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "rank-pages")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	got := Format("Hello {{.Name}}, welcome to {{.Place}}.", map[string]string{
		"Name":  "Acme",
		"Place": "the pipeline",
	})
	assert.Equal(t, "Hello Acme, welcome to the pipeline.", got)
}

func TestRankPagesPrompt_HasPlaceholders(t *testing.T) {
	prompt := MustGet("profiler.json", "rank-pages")
	assert.True(t, strings.Contains(prompt, "{{.HomepageText}}"))
	assert.True(t, strings.Contains(prompt, "{{.Links}}"))
}

func TestExtractProfilePrompt_HasPlaceholders(t *testing.T) {
	prompt := MustGet("profiler.json", "extract-profile")
	assert.True(t, strings.Contains(prompt, "{{.Corpus}}"))
	assert.True(t, strings.Contains(prompt, "{{.Domain}}"))
}
