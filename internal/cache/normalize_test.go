package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_AddsScheme(t *testing.T) {
	got, err := Normalize("example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got)
}

func TestNormalize_LowercasesHost(t *testing.T) {
	got, err := Normalize("https://EXAMPLE.com/About")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/About", got)
}

func TestNormalize_FoldsHTTPToHTTPS(t *testing.T) {
	got, err := Normalize("http://example.com/about")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/about", got)

	upper, err := Normalize("HTTP://EXAMPLE.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", upper)
}

func TestNormalize_StripsTrailingSlash(t *testing.T) {
	got, err := Normalize("https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got)
}

func TestNormalize_DropsQueryAndFragment(t *testing.T) {
	got, err := Normalize("https://example.com/about?utm=x#team")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/about", got)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"example.com",
		"https://EXAMPLE.com/",
		"http://www.example.com/about/",
		"example.com/careers?ref=nav",
	}
	for _, input := range inputs {
		once, err := Normalize(input)
		require.NoError(t, err, input)
		twice, err := Normalize(once)
		require.NoError(t, err, input)
		assert.Equal(t, once, twice, input)
	}
}

func TestNormalize_EquivalentFormsShareKey(t *testing.T) {
	a, err := Normalize("example.com")
	require.NoError(t, err)
	b, err := Normalize("https://EXAMPLE.com/")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNormalize_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "https://"} {
		_, err := Normalize(input)
		assert.ErrorIs(t, err, ErrInvalidURL, "input %q", input)
	}
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "example.com", Domain("https://www.EXAMPLE.com/about"))
	assert.Equal(t, "example.com", Domain("example.com"))
	assert.Equal(t, "", Domain(""))
}
