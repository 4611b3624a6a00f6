package colors

import (
	"regexp"

	"github.com/jonathan/company-profiler/internal/types"
)

// Hardcoded palette defaults; the last link in every fallback chain.
const (
	DefaultPrimary   = "#4F46E5"
	DefaultSecondary = "#7C3AED"
	DefaultAccent    = "#F59E0B"
	DefaultText      = "#1F2937"
	DefaultButtonBg  = "#4F46E5"
	DefaultButtonFg  = "#FFFFFF"
)

var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsValidHex reports whether s is a #rgb or #rrggbb color value.
func IsValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// DefaultColors returns the all-defaults palette used by fully degraded runs.
func DefaultColors() types.BrandColors {
	return types.BrandColors{
		Primary:   DefaultPrimary,
		Secondary: DefaultSecondary,
		Accent:    DefaultAccent,
		TextColor: DefaultText,
		ButtonBg:  DefaultButtonBg,
		ButtonFg:  DefaultButtonFg,
	}
}

// Merge resolves the final brand colors. Primary, secondary, and accent each
// fall back image-derived -> extractor-suggested -> default; the three UI
// support fields never take image-derived values. Invalid hex suggestions
// are treated as absent, so every field of the result is a valid hex value.
func Merge(extracted *Palette, suggested *types.BrandColors) types.BrandColors {
	if extracted == nil {
		extracted = &Palette{}
	}
	if suggested == nil {
		suggested = &types.BrandColors{}
	}

	return types.BrandColors{
		Primary:   firstValid(extracted.Vibrant, suggested.Primary, DefaultPrimary),
		Secondary: firstValid(extracted.Muted, suggested.Secondary, DefaultSecondary),
		Accent:    firstValid(extracted.LightVibrant, suggested.Accent, DefaultAccent),
		TextColor: firstValid("", suggested.TextColor, DefaultText),
		ButtonBg:  firstValid("", suggested.ButtonBg, DefaultButtonBg),
		ButtonFg:  firstValid("", suggested.ButtonFg, DefaultButtonFg),
	}
}

func firstValid(values ...string) string {
	for _, v := range values {
		if IsValidHex(v) {
			return v
		}
	}
	// The last value is always a package default.
	return values[len(values)-1]
}
