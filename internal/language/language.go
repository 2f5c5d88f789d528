package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Full English word forms accepted in place of a code (e.g. "russian").
// Codes themselves are resolved through x/text.
var wordForms = map[string]string{
	"english":    "en",
	"russian":    "ru",
	"ukrainian":  "uk",
	"german":     "de",
	"french":     "fr",
	"spanish":    "es",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"polish":     "pl",
	"dutch":      "nl",
}

func parse(code string) (language.Base, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return language.Base{}, false
	}
	if mapped, ok := wordForms[code]; ok {
		code = mapped
	}
	base, err := language.ParseBase(code)
	if err != nil {
		return language.Base{}, false
	}
	return base, true
}

// ToISO2 converts a language code or English word form to its shortest ISO 639
// code, which is the 2-letter form whenever one exists.
// Returns empty string for unrecognized input.
func ToISO2(code string) string {
	base, ok := parse(code)
	if !ok {
		return ""
	}
	return base.String()
}

// DisplayName returns the English name of a language code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	base, ok := parse(trimmed)
	if !ok {
		return strings.ToUpper(trimmed)
	}
	tag, err := language.Compose(base)
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}
