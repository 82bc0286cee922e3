package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Unknown is shown for missing or undetermined languages.
const Unknown = "Unknown"

var tagKeys = []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}

// FromTags returns the lowercased language code from stream metadata tags,
// or "" when none is set.
func FromTags(tags map[string]string) string {
	for _, key := range tagKeys {
		value := strings.TrimSpace(strings.ReplaceAll(tags[key], "\u0000", ""))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}

// DisplayName returns the English name of a BCP 47 or ISO 639 code. Codes
// the parser rejects are echoed back uppercased.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return Unknown
	}
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if base, _ := tag.Base(); base.String() == "und" {
		return Unknown
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}
