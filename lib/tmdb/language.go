package tmdb

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var languageNamer = display.English.Languages()

// languageName prefers the provider's English label, then its native label,
// then the CLDR English name for the ISO code.
func languageName(l languageResult) string {
	if l.EnglishName != "" {
		return l.EnglishName
	}
	if l.Name != "" {
		return l.Name
	}
	tag, err := language.Parse(l.ISO6391)
	if err != nil {
		return l.ISO6391
	}
	if name := languageNamer.Name(tag); name != "" {
		return name
	}
	return l.ISO6391
}
