// Package detector identifies the language of materialized articles so the
// run history can report which locales the corpus covers.
package detector

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Languages the help-center publishes in. Restricting the set keeps the
// detector models small and the classification accurate.
var languages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Japanese,
}

type Detector struct {
	inner lingua.LanguageDetector
}

func New() *Detector {
	return &Detector{
		inner: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code for the text's language, or false when
// no language can be determined with confidence.
func (d *Detector) Detect(text string) (string, bool) {
	lang, ok := d.inner.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
