package hreflang

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"github.com/davenorth/seotools/models"
)

// Languages considered by the page-language audit. Mirrors the set of codes
// the validator sees in practice; detection over every lingua language is
// slow to build and rarely more useful.
var auditLanguages = []lingua.Language{
	lingua.English, lingua.Spanish, lingua.French, lingua.German,
	lingua.Italian, lingua.Portuguese, lingua.Dutch, lingua.Russian,
	lingua.Chinese, lingua.Japanese, lingua.Korean, lingua.Arabic,
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// minTextLength is the minimum body-text size worth running detection on.
const minTextLength = 80

// AuditPageLanguage detects the dominant language of the page text and warns
// when no hreflang entry declares it. Returns nil when the text is too short
// to classify or detection is inconclusive.
func AuditPageLanguage(pageText string, entries []Entry) *models.Finding {
	text := strings.TrimSpace(pageText)
	if len(text) < minTextLength || len(entries) == 0 {
		return nil
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(auditLanguages...).
			Build()
	})

	language, ok := detector.DetectLanguageOf(text)
	if !ok {
		return nil
	}
	code := strings.ToLower(language.IsoCode639_1().String())

	for _, e := range entries {
		base, _, _ := strings.Cut(strings.ToLower(e.Lang), "-")
		if base == code {
			return &models.Finding{
				Level:   models.LevelSuccess,
				Message: fmt.Sprintf("Detected page language %q is declared by an hreflang entry.", code),
			}
		}
	}
	return &models.Finding{
		Level:   models.LevelWarning,
		Message: fmt.Sprintf("Detected page language %q is not declared by any hreflang entry.", code),
	}
}
