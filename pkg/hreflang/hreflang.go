// Package hreflang extracts hreflang alternate links from markup and checks
// them against the usual correctness rules: valid language codes, no
// duplicates, absolute URLs, a single scheme, and an x-default fallback.
package hreflang

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/davenorth/seotools/models"
)

// Entry is one extracted hreflang/href pair.
type Entry struct {
	Lang string `json:"hreflang"`
	Href string `json:"href"`
}

// Report holds the extracted entries and the validation findings. The
// findings are independent checks; none short-circuits another.
type Report struct {
	Entries  []Entry          `json:"entries"`
	Findings []models.Finding `json:"findings"`
}

// IsValid reports whether the markup passed with no error-level findings.
func (r *Report) IsValid() bool {
	errors, _ := models.CountLevels(r.Findings)
	return errors == 0
}

// languageCode matches ISO 639-1 codes with an optional region subtag.
var languageCode = regexp.MustCompile(`(?i)^[a-z]{2}(-[a-z]{2})?$`)

// Extract pulls all alternate links carrying an hreflang attribute out of
// the markup, regardless of attribute order.
func Extract(markup string) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	var entries []Entry
	doc.Find(`link[rel='alternate'][hreflang]`).Each(func(i int, s *goquery.Selection) {
		lang, _ := s.Attr("hreflang")
		href, _ := s.Attr("href")
		entries = append(entries, Entry{Lang: lang, Href: href})
	})
	return entries, nil
}

// Validate extracts hreflang entries from the markup and runs every check.
func Validate(markup string) Report {
	var report Report

	entries, err := Extract(markup)
	if err != nil {
		report.Findings = append(report.Findings, models.Finding{
			Level:   models.LevelError,
			Message: "Failed to parse input markup.",
		})
		return report
	}
	report.Entries = entries

	if len(entries) == 0 {
		report.Findings = append(report.Findings, models.Finding{
			Level:   models.LevelError,
			Message: "No valid hreflang tags found in the input.",
		})
		return report
	}
	report.Findings = append(report.Findings, models.Finding{
		Level:   models.LevelSuccess,
		Message: fmt.Sprintf("Found %d hreflang tag(s).", len(entries)),
	})

	report.Findings = append(report.Findings, checkXDefault(entries))
	report.Findings = append(report.Findings, checkLanguageCodes(entries)...)
	report.Findings = append(report.Findings, checkDuplicates(entries))
	report.Findings = append(report.Findings, checkURLs(entries)...)
	if f := checkMixedSchemes(entries); f != nil {
		report.Findings = append(report.Findings, *f)
	}
	return report
}

func checkXDefault(entries []Entry) models.Finding {
	for _, e := range entries {
		if strings.EqualFold(e.Lang, "x-default") {
			return models.Finding{Level: models.LevelSuccess, Message: "x-default tag found."}
		}
	}
	return models.Finding{
		Level:   models.LevelWarning,
		Message: "Missing x-default tag. Recommended for specifying the default/fallback page.",
	}
}

func checkLanguageCodes(entries []Entry) []models.Finding {
	var findings []models.Finding
	for _, e := range entries {
		if strings.EqualFold(e.Lang, "x-default") || languageCode.MatchString(e.Lang) {
			continue
		}
		findings = append(findings, models.Finding{
			Level:   models.LevelError,
			Message: fmt.Sprintf("Invalid language code: %q. Use ISO 639-1 format.", e.Lang),
		})
	}
	return findings
}

func checkDuplicates(entries []Entry) models.Finding {
	seen := make(map[string]int)
	for _, e := range entries {
		seen[strings.ToLower(e.Lang)]++
	}
	var dupes []string
	for code, n := range seen {
		if n > 1 {
			dupes = append(dupes, code)
		}
	}
	if len(dupes) == 0 {
		return models.Finding{Level: models.LevelSuccess, Message: "No duplicate language codes."}
	}
	sort.Strings(dupes)
	return models.Finding{
		Level:   models.LevelError,
		Message: fmt.Sprintf("Duplicate language codes found: %s", strings.Join(dupes, ", ")),
	}
}

func checkURLs(entries []Entry) []models.Finding {
	var findings []models.Finding
	for _, e := range entries {
		u, err := url.Parse(e.Href)
		if err != nil || u.Scheme == "" || u.Host == "" {
			findings = append(findings, models.Finding{
				Level:   models.LevelError,
				Message: fmt.Sprintf("Invalid URL for %s: %q", e.Lang, e.Href),
			})
		}
	}
	if len(findings) == 0 {
		findings = append(findings, models.Finding{
			Level:   models.LevelSuccess,
			Message: "All URLs are valid.",
		})
	}
	return findings
}

func checkMixedSchemes(entries []Entry) *models.Finding {
	schemes := make(map[string]struct{})
	for _, e := range entries {
		if u, err := url.Parse(e.Href); err == nil && u.Scheme != "" {
			schemes[u.Scheme] = struct{}{}
		}
	}
	_, hasHTTP := schemes["http"]
	_, hasHTTPS := schemes["https"]
	if hasHTTP && hasHTTPS {
		return &models.Finding{
			Level:   models.LevelWarning,
			Message: "Mixed http and https URLs. All alternates should use the same protocol.",
		}
	}
	return nil
}
