package hreflang

import (
	"strings"
	"testing"

	"github.com/davenorth/seotools/models"
)

const wellFormed = `<link rel="alternate" hreflang="en" href="https://example.com/en/" />
<link rel="alternate" hreflang="es" href="https://example.com/es/" />
<link rel="alternate" hreflang="fr" href="https://example.com/fr/" />
<link rel="alternate" hreflang="x-default" href="https://example.com/" />`

func errorMessages(findings []models.Finding) []string {
	var msgs []string
	for _, f := range findings {
		if f.Level == models.LevelError {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

func TestValidate_WellFormed(t *testing.T) {
	report := Validate(wellFormed)

	if len(report.Entries) != 4 {
		t.Fatalf("Validate() extracted %d entries, want 4", len(report.Entries))
	}
	if errs := errorMessages(report.Findings); len(errs) != 0 {
		t.Errorf("Validate() errors = %v, want none", errs)
	}
	if !report.IsValid() {
		t.Error("IsValid() = false, want true")
	}
}

func TestValidate_AttributeOrderIndependent(t *testing.T) {
	markup := `<link hreflang="en" href="https://example.com/en/" rel="alternate" />
<link href="https://example.com/de/" hreflang="de" rel="alternate" />`

	report := Validate(markup)

	if len(report.Entries) != 2 {
		t.Fatalf("Validate() extracted %d entries, want 2", len(report.Entries))
	}
	if report.Entries[1].Lang != "de" {
		t.Errorf("second entry lang = %q, want %q", report.Entries[1].Lang, "de")
	}
}

func TestValidate_NoTags(t *testing.T) {
	report := Validate(`<p>no links here</p>`)

	if len(report.Entries) != 0 {
		t.Fatalf("Validate() extracted %d entries, want 0", len(report.Entries))
	}
	errs := errorMessages(report.Findings)
	if len(errs) != 1 || !strings.Contains(errs[0], "No valid hreflang tags") {
		t.Errorf("Validate() errors = %v, want single no-tags error", errs)
	}
}

func TestValidate_MissingXDefaultWarns(t *testing.T) {
	markup := `<link rel="alternate" hreflang="en" href="https://example.com/en/" />`

	report := Validate(markup)

	found := false
	for _, f := range report.Findings {
		if f.Level == models.LevelWarning && strings.Contains(f.Message, "x-default") {
			found = true
		}
	}
	if !found {
		t.Error("missing x-default did not produce a warning")
	}
	if !report.IsValid() {
		t.Error("warnings must not invalidate the report")
	}
}

func TestValidate_InvalidLanguageCode(t *testing.T) {
	markup := `<link rel="alternate" hreflang="english" href="https://example.com/en/" />`

	report := Validate(markup)

	errs := errorMessages(report.Findings)
	if len(errs) != 1 || !strings.Contains(errs[0], `"english"`) {
		t.Errorf("Validate() errors = %v, want invalid-code error naming english", errs)
	}
}

func TestValidate_RegionSubtagAccepted(t *testing.T) {
	markup := `<link rel="alternate" hreflang="en-GB" href="https://example.com/uk/" />
<link rel="alternate" hreflang="x-default" href="https://example.com/" />`

	report := Validate(markup)

	if errs := errorMessages(report.Findings); len(errs) != 0 {
		t.Errorf("Validate() errors = %v, want none for en-GB", errs)
	}
}

func TestValidate_DuplicateCodes(t *testing.T) {
	markup := `<link rel="alternate" hreflang="en" href="https://example.com/en/" />
<link rel="alternate" hreflang="en" href="https://example.com/en-us/" />`

	report := Validate(markup)

	var dupErrors []string
	for _, msg := range errorMessages(report.Findings) {
		if strings.Contains(msg, "Duplicate") {
			dupErrors = append(dupErrors, msg)
		}
	}
	if len(dupErrors) != 1 {
		t.Fatalf("duplicate errors = %v, want exactly one", dupErrors)
	}
	if !strings.Contains(dupErrors[0], "en") {
		t.Errorf("duplicate error %q does not name en", dupErrors[0])
	}
}

func TestValidate_InvalidURL(t *testing.T) {
	markup := `<link rel="alternate" hreflang="en" href="/relative/path" />`

	report := Validate(markup)

	found := false
	for _, msg := range errorMessages(report.Findings) {
		if strings.Contains(msg, "Invalid URL") {
			found = true
		}
	}
	if !found {
		t.Error("relative href did not produce an invalid-URL error")
	}
}

func TestValidate_MixedSchemesWarns(t *testing.T) {
	markup := `<link rel="alternate" hreflang="en" href="https://example.com/en/" />
<link rel="alternate" hreflang="fr" href="http://example.com/fr/" />`

	report := Validate(markup)

	found := false
	for _, f := range report.Findings {
		if f.Level == models.LevelWarning && strings.Contains(f.Message, "Mixed http") {
			found = true
		}
	}
	if !found {
		t.Error("mixed schemes did not produce a warning")
	}
}

func TestAuditPageLanguage_ShortTextSkipped(t *testing.T) {
	entries := []Entry{{Lang: "en", Href: "https://example.com/"}}

	if f := AuditPageLanguage("too short", entries); f != nil {
		t.Errorf("AuditPageLanguage() = %v, want nil for short text", f)
	}
}

func TestAuditPageLanguage_DeclaredLanguage(t *testing.T) {
	entries := []Entry{{Lang: "en-GB", Href: "https://example.com/"}}
	text := strings.Repeat("The quick brown fox jumps over the lazy dog near the river bank. ", 4)

	f := AuditPageLanguage(text, entries)
	if f == nil {
		t.Fatal("AuditPageLanguage() = nil, want a finding")
	}
	if f.Level != models.LevelSuccess {
		t.Errorf("finding level = %q, want success: %s", f.Level, f.Message)
	}
}

func TestAuditPageLanguage_UndeclaredLanguage(t *testing.T) {
	entries := []Entry{{Lang: "fr", Href: "https://example.com/fr/"}}
	text := strings.Repeat("The quick brown fox jumps over the lazy dog near the river bank. ", 4)

	f := AuditPageLanguage(text, entries)
	if f == nil {
		t.Fatal("AuditPageLanguage() = nil, want a finding")
	}
	if f.Level != models.LevelWarning {
		t.Errorf("finding level = %q, want warning: %s", f.Level, f.Message)
	}
}
