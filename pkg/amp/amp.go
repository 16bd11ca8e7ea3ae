// Package amp runs a fixed battery of structural checks against AMP HTML.
//
// The checks are substring tests on the raw markup, not a DOM walk. That is
// deliberate: the battery mirrors the quick-feedback rules of the AMP
// project's documentation and will both under- and over-report relative to
// the official validator.
package amp

import (
	"strings"

	"github.com/davenorth/seotools/models"
)

// Check is one evaluated compliance rule.
type Check struct {
	Name    string       `json:"name"`
	Level   models.Level `json:"level"`
	Passed  bool         `json:"passed"`
	Message string       `json:"message"`
}

// Report is the outcome of a validation run. IsValid is true when no
// error-level check failed; warnings never affect it.
type Report struct {
	Checks  []Check `json:"checks"`
	IsValid bool    `json:"is_valid"`
}

// Failed returns the checks that did not pass.
func (r *Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

type rule struct {
	name    string
	level   models.Level
	message string
	// failed reports whether the rule is violated for the given HTML.
	failed func(html string) bool
}

var rules = []rule{
	{
		name:    "doctype",
		level:   models.LevelError,
		message: "Missing or invalid doctype. Use <!doctype html>",
		failed: func(html string) bool {
			return !strings.Contains(html, "<!doctype html>") && !strings.Contains(html, "<!DOCTYPE html>")
		},
	},
	{
		name:    "amp-attribute",
		level:   models.LevelError,
		message: "Missing AMP attribute on html tag. Use <html ⚡> or <html amp>",
		failed: func(html string) bool {
			return !strings.Contains(html, "<html ⚡") && !strings.Contains(html, "<html amp")
		},
	},
	{
		name:    "charset",
		level:   models.LevelError,
		message: `Missing charset meta tag. Add <meta charset="utf-8">`,
		failed: func(html string) bool {
			return !strings.Contains(html, "<meta charset=")
		},
	},
	{
		name:    "viewport",
		level:   models.LevelError,
		message: "Missing viewport meta tag",
		failed: func(html string) bool {
			return !strings.Contains(html, `name="viewport"`)
		},
	},
	{
		name:    "amp-runtime",
		level:   models.LevelError,
		message: "Missing AMP runtime script",
		failed: func(html string) bool {
			return !strings.Contains(html, "https://cdn.ampproject.org/v0.js")
		},
	},
	{
		name:    "amp-boilerplate",
		level:   models.LevelError,
		message: "Missing AMP boilerplate style",
		failed: func(html string) bool {
			return !strings.Contains(html, "<style amp-boilerplate>")
		},
	},
	{
		name:    "custom-script",
		level:   models.LevelError,
		message: "Custom JavaScript is not allowed in AMP pages",
		failed: func(html string) bool {
			return strings.Contains(html, "<script") &&
				!strings.Contains(html, "cdn.ampproject.org") &&
				strings.Contains(html, "</script>")
		},
	},
	{
		name:    "amp-img",
		level:   models.LevelError,
		message: "Use <amp-img> instead of <img>",
		failed: func(html string) bool {
			return strings.Contains(html, "<img ") && !strings.Contains(html, "<amp-img")
		},
	},
	{
		name:    "amp-video",
		level:   models.LevelWarning,
		message: "Use <amp-video> instead of <video>",
		failed: func(html string) bool {
			return strings.Contains(html, "<video ") && !strings.Contains(html, "<amp-video")
		},
	},
	{
		name:    "amp-iframe",
		level:   models.LevelError,
		message: "Use <amp-iframe> instead of <iframe>",
		failed: func(html string) bool {
			return strings.Contains(html, "<iframe ") && !strings.Contains(html, "<amp-iframe")
		},
	},
	{
		name:    "inline-style",
		level:   models.LevelWarning,
		message: "Inline styles are restricted in AMP. Use <style amp-custom>",
		failed: func(html string) bool {
			return strings.Contains(html, `style="`)
		},
	},
	{
		name:    "amp-form",
		level:   models.LevelWarning,
		message: "Use amp-form component for forms",
		failed: func(html string) bool {
			return strings.Contains(html, "<form ") && !strings.Contains(html, "<amp-form")
		},
	},
	{
		name:    "canonical",
		level:   models.LevelError,
		message: "Missing canonical link",
		failed: func(html string) bool {
			return !strings.Contains(html, `rel="canonical"`)
		},
	},
}

// CheckHTML evaluates every rule independently against the raw HTML.
func CheckHTML(html string) Report {
	report := Report{IsValid: true}
	for _, r := range rules {
		failed := r.failed(html)
		check := Check{
			Name:    r.name,
			Level:   r.level,
			Passed:  !failed,
			Message: r.message,
		}
		if failed && r.level == models.LevelError {
			report.IsValid = false
		}
		report.Checks = append(report.Checks, check)
	}
	return report
}
