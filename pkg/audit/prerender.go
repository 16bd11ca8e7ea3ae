package audit

import (
	"fmt"
	"strings"

	"github.com/davenorth/seotools/models"
	"github.com/davenorth/seotools/pkg/htmldoc"
)

// PrerenderCheck is one row of the pre-rendering test battery.
type PrerenderCheck struct {
	Name    string       `json:"name"`
	Level   models.Level `json:"level"`
	Details string       `json:"details"`
}

// renderedContentFloor is the body-text size below which a page looks like
// an empty JavaScript shell.
const renderedContentFloor = 100

// spaContentFloor is the body-text size a SPA needs before it counts as
// pre-rendered.
const spaContentFloor = 500

// Prerender checks how much of the page is present in the raw HTML, i.e.
// what a crawler without JavaScript would see.
func Prerender(doc *htmldoc.Document) []PrerenderCheck {
	raw := doc.Raw()
	lower := strings.ToLower(raw)
	bodyText := doc.Text()

	var checks []PrerenderCheck

	if strings.Contains(lower, "<!doctype html") {
		checks = append(checks, PrerenderCheck{"HTML Doctype", models.LevelSuccess, "Valid HTML5 doctype found"})
	} else {
		checks = append(checks, PrerenderCheck{"HTML Doctype", models.LevelError, "Missing or invalid doctype"})
	}

	if title := doc.Title(); title != "" {
		checks = append(checks, PrerenderCheck{"Title Tag", models.LevelSuccess, fmt.Sprintf("Title: %q", truncate(title, 60))})
	} else {
		checks = append(checks, PrerenderCheck{"Title Tag", models.LevelError, "No title tag found"})
	}

	if doc.MetaContent("description") != "" {
		checks = append(checks, PrerenderCheck{"Meta Description", models.LevelSuccess, "Meta description present"})
	} else {
		checks = append(checks, PrerenderCheck{"Meta Description", models.LevelWarning, "No meta description found"})
	}

	if len(bodyText) > renderedContentFloor {
		checks = append(checks, PrerenderCheck{"Rendered Content", models.LevelSuccess,
			fmt.Sprintf("%d characters of text content found", len(bodyText))})
	} else {
		checks = append(checks, PrerenderCheck{"Rendered Content", models.LevelWarning,
			"Limited text content - may be JavaScript-rendered"})
	}

	if strings.Contains(lower, "<noscript") {
		checks = append(checks, PrerenderCheck{"Noscript Fallback", models.LevelSuccess,
			"Noscript tag present for JS-disabled users"})
	} else {
		checks = append(checks, PrerenderCheck{"Noscript Fallback", models.LevelWarning,
			"No noscript fallback - content may not be accessible without JS"})
	}

	hasSPARoot := strings.Contains(raw, "__NEXT_DATA__") ||
		strings.Contains(raw, `id="root"`) ||
		strings.Contains(raw, `id="app"`)
	hasSSRContent := !strings.Contains(raw, "Loading...") && len(bodyText) > spaContentFloor
	switch {
	case hasSPARoot && hasSSRContent:
		checks = append(checks, PrerenderCheck{"Pre-rendering Detection", models.LevelSuccess,
			"SPA detected with pre-rendered content"})
	case hasSPARoot:
		checks = append(checks, PrerenderCheck{"Pre-rendering Detection", models.LevelWarning,
			"SPA detected - may rely on client-side rendering"})
	default:
		checks = append(checks, PrerenderCheck{"Pre-rendering Detection", models.LevelSuccess,
			"Static or server-rendered content"})
	}

	if strings.Contains(doc.MetaContent("robots"), "noindex") {
		checks = append(checks, PrerenderCheck{"Meta Robots", models.LevelWarning,
			"Page carries a noindex directive"})
	} else {
		checks = append(checks, PrerenderCheck{"Meta Robots", models.LevelSuccess,
			"No indexing restrictions"})
	}

	return checks
}
