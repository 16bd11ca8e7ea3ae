package audit

import (
	"strings"

	"github.com/davenorth/seotools/pkg/htmldoc"
)

// Verdict is the overall outcome of a mobile-friendliness test.
type Verdict string

const (
	VerdictPass    Verdict = "pass"
	VerdictWarning Verdict = "warning"
	VerdictFail    Verdict = "fail"
)

// MobileReport is the result of the mobile-friendliness issue battery.
type MobileReport struct {
	Verdict             Verdict  `json:"verdict"`
	Issues              []string `json:"issues"`
	HasViewport         bool     `json:"has_viewport"`
	HasResponsiveImages bool     `json:"has_responsive_images"`
}

// smallFontMarkers and fixedWidthMarkers are crude CSS smells checked on the
// raw markup; inline styles are where these mistakes usually live.
var smallFontMarkers = []string{
	"font-size: 8px", "font-size: 9px", "font-size: 10px",
	"font-size:8px", "font-size:9px", "font-size:10px",
}

var fixedWidthMarkers = []string{
	"width: 980px", "width: 1024px", "width:980px", "width:1024px",
}

// MobileFriendly runs the issue battery against a parsed document. Up to two
// issues is a warning; more is a failure.
func MobileFriendly(doc *htmldoc.Document) MobileReport {
	lower := strings.ToLower(doc.Raw())
	var issues []string

	hasViewport := doc.Has(`meta[name="viewport"]`)
	if !hasViewport {
		issues = append(issues, "Missing viewport meta tag")
	}

	imageCount := doc.Count("img")
	responsive := imageCount == 0 ||
		doc.Count("img[srcset]") > 0 ||
		strings.Contains(lower, "max-width: 100%") ||
		strings.Contains(lower, "max-width:100%")
	if !responsive {
		issues = append(issues, "Images may not be responsive")
	}

	for _, marker := range smallFontMarkers {
		if strings.Contains(lower, marker) {
			issues = append(issues, "Small font sizes detected")
			break
		}
	}

	for _, marker := range fixedWidthMarkers {
		if strings.Contains(lower, marker) {
			issues = append(issues, "Fixed width elements may cause horizontal scrolling")
			break
		}
	}

	if strings.Contains(lower, "<embed") || strings.Contains(lower, "<object") {
		issues = append(issues, "Flash or plugin content detected")
	}

	verdict := VerdictPass
	switch {
	case len(issues) > 2:
		verdict = VerdictFail
	case len(issues) > 0:
		verdict = VerdictWarning
	}

	return MobileReport{
		Verdict:             verdict,
		Issues:              issues,
		HasViewport:         hasViewport,
		HasResponsiveImages: responsive,
	}
}
