// Package audit extracts on-page SEO signals from HTML documents and diffs
// mobile and desktop renderings of the same URL against each other.
package audit

import (
	"github.com/davenorth/seotools/pkg/htmldoc"
)

// Signals is the fixed set of on-page values the comparator works from.
type Signals struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	H1Count         int    `json:"h1_count"`
	H2Count         int    `json:"h2_count"`
	LinkCount       int    `json:"link_count"`
	ImageCount      int    `json:"image_count"`
	ImagesWithAlt   int    `json:"images_with_alt"`
	TextLength      int    `json:"text_length"`
	HasViewport     bool   `json:"has_viewport"`
	ScriptCount     int    `json:"script_count"`
	StylesheetCount int    `json:"stylesheet_count"`
}

// ExtractSignals reads every signal from a parsed document.
func ExtractSignals(doc *htmldoc.Document) Signals {
	return Signals{
		Title:           doc.Title(),
		MetaDescription: doc.MetaContent("description"),
		H1Count:         doc.Count("h1"),
		H2Count:         doc.Count("h2"),
		LinkCount:       doc.Count("a"),
		ImageCount:      doc.Count("img"),
		ImagesWithAlt:   doc.Count("img[alt]"),
		TextLength:      len(doc.Text()),
		HasViewport:     doc.Has(`meta[name="viewport"]`),
		ScriptCount:     doc.Count("script"),
		StylesheetCount: doc.Count(`link[rel="stylesheet"]`) + doc.Count("style"),
	}
}
