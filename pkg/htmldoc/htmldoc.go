// Package htmldoc is a narrow facade over the HTML parser. The analysis
// packages query documents through it so their predicate logic stays
// independent of the parsing library.
package htmldoc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML document plus its raw source text. Raw text is
// kept because some checks are substring tests on the original markup.
type Document struct {
	doc *goquery.Document
	raw string
}

// Parse builds a Document from raw HTML.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc, raw: html}, nil
}

// Raw returns the original markup the document was parsed from.
func (d *Document) Raw() string {
	return d.raw
}

// Title returns the trimmed text of the first <title> element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// MetaContent returns the content attribute of <meta name="...">, or "".
func (d *Document) MetaContent(name string) string {
	sel := d.doc.Find(fmt.Sprintf("meta[name=%q]", name)).First()
	content, _ := sel.Attr("content")
	return content
}

// Count returns the number of elements matching the selector.
func (d *Document) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

// Has reports whether any element matches the selector.
func (d *Document) Has(selector string) bool {
	return d.doc.Find(selector).Length() > 0
}

// Text returns the trimmed text content of <body>, falling back to the
// whole document when no body element was parsed.
func (d *Document) Text() string {
	body := d.doc.Find("body")
	if body.Length() > 0 {
		return strings.TrimSpace(body.Text())
	}
	return strings.TrimSpace(d.doc.Text())
}

// AttrValues collects the given attribute from every element matching the
// selector. Elements without the attribute are skipped.
func (d *Document) AttrValues(selector, attr string) []string {
	var values []string
	d.doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok {
			values = append(values, v)
		}
	})
	return values
}
