package gen

import (
	"fmt"
	"strings"

	"github.com/davenorth/seotools/models"
)

// Sitemap renders an XML sitemap. Entries with an empty loc are skipped so
// the output never contains a hollow <url> element. Values are XML-escaped.
func Sitemap(spec *models.SitemapSpec) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	if spec.IncludeHreflang {
		b.WriteString("\n       " + `xmlns:xhtml="http://www.w3.org/1999/xhtml"`)
	}
	b.WriteString(">\n")

	for _, entry := range spec.URLs {
		if entry.Loc == "" {
			continue
		}
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s</loc>\n", escapeXML(entry.Loc))
		if entry.LastMod != "" {
			fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", escapeXML(entry.LastMod))
		}
		if entry.ChangeFreq != "" {
			fmt.Fprintf(&b, "    <changefreq>%s</changefreq>\n", escapeXML(entry.ChangeFreq))
		}
		if entry.Priority != "" {
			fmt.Fprintf(&b, "    <priority>%s</priority>\n", escapeXML(entry.Priority))
		}
		if spec.IncludeHreflang {
			for _, alt := range entry.Hreflangs {
				if alt.URL == "" {
					continue
				}
				fmt.Fprintf(&b, `    <xhtml:link rel="alternate" hreflang="%s" href="%s"/>`+"\n",
					escapeXML(alt.Lang), escapeXML(alt.URL))
			}
		}
		b.WriteString("  </url>\n")
	}

	b.WriteString("</urlset>")
	return b.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
