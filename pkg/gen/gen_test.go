package gen

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/davenorth/seotools/models"
)

func TestRobots_Basic(t *testing.T) {
	spec := &models.RobotsSpec{
		Rules: []models.AgentRule{
			{UserAgent: "*", Disallow: []string{"/admin/", "/private/"}},
		},
		SitemapURL: "https://example.com/sitemap.xml",
	}

	got := Robots(spec)

	want := "User-agent: *\nDisallow: /admin/\nDisallow: /private/\n\nSitemap: https://example.com/sitemap.xml\n"
	if got != want {
		t.Errorf("Robots() =\n%q\nwant\n%q", got, want)
	}
}

func TestRobots_CrawlDelayAndAllow(t *testing.T) {
	spec := &models.RobotsSpec{
		Rules: []models.AgentRule{
			{UserAgent: "Googlebot", Disallow: []string{"/tmp/"}, Allow: []string{"/tmp/public/"}},
		},
		CrawlDelay: "10",
	}

	got := Robots(spec)

	want := "User-agent: Googlebot\nDisallow: /tmp/\nAllow: /tmp/public/\nCrawl-delay: 10\n\n"
	if got != want {
		t.Errorf("Robots() =\n%q\nwant\n%q", got, want)
	}
}

func TestRobots_BlockAIBots(t *testing.T) {
	spec := &models.RobotsSpec{BlockAIBots: true}

	got := Robots(spec)

	for _, bot := range []string{"GPTBot", "ChatGPT-User", "CCBot", "anthropic-ai", "Claude-Web", "Google-Extended"} {
		if !strings.Contains(got, "User-agent: "+bot+"\nDisallow: /\n") {
			t.Errorf("Robots() output missing block for %s", bot)
		}
	}
	if strings.Count(got, "User-agent:") != 6 {
		t.Errorf("Robots() emitted %d agent blocks, want 6", strings.Count(got, "User-agent:"))
	}
}

func TestRobots_EmptyPathsSkipped(t *testing.T) {
	spec := &models.RobotsSpec{
		Rules: []models.AgentRule{{UserAgent: "*", Disallow: []string{"", "  ", "/keep/"}}},
	}

	got := Robots(spec)

	if strings.Count(got, "Disallow:") != 1 {
		t.Errorf("Robots() =\n%q\nwant a single Disallow line", got)
	}
}

func TestSitemap_Basic(t *testing.T) {
	spec := &models.SitemapSpec{
		URLs: []models.SitemapURLEntry{
			{Loc: "https://example.com/", LastMod: "2024-05-01", ChangeFreq: "weekly", Priority: "1.0"},
		},
	}

	got := Sitemap(spec)

	for _, fragment := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		"<loc>https://example.com/</loc>",
		"<lastmod>2024-05-01</lastmod>",
		"<changefreq>weekly</changefreq>",
		"<priority>1.0</priority>",
		"</urlset>",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("Sitemap() output missing %q:\n%s", fragment, got)
		}
	}
	if strings.Contains(got, "xhtml") {
		t.Error("Sitemap() emitted the xhtml namespace without hreflang mode")
	}
}

func TestSitemap_EmptyLocSkipped(t *testing.T) {
	spec := &models.SitemapSpec{
		URLs: []models.SitemapURLEntry{
			{Loc: "https://example.com/"},
			{Loc: ""},
			{Loc: "https://example.com/about"},
		},
	}

	got := Sitemap(spec)

	if n := strings.Count(got, "<url>"); n != 2 {
		t.Errorf("Sitemap() emitted %d <url> elements, want 2", n)
	}
}

func TestSitemap_HreflangAlternates(t *testing.T) {
	spec := &models.SitemapSpec{
		IncludeHreflang: true,
		URLs: []models.SitemapURLEntry{
			{
				Loc: "https://example.com/",
				Hreflangs: []models.AltLink{
					{Lang: "en", URL: "https://example.com/en/"},
					{Lang: "de", URL: ""},
				},
			},
		},
	}

	got := Sitemap(spec)

	if !strings.Contains(got, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`) {
		t.Error("Sitemap() missing xhtml namespace in hreflang mode")
	}
	if !strings.Contains(got, `<xhtml:link rel="alternate" hreflang="en" href="https://example.com/en/"/>`) {
		t.Errorf("Sitemap() missing xhtml alternate:\n%s", got)
	}
	if strings.Contains(got, `hreflang="de"`) {
		t.Error("Sitemap() emitted an alternate with an empty URL")
	}
}

func TestSitemap_EscapesValues(t *testing.T) {
	spec := &models.SitemapSpec{
		URLs: []models.SitemapURLEntry{{Loc: "https://example.com/?a=1&b=2"}},
	}

	got := Sitemap(spec)

	if !strings.Contains(got, "a=1&amp;b=2") {
		t.Errorf("Sitemap() did not escape ampersand:\n%s", got)
	}
}

func TestSchema_Organization(t *testing.T) {
	spec := &models.SchemaSpec{
		Type:        "Organization",
		Name:        "Acme",
		URL:         "https://acme.example",
		SocialLinks: []string{"https://twitter.com/acme"},
	}

	got, err := Schema(spec)
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("Schema() produced invalid JSON: %v", err)
	}
	if decoded["@context"] != "https://schema.org" {
		t.Errorf("@context = %v", decoded["@context"])
	}
	if decoded["@type"] != "Organization" {
		t.Errorf("@type = %v", decoded["@type"])
	}
	if decoded["name"] != "Acme" {
		t.Errorf("name = %v", decoded["name"])
	}
}

func TestSchema_FAQParsing(t *testing.T) {
	spec := &models.SchemaSpec{
		Type: "FAQ",
		FAQs: "What is it?\nA tool.\n\nIs it free?\nYes.",
	}

	got, err := Schema(spec)
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	var decoded struct {
		Type       string `json:"@type"`
		MainEntity []struct {
			Name           string `json:"name"`
			AcceptedAnswer struct {
				Text string `json:"text"`
			} `json:"acceptedAnswer"`
		} `json:"mainEntity"`
	}
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Type != "FAQPage" {
		t.Errorf("@type = %q, want FAQPage", decoded.Type)
	}
	if len(decoded.MainEntity) != 2 {
		t.Fatalf("parsed %d questions, want 2", len(decoded.MainEntity))
	}
	if decoded.MainEntity[1].Name != "Is it free?" || decoded.MainEntity[1].AcceptedAnswer.Text != "Yes." {
		t.Errorf("second question = %+v", decoded.MainEntity[1])
	}
}

func TestSchema_BreadcrumbParsing(t *testing.T) {
	spec := &models.SchemaSpec{
		Type:        "BreadcrumbList",
		Breadcrumbs: "Home|https://example.com/\nBlog|https://example.com/blog",
	}

	got, err := Schema(spec)
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	var decoded struct {
		ItemListElement []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
			Item     string `json:"item"`
		} `json:"itemListElement"`
	}
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.ItemListElement) != 2 {
		t.Fatalf("parsed %d items, want 2", len(decoded.ItemListElement))
	}
	if decoded.ItemListElement[0].Position != 1 || decoded.ItemListElement[1].Name != "Blog" {
		t.Errorf("items = %+v", decoded.ItemListElement)
	}
}

func TestSchema_UnknownType(t *testing.T) {
	if _, err := Schema(&models.SchemaSpec{Type: "Recipe"}); err == nil {
		t.Error("Schema() accepted an unknown type")
	}
}

func TestSchemaScriptTag(t *testing.T) {
	got, err := SchemaScriptTag(&models.SchemaSpec{Type: "Organization", Name: "Acme"})
	if err != nil {
		t.Fatalf("SchemaScriptTag() error = %v", err)
	}
	if !strings.HasPrefix(got, `<script type="application/ld+json">`) || !strings.HasSuffix(got, "</script>") {
		t.Errorf("SchemaScriptTag() =\n%s", got)
	}
}
