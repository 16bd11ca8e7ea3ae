package feed

import (
	"reflect"
	"strings"
	"testing"
)

const validRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Example Blog</title>
    <description>Posts about examples</description>
    <link>https://example.com/</link>
    <item>
      <title>First Post</title>
      <link>https://example.com/first</link>
      <description>&lt;p&gt;Hello &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
      <dc:creator>Jamie</dc:creator>
    </item>
    <item>
      <title>Second Post</title>
      <link>https://example.com/second</link>
      <description>Short one</description>
    </item>
  </channel>
</rss>`

const validAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Feed</title>
  <subtitle>An atom feed</subtitle>
  <link rel="alternate" href="https://example.org/"/>
  <entry>
    <title>Atom Entry</title>
    <link rel="alternate" href="https://example.org/entry"/>
    <summary>A summary</summary>
    <updated>2024-05-01T12:00:00Z</updated>
    <author><name>Robin</name></author>
  </entry>
</feed>`

func TestParse_RSS(t *testing.T) {
	feed := Parse(validRSS)

	if !feed.IsValid {
		t.Fatalf("Parse() IsValid = false, errors = %v", feed.Errors)
	}
	if feed.Title != "Example Blog" {
		t.Errorf("feed.Title = %q, want %q", feed.Title, "Example Blog")
	}
	if len(feed.Items) != 2 {
		t.Fatalf("Parse() returned %d items, want 2", len(feed.Items))
	}

	first := feed.Items[0]
	if first.Author != "Jamie" {
		t.Errorf("first.Author = %q, want dc:creator fallback %q", first.Author, "Jamie")
	}
	if first.Description != "Hello world" {
		t.Errorf("first.Description = %q, want tags stripped", first.Description)
	}
	if first.Published == nil {
		t.Error("first.Published = nil, want parsed pubDate")
	}
}

func TestParse_Atom(t *testing.T) {
	feed := Parse(validAtom)

	if !feed.IsValid {
		t.Fatalf("Parse() IsValid = false, errors = %v", feed.Errors)
	}
	if feed.Title != "Example Feed" {
		t.Errorf("feed.Title = %q, want %q", feed.Title, "Example Feed")
	}
	if feed.Link != "https://example.org/" {
		t.Errorf("feed.Link = %q, want href of alternate link", feed.Link)
	}
	if len(feed.Items) != 1 {
		t.Fatalf("Parse() returned %d items, want 1", len(feed.Items))
	}

	entry := feed.Items[0]
	if entry.Link != "https://example.org/entry" {
		t.Errorf("entry.Link = %q, want alternate href", entry.Link)
	}
	if entry.Author != "Robin" {
		t.Errorf("entry.Author = %q, want %q", entry.Author, "Robin")
	}
	if entry.PublishedAt != "2024-05-01T12:00:00Z" {
		t.Errorf("entry.PublishedAt = %q, want updated fallback", entry.PublishedAt)
	}
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(validRSS)
	second := Parse(validRSS)

	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same document twice produced different feeds")
	}
}

func TestParse_MalformedXML(t *testing.T) {
	feed := Parse("<rss><channel><title>Broken")

	if feed.IsValid {
		t.Error("IsValid = true for malformed XML")
	}
	found := false
	for _, e := range feed.Errors {
		if e == "XML parsing error detected" {
			found = true
		}
	}
	if !found {
		t.Errorf("feed.Errors = %v, want XML parsing error", feed.Errors)
	}
}

func TestParse_NotAFeed(t *testing.T) {
	feed := Parse(`<?xml version="1.0"?><urlset><url><loc>https://example.com/</loc></url></urlset>`)

	if feed.IsValid {
		t.Error("IsValid = true for non-feed XML")
	}
	if feed.Title != "Untitled Feed" {
		t.Errorf("feed.Title = %q, want fallback title", feed.Title)
	}
	wantErrors := map[string]bool{"No items found in feed": false, "Missing feed title": false}
	for _, e := range feed.Errors {
		if _, ok := wantErrors[e]; ok {
			wantErrors[e] = true
		}
	}
	for msg, seen := range wantErrors {
		if !seen {
			t.Errorf("feed.Errors = %v, missing %q", feed.Errors, msg)
		}
	}
}

func TestParse_MissingItemFields(t *testing.T) {
	xmlText := `<rss><channel><title>T</title><item><description>no title or link</description></item></channel></rss>`

	feed := Parse(xmlText)

	if feed.IsValid {
		t.Error("IsValid = true, want false for missing item fields")
	}
	var missingTitle, missingLink bool
	for _, e := range feed.Errors {
		if strings.Contains(e, "Missing title") {
			missingTitle = true
		}
		if strings.Contains(e, "Missing link") {
			missingLink = true
		}
	}
	if !missingTitle || !missingLink {
		t.Errorf("feed.Errors = %v, want per-item missing title and link", feed.Errors)
	}
	if feed.Items[0].Title != "Untitled" {
		t.Errorf("item title = %q, want fallback", feed.Items[0].Title)
	}
}

func TestParse_ItemCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<rss><channel><title>Big</title>")
	for i := 0; i < 30; i++ {
		b.WriteString("<item><title>t</title><link>https://example.com/</link></item>")
	}
	b.WriteString("</channel></rss>")

	feed := Parse(b.String())

	if len(feed.Items) != maxItems {
		t.Errorf("Parse() kept %d items, want cap of %d", len(feed.Items), maxItems)
	}
}

func TestDisplayDescription_Truncates(t *testing.T) {
	long := strings.Repeat("a", 250)

	got := displayDescription(long)

	if len([]rune(got)) != displayDescriptionLength {
		t.Errorf("displayDescription() length = %d, want %d", len([]rune(got)), displayDescriptionLength)
	}
}
