// Package feed parses RSS 2.0 and Atom documents into a normalized Feed and
// flags structural defects. Parsing never fails with an error: malformed
// input is reported through the Feed's error list.
package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// maxItems caps how many entries are parsed regardless of feed size. This is
// a display bound, not a correctness rule.
const maxItems = 20

// displayDescriptionLength is the rune cap applied to Item.Description.
const displayDescriptionLength = 200

const (
	fallbackFeedTitle = "Untitled Feed"
	fallbackItemTitle = "Untitled"
)

// Item is one normalized feed entry. Description is the display form: tags
// stripped and truncated. RawDescription keeps the untruncated value.
type Item struct {
	Title          string     `json:"title"`
	Link           string     `json:"link"`
	Description    string     `json:"description"`
	RawDescription string     `json:"-"`
	PublishedAt    string     `json:"published_at"`
	Published      *time.Time `json:"published,omitempty"`
	Author         string     `json:"author"`
}

// Feed is the normalized result of parsing an RSS or Atom document.
type Feed struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	Items       []Item   `json:"items"`
	IsValid     bool     `json:"is_valid"`
	Errors      []string `json:"errors"`
}

type rssDocument struct {
	XMLName xml.Name    `xml:"rss"`
	Channel *rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Link        string    `xml:"link"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Author      string `xml:"author"`
	Creator     string `xml:"creator"` // dc:creator
}

type atomDocument struct {
	XMLName  xml.Name    `xml:"feed"`
	Title    string      `xml:"title"`
	Subtitle string      `xml:"subtitle"`
	Links    []atomLink  `xml:"link"`
	Entries  []atomEntry `xml:"entry"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	Author    struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

// Parse decodes xmlText as RSS 2.0 first and falls back to Atom when no
// channel element is present.
func Parse(xmlText string) Feed {
	var errors []string
	if !wellFormed(xmlText) {
		errors = append(errors, "XML parsing error detected")
	}

	var rss rssDocument
	if err := xml.Unmarshal([]byte(xmlText), &rss); err == nil && rss.Channel != nil {
		return buildRSSFeed(rss.Channel, errors)
	}

	var atom atomDocument
	if err := xml.Unmarshal([]byte(xmlText), &atom); err == nil {
		return buildAtomFeed(&atom, errors)
	}

	// Neither shape decoded.
	feed := Feed{}
	finishFeed(&feed, 0, errors)
	return feed
}

// wellFormed reports whether the input is syntactically valid XML.
func wellFormed(xmlText string) bool {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return true
		}
		if err != nil {
			return false
		}
	}
}

func buildRSSFeed(channel *rssChannel, errors []string) Feed {
	feed := Feed{
		Title:       strings.TrimSpace(channel.Title),
		Description: strings.TrimSpace(channel.Description),
		Link:        strings.TrimSpace(channel.Link),
	}

	for i, item := range channel.Items {
		if i >= maxItems {
			break
		}
		author := strings.TrimSpace(item.Author)
		if author == "" {
			author = strings.TrimSpace(item.Creator)
		}
		feed.Items = append(feed.Items, newItem(
			item.Title, item.Link, item.Description, item.PubDate, author,
		))
	}

	finishFeed(&feed, len(channel.Items), errors)
	return feed
}

func buildAtomFeed(atom *atomDocument, errors []string) Feed {
	feed := Feed{
		Title:       strings.TrimSpace(atom.Title),
		Description: strings.TrimSpace(atom.Subtitle),
		Link:        pickAtomLink(atom.Links),
	}

	for i, entry := range atom.Entries {
		if i >= maxItems {
			break
		}
		description := entry.Summary
		if strings.TrimSpace(description) == "" {
			description = entry.Content
		}
		published := entry.Published
		if strings.TrimSpace(published) == "" {
			published = entry.Updated
		}
		feed.Items = append(feed.Items, newItem(
			entry.Title, pickAtomLink(entry.Links), description, published, entry.Author.Name,
		))
	}

	finishFeed(&feed, len(atom.Entries), errors)
	return feed
}

// pickAtomLink prefers the alternate link, then any link with an href.
func pickAtomLink(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "alternate" && l.Href != "" {
			return l.Href
		}
	}
	for _, l := range links {
		if l.Href != "" {
			return l.Href
		}
	}
	return ""
}

func newItem(title, link, description, published, author string) Item {
	item := Item{
		Title:          strings.TrimSpace(title),
		Link:           strings.TrimSpace(link),
		RawDescription: description,
		Description:    displayDescription(description),
		PublishedAt:    strings.TrimSpace(published),
		Author:         strings.TrimSpace(author),
	}
	if item.Title == "" {
		item.Title = fallbackItemTitle
	}
	if item.PublishedAt != "" {
		if t, err := dateparse.ParseAny(item.PublishedAt); err == nil {
			item.Published = &t
		}
	}
	return item
}

// finishFeed applies the shared validation checks and computes IsValid.
func finishFeed(feed *Feed, itemCount int, errors []string) {
	if itemCount == 0 {
		errors = append(errors, "No items found in feed")
	}
	if feed.Title == "" {
		feed.Title = fallbackFeedTitle
	}
	if feed.Title == fallbackFeedTitle {
		errors = append(errors, "Missing feed title")
	}
	for i, item := range feed.Items {
		if item.Title == fallbackItemTitle {
			errors = append(errors, fmt.Sprintf("Item %d: Missing title", i+1))
		}
		if item.Link == "" {
			errors = append(errors, fmt.Sprintf("Item %d: Missing link", i+1))
		}
	}
	feed.Errors = errors
	feed.IsValid = len(errors) == 0
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// displayDescription strips markup and truncates to the display cap.
func displayDescription(raw string) string {
	text := strings.TrimSpace(htmlTag.ReplaceAllString(raw, ""))
	runes := []rune(text)
	if len(runes) > displayDescriptionLength {
		return string(runes[:displayDescriptionLength])
	}
	return text
}
