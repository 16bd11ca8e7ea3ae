package audit

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// ContentStats summarizes the extractable main content of a page, as a
// reader-mode crawler would see it.
type ContentStats struct {
	ContentLength int    `json:"content_length"`
	Excerpt       string `json:"excerpt,omitempty"`
	Byline        string `json:"byline,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
}

// ExtractContentStats runs readability extraction over the raw HTML.
func ExtractContentStats(pageURL, html string) (*ContentStats, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page URL: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract readable content: %w", err)
	}

	return &ContentStats{
		ContentLength: len(strings.TrimSpace(article.TextContent)),
		Excerpt:       truncate(strings.TrimSpace(article.Excerpt), 200),
		Byline:        article.Byline,
		SiteName:      article.SiteName,
	}, nil
}
