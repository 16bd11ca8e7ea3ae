// Package gen renders robots.txt, XML sitemap, and JSON-LD schema artifacts
// from structured specs. Generation is pure templating: no parsing, no I/O.
package gen

import (
	"fmt"
	"strings"

	"github.com/davenorth/seotools/models"
)

// aiBots is the fixed block list appended when BlockAIBots is set.
var aiBots = []string{
	"GPTBot", "ChatGPT-User", "CCBot", "anthropic-ai", "Claude-Web", "Google-Extended",
}

// Robots renders a robots.txt document. Empty paths are skipped; a rule
// without a user agent falls back to the wildcard agent.
func Robots(spec *models.RobotsSpec) string {
	var b strings.Builder

	for _, rule := range spec.Rules {
		agent := rule.UserAgent
		if agent == "" {
			agent = "*"
		}
		fmt.Fprintf(&b, "User-agent: %s\n", agent)
		for _, path := range rule.Disallow {
			if strings.TrimSpace(path) != "" {
				fmt.Fprintf(&b, "Disallow: %s\n", strings.TrimSpace(path))
			}
		}
		for _, path := range rule.Allow {
			if strings.TrimSpace(path) != "" {
				fmt.Fprintf(&b, "Allow: %s\n", strings.TrimSpace(path))
			}
		}
		if spec.CrawlDelay != "" {
			fmt.Fprintf(&b, "Crawl-delay: %s\n", spec.CrawlDelay)
		}
		b.WriteString("\n")
	}

	if spec.BlockAIBots {
		for _, bot := range aiBots {
			fmt.Fprintf(&b, "User-agent: %s\nDisallow: /\n\n", bot)
		}
	}

	if spec.SitemapURL != "" {
		fmt.Fprintf(&b, "Sitemap: %s\n", spec.SitemapURL)
	}

	return b.String()
}
