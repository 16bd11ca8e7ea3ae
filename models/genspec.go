package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AgentRule is one User-agent block in a robots.txt spec.
type AgentRule struct {
	UserAgent string   `yaml:"user_agent" json:"user_agent"`
	Disallow  []string `yaml:"disallow" json:"disallow"`
	Allow     []string `yaml:"allow" json:"allow"`
}

// RobotsSpec is the structured input for the robots.txt generator.
type RobotsSpec struct {
	Rules       []AgentRule `yaml:"rules" json:"rules"`
	CrawlDelay  string      `yaml:"crawl_delay" json:"crawl_delay"`
	BlockAIBots bool        `yaml:"block_ai_bots" json:"block_ai_bots"`
	SitemapURL  string      `yaml:"sitemap_url" json:"sitemap_url"`
}

// AltLink is one hreflang alternate attached to a sitemap URL entry.
type AltLink struct {
	Lang string `yaml:"lang" json:"lang"`
	URL  string `yaml:"url" json:"url"`
}

// SitemapURLEntry is one <url> element in a sitemap spec. Entries with an
// empty Loc are skipped by the generator.
type SitemapURLEntry struct {
	Loc        string    `yaml:"loc" json:"loc"`
	LastMod    string    `yaml:"lastmod" json:"lastmod"`
	ChangeFreq string    `yaml:"changefreq" json:"changefreq"`
	Priority   string    `yaml:"priority" json:"priority"`
	Hreflangs  []AltLink `yaml:"hreflangs" json:"hreflangs,omitempty"`
}

// SitemapSpec is the structured input for the XML sitemap generator.
type SitemapSpec struct {
	IncludeHreflang bool              `yaml:"include_hreflang" json:"include_hreflang"`
	URLs            []SitemapURLEntry `yaml:"urls" json:"urls"`
}

// SchemaSpec is the structured input for the JSON-LD generator. Type selects
// the variant; the remaining fields are read per-type and unused ones are
// ignored.
type SchemaSpec struct {
	Type string `yaml:"type" json:"type"`

	Name        string   `yaml:"name" json:"name"`
	URL         string   `yaml:"url" json:"url"`
	Logo        string   `yaml:"logo" json:"logo"`
	Description string   `yaml:"description" json:"description"`
	SocialLinks []string `yaml:"social_links" json:"social_links"`

	Phone   string `yaml:"phone" json:"phone"`
	Street  string `yaml:"street" json:"street"`
	City    string `yaml:"city" json:"city"`
	State   string `yaml:"state" json:"state"`
	Zip     string `yaml:"zip" json:"zip"`
	Country string `yaml:"country" json:"country"`

	Headline      string `yaml:"headline" json:"headline"`
	Author        string `yaml:"author" json:"author"`
	DatePublished string `yaml:"date_published" json:"date_published"`
	DateModified  string `yaml:"date_modified" json:"date_modified"`
	Image         string `yaml:"image" json:"image"`
	PublisherName string `yaml:"publisher_name" json:"publisher_name"`
	PublisherLogo string `yaml:"publisher_logo" json:"publisher_logo"`

	Brand        string `yaml:"brand" json:"brand"`
	Price        string `yaml:"price" json:"price"`
	Currency     string `yaml:"currency" json:"currency"`
	Availability string `yaml:"availability" json:"availability"`

	// FAQs holds blank-line-separated question/answer pairs; Breadcrumbs
	// holds one "name|url" entry per line.
	FAQs        string `yaml:"faqs" json:"faqs"`
	Breadcrumbs string `yaml:"breadcrumbs" json:"breadcrumbs"`
}

// LoadRobotsSpec reads a robots.txt generator spec from a YAML file.
func LoadRobotsSpec(path string) (*RobotsSpec, error) {
	var spec RobotsSpec
	if err := loadYAML(path, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadSitemapSpec reads a sitemap generator spec from a YAML file.
func LoadSitemapSpec(path string) (*SitemapSpec, error) {
	var spec SitemapSpec
	if err := loadYAML(path, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadSchemaSpec reads a JSON-LD generator spec from a YAML file.
func LoadSchemaSpec(path string) (*SchemaSpec, error) {
	var spec SchemaSpec
	if err := loadYAML(path, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read spec file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse spec file: %w", err)
	}
	return nil
}
