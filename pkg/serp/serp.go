// Package serp simulates how a page's title, URL, and meta description
// render in a search result snippet. Pure string logic, no I/O.
package serp

import (
	"net/url"
)

// Device selects the truncation widths of the simulated result.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

// Status classifies the length of a title or description.
type Status string

const (
	StatusEmpty    Status = "Empty"
	StatusTooShort Status = "Too Short"
	StatusGood     Status = "Good"
	StatusTooLong  Status = "Too Long"
)

// Length bands. Titles render well between 30 and 60 characters,
// descriptions between 120 and 160; mobile truncates earlier.
const (
	titleMin            = 30
	titleMax            = 60
	titleTruncateMobile = 55
	descMin             = 120
	descMax             = 160
	descTruncateMobile  = 120
)

// Snippet is the simulated search result.
type Snippet struct {
	DisplayTitle       string `json:"display_title"`
	DisplayURL         string `json:"display_url"`
	DisplayDescription string `json:"display_description"`
	TitleLength        int    `json:"title_length"`
	DescriptionLength  int    `json:"description_length"`
	TitleStatus        Status `json:"title_status"`
	DescriptionStatus  Status `json:"description_status"`
}

// Simulate renders the snippet for the given device.
func Simulate(title, rawURL, description string, device Device) Snippet {
	titleCap := titleMax
	descCap := descMax
	if device == DeviceMobile {
		titleCap = titleTruncateMobile
		descCap = descTruncateMobile
	}

	return Snippet{
		DisplayTitle:       ellipsize(title, titleCap),
		DisplayURL:         formatURL(rawURL),
		DisplayDescription: ellipsize(description, descCap),
		TitleLength:        len([]rune(title)),
		DescriptionLength:  len([]rune(description)),
		TitleStatus:        classify(len([]rune(title)), titleMin, titleMax),
		DescriptionStatus:  classify(len([]rune(description)), descMin, descMax),
	}
}

func classify(length, min, max int) Status {
	switch {
	case length == 0:
		return StatusEmpty
	case length < min:
		return StatusTooShort
	case length <= max:
		return StatusGood
	default:
		return StatusTooLong
	}
}

func ellipsize(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// formatURL shows hostname+path the way result pages do; unparseable input
// is shown as-is.
func formatURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host + u.Path
}
