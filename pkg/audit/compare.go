package audit

import (
	"fmt"
)

// Status classifies one comparison row.
type Status string

const (
	StatusMatch    Status = "match"
	StatusMismatch Status = "mismatch"
	StatusWarning  Status = "warning"
)

// Row is one signal compared between the mobile and desktop renderings.
type Row struct {
	Category string `json:"category"`
	Mobile   string `json:"mobile"`
	Desktop  string `json:"desktop"`
	Status   Status `json:"status"`
	Note     string `json:"note"`
}

// adequateTextLength is the visible-text size below which a page is flagged
// as content-light.
const adequateTextLength = 300

// Compare diffs the two signal sets row by row. The thresholds follow the
// mobile-first indexing guidance: one H1, a viewport meta tag, and enough
// visible text on both renderings.
func Compare(mobile, desktop Signals) []Row {
	rows := []Row{
		compareTitle(mobile, desktop),
		compareMetaDescription(mobile, desktop),
		compareViewport(mobile, desktop),
		compareH1(mobile, desktop),
		compareCount("H2 Tags", mobile.H2Count, desktop.H2Count, "Content structure"),
		compareCount("Links", mobile.LinkCount, desktop.LinkCount, "Link count comparison"),
		compareImages(mobile, desktop),
		compareText(mobile, desktop),
		compareCount("Scripts", mobile.ScriptCount, desktop.ScriptCount, "JavaScript resources"),
		compareCount("Stylesheets", mobile.StylesheetCount, desktop.StylesheetCount, "CSS resources"),
	}
	return rows
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func compareTitle(mobile, desktop Signals) Row {
	row := Row{
		Category: "Title Tag",
		Mobile:   truncate(mobile.Title, 50),
		Desktop:  truncate(desktop.Title, 50),
	}
	if mobile.Title == desktop.Title {
		row.Status = StatusMatch
		row.Note = "Title tags match between versions"
	} else {
		row.Status = StatusMismatch
		row.Note = "Title tags differ between versions"
	}
	return row
}

func presence(ok bool) string {
	if ok {
		return "Present"
	}
	return "Missing"
}

func compareMetaDescription(mobile, desktop Signals) Row {
	mobileHas := mobile.MetaDescription != ""
	desktopHas := desktop.MetaDescription != ""
	row := Row{
		Category: "Meta Description",
		Mobile:   presence(mobileHas),
		Desktop:  presence(desktopHas),
	}
	switch {
	case mobileHas && desktopHas:
		row.Status = StatusMatch
		row.Note = "Meta description present"
	case mobileHas != desktopHas:
		row.Status = StatusMismatch
		row.Note = "Meta description present on one version only"
	default:
		row.Status = StatusWarning
		row.Note = "Missing meta description"
	}
	return row
}

func compareViewport(mobile, desktop Signals) Row {
	row := Row{
		Category: "Viewport Meta",
		Mobile:   presence(mobile.HasViewport),
		Desktop:  presence(desktop.HasViewport),
	}
	if mobile.HasViewport && desktop.HasViewport {
		row.Status = StatusMatch
		row.Note = "Mobile viewport configured"
	} else {
		row.Status = StatusMismatch
		row.Note = "Missing viewport meta tag"
	}
	return row
}

func compareH1(mobile, desktop Signals) Row {
	row := Row{
		Category: "H1 Tags",
		Mobile:   fmt.Sprintf("%d", mobile.H1Count),
		Desktop:  fmt.Sprintf("%d", desktop.H1Count),
	}
	switch {
	case mobile.H1Count != desktop.H1Count:
		row.Status = StatusMismatch
		row.Note = "H1 count differs between versions"
	case mobile.H1Count == 1:
		row.Status = StatusMatch
		row.Note = "Single H1 tag (recommended)"
	case mobile.H1Count == 0:
		row.Status = StatusMismatch
		row.Note = "No H1 found"
	default:
		row.Status = StatusWarning
		row.Note = "Multiple H1 tags"
	}
	return row
}

func compareCount(category string, mobile, desktop int, note string) Row {
	row := Row{
		Category: category,
		Mobile:   fmt.Sprintf("%d", mobile),
		Desktop:  fmt.Sprintf("%d", desktop),
		Note:     note,
	}
	if mobile == desktop {
		row.Status = StatusMatch
	} else {
		row.Status = StatusWarning
		row.Note = fmt.Sprintf("%s (differs by %d)", note, abs(mobile-desktop))
	}
	return row
}

func compareImages(mobile, desktop Signals) Row {
	row := Row{
		Category: "Images",
		Mobile:   fmt.Sprintf("%d", mobile.ImageCount),
		Desktop:  fmt.Sprintf("%d", desktop.ImageCount),
		Note:     fmt.Sprintf("%d/%d images have alt text", mobile.ImagesWithAlt, mobile.ImageCount),
	}
	if mobile.ImageCount == desktop.ImageCount {
		row.Status = StatusMatch
	} else {
		row.Status = StatusWarning
		row.Note = fmt.Sprintf("Image count differs; %d/%d mobile images have alt text",
			mobile.ImagesWithAlt, mobile.ImageCount)
	}
	return row
}

func compareText(mobile, desktop Signals) Row {
	row := Row{
		Category: "Text Content",
		Mobile:   fmt.Sprintf("%d chars", mobile.TextLength),
		Desktop:  fmt.Sprintf("%d chars", desktop.TextLength),
	}
	switch {
	case mobile.TextLength > adequateTextLength && desktop.TextLength > adequateTextLength:
		row.Status = StatusMatch
		row.Note = "Adequate content"
	case mobile.TextLength*2 < desktop.TextLength:
		row.Status = StatusMismatch
		row.Note = "Mobile rendering has far less text than desktop"
	default:
		row.Status = StatusWarning
		row.Note = "Limited text content"
	}
	return row
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
