// Package check holds the CLI actions for the single-page validators: AMP,
// hreflang, feeds, AI bot access, rewrite rules, prerender and SERP preview.
package check

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/davenorth/seotools/internal/common"
	"github.com/davenorth/seotools/models"
	"github.com/davenorth/seotools/pkg/amp"
	"github.com/davenorth/seotools/pkg/audit"
	"github.com/davenorth/seotools/pkg/feed"
	"github.com/davenorth/seotools/pkg/fetcher"
	"github.com/davenorth/seotools/pkg/hreflang"
	"github.com/davenorth/seotools/pkg/htmldoc"
	"github.com/davenorth/seotools/pkg/keywords"
	"github.com/davenorth/seotools/pkg/rewrite"
	"github.com/davenorth/seotools/pkg/robots"
	"github.com/davenorth/seotools/pkg/serp"
	"github.com/urfave/cli/v2"
)

func AMPAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	ctx, cancel := common.CommandContext(c)
	defer cancel()

	source, err := common.ResolveSource(ctx, c, "")
	if err != nil {
		return err
	}
	logger.Info("Checking AMP compatibility", "target", source.Target)

	report := amp.CheckHTML(string(source.Content))

	var errCount, warnCount int
	for _, failed := range report.Failed() {
		switch failed.Level {
		case models.LevelError:
			errCount++
		case models.LevelWarning:
			warnCount++
		}
	}

	output := struct {
		Tool   string     `json:"tool"`
		Target string     `json:"target"`
		Report amp.Report `json:"report"`
	}{"amp", source.Target, report}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	common.RecordRun(c, "amp", source.Target, errCount, warnCount,
		fmt.Sprintf("%d failed checks", len(report.Failed())))
	return nil
}

func HreflangAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	ctx, cancel := common.CommandContext(c)
	defer cancel()

	source, err := common.ResolveSource(ctx, c, "")
	if err != nil {
		return err
	}
	logger.Info("Validating hreflang annotations", "target", source.Target)

	report := hreflang.Validate(string(source.Content))

	// Compare the detected page language against the declared alternates.
	if doc, err := htmldoc.Parse(string(source.Content)); err == nil {
		if finding := hreflang.AuditPageLanguage(doc.Text(), report.Entries); finding != nil {
			report.Findings = append(report.Findings, *finding)
		}
	}

	errCount, warnCount := models.CountLevels(report.Findings)

	output := struct {
		Tool    string          `json:"tool"`
		Target  string          `json:"target"`
		IsValid bool            `json:"is_valid"`
		Report  hreflang.Report `json:"report"`
	}{"hreflang", source.Target, report.IsValid(), report}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	common.RecordRun(c, "hreflang", source.Target, errCount, warnCount,
		fmt.Sprintf("%d entries, %d findings", len(report.Entries), len(report.Findings)))
	return nil
}

func FeedAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	ctx, cancel := common.CommandContext(c)
	defer cancel()

	source, err := common.ResolveSource(ctx, c, "")
	if err != nil {
		return err
	}
	logger.Info("Parsing feed", "target", source.Target)

	result := feed.Parse(string(source.Content))

	output := struct {
		Tool   string    `json:"tool"`
		Target string    `json:"target"`
		Feed   feed.Feed `json:"feed"`
	}{"feed", source.Target, result}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	common.RecordRun(c, "feed", source.Target, len(result.Errors), 0,
		fmt.Sprintf("%d items", len(result.Items)))
	return nil
}

func BotsAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	ctx, cancel := common.CommandContext(c)
	defer cancel()

	robotsTxt, target, err := loadRobotsTxt(ctx, c)
	if err != nil {
		return err
	}
	logger.Info("Checking AI bot access", "target", target)

	results := robots.CheckAccess(robotsTxt, robots.DefaultBots)

	var blocked int
	for _, r := range results {
		if !r.Allowed {
			blocked++
		}
	}

	output := struct {
		Tool    string                `json:"tool"`
		Target  string                `json:"target"`
		Blocked int                   `json:"blocked"`
		Results []robots.AccessResult `json:"results"`
	}{"bots", target, blocked, results}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	common.RecordRun(c, "bots", target, 0, blocked,
		fmt.Sprintf("%d of %d bots blocked", blocked, len(results)))
	return nil
}

// loadRobotsTxt resolves the robots.txt content. With --url the site URL is
// rewritten to its /robots.txt; a 404 there means the site has no robots.txt,
// which is a valid all-allowed state rather than a fetch failure.
func loadRobotsTxt(ctx context.Context, c *cli.Context) (string, string, error) {
	rawURL := c.String("url")
	inputPath := c.String("input")

	switch {
	case rawURL != "" && inputPath != "":
		return "", "", fmt.Errorf("--url and --input are mutually exclusive")
	case rawURL != "":
		target, err := common.ValidateURL(rawURL)
		if err != nil {
			return "", "", err
		}
		robotsURL, err := robotsURLFor(target)
		if err != nil {
			return "", "", err
		}
		body, err := fetcher.New(fetcher.WithTimeout(c.Duration("timeout"))).Get(ctx, robotsURL)
		if err != nil {
			var fe *fetcher.Error
			if errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound {
				return "", robotsURL, nil
			}
			return "", "", err
		}
		return string(body), robotsURL, nil
	case inputPath != "":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), inputPath, nil
	default:
		return "", "", fmt.Errorf("either --url or --input is required")
	}
}

func RewriteAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	ctx, cancel := common.CommandContext(c)
	defer cancel()

	source, err := common.ResolveSource(ctx, c, "")
	if err != nil {
		return err
	}

	inputPath := c.String("path")
	if inputPath == "" {
		return fmt.Errorf("--path is required")
	}
	logger.Info("Tracing rewrite rules", "path", inputPath, "rules", source.Target)

	result := rewrite.Evaluate(string(source.Content), inputPath)

	output := struct {
		Tool   string         `json:"tool"`
		Target string         `json:"target"`
		Path   string         `json:"path"`
		Result rewrite.Result `json:"result"`
	}{"rewrite", source.Target, inputPath, result}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	common.RecordRun(c, "rewrite", inputPath, 0, len(result.SkippedLines),
		fmt.Sprintf("%d steps", len(result.Steps)))
	return nil
}

func PrerenderAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	ctx, cancel := common.CommandContext(c)
	defer cancel()

	source, err := common.ResolveSource(ctx, c, "")
	if err != nil {
		return err
	}
	logger.Info("Checking prerendered content", "target", source.Target)

	doc, err := htmldoc.Parse(string(source.Content))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	checks := audit.Prerender(doc)

	var errCount, warnCount int
	for _, entry := range checks {
		switch entry.Level {
		case models.LevelError:
			errCount++
		case models.LevelWarning:
			warnCount++
		}
	}

	output := struct {
		Tool   string                 `json:"tool"`
		Target string                 `json:"target"`
		Checks []audit.PrerenderCheck `json:"checks"`
	}{"prerender", source.Target, checks}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	common.RecordRun(c, "prerender", source.Target, errCount, warnCount,
		fmt.Sprintf("%d errors, %d warnings", errCount, warnCount))
	return nil
}

func MobileAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	ctx, cancel := common.CommandContext(c)
	defer cancel()

	source, err := common.ResolveSource(ctx, c, fetcher.MobileUserAgent)
	if err != nil {
		return err
	}
	logger.Info("Checking mobile friendliness", "target", source.Target)

	doc, err := htmldoc.Parse(string(source.Content))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	report := audit.MobileFriendly(doc)

	output := struct {
		Tool   string             `json:"tool"`
		Target string             `json:"target"`
		Report audit.MobileReport `json:"report"`
	}{"mobile", source.Target, report}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	var errCount int
	if report.Verdict == audit.VerdictFail {
		errCount = 1
	}
	common.RecordRun(c, "mobile", source.Target, errCount, len(report.Issues),
		fmt.Sprintf("verdict: %s", report.Verdict))
	return nil
}

func KeywordsAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	ctx, cancel := common.CommandContext(c)
	defer cancel()

	source, err := common.ResolveSource(ctx, c, "")
	if err != nil {
		return err
	}
	logger.Info("Analyzing keyword density", "target", source.Target)

	// HTML input is reduced to its visible text; anything that fails to
	// parse as HTML is treated as plain text.
	text := string(source.Content)
	if doc, err := htmldoc.Parse(text); err == nil {
		text = doc.Text()
	}

	report := keywords.Analyze(text, c.Int("top"))

	output := struct {
		Tool   string          `json:"tool"`
		Target string          `json:"target"`
		Report keywords.Report `json:"report"`
	}{"keywords", source.Target, report}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	common.RecordRun(c, "keywords", source.Target, 0, 0,
		fmt.Sprintf("%d words, %d unique", report.TotalWords, report.UniqueWords))
	return nil
}

func SERPAction(c *cli.Context) error {
	title := c.String("title")
	description := c.String("description")
	displayURL := c.String("url")

	if title == "" && description == "" {
		return fmt.Errorf("at least one of --title or --description is required")
	}

	devices := []serp.Device{serp.DeviceDesktop, serp.DeviceMobile}
	if d := c.String("device"); d != "" && d != "both" {
		switch serp.Device(d) {
		case serp.DeviceDesktop:
			devices = []serp.Device{serp.DeviceDesktop}
		case serp.DeviceMobile:
			devices = []serp.Device{serp.DeviceMobile}
		default:
			return fmt.Errorf("unknown device %q (want desktop, mobile or both)", d)
		}
	}

	snippets := make(map[string]serp.Snippet, len(devices))
	var warnings int
	for _, device := range devices {
		snippet := serp.Simulate(title, displayURL, description, device)
		snippets[string(device)] = snippet
		if snippet.TitleStatus != serp.StatusGood {
			warnings++
		}
		if snippet.DescriptionStatus != serp.StatusGood {
			warnings++
		}
	}

	output := struct {
		Tool     string                  `json:"tool"`
		Target   string                  `json:"target"`
		Snippets map[string]serp.Snippet `json:"snippets"`
	}{"serp", title, snippets}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	common.RecordRun(c, "serp", title, 0, warnings,
		fmt.Sprintf("%d length warnings", warnings))
	return nil
}

func robotsURLFor(siteURL string) (string, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", siteURL, err)
	}
	parsed.Path = "/robots.txt"
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), nil
}
