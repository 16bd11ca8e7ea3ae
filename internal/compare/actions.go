// Package compare holds the CLI action that fetches a page as mobile and as
// desktop and reports how the two renderings differ.
package compare

import (
	"fmt"

	"github.com/davenorth/seotools/internal/common"
	"github.com/davenorth/seotools/pkg/audit"
	"github.com/davenorth/seotools/pkg/fetcher"
	"github.com/davenorth/seotools/pkg/htmldoc"
	"github.com/urfave/cli/v2"
)

type auditOutput struct {
	Tool           string              `json:"tool"`
	Target         string              `json:"target"`
	Rows           []audit.Row         `json:"rows"`
	MobileSignals  audit.Signals       `json:"mobile_signals"`
	DesktopSignals audit.Signals       `json:"desktop_signals"`
	Content        *audit.ContentStats `json:"content,omitempty"`
}

func AuditAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	rawURL := c.String("url")
	if rawURL == "" {
		return fmt.Errorf("--url is required")
	}
	target, err := common.ValidateURL(rawURL)
	if err != nil {
		return err
	}

	ctx, cancel := common.CommandContext(c)
	defer cancel()

	logger.Info("Fetching page as mobile", "url", target)
	mobileBody, err := fetcher.New(
		fetcher.WithUserAgent(fetcher.MobileUserAgent),
		fetcher.WithTimeout(c.Duration("timeout")),
	).Get(ctx, target)
	if err != nil {
		return err
	}

	logger.Info("Fetching page as desktop", "url", target)
	desktopBody, err := fetcher.New(
		fetcher.WithUserAgent(fetcher.DesktopUserAgent),
		fetcher.WithTimeout(c.Duration("timeout")),
	).Get(ctx, target)
	if err != nil {
		return err
	}

	mobileDoc, err := htmldoc.Parse(string(mobileBody))
	if err != nil {
		return fmt.Errorf("failed to parse mobile HTML: %w", err)
	}
	desktopDoc, err := htmldoc.Parse(string(desktopBody))
	if err != nil {
		return fmt.Errorf("failed to parse desktop HTML: %w", err)
	}

	mobileSignals := audit.ExtractSignals(mobileDoc)
	desktopSignals := audit.ExtractSignals(desktopDoc)
	rows := audit.Compare(mobileSignals, desktopSignals)

	output := auditOutput{
		Tool:           "audit",
		Target:         target,
		Rows:           rows,
		MobileSignals:  mobileSignals,
		DesktopSignals: desktopSignals,
	}

	// Content stats come from the desktop rendering. Extraction failure is
	// not fatal; the comparison is still useful without them.
	stats, err := audit.ExtractContentStats(target, string(desktopBody))
	if err != nil {
		logger.Warn("failed to extract content stats", "url", target, "error", err)
	} else {
		output.Content = stats
	}

	if err := common.PrintJSON(output); err != nil {
		return err
	}

	var mismatches, warnings int
	for _, row := range rows {
		switch row.Status {
		case audit.StatusMismatch:
			mismatches++
		case audit.StatusWarning:
			warnings++
		}
	}
	common.RecordRun(c, "audit", target, mismatches, warnings,
		fmt.Sprintf("%d mismatches, %d warnings", mismatches, warnings))
	return nil
}
