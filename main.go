package main

import (
	"fmt"
	"os"
	"time"

	"github.com/davenorth/seotools/internal/check"
	"github.com/davenorth/seotools/internal/common"
	"github.com/davenorth/seotools/internal/compare"
	"github.com/davenorth/seotools/internal/generate"
	"github.com/davenorth/seotools/internal/runs"
	"github.com/urfave/cli/v2"
)

var version = "dev"

// commonFlags are shared by every command that logs or records history.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only log errors",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: "pretty",
			Usage: "log format: pretty or json",
		},
		&cli.BoolFlag{
			Name:  "no-history",
			Usage: "do not record this run in the history database",
		},
	}
}

// sourceFlags add the page-input flags on top of the common set.
func sourceFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:  "url",
			Usage: "URL to fetch and check",
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "local file to check instead of fetching (use - for stdin)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: 30 * time.Second,
			Usage: "fetch timeout",
		},
	)
}

func genFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:     "spec",
			Required: true,
			Usage:    "YAML spec file describing what to generate",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "write output to file instead of stdout",
		},
	)
}

// recordFailures wraps a command action so runs that error out still land in
// the history log with a failed status.
func recordFailures(tool string, action cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		err := action(c)
		if err != nil {
			target := c.String("url")
			if target == "" {
				target = c.String("input")
			}
			common.RecordFailedRun(c, tool, target, err)
		}
		return err
	}
}

func main() {
	app := &cli.App{
		Name:    "seotools",
		Usage:   "SEO checkers and generators for web pages",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:   "amp",
				Usage:  "check a page for AMP compatibility",
				Flags:  sourceFlags(),
				Action: recordFailures("amp", check.AMPAction),
			},
			{
				Name:   "hreflang",
				Usage:  "validate hreflang annotations on a page",
				Flags:  sourceFlags(),
				Action: recordFailures("hreflang", check.HreflangAction),
			},
			{
				Name:   "feed",
				Usage:  "parse and validate an RSS or Atom feed",
				Flags:  sourceFlags(),
				Action: recordFailures("feed", check.FeedAction),
			},
			{
				Name:   "bots",
				Usage:  "check which AI crawlers a robots.txt allows",
				Flags:  sourceFlags(),
				Action: recordFailures("bots", check.BotsAction),
			},
			{
				Name:  "rewrite",
				Usage: "trace a path through Apache RewriteRule directives",
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:     "path",
						Required: true,
						Usage:    "request path to trace, e.g. /old-page",
					},
				),
				Action: recordFailures("rewrite", check.RewriteAction),
			},
			{
				Name:  "audit",
				Usage: "compare the mobile and desktop renderings of a page",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "url",
						Required: true,
						Usage:    "URL to audit",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Value: 30 * time.Second,
						Usage: "fetch timeout",
					},
				),
				Action: recordFailures("audit", compare.AuditAction),
			},
			{
				Name:   "prerender",
				Usage:  "check what a crawler sees without running JavaScript",
				Flags:  sourceFlags(),
				Action: recordFailures("prerender", check.PrerenderAction),
			},
			{
				Name:   "mobile",
				Usage:  "check a page for mobile friendliness",
				Flags:  sourceFlags(),
				Action: recordFailures("mobile", check.MobileAction),
			},
			{
				Name:  "keywords",
				Usage: "report keyword density for a page or text",
				Flags: append(sourceFlags(),
					&cli.IntFlag{
						Name:  "top",
						Value: 25,
						Usage: "number of keywords to report",
					},
				),
				Action: recordFailures("keywords", check.KeywordsAction),
			},
			{
				Name:  "serp",
				Usage: "preview how a title and description render in search results",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "title",
						Usage: "page title to preview",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "meta description to preview",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "page URL shown in the snippet",
					},
					&cli.StringFlag{
						Name:  "device",
						Value: "both",
						Usage: "desktop, mobile or both",
					},
				),
				Action: recordFailures("serp", check.SERPAction),
			},
			{
				Name:  "gen",
				Usage: "generate robots.txt, sitemap.xml or schema markup",
				Subcommands: []*cli.Command{
					{
						Name:   "robots",
						Usage:  "generate a robots.txt from a YAML spec",
						Flags:  genFlags(),
						Action: generate.RobotsAction,
					},
					{
						Name:   "sitemap",
						Usage:  "generate a sitemap.xml from a YAML spec",
						Flags:  genFlags(),
						Action: generate.SitemapAction,
					},
					{
						Name:  "schema",
						Usage: "generate JSON-LD schema markup from a YAML spec",
						Flags: append(genFlags(),
							&cli.BoolFlag{
								Name:  "script-tag",
								Usage: "wrap the JSON-LD in a <script> tag",
							},
						),
						Action: generate.SchemaAction,
					},
				},
			},
			{
				Name:  "history",
				Usage: "list past runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "tool",
						Usage: "only show runs of this tool",
					},
					&cli.StringFlag{
						Name:  "target",
						Usage: "only show runs whose target contains this text",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum number of runs to show",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "output JSON instead of a table",
					},
				},
				Action: runs.ListAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
