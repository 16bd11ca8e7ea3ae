// Package generate holds the CLI actions that produce robots.txt, sitemap.xml
// and JSON-LD schema markup from YAML spec files.
package generate

import (
	"fmt"
	"os"
	"strings"

	"github.com/davenorth/seotools/internal/common"
	"github.com/davenorth/seotools/models"
	"github.com/davenorth/seotools/pkg/gen"
	"github.com/urfave/cli/v2"
)

func RobotsAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	spec, err := models.LoadRobotsSpec(c.String("spec"))
	if err != nil {
		return err
	}

	logger.Info("Generating robots.txt", "rules", len(spec.Rules), "block_ai_bots", spec.BlockAIBots)
	return writeOutput(c, gen.Robots(spec))
}

func SitemapAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	spec, err := models.LoadSitemapSpec(c.String("spec"))
	if err != nil {
		return err
	}

	logger.Info("Generating sitemap.xml", "urls", len(spec.URLs), "hreflang", spec.IncludeHreflang)
	return writeOutput(c, gen.Sitemap(spec))
}

func SchemaAction(c *cli.Context) error {
	logger := common.NewLogger(c.String("log-format"), c.Bool("quiet"))

	spec, err := models.LoadSchemaSpec(c.String("spec"))
	if err != nil {
		return err
	}

	logger.Info("Generating schema markup", "type", spec.Type)

	var markup string
	if c.Bool("script-tag") {
		markup, err = gen.SchemaScriptTag(spec)
	} else {
		markup, err = gen.Schema(spec)
	}
	if err != nil {
		return err
	}
	return writeOutput(c, markup)
}

// writeOutput sends the generated text to --out when set, stdout otherwise.
// Output always ends in exactly one newline.
func writeOutput(c *cli.Context, content string) error {
	content = strings.TrimRight(content, "\n")
	outPath := c.String("out")
	if outPath == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
