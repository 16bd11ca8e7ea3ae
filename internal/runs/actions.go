// Package runs holds the CLI action for browsing the local run history.
package runs

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/davenorth/seotools/internal/common"
	"github.com/davenorth/seotools/pkg/history"
	"github.com/urfave/cli/v2"
)

func ListAction(c *cli.Context) error {
	db, err := history.Open()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(c.String("tool"), c.String("target"), c.Int("limit"))
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return common.PrintJSON(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tTOOL\tTARGET\tSTATUS\tERRORS\tWARNINGS\tSUMMARY")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.RunID, r.CreatedAt.Format("2006-01-02 15:04"), r.Tool, r.Target,
			r.Status, r.Errors, r.Warnings, r.Summary)
	}
	return w.Flush()
}
