package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davenorth/seotools/pkg/fetcher"
	"github.com/davenorth/seotools/pkg/history"
	"github.com/urfave/cli/v2"
)

// Source is where a command got its input from: a fetched URL or a local file.
type Source struct {
	Content []byte
	Target  string
	FromURL bool
}

// ResolveSource loads command input from --url or --input. Exactly one of the
// two must be set; --url wins URL validation and a fetch, --input reads the
// file (or stdin when the path is "-").
func ResolveSource(ctx context.Context, c *cli.Context, userAgent string) (*Source, error) {
	rawURL := c.String("url")
	inputPath := c.String("input")

	switch {
	case rawURL != "" && inputPath != "":
		return nil, fmt.Errorf("--url and --input are mutually exclusive")
	case rawURL != "":
		target, err := ValidateURL(rawURL)
		if err != nil {
			return nil, err
		}
		opts := []fetcher.Option{fetcher.WithTimeout(c.Duration("timeout"))}
		if userAgent != "" {
			opts = append(opts, fetcher.WithUserAgent(userAgent))
		}
		body, err := fetcher.New(opts...).Get(ctx, target)
		if err != nil {
			return nil, err
		}
		return &Source{Content: body, Target: target, FromURL: true}, nil
	case inputPath == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return &Source{Content: data, Target: "stdin"}, nil
	case inputPath != "":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return &Source{Content: data, Target: inputPath}, nil
	default:
		return nil, fmt.Errorf("either --url or --input is required")
	}
}

// openHistory is swapped out in tests to keep the database in a temp dir.
var openHistory = history.Open

// RecordRun appends a completed run to the local history database. History
// is best-effort: failures are logged and never fail the command.
func RecordRun(c *cli.Context, tool, target string, errors, warnings int, summary string) {
	status := history.StatusOK
	if errors > 0 {
		status = history.StatusIssues
	}
	record(c, tool, target, status, errors, warnings, summary)
}

// RecordFailedRun logs a run that errored out before producing a report,
// such as a fetch failure or unreadable input.
func RecordFailedRun(c *cli.Context, tool, target string, runErr error) {
	if target == "" {
		target = "unknown"
	}
	record(c, tool, target, history.StatusFailed, 1, 0, runErr.Error())
}

func record(c *cli.Context, tool, target, status string, errors, warnings int, summary string) {
	if c.Bool("no-history") {
		return
	}

	logger := NewLogger(c.String("log-format"), c.Bool("quiet"))

	db, err := openHistory()
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer db.Close()

	if _, err := db.RecordRun(tool, target, status, errors, warnings, summary); err != nil {
		logger.Warn("failed to record run", "tool", tool, "error", err)
	}
}

// CommandContext derives the context for a command run, honouring --timeout
// when set.
func CommandContext(c *cli.Context) (context.Context, context.CancelFunc) {
	timeout := c.Duration("timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(c.Context, timeout)
}
