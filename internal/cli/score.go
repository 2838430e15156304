package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/metrics"
	"github.com/matzehuels/netscore/pkg/resolve"
)

// scoreOptions holds flags for the score command.
type scoreOptions struct {
	file        string
	pretty      bool
	concurrency int
}

// scoreCommand creates the score command.
func (c *CLI) scoreCommand() *cobra.Command {
	var opts scoreOptions

	cmd := &cobra.Command{
		Use:   "score [url...]",
		Short: "Score packages by GitHub or npm URL",
		Long: `Score packages and print one JSON object per package, in input order.

URLs may be GitHub repositories or npm package pages. Unsupported URLs are
logged and skipped.`,
		Example: `  netscore score https://github.com/expressjs/express
  netscore score https://www.npmjs.com/package/lodash --pretty
  netscore score --file urls.txt --concurrency 4 > scores.ndjson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("concurrency") {
				opts.concurrency = c.Config.Concurrency
			}
			inputs, err := collectInputs(args, opts.file)
			if err != nil {
				return err
			}
			return c.runScore(cmd.Context(), cmd.OutOrStdout(), inputs, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read newline-delimited URLs from file (- for stdin)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "print a styled summary instead of NDJSON")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 1, "packages scored in parallel")

	return cmd
}

// collectInputs merges positional URLs with those read from file.
func collectInputs(args []string, file string) ([]string, error) {
	inputs := append([]string(nil), args...)
	if file != "" {
		fromFile, err := readURLFile(file)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, fromFile...)
	}
	if len(inputs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no package URLs given")
	}
	return inputs, nil
}

// readURLFile reads one URL per line. Blank lines and lines starting with
// # are skipped.
func readURLFile(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFilesystem, err, "open %s", path)
		}
		defer f.Close()
		r = f
	}

	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFilesystem, err, "read %s", path)
	}
	return urls, nil
}

// runScore scores every supported input and writes reports in input order.
func (c *CLI) runScore(ctx context.Context, w io.Writer, inputs []string, opts scoreOptions) error {
	logger := loggerFromContext(ctx)

	ids := make([]resolve.Identity, 0, len(inputs))
	for _, raw := range inputs {
		id, err := resolve.ParseURL(raw)
		if err != nil {
			logger.Warn("skipping unsupported URL", "url", raw, "err", errors.UserMessage(err))
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no supported package URLs among %d inputs", len(inputs))
	}

	s, err := c.newScorer(ctx)
	if err != nil {
		return err
	}

	var spinner *Spinner
	if opts.pretty {
		spinner = newSpinnerWithContext(ctx, w, fmt.Sprintf("Scoring %d %s...", len(ids), plural(len(ids), "package")))
		spinner.Start()
	}
	prog := newProgress(logger)

	reports := make([]*metrics.Report, len(ids))
	var g errgroup.Group
	g.SetLimit(max(1, opts.concurrency))
	for i, id := range ids {
		g.Go(func() error {
			reports[i] = s.Score(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	if spinner != nil {
		spinner.Stop()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scored %d %s", len(ids), plural(len(ids), "package")))

	if opts.pretty {
		for i, r := range reports {
			if i > 0 {
				printNewline(w)
			}
			printReport(w, r)
		}
		return nil
	}
	return writeNDJSON(w, reports)
}

// writeNDJSON writes one compact JSON object per line.
func writeNDJSON(w io.Writer, reports []*metrics.Report) error {
	enc := json.NewEncoder(w)
	for _, r := range reports {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
