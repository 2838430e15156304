// Package cli implements the netscore command-line interface.
//
// # Commands
//
//   - score: Score one or more package URLs and print NDJSON or a summary
//   - serve: Expose scoring over HTTP
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr, or to the file named by LOG_FILE, never to stdout. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	defer c.Close()
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netscore/pkg/buildinfo"
	"github.com/matzehuels/netscore/pkg/config"
	"github.com/matzehuels/netscore/pkg/integrations"
	"github.com/matzehuels/netscore/pkg/integrations/github"
	"github.com/matzehuels/netscore/pkg/integrations/npm"
	"github.com/matzehuels/netscore/pkg/metrics"
	"github.com/matzehuels/netscore/pkg/observability"
	"github.com/matzehuels/netscore/pkg/resolve"
)

// =============================================================================
// Constants
// =============================================================================

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// scorer produces a report for one package. *metrics.Aggregator is the
// production implementation.
type scorer interface {
	Score(ctx context.Context, id resolve.Identity) *metrics.Report
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
	logFile    io.Closer

	// newScorer builds the scorer used by score and serve. Tests replace it.
	newScorer func(ctx context.Context) (scorer, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
	c.newScorer = c.aggregator
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Close releases the log file, if one was opened.
func (c *CLI) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "netscore",
		Short: "Netscore rates the trustworthiness of open-source packages",
		Long: `Netscore scores npm packages and GitHub repositories on bus factor,
correctness, license compatibility, ramp-up and maintainer responsiveness,
and combines them into a single NetScore between 0 and 1.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/netscore/config.toml)")

	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and points the logger at its final destination.
// Logs never go to stdout, which carries command output.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if c.verbose {
		level = LogDebug
		observability.SetHTTPHooks(httpLogHooks{logger: c.Logger})
	}

	if cfg.LogFile != "" {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			return err
		}
		c.logFile = f
		c.Logger.SetOutput(f)
	}
	c.SetLogLevel(level)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Scorer Factory
// =============================================================================

// aggregator wires the GitHub and npm clients into a metrics.Aggregator.
func (c *CLI) aggregator(ctx context.Context) (scorer, error) {
	cfg := c.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gh := github.NewClient(github.NewHTTPClient(ctx, cfg.GitHubToken, cfg.HTTPTimeout), cfg.GraphQLURL)
	registry := npm.NewClient(integrations.NewHTTPClient(cfg.HTTPTimeout), cfg.RegistryURL)

	calcs := metrics.NewCalculators(gh, metrics.LicenseOptions{
		WorkspaceDir: cfg.WorkspaceDir,
		CloneBaseURL: cfg.CloneBaseURL,
	}, c.Logger)
	return metrics.NewAggregator(resolve.NewResolver(registry, c.Logger), calcs, c.Logger), nil
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
