package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/config"
	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/metrics"
	"github.com/matzehuels/netscore/pkg/observability"
	"github.com/matzehuels/netscore/pkg/resolve"
)

// fakeScorer reports NetScore 0.5 for every package. Packages listed in
// delay are held back so later inputs finish first.
type fakeScorer struct {
	delay map[string]time.Duration

	mu   sync.Mutex
	seen []string
}

func (f *fakeScorer) Score(ctx context.Context, id resolve.Identity) *metrics.Report {
	if d, ok := f.delay[id.URL()]; ok {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.seen = append(f.seen, id.URL())
	f.mu.Unlock()
	return &metrics.Report{URL: id.URL(), NetScore: 0.5, License: 1}
}

// isolateEnv keeps the developer's config and environment out of tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{config.EnvGitHubToken, config.EnvLogLevel, config.EnvLogFile, config.EnvWorkspace} {
		t.Setenv(k, "")
	}
}

func newTestCLI(t *testing.T, s scorer) (*CLI, *bytes.Buffer) {
	t.Helper()
	isolateEnv(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.newScorer = func(context.Context) (scorer, error) { return s, nil }
	t.Cleanup(func() { c.Close() })
	return c, &logs
}

func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{"score": false, "serve": false, "completion": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestSetupLogFile(t *testing.T) {
	c, logs := newTestCLI(t, &fakeScorer{})
	logPath := filepath.Join(t.TempDir(), "netscore.log")
	t.Setenv(config.EnvLogFile, logPath)

	if _, err := execute(t, c, "score", "https://github.com/expressjs/express"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	c.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "Scored 1 package") {
		t.Errorf("log file = %q, want progress line", data)
	}
	if logs.Len() != 0 {
		t.Errorf("stderr logger still used: %q", logs.String())
	}
}

func TestSetupConfigFlag(t *testing.T) {
	c, _ := newTestCLI(t, &fakeScorer{})
	path := filepath.Join(t.TempDir(), "netscore.toml")
	if err := os.WriteFile(path, []byte("github_token = \"t\"\nconcurrency = 3\nlog_level = \"warn\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, c, "--config", path, "score", "https://github.com/expressjs/express"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if c.Config.GitHubToken != "t" || c.Config.Concurrency != 3 {
		t.Errorf("config not loaded: %+v", c.Config)
	}
	if c.Logger.GetLevel() != log.WarnLevel {
		t.Errorf("log level = %v, want warn", c.Logger.GetLevel())
	}
}

func TestSetupVerboseWins(t *testing.T) {
	c, _ := newTestCLI(t, &fakeScorer{})
	t.Setenv(config.EnvLogLevel, "error")
	defer observability.Reset()

	if _, err := execute(t, c, "-v", "score", "https://github.com/expressjs/express"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("log level = %v, want debug", c.Logger.GetLevel())
	}
	if _, ok := observability.HTTP().(httpLogHooks); !ok {
		t.Errorf("HTTP hooks = %T, want httpLogHooks", observability.HTTP())
	}
}

func TestSetupBadConfig(t *testing.T) {
	c, _ := newTestCLI(t, &fakeScorer{})

	_, err := execute(t, c, "--config", filepath.Join(t.TempDir(), "missing.toml"), "score", "https://github.com/a/b")
	if err == nil {
		t.Fatal("execute() expected error for missing explicit config")
	}
}

func TestAggregatorRequiresToken(t *testing.T) {
	isolateEnv(t)
	c := New(&bytes.Buffer{}, LogInfo)

	if _, err := c.aggregator(context.Background()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("aggregator() error = %v, want INVALID_INPUT", err)
	}

	c.Config.GitHubToken = "token"
	s, err := c.aggregator(context.Background())
	if err != nil {
		t.Fatalf("aggregator() error: %v", err)
	}
	if _, ok := s.(*metrics.Aggregator); !ok {
		t.Errorf("aggregator() = %T, want *metrics.Aggregator", s)
	}
}

func TestCompletionCommand(t *testing.T) {
	c, _ := newTestCLI(t, &fakeScorer{})

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, c, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s error: %v", shell, err)
		}
		if !strings.Contains(out, "netscore") {
			t.Errorf("%s completion does not mention netscore", shell)
		}
	}

	if _, err := execute(t, c, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
