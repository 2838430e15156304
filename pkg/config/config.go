// Package config loads netscore settings from a TOML file and the
// environment.
//
// Values are layered: built-in defaults, then the config file, then
// environment variables. The default file lives at
// $XDG_CONFIG_HOME/netscore/config.toml (or ~/.config/netscore/config.toml)
// and may be absent:
//
//	github_token  = "ghp_..."
//	workspace_dir = "/var/tmp/netscore"
//	http_timeout  = "30s"
//	log_level     = "debug"
//
// Recognized environment variables are GITHUB_TOKEN, LOG_LEVEL, LOG_FILE
// and NETSCORE_WORKSPACE.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/integrations/github"
	"github.com/matzehuels/netscore/pkg/integrations/npm"
	"github.com/matzehuels/netscore/pkg/metrics"
)

const appName = "netscore"

// Environment variables read by ApplyEnv.
const (
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFile     = "LOG_FILE"
	EnvWorkspace   = "NETSCORE_WORKSPACE"
)

// Config holds runtime settings shared by all commands.
type Config struct {
	GitHubToken  string        `toml:"github_token"`
	GraphQLURL   string        `toml:"graphql_url"`
	RegistryURL  string        `toml:"registry_url"`
	CloneBaseURL string        `toml:"clone_base_url"`
	WorkspaceDir string        `toml:"workspace_dir"`
	HTTPTimeout  time.Duration `toml:"http_timeout"`
	LogLevel     string        `toml:"log_level"`
	LogFile      string        `toml:"log_file"`
	Addr         string        `toml:"addr"`
	Concurrency  int           `toml:"concurrency"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		GraphQLURL:   github.DefaultEndpoint,
		RegistryURL:  npm.DefaultBaseURL,
		CloneBaseURL: metrics.DefaultCloneBaseURL,
		LogLevel:     "info",
		Addr:         ":8080",
		Concurrency:  1,
	}
}

// DefaultPath returns the XDG location of the config file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads defaults, the file at path and the environment, in that
// order. With an empty path the default location is used and a missing
// file is not an error; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg.ApplyEnv(os.Getenv)
			return cfg, nil
		}
		path = p
	}

	if err := cfg.decodeFile(path); err != nil {
		if explicit || !stderrors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides fields from non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvGitHubToken); v != "" {
		c.GitHubToken = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := getenv(EnvWorkspace); v != "" {
		c.WorkspaceDir = v
	}
}

// Validate checks the settings needed to score packages.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GitHubToken) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "GitHub token required: set %s or github_token", EnvGitHubToken)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HTTPTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "http_timeout must not be negative")
	}
	if c.Concurrency < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must be at least 1")
	}
	return nil
}

// ParseLevel accepts level names (debug, info, warn, error) and the numeric
// levels 0 (silent), 1 (info) and 2 (debug). Empty means info.
func ParseLevel(s string) (log.Level, error) {
	switch strings.TrimSpace(s) {
	case "", "1":
		return log.InfoLevel, nil
	case "0":
		return log.FatalLevel, nil
	case "2":
		return log.DebugLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidInput, err, "log level %q", s)
	}
	return lvl, nil
}
