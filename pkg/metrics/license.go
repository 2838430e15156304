package metrics

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/integrations"
	"github.com/matzehuels/netscore/pkg/resolve"
	"github.com/matzehuels/netscore/pkg/workspace"
)

// DefaultCloneBaseURL is the host repositories are cloned from.
const DefaultCloneBaseURL = "https://github.com"

// licenseFiles are tried in order; the first that exists is read.
var licenseFiles = []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "LICENCE"}

// Cloner fetches a repository's working tree into dir.
type Cloner interface {
	Clone(ctx context.Context, url, dir string) error
}

// GitCloner performs shallow single-branch clones with go-git.
type GitCloner struct{}

func (GitCloner) Clone(ctx context.Context, url, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "clone %s", url)
	}
	return nil
}

// LicenseOptions configures a License calculator. Zero values select the
// defaults.
type LicenseOptions struct {
	Cloner       Cloner
	Table        *LicenseTable
	WorkspaceDir string // parent of per-call workspaces; os.TempDir() if empty
	CloneBaseURL string
}

// License scores a repository's license compatibility from a fresh clone.
type License struct {
	cloner  Cloner
	table   LicenseTable
	baseDir string
	baseURL string
	logger  *log.Logger
}

func NewLicense(opts LicenseOptions, logger *log.Logger) *License {
	l := &License{
		cloner:  opts.Cloner,
		table:   DefaultLicenses(),
		baseDir: opts.WorkspaceDir,
		baseURL: strings.TrimSuffix(opts.CloneBaseURL, "/"),
		logger:  loggerOr(logger, NameLicense),
	}
	if l.cloner == nil {
		l.cloner = GitCloner{}
	}
	if opts.Table != nil {
		l.table = *opts.Table
	}
	if l.baseURL == "" {
		l.baseURL = DefaultCloneBaseURL
	}
	return l
}

func (l *License) Name() string { return NameLicense }

// Score clones the repository into a workspace that is removed before
// returning. A failed clone scores 0 without reading any files.
func (l *License) Score(ctx context.Context, repo resolve.Repo) (float64, error) {
	ws, err := workspace.Acquire(l.baseDir)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeFilesystem, err, "acquire workspace")
	}
	defer func() {
		if err := ws.Release(); err != nil {
			l.logger.Warn("release workspace", "dir", ws.Dir(), "err", err)
		}
	}()

	url := l.baseURL + "/" + repo.Owner + "/" + repo.Name
	if err := l.cloner.Clone(ctx, url, ws.Dir()); err != nil {
		l.logger.Error("clone repository", "repo", repo, "err", err)
		return 0, nil
	}

	score := l.ScoreFiles(ws.Dir())
	l.logger.Debug("computed", "repo", repo, "score", score)
	return score, nil
}

// ScoreFiles scores the license of the checkout in dir. Sources are
// consulted in order and the first match wins: the package.json license
// field (exact key), the first line of the license file (key contained),
// then README.md (key contained, case-insensitive). No match scores 0.
func (l *License) ScoreFiles(dir string) float64 {
	if s, ok := l.fromPackageJSON(dir); ok {
		return s
	}
	if s, ok := l.fromLicenseFile(dir); ok {
		return s
	}
	if s, ok := l.fromReadme(dir); ok {
		return s
	}
	return 0
}

func (l *License) fromPackageJSON(dir string) (float64, bool) {
	data, err := l.readFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return 0, false
	}
	var pkg struct {
		License any `json:"license"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		l.logger.Warn("parse package.json", "err", err)
		return 0, false
	}
	id := integrations.ExtractField(pkg.License, "type")
	if id == "" {
		return 0, false
	}
	return l.table.Lookup(id)
}

func (l *License) fromLicenseFile(dir string) (float64, bool) {
	for _, name := range licenseFiles {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			if !stderrors.Is(err, fs.ErrNotExist) {
				l.logger.Warn("open license file", "file", name, "err", err)
			}
			continue
		}
		sc := bufio.NewScanner(f)
		var first string
		if sc.Scan() {
			first = strings.TrimSpace(sc.Text())
		}
		if err := sc.Err(); err != nil {
			l.logger.Warn("read license file", "file", name, "err", err)
		}
		f.Close()

		e, ok := l.table.Match(first)
		return e.Score, ok
	}
	return 0, false
}

func (l *License) fromReadme(dir string) (float64, bool) {
	data, err := l.readFile(filepath.Join(dir, "README.md"))
	if err != nil {
		return 0, false
	}
	e, ok := l.table.MatchFold(string(data))
	return e.Score, ok
}

// readFile logs errors other than a missing file.
func (l *License) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("read file", "file", filepath.Base(path), "err", err)
	}
	return data, err
}
