package resolve

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/integrations/github"
)

// Platform says where a package identity points.
type Platform int

const (
	// SourceControl identities name a repository directly (owner/repo).
	SourceControl Platform = iota
	// Registry identities name a package that must be resolved to a repository.
	Registry
)

func (p Platform) String() string {
	switch p {
	case SourceControl:
		return "github"
	case Registry:
		return "npm"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// Identity is a package as supplied by the caller. It is a value type and
// never mutated after construction.
type Identity struct {
	Platform Platform
	Owner    string // SourceControl only
	Repo     string // SourceControl only
	Name     string // Registry only
	Input    string // original input string, reported back verbatim
}

// Repo is a resolved repository on the source platform. Every metric
// calculator takes a Repo, never an Identity.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// GitHub returns a SourceControl identity for owner/repo.
func GitHub(owner, repo string) Identity {
	return Identity{
		Platform: SourceControl,
		Owner:    owner,
		Repo:     repo,
		Input:    github.RepoURL(owner, repo),
	}
}

// NPM returns a Registry identity for an npm package name.
func NPM(name string) Identity {
	return Identity{
		Platform: Registry,
		Name:     name,
		Input:    "https://www.npmjs.com/package/" + name,
	}
}

// URL is the string reported as the package URL: the caller's input when
// there was one, otherwise a canonical URL.
func (id Identity) URL() string {
	if id.Input != "" {
		return id.Input
	}
	if id.Platform == Registry {
		return NPM(id.Name).Input
	}
	return github.RepoURL(id.Owner, id.Repo)
}

func (id Identity) String() string {
	if id.Platform == Registry {
		return "npm:" + id.Name
	}
	return id.Owner + "/" + id.Repo
}

// ParseURL classifies a driver-supplied URL:
//
//	https://github.com/<owner>/<repo>[/...]      -> SourceControl
//	https://www.npmjs.com/package/<name>         -> Registry
//	https://www.npmjs.com/package/@<scope>/<name> -> Registry
//
// Anything else is an INVALID_INPUT error. The returned identity keeps raw
// (trimmed) as its Input.
func ParseURL(raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if err := errors.ValidateURL(raw); err != nil {
		return Identity{}, err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Identity{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %q", raw)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	segs := segments(u.Path)

	switch host {
	case "github.com":
		if len(segs) < 2 {
			return Identity{}, errors.New(errors.ErrCodeInvalidInput, "github URL needs owner and repo: %q", raw)
		}
		owner, repo := segs[0], strings.TrimSuffix(segs[1], ".git")
		if err := github.ValidateRepoRef(owner, repo); err != nil {
			return Identity{}, err
		}
		id := GitHub(owner, repo)
		id.Input = raw
		return id, nil

	case "npmjs.com", "npmjs.org":
		if len(segs) < 2 || segs[0] != "package" {
			return Identity{}, errors.New(errors.ErrCodeInvalidInput, "npm URL must be /package/<name>: %q", raw)
		}
		name := segs[1]
		if strings.HasPrefix(name, "@") {
			if len(segs) < 3 {
				return Identity{}, errors.New(errors.ErrCodeInvalidInput, "scoped npm URL needs a name: %q", raw)
			}
			name += "/" + segs[2]
		}
		if err := errors.ValidateNpmPackageName(name); err != nil {
			return Identity{}, err
		}
		id := NPM(name)
		id.Input = raw
		return id, nil
	}

	return Identity{}, errors.New(errors.ErrCodeInvalidInput, "unsupported package URL %q (want github.com or npmjs.com)", raw)
}

func segments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
