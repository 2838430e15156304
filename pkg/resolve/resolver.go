package resolve

import (
	"context"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/integrations"
)

// RegistryClient looks up the repository URL a package declares.
// *npm.Client satisfies it.
type RegistryClient interface {
	RepositoryURL(ctx context.Context, pkg string) (string, error)
}

// Resolver maps identities to repositories.
type Resolver struct {
	registry RegistryClient
	logger   *log.Logger
}

// NewResolver creates a Resolver backed by registry.
// If logger is nil, log.Default() is used.
func NewResolver(registry RegistryClient, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{registry: registry, logger: logger}
}

// Resolve returns the repository for id. SourceControl identities are
// returned as-is; Registry identities cost one registry lookup. Every
// failure is a RESOLUTION_ERROR and is not retried.
func (r *Resolver) Resolve(ctx context.Context, id Identity) (Repo, error) {
	if id.Platform == SourceControl {
		return Repo{Owner: id.Owner, Name: id.Repo}, nil
	}

	raw, err := r.registry.RepositoryURL(ctx, id.Name)
	if err != nil {
		return Repo{}, errors.Wrap(errors.ErrCodeResolution, err, "resolve %s", id.Name)
	}

	repo, err := ParseRepoURL(raw)
	if err != nil {
		return Repo{}, errors.Wrap(errors.ErrCodeResolution, err, "resolve %s", id.Name)
	}
	r.logger.Debug("resolved package", "package", id.Name, "repo", repo)
	return repo, nil
}

// ParseRepoURL turns a declared repository URL into a Repo. VCS prefixes
// and a trailing .git are stripped; the host must be github.com and the
// remaining path must have exactly two non-empty segments.
func ParseRepoURL(raw string) (Repo, error) {
	clean := integrations.NormalizeRepoURL(raw)
	if clean == "" {
		return Repo{}, errors.New(errors.ErrCodeResolution, "empty repository url")
	}
	// npm shorthand: "github:owner/repo" or plain "owner/repo"
	if after, ok := strings.CutPrefix(clean, "github:"); ok {
		clean = "https://github.com/" + after
	} else if !strings.Contains(clean, "://") && strings.Count(clean, "/") == 1 && !strings.Contains(clean, ":") {
		clean = "https://github.com/" + clean
	}

	u, err := url.Parse(clean)
	if err != nil || u.Host == "" {
		return Repo{}, errors.New(errors.ErrCodeResolution, "malformed repository url %q", raw)
	}
	if host := strings.ToLower(u.Host); host != "github.com" && host != "www.github.com" {
		return Repo{}, errors.New(errors.ErrCodeResolution, "repository %q is not hosted on github.com", raw)
	}

	segs := segments(u.Path)
	if len(segs) != 2 {
		return Repo{}, errors.New(errors.ErrCodeResolution, "repository url %q has %d path segments, want 2", raw, len(segs))
	}
	return Repo{Owner: segs[0], Name: strings.TrimSuffix(segs[1], ".git")}, nil
}
