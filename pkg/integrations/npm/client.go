package npm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/netscore/pkg/buildinfo"
	"github.com/matzehuels/netscore/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// ErrNoRepository is returned when the latest version declares no repository URL.
var ErrNoRepository = errors.New("no repository url")

// PackageInfo is the subset of registry metadata needed to locate a package's source.
type PackageInfo struct {
	Name       string
	Version    string
	Repository string // repository.url exactly as declared, not normalized
}

// Client looks up package metadata in the npm registry. Requests are
// unauthenticated.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a registry client. An empty baseURL selects [DefaultBaseURL].
func NewClient(hc *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client: integrations.NewClient(hc, map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchPackage returns metadata for the version tagged "latest".
func (c *Client) FetchPackage(ctx context.Context, pkg string) (*PackageInfo, error) {
	pkg = strings.ToLower(strings.TrimSpace(pkg))

	var data registryResponse
	if err := c.Get(ctx, c.baseURL+"/"+escapeName(pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return nil, err
	}

	latest := data.DistTags.Latest
	v, ok := data.Versions[latest]
	if latest == "" || !ok {
		return nil, fmt.Errorf("npm package %s: latest version %q not found", pkg, latest)
	}

	return &PackageInfo{
		Name:       data.Name,
		Version:    latest,
		Repository: integrations.ExtractField(v.Repository, "url"),
	}, nil
}

// RepositoryURL returns the repository URL declared by the latest version
// of pkg, or [ErrNoRepository] if none is declared.
func (c *Client) RepositoryURL(ctx context.Context, pkg string) (string, error) {
	info, err := c.FetchPackage(ctx, pkg)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(info.Repository) == "" {
		return "", fmt.Errorf("%w: npm package %s@%s", ErrNoRepository, pkg, info.Version)
	}
	return info.Repository, nil
}

// escapeName encodes the slash of a scoped name (@scope/name) the way the
// registry expects.
func escapeName(pkg string) string {
	if strings.HasPrefix(pkg, "@") {
		return strings.Replace(pkg, "/", "%2f", 1)
	}
	return pkg
}

type registryResponse struct {
	Name     string                    `json:"name"`
	DistTags distTags                  `json:"dist-tags"`
	Versions map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Repository any `json:"repository"`
}
