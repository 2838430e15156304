package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/matzehuels/netscore/pkg/buildinfo"
	"github.com/matzehuels/netscore/pkg/integrations"
)

// DefaultEndpoint is the GitHub GraphQL API.
const DefaultEndpoint = "https://api.github.com/graphql"

// ErrQuery is returned when a GraphQL response carries an errors array or no data.
var ErrQuery = errors.New("graphql query failed")

// QueryError holds the messages from a GraphQL errors array.
type QueryError struct {
	Messages []string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%v: %s", ErrQuery, strings.Join(e.Messages, "; "))
}

func (e *QueryError) Unwrap() error { return ErrQuery }

// Client issues GraphQL queries against GitHub on behalf of one token.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	endpoint string
}

// NewClient creates a GraphQL client that posts to endpoint through hc.
// An empty endpoint selects [DefaultEndpoint]. Authentication is the
// transport's job; see [NewHTTPClient].
func NewClient(hc *http.Client, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Client: integrations.NewClient(hc, map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		}),
		endpoint: endpoint,
	}
}

// NewHTTPClient returns an HTTP client that attaches token as a bearer
// credential to every request. A zero timeout means none.
func NewHTTPClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = timeout
	return hc
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Query runs query with variables {owner, repo, ...extra} and decodes the
// "data" member of the response into out.
func (c *Client) Query(ctx context.Context, owner, repo, query string, extra map[string]any, out any) error {
	vars := make(map[string]any, len(extra)+2)
	for k, v := range extra {
		vars[k] = v
	}
	vars["owner"] = owner
	vars["repo"] = repo

	var resp response
	if err := c.PostJSON(ctx, c.endpoint, request{Query: query, Variables: vars}, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return &QueryError{Messages: msgs}
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return &QueryError{Messages: []string{"response has no data"}}
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// RepoURL returns the browser URL of owner/repo, which is also its clone URL.
func RepoURL(owner, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s", owner, repo)
}
