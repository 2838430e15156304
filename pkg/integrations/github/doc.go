// Package github provides a GraphQL client for the GitHub API.
//
// # Overview
//
// The scoring engine reads commit history, issues, pull requests, the
// repository tree and disk usage through GitHub's GraphQL endpoint
// (https://api.github.com/graphql). This package only transports queries;
// the query documents live with the metrics that use them.
//
// # Usage
//
//	hc := github.NewHTTPClient(ctx, os.Getenv("GITHUB_TOKEN"), 0)
//	client := github.NewClient(hc, "")
//
//	var out struct {
//	    Repository struct {
//	        DiskUsage int `json:"diskUsage"`
//	    } `json:"repository"`
//	}
//	err := client.Query(ctx, "expressjs", "express",
//	    `query($owner: String!, $repo: String!) { repository(owner: $owner, name: $repo) { diskUsage } }`,
//	    nil, &out)
//
// # Variables
//
// Every request carries the variables owner and repo; extra variables
// (cursors, page sizes) are merged in from the extra map.
//
// # Errors
//
// A response with an "errors" array, or without "data", is a [QueryError]
// matching [ErrQuery]. HTTP-level failures surface as the sentinel errors
// of the integrations package (ErrUnauthorized for a rejected token).
//
// # Authentication
//
// GraphQL requires a token. [NewHTTPClient] wraps an oauth2 static token
// source so that every request carries "Authorization: Bearer <token>".
package github
