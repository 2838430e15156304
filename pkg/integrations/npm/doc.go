// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// The client resolves a package name to the source repository declared in
// its registry metadata (https://registry.npmjs.org/<name>).
//
// # Usage
//
//	client := npm.NewClient(nil, "")
//	url, err := client.RepositoryURL(ctx, "express")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(url) // git+https://github.com/expressjs/express.git
//
// # Version Selection
//
// The client reads the version tagged "latest" in dist-tags and returns
// versions[latest].repository.url verbatim. The field may be declared as a
// string or as an object with a "url" key; both are accepted. Callers
// normalize the URL (see [integrations.NormalizeRepoURL]).
//
// [integrations.NormalizeRepoURL]: github.com/matzehuels/netscore/pkg/integrations.NormalizeRepoURL
package npm
