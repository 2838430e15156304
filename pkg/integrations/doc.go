// Package integrations provides the HTTP plumbing shared by the package
// registry and source platform clients.
//
// # Overview
//
// Each upstream service has its own subpackage:
//
//   - [npm]: npm registry lookups (package name to repository URL)
//   - [github]: GitHub GraphQL queries (commits, issues, pull requests, trees)
//
// # Shared Infrastructure
//
// The [Client] type applies default headers, JSON-encodes request bodies,
// JSON-decodes responses and maps HTTP status codes onto sentinel errors:
//
//   - 404 becomes [ErrNotFound]
//   - 401 and 403 become [ErrUnauthorized]
//   - any other failure becomes [ErrNetwork]
//
// Responses are never cached and failed requests are never retried: a
// metric that loses its fetch is scored once, as zero.
//
// # Repository URLs
//
// [NormalizeRepoURL] turns the many spellings found in registry metadata
// (git+https, git@host:, git://, trailing .git) into a canonical https URL.
//
// [npm]: github.com/matzehuels/netscore/pkg/integrations/npm
// [github]: github.com/matzehuels/netscore/pkg/integrations/github
package integrations
