// Package pkg provides the core libraries for netscore, a trustworthiness
// scorer for open-source packages.
//
// # Overview
//
// netscore takes package URLs (npm registry pages or GitHub repositories),
// maps each one to a GitHub repository and computes five quality metrics
// in parallel. The metrics are combined into a weighted NetScore in [0, 1]
// and emitted as one NDJSON line per package.
//
// # Architecture
//
// The typical data flow:
//
//	Package URL (npm or GitHub)
//	         ↓
//	  [resolve] → owner/repo
//	         ↓
//	  [metrics] → five calculators in parallel
//	         ↓                 ↓
//	[integrations/github]  [workspace] + git clone
//	         ↓
//	  [metrics.Report] → NDJSON
//
// # Packages
//
// [resolve] - Parses package URLs and maps npm names to GitHub repositories
// through the registry's repository field.
//
// [metrics] - The BusFactor, Correctness, License, RampUp and
// ResponsiveMaintainer calculators, the per-metric latency wrapper and the
// weighted aggregator.
//
// [integrations] - Shared HTTP plumbing plus the [integrations/npm] registry
// client and the [integrations/github] GraphQL client.
//
// [workspace] - Disjoint scratch directories for concurrent license clones.
//
// [config] - TOML configuration file with environment overrides.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Hooks for HTTP and scoring events.
//
// [buildinfo] - Version metadata injected at build time.
//
// [resolve]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/resolve
// [metrics]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/metrics
// [integrations]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/integrations
// [integrations/npm]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/integrations/npm
// [integrations/github]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/integrations/github
// [workspace]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/workspace
// [config]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/buildinfo
//
// [metrics.Report]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/metrics#Report
package pkg
