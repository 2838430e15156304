// Package metrics computes the NetScore of a package and its five
// sub-metrics.
//
// # Metrics
//
// Each metric is a [Calculator] over a resolved [resolve.Repo]:
//
//   - [BusFactor]: share of authors needed to cover half of recent commits
//   - [Correctness]: resolved-issue ratio and bug density per line of code
//   - [License]: compatibility of the declared license, read from a clone
//   - [RampUp]: spread of contributors' first pull requests over time
//   - [Responsiveness]: time to first comment on closed issues
//
// Calculators that talk to GitHub take a [Querier], which
// *github.Client implements. Pagination is capped by fixed page budgets.
//
// # Aggregation
//
// [Aggregator.Score] resolves the package, runs every calculator
// concurrently through [Measure], and weights the results with
// [DefaultWeights] into a [Report]:
//
//	agg := metrics.NewAggregator(resolver, metrics.NewCalculators(gh, metrics.LicenseOptions{}, logger), logger)
//	report := agg.Score(ctx, resolve.NPM("express"))
//
// A failing calculator scores 0 without affecting the others. A package
// that cannot be resolved gets an all-zero report that keeps its URL.
package metrics
