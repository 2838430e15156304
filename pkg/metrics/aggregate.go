package metrics

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/netscore/pkg/observability"
	"github.com/matzehuels/netscore/pkg/resolve"
)

// Weights sets each metric's share of the composite score.
type Weights struct {
	BusFactor      float64
	Correctness    float64
	License        float64
	RampUp         float64
	Responsiveness float64
}

// DefaultWeights sum to 1.
var DefaultWeights = Weights{
	BusFactor:      0.15,
	Correctness:    0.24,
	License:        0.26,
	RampUp:         0.15,
	Responsiveness: 0.20,
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.BusFactor + w.Correctness + w.License + w.RampUp + w.Responsiveness
}

// Combine returns the weighted sum of the results.
func (w Weights) Combine(r Results) float64 {
	return w.BusFactor*r.BusFactor.Result +
		w.Correctness*r.Correctness.Result +
		w.License*r.License.Result +
		w.RampUp*r.RampUp.Result +
		w.Responsiveness*r.Responsiveness.Result
}

// IdentityResolver maps a package identity to its source repository.
type IdentityResolver interface {
	Resolve(ctx context.Context, id resolve.Identity) (resolve.Repo, error)
}

// Calculators is the set of metrics an Aggregator runs. Every field must be
// set.
type Calculators struct {
	BusFactor      Calculator
	Correctness    Calculator
	License        Calculator
	RampUp         Calculator
	Responsiveness Calculator
}

// NewCalculators builds the standard calculators over a GraphQL client.
func NewCalculators(client Querier, license LicenseOptions, logger *log.Logger) Calculators {
	return Calculators{
		BusFactor:      NewBusFactor(client, logger),
		Correctness:    NewCorrectness(client, logger),
		License:        NewLicense(license, logger),
		RampUp:         NewRampUp(client, logger),
		Responsiveness: NewResponsiveness(client, logger),
	}
}

// Aggregator resolves a package and scores it with all calculators in
// parallel.
type Aggregator struct {
	resolver IdentityResolver
	calcs    Calculators
	weights  Weights
	logger   *log.Logger
}

// NewAggregator returns an Aggregator using DefaultWeights.
func NewAggregator(resolver IdentityResolver, calcs Calculators, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		resolver: resolver,
		calcs:    calcs,
		weights:  DefaultWeights,
		logger:   logger,
	}
}

// Score always returns a report. When the package cannot be resolved every
// number in it is zero; a failing calculator only zeroes its own metric.
func (a *Aggregator) Score(ctx context.Context, id resolve.Identity) *Report {
	url := id.URL()
	hooks := observability.Scoring()
	hooks.OnScoreStart(ctx, id.String())
	start := time.Now()

	repo, err := a.resolver.Resolve(ctx, id)
	if err != nil {
		a.logger.Error("resolve package", "package", id, "err", err)
		hooks.OnScoreComplete(ctx, id.String(), 0, time.Since(start), err)
		return ZeroReport(url)
	}
	a.logger.Info("scoring", "package", id, "repo", repo)

	var (
		res Results
		g   errgroup.Group
	)
	run := func(dst *Timed[float64], name string, c Calculator) {
		g.Go(func() error {
			*dst = Measure(ctx, a.logger, name, func(ctx context.Context) (float64, error) {
				return c.Score(ctx, repo)
			})
			return nil
		})
	}
	run(&res.BusFactor, NameBusFactor, a.calcs.BusFactor)
	run(&res.Correctness, NameCorrectness, a.calcs.Correctness)
	run(&res.License, NameLicense, a.calcs.License)
	run(&res.RampUp, NameRampUp, a.calcs.RampUp)
	run(&res.Responsiveness, NameResponsiveness, a.calcs.Responsiveness)
	_ = g.Wait()

	report := NewReport(url, res, a.weights)
	hooks.OnScoreComplete(ctx, id.String(), report.NetScore, time.Since(start), nil)
	a.logger.Info("scored", "package", id, "net_score", report.NetScore, "latency", report.NetScoreLatency)
	return report
}
