package metrics

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/resolve"
)

// Metric names, also used as report field names.
const (
	NameBusFactor      = "BusFactor"
	NameCorrectness    = "Correctness"
	NameLicense        = "License"
	NameRampUp         = "RampUp"
	NameResponsiveness = "ResponsiveMaintainer"
)

// Page budgets. Pagination stops at these counts even when the API
// reports further pages.
const (
	pageSize           = 100
	busFactorMaxPages  = 1
	rampUpMaxPages     = 3
	bugIssueSampleSize = 5
)

// Calculator computes one sub-metric for a resolved repository.
// Implementations must be safe for concurrent use.
type Calculator interface {
	Name() string
	Score(ctx context.Context, repo resolve.Repo) (float64, error)
}

// Querier runs a GraphQL query with variables {owner, repo, ...extra} and
// decodes the response data into out. *github.Client satisfies it.
type Querier interface {
	Query(ctx context.Context, owner, repo, query string, extra map[string]any, out any) error
}

type pageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// paginate calls fetch with successive cursors, starting from nil, until
// the backend reports no next page or maxPages pages have been read.
// It returns the number of pages fetched.
func paginate(ctx context.Context, maxPages int, fetch func(cursor *string) (pageInfo, error)) (int, error) {
	var cursor *string
	pages := 0
	for pages < maxPages {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		info, err := fetch(cursor)
		if err != nil {
			return pages, err
		}
		pages++
		if !info.HasNextPage || info.EndCursor == nil {
			break
		}
		cursor = info.EndCursor
	}
	return pages, nil
}

func loggerOr(l *log.Logger, metric string) *log.Logger {
	if l == nil {
		l = log.Default()
	}
	return l.With("metric", metric)
}
