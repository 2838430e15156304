package metrics

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/resolve"
)

const month = 30 * 24 * time.Hour

// Responsiveness scores how quickly maintainers first comment on issues
// that were later closed.
type Responsiveness struct {
	client Querier
	logger *log.Logger
}

func NewResponsiveness(client Querier, logger *log.Logger) *Responsiveness {
	return &Responsiveness{client: client, logger: loggerOr(logger, NameResponsiveness)}
}

func (r *Responsiveness) Name() string { return NameResponsiveness }

type diskUsageData struct {
	Repository struct {
		DiskUsage *int `json:"diskUsage"`
	} `json:"repository"`
}

type closedIssuesData struct {
	Repository struct {
		Issues struct {
			Edges []struct {
				Node struct {
					CreatedAt string `json:"createdAt"`
					Comments  struct {
						Edges []struct {
							Node struct {
								CreatedAt string `json:"createdAt"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"comments"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"issues"`
	} `json:"repository"`
}

// Score returns fetch errors to the caller.
func (r *Responsiveness) Score(ctx context.Context, repo resolve.Repo) (float64, error) {
	var usage diskUsageData
	if err := r.client.Query(ctx, repo.Owner, repo.Name, diskUsageQuery, nil, &usage); err != nil {
		return 0, err
	}
	kb := 0
	if usage.Repository.DiskUsage != nil {
		kb = *usage.Repository.DiskUsage
	} else {
		r.logger.Warn("disk usage missing", "repo", repo)
	}
	sample := SampleSize(float64(kb) / 1024)

	var data closedIssuesData
	vars := map[string]any{"first": sample}
	if err := r.client.Query(ctx, repo.Owner, repo.Name, closedIssuesQuery, vars, &data); err != nil {
		return 0, err
	}

	var delays []time.Duration
	for _, e := range data.Repository.Issues.Edges {
		comments := e.Node.Comments.Edges
		if len(comments) == 0 {
			continue
		}
		opened, err := time.Parse(time.RFC3339, e.Node.CreatedAt)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeDataShape, err, "issue createdAt")
		}
		answered, err := time.Parse(time.RFC3339, comments[0].Node.CreatedAt)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeDataShape, err, "comment createdAt")
		}
		delays = append(delays, answered.Sub(opened))
	}

	score := ResponsivenessScore(delays, sample)
	r.logger.Debug("computed", "repo", repo, "sample", sample, "commented", len(delays), "score", score)
	return score, nil
}

// SampleSize picks how many closed issues to inspect for a repository of
// the given size in megabytes.
func SampleSize(mb float64) int {
	switch {
	case mb > 100:
		return 100
	case mb > 50:
		return 90
	default:
		return 80
	}
}

// ResponsivenessScore is one minus the average first-response delay in
// months divided by the sample size. No delays scores 0.5.
func ResponsivenessScore(delays []time.Duration, sample int) float64 {
	if len(delays) == 0 || sample <= 0 {
		return 0.5
	}
	var months float64
	for _, d := range delays {
		months += float64(d) / float64(month)
	}
	avg := months / float64(len(delays))
	return 1 - avg/float64(sample)
}
