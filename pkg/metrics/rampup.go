package metrics

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/resolve"
)

// RampUp measures how spread out in time contributors joined, using each
// author's first pull request.
type RampUp struct {
	client   Querier
	logger   *log.Logger
	maxPages int
}

func NewRampUp(client Querier, logger *log.Logger) *RampUp {
	return &RampUp{
		client:   client,
		logger:   loggerOr(logger, NameRampUp),
		maxPages: rampUpMaxPages,
	}
}

func (r *RampUp) Name() string { return NameRampUp }

type pullRequestsData struct {
	Repository struct {
		PullRequests struct {
			Edges []struct {
				Node struct {
					CreatedAt string `json:"createdAt"`
					Author    *struct {
						Login string `json:"login"`
					} `json:"author"`
				} `json:"node"`
			} `json:"edges"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"pullRequests"`
	} `json:"repository"`
}

// Score returns fetch errors to the caller.
func (r *RampUp) Score(ctx context.Context, repo resolve.Repo) (float64, error) {
	first := make(map[string]int64)
	_, err := paginate(ctx, r.maxPages, func(cursor *string) (pageInfo, error) {
		var data pullRequestsData
		vars := map[string]any{"first": pageSize, "after": cursor}
		if err := r.client.Query(ctx, repo.Owner, repo.Name, pullRequestsQuery, vars, &data); err != nil {
			return pageInfo{}, err
		}
		prs := data.Repository.PullRequests
		for _, e := range prs.Edges {
			if e.Node.Author == nil || e.Node.Author.Login == "" {
				continue
			}
			login := e.Node.Author.Login
			if _, seen := first[login]; seen {
				continue
			}
			t, err := time.Parse(time.RFC3339, e.Node.CreatedAt)
			if err != nil {
				return pageInfo{}, errors.Wrap(errors.ErrCodeDataShape, err, "pull request createdAt")
			}
			first[login] = t.UnixMilli()
		}
		return prs.PageInfo, nil
	})
	if err != nil {
		return 0, err
	}

	score := RampUpScore(first)
	r.logger.Debug("computed", "repo", repo, "contributors", len(first), "score", score)
	return score, nil
}

// RampUpScore divides the earliest first-contribution time by the latest,
// both in milliseconds since the epoch. No contributors scores 0.5.
func RampUpScore(firstPR map[string]int64) float64 {
	if len(firstPR) == 0 {
		return 0.5
	}
	var lo, hi int64
	started := false
	for _, ms := range firstPR {
		if !started {
			lo, hi, started = ms, ms, true
			continue
		}
		lo = min(lo, ms)
		hi = max(hi, ms)
	}
	if hi <= 0 {
		return 0.5
	}
	return float64(lo) / float64(hi)
}
