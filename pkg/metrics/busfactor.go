package metrics

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/resolve"
)

// BusFactor scores how concentrated commit authorship is on the default
// branch. Lower values mean fewer people account for most of the work.
type BusFactor struct {
	client   Querier
	logger   *log.Logger
	maxPages int
}

// NewBusFactor returns a BusFactor calculator reading one page of commit
// history.
func NewBusFactor(client Querier, logger *log.Logger) *BusFactor {
	return &BusFactor{
		client:   client,
		logger:   loggerOr(logger, NameBusFactor),
		maxPages: busFactorMaxPages,
	}
}

func (b *BusFactor) Name() string { return NameBusFactor }

type commitHistoryData struct {
	Repository struct {
		DefaultBranchRef *struct {
			Target struct {
				History struct {
					Edges []struct {
						Node struct {
							Author *struct {
								User *struct {
									Login string `json:"login"`
								} `json:"user"`
							} `json:"author"`
						} `json:"node"`
					} `json:"edges"`
					PageInfo pageInfo `json:"pageInfo"`
				} `json:"history"`
			} `json:"target"`
		} `json:"defaultBranchRef"`
	} `json:"repository"`
}

// Score never returns an error: fetch failures are logged and score 0.
func (b *BusFactor) Score(ctx context.Context, repo resolve.Repo) (float64, error) {
	commits := make(map[string]int)
	_, err := paginate(ctx, b.maxPages, func(cursor *string) (pageInfo, error) {
		var data commitHistoryData
		vars := map[string]any{"first": pageSize, "after": cursor}
		if err := b.client.Query(ctx, repo.Owner, repo.Name, commitHistoryQuery, vars, &data); err != nil {
			return pageInfo{}, err
		}
		ref := data.Repository.DefaultBranchRef
		if ref == nil {
			return pageInfo{}, errors.New(errors.ErrCodeDataShape, "%s has no default branch", repo)
		}
		for _, e := range ref.Target.History.Edges {
			if a := e.Node.Author; a != nil && a.User != nil && a.User.Login != "" {
				commits[a.User.Login]++
			}
		}
		return ref.Target.History.PageInfo, nil
	})
	if err != nil {
		b.logger.Error("fetch commit history", "repo", repo, "err", err)
		return 0, nil
	}

	score := BusFactorScore(commits)
	b.logger.Debug("computed", "repo", repo, "authors", len(commits), "score", score)
	return score, nil
}

// BusFactorScore returns the number of top authors whose combined commits
// first exceed half of all commits, divided by the number of distinct
// authors. An empty histogram scores 0.
func BusFactorScore(commits map[string]int) float64 {
	if len(commits) == 0 {
		return 0
	}
	counts := make([]int, 0, len(commits))
	total := 0
	for _, n := range commits {
		counts = append(counts, n)
		total += n
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	needed, sum := 0, 0
	for _, n := range counts {
		sum += n
		needed++
		if float64(sum) > float64(total)/2 {
			break
		}
	}
	return float64(needed) / float64(len(counts))
}
