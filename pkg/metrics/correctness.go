package metrics

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/resolve"
)

// Correctness combines the resolved-issue ratio with bug density per line
// of code at HEAD.
type Correctness struct {
	client Querier
	logger *log.Logger
}

func NewCorrectness(client Querier, logger *log.Logger) *Correctness {
	return &Correctness{client: client, logger: loggerOr(logger, NameCorrectness)}
}

func (c *Correctness) Name() string { return NameCorrectness }

type issueCounts struct {
	Total  int
	Closed int
	Bugs   int
}

type issueCountsData struct {
	Repository struct {
		Issues struct {
			TotalCount int `json:"totalCount"`
		} `json:"issues"`
		ClosedIssues struct {
			TotalCount int `json:"totalCount"`
		} `json:"closedIssues"`
		BugIssues struct {
			TotalCount int `json:"totalCount"`
		} `json:"bugIssues"`
	} `json:"repository"`
}

type treeEntry struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Object *treeObject `json:"object"`
}

type treeObject struct {
	Text    *string     `json:"text"`
	Entries []treeEntry `json:"entries"`
}

type rootTreeData struct {
	Repository struct {
		Object *treeObject `json:"object"`
	} `json:"repository"`
}

// Score fetches issue counts and lines of code concurrently. A failure in
// one fetch degrades its term; only when both fail is an error returned.
func (c *Correctness) Score(ctx context.Context, repo resolve.Repo) (float64, error) {
	var (
		issues            issueCounts
		loc               int
		issuesErr, locErr error
		g                 errgroup.Group
	)
	g.Go(func() error {
		issuesErr = recovered(func() (err error) {
			issues, err = c.fetchIssues(ctx, repo)
			return err
		})
		return nil
	})
	g.Go(func() error {
		locErr = recovered(func() (err error) {
			loc, err = c.countLines(ctx, repo)
			return err
		})
		return nil
	})
	_ = g.Wait()

	if issuesErr != nil {
		c.logger.Error("fetch issues", "repo", repo, "err", issuesErr)
	}
	if locErr != nil {
		c.logger.Error("fetch lines of code", "repo", repo, "err", locErr)
	}
	if issuesErr != nil && locErr != nil {
		return 0, stderrors.Join(issuesErr, locErr)
	}

	score := correctnessScore(issues, loc, issuesErr == nil, locErr == nil)
	c.logger.Debug("computed", "repo", repo, "issues", issues.Total, "closed", issues.Closed,
		"bugs", issues.Bugs, "loc", loc, "score", score)
	return score, nil
}

// recovered runs fn and turns a panic into an INTERNAL_ERROR. Goroutines
// started here are outside the recover in Measure.
func recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeInternal, "panic: %v", r)
		}
	}()
	return fn()
}

func (c *Correctness) fetchIssues(ctx context.Context, repo resolve.Repo) (issueCounts, error) {
	var data issueCountsData
	vars := map[string]any{"bugSample": bugIssueSampleSize}
	if err := c.client.Query(ctx, repo.Owner, repo.Name, issueCountsQuery, vars, &data); err != nil {
		return issueCounts{}, err
	}
	r := data.Repository
	return issueCounts{
		Total:  r.Issues.TotalCount,
		Closed: r.ClosedIssues.TotalCount,
		Bugs:   r.BugIssues.TotalCount,
	}, nil
}

// countLines sums line counts of the blobs in the root tree and its
// immediate subdirectories. A tree without entries is logged and counts as
// zero lines.
func (c *Correctness) countLines(ctx context.Context, repo resolve.Repo) (int, error) {
	var data rootTreeData
	if err := c.client.Query(ctx, repo.Owner, repo.Name, rootTreeQuery, nil, &data); err != nil {
		return 0, err
	}
	root := data.Repository.Object
	if root == nil || len(root.Entries) == 0 {
		err := errors.New(errors.ErrCodeDataShape, "no tree entries at HEAD for %s", repo)
		c.logger.Warn("count lines", "repo", repo, "err", err)
		return 0, nil
	}
	return countTreeLines(root.Entries, 2), nil
}

func countTreeLines(entries []treeEntry, depth int) int {
	if depth == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		if e.Object == nil {
			continue
		}
		switch e.Type {
		case "blob":
			if e.Object.Text != nil && *e.Object.Text != "" {
				total += len(strings.Split(*e.Object.Text, "\n"))
			}
		case "tree":
			total += countTreeLines(e.Object.Entries, depth-1)
		}
	}
	return total
}

// correctnessScore is 0.7 times the resolved-issue ratio plus 0.3 times
// one minus bugs per line. Without issues the ratio is 1; without lines the
// bug term is 1. A failed issue fetch zeroes the ratio and the bug count; a
// failed line fetch zeroes the bug term.
func correctnessScore(issues issueCounts, loc int, issuesOK, locOK bool) float64 {
	ratio := 0.0
	bugs := 0
	if issuesOK {
		bugs = issues.Bugs
		if issues.Total == 0 {
			ratio = 1
		} else {
			ratio = float64(issues.Closed) / float64(issues.Total)
		}
	}

	bugTerm := 0.0
	if locOK {
		if loc == 0 {
			bugTerm = 1
		} else {
			bugTerm = 1 - float64(bugs)/float64(loc)
		}
	}
	return 0.7*ratio + 0.3*bugTerm
}
