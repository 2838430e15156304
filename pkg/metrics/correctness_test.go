package metrics

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/matzehuels/netscore/pkg/errors"
)

const issueCountsBody = `{"data": {"repository": {
	"issues": {"totalCount": 10},
	"closedIssues": {"totalCount": 8},
	"bugIssues": {"totalCount": 2}
}}}`

const treeBody = `{"data": {"repository": {"object": {"entries": [
	{"name": "README.md", "type": "blob", "object": {"text": "a\nb\nc"}},
	{"name": "logo.png", "type": "blob", "object": {"text": null}},
	{"name": "src", "type": "tree", "object": {"entries": [
		{"name": "index.js", "type": "blob", "object": {"text": "x\ny"}},
		{"name": "lib", "type": "tree", "object": {}}
	]}}
]}}}}`

func TestCorrectnessScore(t *testing.T) {
	tests := []struct {
		name     string
		issues   issueCounts
		loc      int
		issuesOK bool
		locOK    bool
		want     float64
	}{
		{"both fetched", issueCounts{Total: 10, Closed: 8, Bugs: 2}, 5, true, true, 0.7*0.8 + 0.3*0.6},
		{"no issues", issueCounts{}, 100, true, true, 1},
		{"no lines", issueCounts{Total: 4, Closed: 2, Bugs: 1}, 0, true, true, 0.7*0.5 + 0.3},
		{"issue fetch failed", issueCounts{Total: 4, Closed: 4, Bugs: 3}, 100, false, true, 0.3},
		{"line fetch failed", issueCounts{Total: 4, Closed: 4, Bugs: 3}, 100, true, false, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := correctnessScore(tt.issues, tt.loc, tt.issuesOK, tt.locOK)
			if !approx(got, tt.want) {
				t.Errorf("correctnessScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCorrectness(t *testing.T) {
	client, backend := newGraphQL(t, map[string]graphQLRoute{
		"bugIssues": respond(issueCountsBody),
		"HEAD:":     respond(treeBody),
	})

	got, err := NewCorrectness(client, quietLogger()).Score(context.Background(), testRepo)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	// 5 lines: three in README.md, two in src/index.js.
	if want := 0.7*0.8 + 0.3*(1-2.0/5); !approx(got, want) {
		t.Errorf("Score() = %v, want %v", got, want)
	}

	calls := backend.callsFor("bugIssues")
	if len(calls) != 1 || calls[0]["bugSample"] != float64(5) {
		t.Errorf("issue query variables = %v", calls)
	}
}

func TestCorrectnessDegrades(t *testing.T) {
	tests := []struct {
		name    string
		issues  graphQLRoute
		tree    graphQLRoute
		want    float64
		wantErr bool
	}{
		{
			name:   "issue fetch fails",
			issues: fail(http.StatusBadGateway),
			tree:   respond(treeBody),
			want:   0.3,
		},
		{
			name:   "line fetch fails",
			issues: respond(issueCountsBody),
			tree:   queryError("timeout"),
			want:   0.7 * 0.8,
		},
		{
			name:   "tree without entries",
			issues: respond(issueCountsBody),
			tree:   respond(`{"data": {"repository": {"object": null}}}`),
			want:   0.7*0.8 + 0.3,
		},
		{
			name:    "both fail",
			issues:  fail(http.StatusInternalServerError),
			tree:    fail(http.StatusInternalServerError),
			want:    0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newGraphQL(t, map[string]graphQLRoute{
				"bugIssues": tt.issues,
				"HEAD:":     tt.tree,
			})

			got, err := NewCorrectness(client, quietLogger()).Score(context.Background(), testRepo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Score() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !approx(got, tt.want) {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

// panickingQuerier panics on queries containing match and forwards the rest.
type panickingQuerier struct {
	Querier
	match string
}

func (p panickingQuerier) Query(ctx context.Context, owner, repo, query string, extra map[string]any, out any) error {
	if strings.Contains(query, p.match) {
		panic("decode tree")
	}
	return p.Querier.Query(ctx, owner, repo, query, extra, out)
}

func TestCorrectnessRecoversFetchPanic(t *testing.T) {
	client, _ := newGraphQL(t, map[string]graphQLRoute{
		"bugIssues": respond(issueCountsBody),
		"HEAD:":     respond(treeBody),
	})

	got, err := NewCorrectness(panickingQuerier{Querier: client, match: "HEAD:"}, quietLogger()).
		Score(context.Background(), testRepo)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if !approx(got, 0.7*0.8) {
		t.Errorf("Score() = %v, want %v with the line term dropped", got, 0.7*0.8)
	}

	_, err = NewCorrectness(panickingQuerier{Querier: client, match: "query"}, quietLogger()).
		Score(context.Background(), testRepo)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Score() error = %v, want INTERNAL_ERROR when both fetches panic", err)
	}
}
