package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func closedIssuesPage(issues [][2]string) string {
	edges := make([]string, len(issues))
	for i, is := range issues {
		comments := ""
		if is[1] != "" {
			comments = fmt.Sprintf(`{"node": {"createdAt": %q}}`, is[1])
		}
		edges[i] = fmt.Sprintf(`{"node": {"createdAt": %q, "comments": {"edges": [%s]}}}`, is[0], comments)
	}
	return fmt.Sprintf(`{"data": {"repository": {"issues": {"edges": [%s]}}}}`, strings.Join(edges, ","))
}

func TestSampleSize(t *testing.T) {
	tests := []struct {
		mb   float64
		want int
	}{
		{0, 80},
		{50, 80},
		{50.5, 90},
		{100, 90},
		{100.1, 100},
		{4096, 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.mb), func(t *testing.T) {
			if got := SampleSize(tt.mb); got != tt.want {
				t.Errorf("SampleSize(%v) = %d, want %d", tt.mb, got, tt.want)
			}
		})
	}
}

func TestResponsivenessScore(t *testing.T) {
	tests := []struct {
		name   string
		delays []time.Duration
		sample int
		want   float64
	}{
		{"no commented issues", nil, 80, 0.5},
		{"instant replies", []time.Duration{0, 0}, 80, 1},
		{"one and two months", []time.Duration{month, 2 * month}, 80, 1 - 1.5/80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResponsivenessScore(tt.delays, tt.sample); !approx(got, tt.want) {
				t.Errorf("ResponsivenessScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResponsiveness(t *testing.T) {
	client, backend := newGraphQL(t, map[string]graphQLRoute{
		"diskUsage": respond(`{"data": {"repository": {"diskUsage": 204800}}}`),
		"comments(first: 1)": respond(closedIssuesPage([][2]string{
			{"2023-01-01T00:00:00Z", "2023-01-31T00:00:00Z"},
			{"2023-02-01T00:00:00Z", ""},
		})),
	})

	got, err := NewResponsiveness(client, quietLogger()).Score(context.Background(), testRepo)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if want := 1 - 1.0/100; !approx(got, want) {
		t.Errorf("Score() = %v, want %v", got, want)
	}

	calls := backend.callsFor("comments(first: 1)")
	if len(calls) != 1 || calls[0]["first"] != float64(100) {
		t.Errorf("issue query variables = %v, want first=100 for 200MB", calls)
	}
}

func TestResponsivenessNoIssues(t *testing.T) {
	client, _ := newGraphQL(t, map[string]graphQLRoute{
		"diskUsage":          respond(`{"data": {"repository": {"diskUsage": 10}}}`),
		"comments(first: 1)": respond(closedIssuesPage(nil)),
	})

	got, err := NewResponsiveness(client, quietLogger()).Score(context.Background(), testRepo)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if got != 0.5 {
		t.Errorf("Score() = %v, want 0.5", got)
	}
}

func TestResponsivenessPropagatesErrors(t *testing.T) {
	tests := []struct {
		name   string
		usage  graphQLRoute
		issues graphQLRoute
	}{
		{"disk usage fails", fail(http.StatusInternalServerError), respond(closedIssuesPage(nil))},
		{"issues fail", respond(`{"data": {"repository": {"diskUsage": 10}}}`), queryError("timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newGraphQL(t, map[string]graphQLRoute{
				"diskUsage":          tt.usage,
				"comments(first: 1)": tt.issues,
			})

			if _, err := NewResponsiveness(client, quietLogger()).Score(context.Background(), testRepo); err == nil {
				t.Error("Score() expected error")
			}
		})
	}
}
