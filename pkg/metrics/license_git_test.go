package metrics

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/matzehuels/netscore/pkg/resolve"
)

// initRepo creates a repository at dir with one commit per file set.
func initRepo(t *testing.T, dir string, commits ...map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit() error: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree() error: %v", err)
	}
	for i, files := range commits {
		for name, body := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
				t.Fatalf("write %s: %v", name, err)
			}
			if _, err := wt.Add(name); err != nil {
				t.Fatalf("Add(%s) error: %v", name, err)
			}
		}
		_, err := wt.Commit("commit", &git.CommitOptions{
			Author: &object.Signature{
				Name:  "netscore",
				Email: "netscore@example.com",
				When:  time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			},
		})
		if err != nil {
			t.Fatalf("Commit() error: %v", err)
		}
	}
}

func requireUploadPack(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git-upload-pack"); err != nil {
		t.Skip("git-upload-pack not installed")
	}
}

func TestGitClonerShallow(t *testing.T) {
	requireUploadPack(t)

	src := t.TempDir()
	initRepo(t, src,
		map[string]string{"README.md": "first\n"},
		map[string]string{"LICENSE": "MIT License\n"},
	)

	dst := filepath.Join(t.TempDir(), "clone")
	if err := (GitCloner{}).Clone(context.Background(), "file://"+src, dst); err != nil {
		t.Fatalf("Clone() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "LICENSE")); err != nil {
		t.Errorf("LICENSE missing from checkout: %v", err)
	}

	repo, err := git.PlainOpen(dst)
	if err != nil {
		t.Fatalf("PlainOpen() error: %v", err)
	}
	shallow, err := repo.Storer.Shallow()
	if err != nil {
		t.Fatalf("Shallow() error: %v", err)
	}
	if len(shallow) != 1 {
		t.Errorf("shallow commits = %d, want 1 (depth 1)", len(shallow))
	}
}

func TestGitClonerMissingRepository(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "clone")
	err := (GitCloner{}).Clone(context.Background(), "file://"+filepath.Join(t.TempDir(), "missing"), dst)
	if err == nil {
		t.Fatal("Clone() of a missing repository succeeded")
	}
}

func TestLicenseScoreWithGitClone(t *testing.T) {
	requireUploadPack(t)

	hosts := t.TempDir()
	initRepo(t, filepath.Join(hosts, "acme", "widget"), map[string]string{
		"package.json": `{"name": "widget", "license": "LGPL-2.1"}`,
		"LICENSE":      "MIT License\n",
	})

	base := t.TempDir()
	l := NewLicense(LicenseOptions{
		WorkspaceDir: base,
		CloneBaseURL: "file://" + hosts,
	}, quietLogger())

	got, err := l.Score(context.Background(), resolve.Repo{Owner: "acme", Name: "widget"})
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if got != 0.75 {
		t.Errorf("Score() = %v, want 0.75 from package.json", got)
	}

	left, err := os.ReadDir(base)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("workspace not released: %d entries left in %s", len(left), base)
	}
}
