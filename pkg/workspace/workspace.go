// Package workspace hands out scratch directories for repository clones.
//
// Each [Acquire] creates a fresh, uniquely named directory under a base
// path, so concurrent scorings never share a working tree. The caller owns
// the directory until [Workspace.Release], which removes it and everything
// in it:
//
//	ws, err := workspace.Acquire("")
//	if err != nil {
//	    return err
//	}
//	defer ws.Release()
//	clone(ctx, url, ws.Dir())
package workspace

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Prefix starts the name of every workspace directory.
const Prefix = "netscore-"

// Workspace is a directory owned by one caller.
type Workspace struct {
	dir  string
	once sync.Once
	err  error
}

// Acquire creates a new empty directory under base. An empty base uses
// os.TempDir(). The base directory is created if missing.
func Acquire(base string) (*Workspace, error) {
	if base == "" {
		base = os.TempDir()
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	dir := filepath.Join(base, Prefix+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, err
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the absolute path of the workspace.
func (w *Workspace) Dir() string { return w.dir }

// Release removes the workspace and its contents. It is safe to call more
// than once; later calls return the first result.
func (w *Workspace) Release() error {
	w.once.Do(func() {
		w.err = os.RemoveAll(w.dir)
	})
	return w.err
}
