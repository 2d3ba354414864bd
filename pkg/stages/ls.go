package stages

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/flume/pkg/pipeline"
	"github.com/aretw0/flume/pkg/value"
)

// lsPattern enumerates everything under the root, recursively.
const lsPattern = "**/*"

type lsEntry struct {
	path string
	err  error
}

// Ls lazily emits one {name, type} record per filesystem entry under its
// root. Enumeration runs on its own goroutine and is consumed one entry per
// Next call through an unbuffered channel, so blocking filesystem work never
// stalls the caller's siblings while enumeration order is kept intact.
//
// Errors are fatal: a failed walk or metadata lookup surfaces as a
// *pipeline.SourceError and the stage does not skip or retry the entry.
type Ls struct {
	root    string
	entries <-chan lsEntry
}

// NewLs creates a source stage rooted at root ("." for the working
// directory).
func NewLs(root string) *Ls {
	return &Ls{root: root}
}

// Connect starts the enumeration. Ls is a source: the upstream is ignored.
func (l *Ls) Connect(ctx context.Context, _ pipeline.Connector) error {
	entries := make(chan lsEntry)
	fsys := os.DirFS(l.root)

	go func() {
		defer close(entries)
		err := doublestar.GlobWalk(fsys, lsPattern, func(path string, d fs.DirEntry) error {
			select {
			case entries <- lsEntry{path: path}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}, doublestar.WithFailOnIOErrors())
		if err != nil && !errors.Is(err, context.Canceled) {
			select {
			case entries <- lsEntry{err: &pipeline.SourceError{Err: err}}:
			case <-ctx.Done():
			}
		}
	}()

	l.entries = entries
	return nil
}

// Next advances the enumeration by exactly one entry, stats it and returns
// the resulting record. It returns nil once the walk is complete.
func (l *Ls) Next(ctx context.Context) (*pipeline.Output, error) {
	if l.entries == nil {
		return nil, nil
	}

	entry, ok := <-l.entries
	if !ok {
		return nil, nil
	}
	if entry.err != nil {
		return nil, entry.err
	}

	info, err := os.Lstat(filepath.Join(l.root, entry.path))
	if err != nil {
		return nil, &pipeline.SourceError{Path: entry.path, Err: err}
	}

	kind := value.Nothing()
	switch {
	case info.IsDir():
		kind = value.Text("Dir")
	case info.Mode().IsRegular():
		kind = value.Text("File")
	}

	row := value.Record(
		value.Field{Name: "name", Value: value.Text(entry.path)},
		value.Field{Name: "type", Value: kind},
	)
	return pipeline.FromValue(row), nil
}
