// Package fs provides file system adapters for walking, matching and hashing project files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/zerr"
)

// skippedDirs are never descended into.
var skippedDirs = []string{".git", ".jj", domain.StateDirName}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root, skipping VCS and state directories
// and any entry whose name matches one of ignores. Paths include root.
// A walk failure is yielded once as ErrWalkFailed and ends the sequence.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return zerr.With(err, "path", path)
			}

			if skip, action := w.shouldSkip(path != root, d, ignores); skip {
				return action
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}

			return nil
		})
		if err != nil {
			yield("", domain.Kind(domain.ErrWalkFailed, zerr.With(err, "root", root)))
		}
	}
}

// shouldSkip reports whether an entry is skipped and the action WalkDir should take.
func (w *Walker) shouldSkip(nested bool, d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() && nested && slices.Contains(skippedDirs, name) {
		return true, filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
