package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/yamldoc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PatternResolver = (*Resolver)(nil)

// Resolver expands path patterns with named wildcards by walking the
// pattern's static base directory.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// Resolve returns every file below root matching pattern, sorted by path.
// A missing base directory yields no matches.
func (r *Resolver) Resolve(root, pattern string) ([]ports.Match, error) {
	p, err := domain.CompilePattern(pattern)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(root, filepath.FromSlash(p.Base()))
	info, err := os.Stat(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat pattern base"), "path", base)
	}
	if !info.IsDir() {
		return nil, nil
	}

	var matches []ports.Match
	for path, err := range r.walker.WalkFiles(base, nil) {
		if err != nil {
			return nil, zerr.With(err, "pattern", pattern)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve relative path"), "path", path)
		}
		rel = filepath.ToSlash(rel)
		if params, ok := p.Match(rel); ok {
			matches = append(matches, ports.Match{Path: rel, Params: params})
		}
	}

	slices.SortFunc(matches, func(a, b ports.Match) int {
		return strings.Compare(a.Path, b.Path)
	})
	return matches, nil
}
