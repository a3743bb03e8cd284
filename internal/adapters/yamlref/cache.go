package yamlref

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/zerr"
)

// LoadFunc parses the document at an absolute path.
type LoadFunc func(abs string) (*domain.Document, error)

// Cache memoizes resolved documents by absolute path for the lifetime of one
// invocation. Paths that are still being loaded are tracked on a stack so a
// reference back to one of them is reported as a cycle.
//
// A Cache is not safe for concurrent use.
type Cache struct {
	root    string
	docs    map[string]*domain.Document
	loading []string
}

// NewCache creates an empty cache. root is only used to shorten paths in errors.
func NewCache(root string) *Cache {
	if root != "" {
		root = abs(root)
	}
	return &Cache{
		root: root,
		docs: make(map[string]*domain.Document),
	}
}

// Get returns the cached document for path.
func (c *Cache) Get(path string) (*domain.Document, bool) {
	doc, ok := c.docs[abs(path)]
	return doc, ok
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	return len(c.docs)
}

// Paths returns the cached absolute paths, sorted.
func (c *Cache) Paths() []string {
	out := make([]string, 0, len(c.docs))
	for p := range c.docs {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// GetOrLoad returns the cached document for path, calling load and storing
// its result on a miss. Requesting a path that is still loading fails with
// domain.ErrReferenceCycle.
func (c *Cache) GetOrLoad(path string, load LoadFunc) (*domain.Document, error) {
	p := abs(path)
	if doc, ok := c.docs[p]; ok {
		return doc, nil
	}
	if i := slices.Index(c.loading, p); i >= 0 {
		return nil, c.cycleError(append(slices.Clone(c.loading[i:]), p))
	}

	c.loading = append(c.loading, p)
	doc, err := load(p)
	c.loading = c.loading[:len(c.loading)-1]
	if err != nil {
		return nil, err
	}

	c.docs[p] = doc
	return doc, nil
}

func (c *Cache) cycleError(chain []string) error {
	names := make([]string, len(chain))
	for i, p := range chain {
		names[i] = c.display(p)
	}
	err := zerr.New("document references itself through " + names[len(names)-2])
	err = zerr.With(err, "chain", strings.Join(names, " -> "))
	return domain.Kind(domain.ErrReferenceCycle, err)
}

func (c *Cache) display(p string) string {
	return displayPath(c.root, p)
}

func displayPath(root, p string) string {
	if root == "" {
		return p
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

func abs(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}
