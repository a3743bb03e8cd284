// Package yamlref loads YAML documents and resolves their cross-file references.
package yamlref

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/yamldoc/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// Loader implements ports.DocumentLoader on top of gopkg.in/yaml.v3.
//
// References are resolved against baseDir. With an empty baseDir they resolve
// against the directory of the referencing document.
type Loader struct {
	baseDir  string
	cache    *Cache
	resolver ports.PatternResolver
}

// NewLoader creates a loader backed by cache. resolver expands the globs of
// !import-all tags.
func NewLoader(baseDir string, cache *Cache, resolver ports.PatternResolver) *Loader {
	if baseDir != "" {
		baseDir = abs(baseDir)
	}
	return &Loader{
		baseDir:  baseDir,
		cache:    cache,
		resolver: resolver,
	}
}

// Load returns the resolved document at path. Relative paths are taken from
// the working directory.
func (l *Loader) Load(path string) (*domain.Document, error) {
	return l.cache.GetOrLoad(path, l.parse)
}

// Files returns the absolute path of every document loaded so far.
func (l *Loader) Files() []string {
	return l.cache.Paths()
}

// Cache returns the loader's reference cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

func (l *Loader) parse(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, l.parseError(path, 0, zerr.Wrap(err, "failed to read file"))
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, l.parseError(path, yamlErrorLine(err), zerr.Wrap(err, "invalid YAML"))
	}

	doc := &domain.Document{
		Path:    path,
		Anchors: make(map[string]domain.Value),
	}
	r := &resolver{
		loader: l,
		doc:    doc,
		seen:   make(map[*yaml.Node]domain.Value),
		active: make(map[*yaml.Node]bool),
	}
	root, err := r.value(&node)
	if err != nil {
		return nil, err
	}
	doc.Root = root
	return doc, nil
}

// base returns the directory references of doc resolve against.
func (l *Loader) base(doc *domain.Document) string {
	if l.baseDir != "" {
		return l.baseDir
	}
	return filepath.Dir(doc.Path)
}

func (l *Loader) parseError(path string, line int, cause error) error {
	err := zerr.With(cause, "file", displayPath(l.baseDir, path))
	if line > 0 {
		err = zerr.With(err, "line", line)
	}
	return domain.Kind(domain.ErrParse, err)
}

func yamlErrorLine(err error) int {
	var typeErr *yaml.TypeError
	msg := err.Error()
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}
	m := yamlLineRe.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// Factory creates loaders that share a pattern resolver but own their cache.
type Factory struct {
	resolver ports.PatternResolver
}

// NewFactory creates a Factory.
func NewFactory(resolver ports.PatternResolver) *Factory {
	return &Factory{resolver: resolver}
}

// NewLoader returns a loader with a fresh cache rooted at baseDir.
func (f *Factory) NewLoader(baseDir string) ports.DocumentLoader {
	return NewLoader(baseDir, NewCache(baseDir), f.resolver)
}
