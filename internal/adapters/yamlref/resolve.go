package yamlref

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Reference tags understood by the loader.
const (
	TagImport                 = "!import"
	TagImportAnchor           = "!import.anchor"
	TagImportAll              = "!import-all"
	TagImportAllParameterized = "!import-all-parameterized"
)

const mergeTag = "!!merge"

// resolver converts the node tree of one document into domain values.
// active holds the nodes being resolved so an alias to an enclosing node
// is reported instead of recursing.
type resolver struct {
	loader *Loader
	doc    *domain.Document
	seen   map[*yaml.Node]domain.Value
	active map[*yaml.Node]bool
}

func (r *resolver) value(n *yaml.Node) (domain.Value, error) {
	if v, ok := r.seen[n]; ok {
		return v, nil
	}

	var (
		v   domain.Value
		err error
	)
	r.active[n] = true
	defer delete(r.active, n)

	switch {
	case n.Kind == yaml.DocumentNode:
		if len(n.Content) == 0 {
			return domain.Null(), nil
		}
		return r.value(n.Content[0])
	case n.Kind == yaml.AliasNode:
		if r.active[n.Alias] {
			err := zerr.With(zerr.New("alias refers to an enclosing node"), "anchor", n.Value)
			return domain.Value{}, r.errorAt(n, err)
		}
		return r.value(n.Alias)
	case strings.HasPrefix(n.Tag, TagImport):
		v, err = r.reference(n)
	case n.Kind == yaml.ScalarNode:
		v, err = r.scalar(n)
	case n.Kind == yaml.SequenceNode:
		v, err = r.sequence(n)
	case n.Kind == yaml.MappingNode:
		v, err = r.mapping(n)
	default:
		err = r.errorAt(n, zerr.New("unsupported YAML node"))
	}
	if err != nil {
		return domain.Value{}, err
	}

	r.seen[n] = v
	if n.Anchor != "" {
		r.doc.Anchors[n.Anchor] = v
	}
	return v, nil
}

func (r *resolver) scalar(n *yaml.Node) (domain.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return domain.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return domain.Value{}, r.errorAt(n, zerr.Wrap(err, "invalid boolean"))
		}
		return domain.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return domain.Int(i), nil
		}
		fallthrough
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return domain.Value{}, r.errorAt(n, zerr.Wrap(err, "invalid number"))
		}
		return domain.Float(f), nil
	default:
		return domain.String(n.Value), nil
	}
}

func (r *resolver) sequence(n *yaml.Node) (domain.Value, error) {
	items := make([]domain.Value, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := r.value(c)
		if err != nil {
			return domain.Value{}, err
		}
		items = append(items, v)
	}
	return domain.Sequence(items...), nil
}

// mapping converts a mapping node. Merge keys are applied first so that
// local keys win; within a merge list earlier entries win.
func (r *resolver) mapping(n *yaml.Node) (domain.Value, error) {
	var merged []*domain.Mapping
	local := domain.NewMapping()

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]

		if key.Kind == yaml.ScalarNode && key.ShortTag() == mergeTag {
			ms, err := r.mergeSources(val)
			if err != nil {
				return domain.Value{}, err
			}
			merged = append(merged, ms...)
			continue
		}

		if key.Kind != yaml.ScalarNode {
			return domain.Value{}, r.errorAt(key, zerr.New("mapping keys must be scalars"))
		}
		v, err := r.value(val)
		if err != nil {
			return domain.Value{}, err
		}
		local.Set(key.Value, v)
	}

	if len(merged) == 0 {
		return domain.Map(local), nil
	}

	out := domain.NewMapping()
	for i := len(merged) - 1; i >= 0; i-- {
		for _, k := range merged[i].Keys() {
			v, _ := merged[i].Get(k)
			out.Set(k, v)
		}
	}
	for _, k := range local.Keys() {
		v, _ := local.Get(k)
		out.Set(k, v)
	}
	return domain.Map(out), nil
}

func (r *resolver) mergeSources(n *yaml.Node) ([]*domain.Mapping, error) {
	if n.Kind == yaml.SequenceNode && !strings.HasPrefix(n.Tag, TagImport) {
		var out []*domain.Mapping
		for _, c := range n.Content {
			ms, err := r.mergeSources(c)
			if err != nil {
				return nil, err
			}
			out = append(out, ms...)
		}
		return out, nil
	}

	v, err := r.value(n)
	if err != nil {
		return nil, err
	}
	switch v.Kind() {
	case domain.KindMapping:
		return []*domain.Mapping{v.Mapping()}, nil
	case domain.KindNull:
		return nil, nil
	default:
		return nil, r.errorAt(n, zerr.With(domain.ErrInvalidMergeKey, "kind", v.Kind().String()))
	}
}

func (r *resolver) reference(n *yaml.Node) (domain.Value, error) {
	if n.Kind != yaml.ScalarNode {
		return domain.Value{}, r.errorAt(n, zerr.With(domain.ErrInvalidReference, "tag", n.Tag))
	}
	arg := strings.TrimSpace(n.Value)
	if arg == "" {
		return domain.Value{}, r.errorAt(n, zerr.With(domain.ErrInvalidReference, "tag", n.Tag))
	}

	switch n.Tag {
	case TagImport:
		doc, err := r.load(n, arg)
		if err != nil {
			return domain.Value{}, err
		}
		return doc.Root, nil
	case TagImportAnchor:
		return r.importAnchor(n, arg)
	case TagImportAll:
		return r.importAll(n, arg, false)
	case TagImportAllParameterized:
		return r.importAll(n, arg, true)
	default:
		return domain.Value{}, r.errorAt(n, zerr.With(domain.ErrUnknownReferenceTag, "tag", n.Tag))
	}
}

func (r *resolver) importAnchor(n *yaml.Node, arg string) (domain.Value, error) {
	fields := strings.Fields(arg)
	if len(fields) != 2 || !strings.HasPrefix(fields[1], "&") {
		err := zerr.With(domain.ErrInvalidReference, "tag", n.Tag)
		return domain.Value{}, r.errorAt(n, zerr.With(err, "expected", "<path> &<anchor>"))
	}

	doc, err := r.load(n, fields[0])
	if err != nil {
		return domain.Value{}, err
	}
	name := strings.TrimPrefix(fields[1], "&")
	v, ok := doc.Anchor(name)
	if !ok {
		err := zerr.With(domain.ErrAnchorNotFound, "anchor", name)
		return domain.Value{}, r.errorAt(n, zerr.With(err, "target", fields[0]))
	}
	return v, nil
}

func (r *resolver) importAll(n *yaml.Node, pattern string, parameterized bool) (domain.Value, error) {
	root := r.loader.base(r.doc)
	matches, err := r.loader.resolver.Resolve(root, pattern)
	if err != nil {
		return domain.Value{}, r.errorAt(n, zerr.Wrap(err, "failed to expand "+n.Tag))
	}

	items := make([]domain.Value, 0, len(matches))
	for _, m := range matches {
		doc, err := r.loader.cache.GetOrLoad(filepath.Join(root, filepath.FromSlash(m.Path)), r.loader.parse)
		if err != nil {
			return domain.Value{}, err
		}
		if !parameterized {
			items = append(items, doc.Root)
			continue
		}

		entry := domain.NewMapping()
		for _, field := range slices.Sorted(maps.Keys(m.Params)) {
			entry.Set(field, domain.String(m.Params[field]))
		}
		switch doc.Root.Kind() {
		case domain.KindNull:
		case domain.KindMapping:
			entry = domain.MergeMappings(entry, doc.Root.Mapping())
		default:
			err := zerr.With(zerr.New("parameterized import needs mapping documents"), "target", m.Path)
			return domain.Value{}, r.errorAt(n, zerr.With(err, "kind", doc.Root.Kind().String()))
		}
		items = append(items, domain.Map(entry))
	}
	return domain.Sequence(items...), nil
}

func (r *resolver) load(n *yaml.Node, arg string) (*domain.Document, error) {
	target := filepath.FromSlash(arg)
	if !filepath.IsAbs(target) {
		target = filepath.Join(r.loader.base(r.doc), target)
	}
	if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
		err := zerr.With(zerr.New("referenced file not found"), "target", arg)
		return nil, r.errorAt(n, err)
	}
	return r.loader.cache.GetOrLoad(target, r.loader.parse)
}

func (r *resolver) errorAt(n *yaml.Node, cause error) error {
	return r.loader.parseError(r.doc.Path, n.Line, cause)
}
