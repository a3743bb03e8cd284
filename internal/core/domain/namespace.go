package domain

import "go.trai.ch/zerr"

// SourceKey is the namespace key holding the project-relative path of the
// document a job renders.
const SourceKey = "__source__"

type layer struct {
	origin string
	root   Value
}

// NamespaceBuilder merges an ordered list of layers into one namespace.
// Later layers win on key collisions. Mappings merge recursively, every other
// kind (sequences included) replaces the earlier value wholesale.
type NamespaceBuilder struct {
	layers []layer
}

// NewNamespaceBuilder returns an empty builder.
func NewNamespaceBuilder() *NamespaceBuilder {
	return &NamespaceBuilder{}
}

// Add appends a layer. origin names the layer in errors.
func (b *NamespaceBuilder) Add(origin string, root Value) *NamespaceBuilder {
	b.layers = append(b.layers, layer{origin: origin, root: root})
	return b
}

// AddDocument appends the root of doc as a layer.
func (b *NamespaceBuilder) AddDocument(doc *Document) *NamespaceBuilder {
	return b.Add(doc.Path, doc.Root)
}

// Set appends a single-key layer.
func (b *NamespaceBuilder) Set(key string, val Value) *NamespaceBuilder {
	m := NewMapping()
	m.Set(key, val)
	return b.Add(key, Map(m))
}

// Build merges the layers. A null layer counts as an empty mapping; any other
// non-mapping layer fails with ErrNamespace.
func (b *NamespaceBuilder) Build() (*Mapping, error) {
	ns := NewMapping()
	for _, l := range b.layers {
		switch l.root.Kind() {
		case KindNull:
			continue
		case KindMapping:
			ns = MergeMappings(ns, l.root.Mapping())
		default:
			err := zerr.With(zerr.New("layer is not a mapping"), "origin", l.origin)
			err = zerr.With(err, "kind", l.root.Kind().String())
			return nil, Kind(ErrNamespace, err)
		}
	}
	return ns, nil
}

// MergeMappings returns base overlaid with over. Neither input is modified.
func MergeMappings(base, over *Mapping) *Mapping {
	out := base.Clone()
	for _, key := range over.Keys() {
		ov, _ := over.Get(key)
		bv, ok := out.Get(key)
		if ok && bv.Kind() == KindMapping && ov.Kind() == KindMapping {
			out.Set(key, Map(MergeMappings(bv.Mapping(), ov.Mapping())))
			continue
		}
		out.Set(key, ov)
	}
	return out
}
