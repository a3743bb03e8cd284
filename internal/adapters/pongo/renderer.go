// Package pongo renders Jinja-style templates with pongo2.
package pongo

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/frontmatter"
	"github.com/flosch/pongo2/v6"
	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// NamespaceKey exposes the whole namespace to templates, including keys that
// are not valid identifiers.
const NamespaceKey = "__namespace__"

var identRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
}

func init() {
	pongo2.SetAutoescape(false)
}

// Renderer implements ports.TemplateRenderer.
//
// Every render compiles its template in a fresh pongo2 template set rooted at
// the project directory, so a Renderer may be shared by concurrent jobs and
// always sees the current template files.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RenderFile renders the template at path. A leading YAML front matter block
// provides defaults that the namespace overrides.
func (r *Renderer) RenderFile(root, path string, ns *domain.Mapping) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	name := displayName(root, path)

	//nolint:gosec // Template paths come from the project configuration or the command line.
	source, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.Kind(domain.ErrRender, zerr.With(domain.ErrTemplateNotFound, "template", name))
		}
		return "", domain.Kind(domain.ErrRender, zerr.With(zerr.Wrap(err, "failed to read template"), "template", name))
	}

	var node yaml.Node
	body, err := frontmatter.Parse(bytes.NewReader(source), &node, frontMatterFormats...)
	if err != nil {
		return "", domain.Kind(domain.ErrRender, zerr.With(zerr.Wrap(err, "invalid front matter"), "template", name))
	}
	defaults, err := frontMatterValue(&node, make(map[*yaml.Node]bool))
	if err != nil {
		return "", domain.Kind(domain.ErrRender, zerr.With(zerr.Wrap(err, "invalid front matter"), "template", name))
	}
	offset := 0
	if bytes.HasSuffix(source, body) {
		offset = bytes.Count(source[:len(source)-len(body)], []byte("\n"))
	}

	vars, err := domain.NewNamespaceBuilder().
		Add(name+" front matter", defaults).
		Add("namespace", domain.Map(ns)).
		Build()
	if err != nil {
		return "", err
	}

	return r.render(root, name, body, offset, vars)
}

// RenderString renders a literal template.
func (r *Renderer) RenderString(root, source string, ns *domain.Mapping) (string, error) {
	return r.render(root, "<inline>", []byte(source), 0, ns)
}

func (r *Renderer) render(root, name string, source []byte, offset int, ns *domain.Mapping) (string, error) {
	set, err := newSet(root)
	if err != nil {
		return "", domain.Kind(domain.ErrRender, zerr.With(err, "template", name))
	}

	tpl, err := set.FromBytes(source)
	if err != nil {
		return "", renderError(name, offset, err)
	}

	out, err := tpl.Execute(templateContext(ns))
	if err != nil {
		return "", renderError(name, offset, err)
	}
	return out, nil
}

func newSet(root string) (*pongo2.TemplateSet, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve template root")
	}
	loader, err := pongo2.NewLocalFileSystemLoader(abs)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create template loader")
	}

	set := pongo2.NewSet("yaml-doc", loader)
	set.Options.TrimBlocks = true
	set.Options.LStripBlocks = true
	return set, nil
}

// templateContext converts ns into pongo2 variables. Keys pongo2 rejects as
// identifiers stay reachable through NamespaceKey.
func templateContext(ns *domain.Mapping) pongo2.Context {
	vars := templateMapping(ns)
	ctx := pongo2.Context{NamespaceKey: vars}
	for k, v := range vars {
		if identRe.MatchString(k) {
			ctx[k] = v
		}
	}
	return ctx
}

// Float is a YAML float as templates see it. pongo2 still treats it as a
// number, but it prints the way YAML writes it: 3.14 rather than 3.140000.
type Float float64

// String formats f as a YAML float scalar.
func (f Float) String() string {
	return domain.Float(float64(f)).Scalar()
}

// MarshalYAML keeps the float spelling in to_yaml output.
func (f Float) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: f.String()}, nil
}

func templateValue(v domain.Value) any {
	switch v.Kind() {
	case domain.KindFloat:
		f, _ := v.AsFloat()
		return Float(f)
	case domain.KindSequence:
		items := v.Items()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = templateValue(item)
		}
		return out
	case domain.KindMapping:
		return templateMapping(v.Mapping())
	default:
		return v.Interface()
	}
}

func templateMapping(m *domain.Mapping) map[string]any {
	out := make(map[string]any, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		out[k] = templateValue(v)
	}
	return out
}

// frontMatterValue converts decoded front matter, keeping mapping order.
// Merge keys are applied below the local keys.
func frontMatterValue(n *yaml.Node, active map[*yaml.Node]bool) (domain.Value, error) {
	if active[n] {
		return domain.Value{}, zerr.With(zerr.New("alias refers to an enclosing node"), "line", n.Line)
	}
	active[n] = true
	defer delete(active, n)

	switch n.Kind {
	case 0:
		return domain.Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return domain.Null(), nil
		}
		return frontMatterValue(n.Content[0], active)
	case yaml.AliasNode:
		return frontMatterValue(n.Alias, active)
	case yaml.SequenceNode:
		items := make([]domain.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := frontMatterValue(c, active)
			if err != nil {
				return domain.Value{}, err
			}
			items = append(items, v)
		}
		return domain.Sequence(items...), nil
	case yaml.MappingNode:
		base, local := domain.NewMapping(), domain.NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			v, err := frontMatterValue(n.Content[i+1], active)
			if err != nil {
				return domain.Value{}, err
			}
			if key.ShortTag() == "!!merge" {
				for _, m := range mergeMappings(v) {
					for _, k := range m.Keys() {
						if _, ok := base.Get(k); !ok {
							mv, _ := m.Get(k)
							base.Set(k, mv)
						}
					}
				}
				continue
			}
			local.Set(key.Value, v)
		}
		for _, k := range local.Keys() {
			v, _ := local.Get(k)
			base.Set(k, v)
		}
		return domain.Map(base), nil
	default:
		var x any
		if err := n.Decode(&x); err != nil {
			return domain.Value{}, zerr.With(zerr.Wrap(err, "invalid scalar"), "line", n.Line)
		}
		return domain.ValueOf(x), nil
	}
}

func mergeMappings(v domain.Value) []*domain.Mapping {
	switch v.Kind() {
	case domain.KindMapping:
		return []*domain.Mapping{v.Mapping()}
	case domain.KindSequence:
		var out []*domain.Mapping
		for _, item := range v.Items() {
			if item.Kind() == domain.KindMapping {
				out = append(out, item.Mapping())
			}
		}
		return out
	default:
		return nil
	}
}

func renderError(name string, offset int, err error) error {
	cause := err
	line, column := 0, 0

	var pErr *pongo2.Error
	if errors.As(err, &pErr) {
		if pErr.OrigError != nil {
			cause = pErr.OrigError
		}
		line, column = pErr.Line, pErr.Column
	}

	out := zerr.With(zerr.Wrap(cause, "template error"), "template", name)
	if line > 0 {
		out = zerr.With(out, "line", line+offset)
		out = zerr.With(out, "column", column)
	}
	return domain.Kind(domain.ErrRender, out)
}

func displayName(root, path string) string {
	if root == "" {
		return path
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return path
	}
	return filepath.ToSlash(rel)
}
