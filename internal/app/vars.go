package app

import (
	"strings"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ParseVars turns KEY=VALUE overrides into a mapping. Dotted keys set nested
// values and values are read as YAML scalars, so `count=3` is an integer and
// `draft=true` a boolean. Later overrides win. It returns nil without vars.
func ParseVars(vars []string) (*domain.Mapping, error) {
	if len(vars) == 0 {
		return nil, nil
	}

	out := domain.NewMapping()
	for _, v := range vars {
		key, raw, ok := strings.Cut(v, "=")
		if !ok {
			return nil, invalidVariable(v, "missing '='")
		}
		path := strings.Split(strings.TrimSpace(key), ".")
		for _, part := range path {
			if part == "" {
				return nil, invalidVariable(v, "empty key segment")
			}
		}
		setPath(out, path, scalar(raw))
	}
	return out, nil
}

func invalidVariable(v, reason string) error {
	return domain.Kind(domain.ErrInvalidVariable, zerr.With(zerr.New(reason), "variable", v))
}

// scalar parses raw as a YAML scalar. Anything else stays a string.
func scalar(raw string) domain.Value {
	if raw == "" {
		return domain.String("")
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil || len(node.Content) != 1 {
		return domain.String(raw)
	}
	n := node.Content[0]
	if n.Kind != yaml.ScalarNode {
		return domain.String(raw)
	}
	var decoded any
	if err := n.Decode(&decoded); err != nil {
		return domain.String(raw)
	}
	return domain.ValueOf(decoded)
}

func setPath(m *domain.Mapping, path []string, val domain.Value) {
	for _, key := range path[:len(path)-1] {
		next, ok := m.Get(key)
		if !ok || next.Kind() != domain.KindMapping {
			child := domain.NewMapping()
			m.Set(key, domain.Map(child))
			m = child
			continue
		}
		m = next.Mapping()
	}
	m.Set(path[len(path)-1], val)
}
