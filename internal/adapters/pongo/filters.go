package pongo

import (
	"bytes"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

func init() {
	mustRegister("markdown", filterMarkdown)
	mustRegister("to_yaml", filterToYAML)
	mustRegister("items", filterItems)
}

func mustRegister(name string, fn pongo2.FilterFunction) {
	if err := pongo2.RegisterFilter(name, fn); err != nil {
		panic(err)
	}
}

// filterMarkdown converts Markdown text into HTML.
func filterMarkdown(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(in.String()), &buf); err != nil {
		return nil, &pongo2.Error{Sender: "filter:markdown", OrigError: err}
	}
	return pongo2.AsSafeValue(buf.String()), nil
}

// filterToYAML serializes a value as a YAML block. The optional parameter is
// the indentation width.
func filterToYAML(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	indent := 2
	if param != nil && param.IsInteger() && param.Integer() > 0 {
		indent = param.Integer()
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(in.Interface()); err != nil {
		return nil, &pongo2.Error{Sender: "filter:to_yaml", OrigError: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &pongo2.Error{Sender: "filter:to_yaml", OrigError: err}
	}
	return pongo2.AsValue(strings.TrimSuffix(buf.String(), "\n")), nil
}

// filterItems turns a mapping into a list of {key, value} entries sorted by key.
func filterItems(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue([]map[string]any{}), nil
	}

	var entries []map[string]any
	switch m := in.Interface().(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(m)) {
			entries = append(entries, map[string]any{"key": k, "value": m[k]})
		}
	default:
		rv := reflect.ValueOf(m)
		if rv.Kind() != reflect.Map {
			return nil, &pongo2.Error{
				Sender:    "filter:items",
				OrigError: fmt.Errorf("items expects a mapping, got %T", m),
			}
		}
		byKey := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			byKey[fmt.Sprint(k.Interface())] = rv.MapIndex(k).Interface()
		}
		for _, k := range slices.Sorted(maps.Keys(byKey)) {
			entries = append(entries, map[string]any{"key": k, "value": byKey[k]})
		}
	}
	return pongo2.AsValue(entries), nil
}
