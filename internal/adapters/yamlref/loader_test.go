package yamlref_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yamldoc/internal/adapters/fs"
	"go.trai.ch/yamldoc/internal/adapters/yamlref"
	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/yamldoc/internal/core/ports"
	"go.trai.ch/yamldoc/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(root string) *yamlref.Loader {
	return yamlref.NewLoader(root, yamlref.NewCache(root), fs.NewResolver(fs.NewWalker()))
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr), "expected a zerr.Error in %v", err)
	return zErr.Metadata()
}

func TestLoader_Scalars(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, "doc.yml", `
name: yaml-doc
count: 3
ratio: 0.5
enabled: true
nothing: ~
date: 2024-01-02
quoted: "42"
list: [a, 1]
`)

	doc, err := newLoader(root).Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":    "yaml-doc",
		"count":   int64(3),
		"ratio":   0.5,
		"enabled": true,
		"nothing": nil,
		"date":    "2024-01-02",
		"quoted":  "42",
		"list":    []any{"a", int64(1)},
	}, doc.Root.Interface())
	assert.Equal(t, []string{"name", "count", "ratio", "enabled", "nothing", "date", "quoted", "list"}, doc.Root.Mapping().Keys())
}

func TestLoader_EmptyDocument(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, "empty.yml", "")

	doc, err := newLoader(root).Load(path)
	require.NoError(t, err)
	assert.True(t, doc.Root.IsNull())
}

func TestLoader_Import(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "shared/author.yml", "name: Ada\nemail: ada@example.com\n")
	path := createFile(t, root, "pages/home.yml", "title: Home\nauthor: !import shared/author.yml\n")

	doc, err := newLoader(root).Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"title":  "Home",
		"author": map[string]any{"name": "Ada", "email": "ada@example.com"},
	}, doc.Root.Interface())
}

func TestLoader_Import_RelativeToDocumentWithoutBase(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "pages/author.yml", "name: Ada\n")
	path := createFile(t, root, "pages/home.yml", "author: !import author.yml\n")

	loader := yamlref.NewLoader("", yamlref.NewCache(""), fs.NewResolver(fs.NewWalker()))
	doc, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"author": map[string]any{"name": "Ada"}}, doc.Root.Interface())
}

func TestLoader_Memoization(t *testing.T) {
	root := t.TempDir()
	shared := createFile(t, root, "shared.yml", "value: 1\n")
	a := createFile(t, root, "a.yml", "x: !import shared.yml\n")
	b := createFile(t, root, "b.yml", "y: !import shared.yml\nz: !import shared.yml\n")

	cache := yamlref.NewCache(root)
	loader := yamlref.NewLoader(root, cache, fs.NewResolver(fs.NewWalker()))

	_, err := loader.Load(a)
	require.NoError(t, err)
	first, ok := cache.Get(shared)
	require.True(t, ok)

	_, err = loader.Load(b)
	require.NoError(t, err)
	second, err := loader.Load(shared)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 3, cache.Len())
	assert.Equal(t, []string{a, b, shared}, loader.Files())

	again, err := loader.Load(a)
	require.NoError(t, err)
	cachedA, _ := cache.Get(a)
	assert.Same(t, cachedA, again)
}

func TestLoader_ReferenceCycle(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		entry     string
		wantChain string
	}{
		{
			name: "two documents",
			files: map[string]string{
				"a.yml": "b: !import b.yml\n",
				"b.yml": "a: !import a.yml\n",
			},
			entry:     "a.yml",
			wantChain: "a.yml -> b.yml -> a.yml",
		},
		{
			name: "self reference",
			files: map[string]string{
				"self.yml": "me: !import self.yml\n",
			},
			entry:     "self.yml",
			wantChain: "self.yml -> self.yml",
		},
		{
			name: "three documents through anchor import",
			files: map[string]string{
				"a.yml": "b: !import b.yml\n",
				"b.yml": "c: !import.anchor c.yml &part\n",
				"c.yml": "part: &part\n  a: !import a.yml\n",
			},
			entry:     "a.yml",
			wantChain: "a.yml -> b.yml -> c.yml -> a.yml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for rel, content := range tt.files {
				createFile(t, root, rel, content)
			}

			_, err := newLoader(root).Load(filepath.Join(root, tt.entry))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrReferenceCycle)
			assert.Equal(t, tt.wantChain, metadata(t, err)["chain"])
		})
	}
}

func TestLoader_ParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		entry    string
		wantFile string
		wantLine bool
		contains string
	}{
		{
			name:     "malformed YAML",
			files:    map[string]string{"bad.yml": "ok: 1\nlist: [1, 2\n"},
			entry:    "bad.yml",
			wantFile: "bad.yml",
			wantLine: true,
			contains: "invalid YAML",
		},
		{
			name:     "missing file",
			entry:    "missing.yml",
			wantFile: "missing.yml",
			contains: "failed to read file",
		},
		{
			name:     "missing reference target",
			files:    map[string]string{"home.yml": "title: x\nauthor: !import nobody.yml\n"},
			entry:    "home.yml",
			wantFile: "home.yml",
			wantLine: true,
			contains: "referenced file not found",
		},
		{
			name:     "error inside referenced file",
			files:    map[string]string{"home.yml": "a: !import inner.yml\n", "inner.yml": "a: 1\nx: [\n"},
			entry:    "home.yml",
			wantFile: "inner.yml",
			wantLine: true,
			contains: "invalid YAML",
		},
		{
			name:     "unknown tag",
			files:    map[string]string{"home.yml": "a: !import.everything x.yml\n"},
			entry:    "home.yml",
			wantFile: "home.yml",
			wantLine: true,
			contains: "unknown reference tag",
		},
		{
			name: "unknown anchor",
			files: map[string]string{
				"home.yml": "a: !import.anchor lib.yml &nope\n",
				"lib.yml":  "x: &yes 1\n",
			},
			entry:    "home.yml",
			wantFile: "home.yml",
			wantLine: true,
			contains: "anchor not found",
		},
		{
			name:     "alias to enclosing mapping",
			files:    map[string]string{"home.yml": "a: &x\n  b: *x\n"},
			entry:    "home.yml",
			wantFile: "home.yml",
			wantLine: true,
			contains: "alias refers to an enclosing node",
		},
		{
			name:     "alias to enclosing sequence",
			files:    map[string]string{"home.yml": "list: &l\n  - 1\n  - [*l]\n"},
			entry:    "home.yml",
			wantFile: "home.yml",
			wantLine: true,
			contains: "alias refers to an enclosing node",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for rel, content := range tt.files {
				createFile(t, root, rel, content)
			}

			_, err := newLoader(root).Load(filepath.Join(root, tt.entry))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrParse)
			assert.Contains(t, err.Error(), tt.contains)

			meta := metadata(t, err)
			assert.Equal(t, tt.wantFile, meta["file"])
			if tt.wantLine {
				line, ok := meta["line"].(int)
				require.True(t, ok, "line metadata missing: %v", meta)
				assert.Positive(t, line)
			}
		})
	}
}

func TestLoader_ReferenceLine(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, "home.yml", "title: x\nauthor: !import nobody.yml\n")

	_, err := newLoader(root).Load(path)
	require.Error(t, err)
	assert.Equal(t, 2, metadata(t, err)["line"])
}

func TestLoader_AliasCycle(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, "home.yml", "ok: &shared {x: 1}\nreuse: *shared\na: &self\n  b: *self\n")

	_, err := newLoader(root).Load(path)
	require.Error(t, err)
	meta := metadata(t, err)
	assert.Equal(t, "self", meta["anchor"])
	assert.Equal(t, 4, meta["line"])
}

func TestLoader_ImportAnchor(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "lib.yml", `
defaults: &defaults
  lang: en
  theme: dark
other: 1
`)
	path := createFile(t, root, "site.yml", "settings: !import.anchor lib.yml &defaults\n")

	doc, err := newLoader(root).Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"settings": map[string]any{"lang": "en", "theme": "dark"},
	}, doc.Root.Interface())
}

func TestLoader_MergeKey(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "base.yml", "lang: en\ntheme: dark\n")
	path := createFile(t, root, "site.yml", `
local: &local
  footer: true
site:
  <<: [!import base.yml, *local]
  theme: light
`)

	doc, err := newLoader(root).Load(path)
	require.NoError(t, err)

	site, ok := doc.Root.Mapping().Get("site")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"lang": "en", "theme": "light", "footer": true}, site.Interface())
}

func TestLoader_ImportAll(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "params/b.yml", "title: B\n")
	createFile(t, root, "params/a.yml", "title: A\n")
	path := createFile(t, root, "index.yml", `
all: !import-all params/*.yml
named: !import-all-parameterized params/{name:*}.yml
`)

	doc, err := newLoader(root).Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"all": []any{
			map[string]any{"title": "A"},
			map[string]any{"title": "B"},
		},
		"named": []any{
			map[string]any{"name": "a", "title": "A"},
			map[string]any{"name": "b", "title": "B"},
		},
	}, doc.Root.Interface())
}

func TestLoader_ImportAll_UsesPatternResolver(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "defs/x.yml", "v: 1\n")
	path := createFile(t, root, "index.yml", "items: !import-all-parameterized defs/{id:*}.yml\n")

	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockPatternResolver(ctrl)
	resolver.EXPECT().
		Resolve(root, "defs/{id:*}.yml").
		Return([]ports.Match{{Path: "defs/x.yml", Params: map[string]string{"id": "x"}}}, nil)

	loader := yamlref.NewLoader(root, yamlref.NewCache(root), resolver)
	doc, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"items": []any{map[string]any{"id": "x", "v": int64(1)}},
	}, doc.Root.Interface())
}

func TestLoader_ImportAll_ResolverFailure(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, "index.yml", "items: !import-all defs/*.yml\n")

	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockPatternResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, errors.New("walk failed"))

	_, err := yamlref.NewLoader(root, yamlref.NewCache(root), resolver).Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), "walk failed")
}

func TestFactory_NewLoader_FreshCache(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, "a.yml", "a: 1\n")

	factory := yamlref.NewFactory(fs.NewResolver(fs.NewWalker()))
	first, err := factory.NewLoader(root).Load(path)
	require.NoError(t, err)
	second, err := factory.NewLoader(root).Load(path)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.True(t, first.Root.Equal(second.Root))
}
