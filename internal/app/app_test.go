package app_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/yamldoc/internal/adapters/cas"
	"go.trai.ch/yamldoc/internal/adapters/config"
	"go.trai.ch/yamldoc/internal/adapters/fs"
	"go.trai.ch/yamldoc/internal/adapters/jsonschema"
	"go.trai.ch/yamldoc/internal/adapters/linear"
	"go.trai.ch/yamldoc/internal/adapters/pongo"
	"go.trai.ch/yamldoc/internal/adapters/yamlref"
	"go.trai.ch/yamldoc/internal/app"
	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/yamldoc/internal/core/ports"
	"go.trai.ch/yamldoc/internal/core/ports/mocks"
	"go.trai.ch/yamldoc/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

const projectFile = `homepage:
  - template: templates/home.md.j2
    sources: data/home.yml
    outputs: docs/index.md
params:
  - name: param pages
    template: templates/param.md.j2
    sources: data/params/{name:*}.yml
    outputs: docs/params/{name}.md
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, domain.ConfigFileName, projectFile)
	writeFile(t, root, "templates/home.md.j2", "# {{ title }}\n{% for p in params %}- {{ p.name }}\n{% endfor %}")
	writeFile(t, root, "templates/param.md.j2", "# {{ name }}\n\n{{ description }}\n")
	writeFile(t, root, "data/home.yml", "title: Home\nparams: !import-all data/params/*.yml\n")
	writeFile(t, root, "data/params/a.yml", "name: a\ndescription: first\n")
	writeFile(t, root, "data/params/b.yml", "name: b\ndescription: second\n")
	return root
}

type appMocks struct {
	logger  *mocks.MockLogger
	watcher *mocks.MockWatcher
}

// newApp wires the application with real adapters, a mocked logger and a
// mocked watcher.
func newApp(t *testing.T) (*app.App, appMocks, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appMocks{
		logger:  mocks.NewMockLogger(ctrl),
		watcher: mocks.NewMockWatcher(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	walker := fs.NewWalker()
	resolver := fs.NewResolver(walker)
	loaders := yamlref.NewFactory(resolver)
	renderer := pongo.New()
	b := builder.New(
		loaders,
		renderer,
		jsonschema.New(),
		cas.NewStore(),
		fs.NewHasher(),
		resolver,
		linear.NewReporter(io.Discard),
	)

	var stdout bytes.Buffer
	a := app.New(config.NewLoader(m.logger, loaders), b, loaders, renderer, walker, m.watcher, m.logger).
		WithStdout(&stdout).
		WithDebounce(50 * time.Millisecond)
	return a, m, &stdout
}

func TestApp_List(t *testing.T) {
	a, _, stdout := newApp(t)
	root := newProject(t)

	require.NoError(t, a.List(context.Background(), app.ListOptions{ProjectPath: root}))

	g := goldie.New(t)
	g.Assert(t, "ls", stdout.Bytes())
}

func TestApp_List_Select(t *testing.T) {
	a, _, stdout := newApp(t)
	root := newProject(t)

	require.NoError(t, a.List(context.Background(), app.ListOptions{ProjectPath: root, Select: []string{"homepage"}}))
	assert.Equal(t, "Using template: templates/home.md.j2\n\tRender data/home.yml -> docs/index.md\n", stdout.String())

	err := a.List(context.Background(), app.ListOptions{ProjectPath: root, Select: []string{"missing"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stage group")
}

func TestApp_List_MissingConfig(t *testing.T) {
	a, _, _ := newApp(t)

	err := a.List(context.Background(), app.ListOptions{ProjectPath: t.TempDir()})
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestApp_Build(t *testing.T) {
	a, _, _ := newApp(t)
	root := newProject(t)

	err := a.Build(context.Background(), app.BuildOptions{ProjectPath: root, Jobs: 2})
	require.NoError(t, err)

	assert.Equal(t, "# Home\n- a\n- b\n", readFile(t, root, "docs/index.md"))
	assert.Equal(t, "# a\n\nfirst\n", readFile(t, root, "docs/params/a.md"))
	assert.Equal(t, "# b\n\nsecond\n", readFile(t, root, "docs/params/b.md"))
	assert.DirExists(t, filepath.Join(root, domain.StateDirName, "store"))
}

func TestApp_Build_Vars(t *testing.T) {
	a, _, _ := newApp(t)
	root := newProject(t)

	err := a.Build(context.Background(), app.BuildOptions{
		ProjectPath: root,
		Select:      []string{"params"},
		Vars:        []string{"description=overridden"},
	})
	require.NoError(t, err)
	assert.Equal(t, "# a\n\noverridden\n", readFile(t, root, "docs/params/a.md"))
	assert.NoFileExists(t, filepath.Join(root, "docs", "index.md"))

	err = a.Build(context.Background(), app.BuildOptions{ProjectPath: root, Vars: []string{"novalue"}})
	require.ErrorIs(t, err, domain.ErrInvalidVariable)
}

func TestApp_Render(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "page.yml", "title: Page\nmeta:\n  count: 1\n")
	writeFile(t, root, "tpl/page.md.j2", "---\nfooter: default footer\n---\n# {{ title }}\n{{ footer }}\n")
	writeFile(t, root, "tpl/base.j2", "base {{ title }}")
	writeFile(t, root, "docs/a.yml", "title: A\nonly_a: true\n")
	writeFile(t, root, "docs/nested/b.yaml", "title: B\n")
	writeFile(t, root, "docs/readme.md", "title: ignored\n")

	tests := []struct {
		name string
		opts app.RenderOptions
		want string
	}{
		{
			name: "file with template",
			opts: app.RenderOptions{Source: filepath.Join(root, "page.yml"), Template: filepath.Join(root, "tpl/page.md.j2")},
			want: "# Page\ndefault footer\n",
		},
		{
			name: "inline with include from project root",
			opts: app.RenderOptions{Source: filepath.Join(root, "page.yml"), Inline: `{% include "tpl/base.j2" %}!`},
			want: "base Page!",
		},
		{
			name: "variables override nested keys",
			opts: app.RenderOptions{
				Source: filepath.Join(root, "page.yml"),
				Inline: "{{ title }} {{ meta.count + 1 }} {{ draft }}",
				Vars:   []string{"title=Override", "meta.count=3", "draft=true"},
			},
			want: "Override 4 True",
		},
		{
			name: "directory merges YAML files in lexical order",
			opts: app.RenderOptions{Source: filepath.Join(root, "docs"), Inline: "{{ title }} {{ only_a }}"},
			want: "B True",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, stdout := newApp(t)
			tt.opts.ProjectPath = root
			tt.opts.Destination = app.StdoutDestination

			require.NoError(t, a.Render(context.Background(), tt.opts))
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestApp_Render_WritesDestination(t *testing.T) {
	a, _, stdout := newApp(t)
	root := t.TempDir()
	writeFile(t, root, "page.yml", "title: Page\n")
	dest := filepath.Join(root, "out", "nested", "page.md")

	err := a.Render(context.Background(), app.RenderOptions{
		ProjectPath: root,
		Source:      filepath.Join(root, "page.yml"),
		Destination: dest,
		Inline:      "{{ title }}\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "Page\n", readFile(t, root, "out/nested/page.md"))
	assert.Empty(t, stdout.String())
}

func TestApp_Render_Errors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "page.yml", "title: Page\n")
	writeFile(t, root, "list.yml", "- a\n")
	source := filepath.Join(root, "page.yml")

	tests := []struct {
		name string
		opts app.RenderOptions
		want error
	}{
		{
			name: "no template",
			opts: app.RenderOptions{Source: source},
			want: domain.ErrMissingTemplate,
		},
		{
			name: "invalid variable",
			opts: app.RenderOptions{Source: source, Inline: "x", Vars: []string{".a=1"}},
			want: domain.ErrInvalidVariable,
		},
		{
			name: "missing source",
			opts: app.RenderOptions{Source: filepath.Join(root, "missing.yml"), Inline: "x"},
			want: domain.ErrInputNotFound,
		},
		{
			name: "non-mapping document",
			opts: app.RenderOptions{Source: filepath.Join(root, "list.yml"), Inline: "x"},
			want: domain.ErrNamespace,
		},
		{
			name: "missing template file",
			opts: app.RenderOptions{Source: source, Template: filepath.Join(root, "missing.j2")},
			want: domain.ErrRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newApp(t)
			tt.opts.ProjectPath = root
			tt.opts.Destination = app.StdoutDestination

			err := a.Render(context.Background(), tt.opts)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApp_Init(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Init("project").Return(true, nil)

	a := app.New(loader, nil, nil, nil, nil, nil, mocks.NewMockLogger(ctrl))
	require.NoError(t, a.Init(context.Background(), "project"))
}

func TestApp_Clean(t *testing.T) {
	a, _, _ := newApp(t)
	root := newProject(t)
	require.NoError(t, a.Build(context.Background(), app.BuildOptions{ProjectPath: root}))
	require.DirExists(t, filepath.Join(root, domain.StateDirName))

	require.NoError(t, a.Clean(context.Background(), root))
	assert.NoDirExists(t, filepath.Join(root, domain.StateDirName))
	assert.FileExists(t, filepath.Join(root, "docs", "index.md"))
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m, _ := newApp(t)
		root := newProject(t)

		events := make(chan ports.WatchEvent)
		m.watcher.EXPECT().Start(gomock.Any(), root).Return(nil)
		m.watcher.EXPECT().Events().Return(func(yield func(ports.WatchEvent) bool) {
			for ev := range events {
				if !yield(ev) {
					return
				}
			}
		})
		m.watcher.EXPECT().Stop().Return(nil)

		done := make(chan error, 1)
		go func() {
			done <- a.Watch(context.Background(), app.BuildOptions{ProjectPath: root})
		}()

		synctest.Wait()
		assert.Equal(t, "# a\n\nfirst\n", readFile(t, root, "docs/params/a.md"))

		writeFile(t, root, "data/params/a.yml", "name: a\ndescription: edited\n")
		events <- ports.WatchEvent{Path: filepath.Join(root, "data", "params", "a.yml"), Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: filepath.Join(root, "docs", "index.md"), Operation: ports.OpWrite}

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, "# a\n\nedited\n", readFile(t, root, "docs/params/a.md"))

		close(events)
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_ReloadsConfig(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m, _ := newApp(t)
		root := newProject(t)

		events := make(chan ports.WatchEvent)
		m.watcher.EXPECT().Start(gomock.Any(), root).Return(nil)
		m.watcher.EXPECT().Events().Return(func(yield func(ports.WatchEvent) bool) {
			for ev := range events {
				if !yield(ev) {
					return
				}
			}
		})
		m.watcher.EXPECT().Stop().Return(nil)

		done := make(chan error, 1)
		go func() {
			done <- a.Watch(context.Background(), app.BuildOptions{ProjectPath: root})
		}()
		synctest.Wait()

		writeFile(t, root, domain.ConfigFileName, projectFile+`extra:
  - template: templates/param.md.j2
    sources: data/params/a.yml
    outputs: docs/extra.md
`)
		events <- ports.WatchEvent{Path: filepath.Join(root, domain.ConfigFileName), Operation: ports.OpWrite}

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, "# a\n\nfirst\n", readFile(t, root, "docs/extra.md"))

		close(events)
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_LogsBuildFailure(t *testing.T) {
	a, m, _ := newApp(t)
	root := newProject(t)
	writeFile(t, root, "templates/param.md.j2", "{% if %}")

	ctx, cancel := context.WithCancel(context.Background())
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrRender)
	})
	m.watcher.EXPECT().Start(gomock.Any(), root).Return(nil)
	m.watcher.EXPECT().Events().Return(func(func(ports.WatchEvent) bool) { cancel() })
	m.watcher.EXPECT().Stop().Return(nil)

	require.NoError(t, a.Watch(ctx, app.BuildOptions{ProjectPath: root}))
}
