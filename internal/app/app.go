// Package app implements the application layer for yaml-doc.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/yamldoc/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/yamldoc/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/yamldoc/internal/core/ports"
	"go.trai.ch/yamldoc/internal/engine/builder"
	"go.trai.ch/zerr"
)

// StdoutDestination writes the rendered document to standard output.
const StdoutDestination = "-"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      *builder.Builder
	loaders      ports.LoaderFactory
	renderer     ports.TemplateRenderer
	walker       *fs.Walker
	watcher      ports.Watcher
	logger       ports.Logger
	stdout       io.Writer
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	b *builder.Builder,
	loaders ports.LoaderFactory,
	renderer ports.TemplateRenderer,
	walker *fs.Walker,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      b,
		loaders:      loaders,
		renderer:     renderer,
		walker:       walker,
		watcher:      w,
		logger:       log,
		stdout:       os.Stdout,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithStdout sets the writer used by ls and by render to "-".
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithDebounce sets the window watch waits for changes to settle.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// Init creates an empty project file in projectPath.
func (a *App) Init(_ context.Context, projectPath string) error {
	_, err := a.configLoader.Init(projectPath)
	return err
}

// ListOptions configuration for the List method.
type ListOptions struct {
	ProjectPath string
	Select      []string
}

// List prints the build plan: the template of every stage followed by its jobs.
func (a *App) List(_ context.Context, opts ListOptions) error {
	project, err := a.configLoader.Load(opts.ProjectPath)
	if err != nil {
		return err
	}
	plan, err := a.plan(project, opts.Select)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for i, sp := range plan.Stages {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Using template: %s\n", sp.Stage.Template)
		for _, job := range sp.Jobs {
			fmt.Fprintf(&sb, "\tRender %s -> %s\n", job.Source, job.Output)
		}
	}
	_, err = io.WriteString(a.stdout, sb.String())
	return err
}

// BuildOptions configuration for the Build and Watch methods.
type BuildOptions struct {
	ProjectPath string
	Select      []string
	Force       bool
	Jobs        int
	Vars        []string
}

// Build renders every job of the selected stage groups.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	vars, err := ParseVars(opts.Vars)
	if err != nil {
		return err
	}
	project, err := a.configLoader.Load(opts.ProjectPath)
	if err != nil {
		return err
	}
	_, err = a.build(ctx, project, opts, vars)
	return err
}

// build plans and runs the selected stages. It returns the plan so callers
// can tell generated files apart from inputs.
func (a *App) build(ctx context.Context, project *domain.Project, opts BuildOptions, vars *domain.Mapping) (*domain.Plan, error) {
	plan, err := a.plan(project, opts.Select)
	if err != nil {
		return nil, err
	}
	_, err = a.builder.Build(ctx, project.Root, plan, builder.Options{
		Jobs:  opts.Jobs,
		Force: opts.Force,
		Vars:  vars,
	})
	return plan, err
}

func (a *App) plan(project *domain.Project, sel []string) (*domain.Plan, error) {
	stages, err := project.Select(sel)
	if err != nil {
		return nil, err
	}
	return a.builder.Plan(project, stages)
}

// RenderOptions configuration for the Render method.
type RenderOptions struct {
	// ProjectPath is the directory references, includes and extends resolve from.
	ProjectPath string
	Source      string
	Destination string
	Template    string
	Inline      string
	Vars        []string
}

// Render renders one source file or directory through a template without a
// project file.
func (a *App) Render(_ context.Context, opts RenderOptions) error {
	if opts.Template == "" && opts.Inline == "" {
		return domain.ErrMissingTemplate
	}
	vars, err := ParseVars(opts.Vars)
	if err != nil {
		return err
	}

	root := opts.ProjectPath
	if root == "" {
		root = "."
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve project path")
	}

	sources, err := a.sourceFiles(opts.Source)
	if err != nil {
		return err
	}

	loader := a.loaders.NewLoader(root)
	nb := domain.NewNamespaceBuilder()
	for _, src := range sources {
		doc, err := loader.Load(src)
		if err != nil {
			return err
		}
		nb.AddDocument(doc)
	}
	nb.Set(domain.SourceKey, domain.String(filepath.ToSlash(opts.Source)))
	if vars != nil {
		nb.Add("--var", domain.Map(vars))
	}
	ns, err := nb.Build()
	if err != nil {
		return err
	}

	var text string
	if opts.Template != "" {
		tpl, absErr := filepath.Abs(opts.Template)
		if absErr != nil {
			return zerr.Wrap(absErr, "failed to resolve template path")
		}
		text, err = a.renderer.RenderFile(root, tpl, ns)
	} else {
		text, err = a.renderer.RenderString(root, opts.Inline, ns)
	}
	if err != nil {
		return err
	}

	return a.write(opts.Destination, text)
}

// sourceFiles returns source itself, or every YAML file below the directory
// source in lexical order.
func (a *App) sourceFiles(source string) ([]string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, domain.Kind(domain.ErrInputNotFound, zerr.With(err, "source", source))
	}
	if !info.IsDir() {
		return []string{source}, nil
	}

	var files []string
	for path, err := range a.walker.WalkFiles(source, nil) {
		if err != nil {
			return nil, err
		}
		switch filepath.Ext(path) {
		case ".yml", ".yaml":
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return files, nil
}

func (a *App) write(destination, text string) error {
	if destination == StdoutDestination {
		_, err := io.WriteString(a.stdout, text)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destination), domain.DirPerm); err != nil {
		return domain.Kind(domain.ErrOutputWriteFailed, zerr.With(err, "output", destination))
	}
	//nolint:gosec // the destination is given on the command line
	if err := os.WriteFile(destination, []byte(text), domain.FilePerm); err != nil {
		return domain.Kind(domain.ErrOutputWriteFailed, zerr.With(err, "output", destination))
	}
	return nil
}

// Watch builds the selected stages, then rebuilds them whenever an input
// changes until ctx is cancelled. Build failures are logged and do not stop
// the watch.
func (a *App) Watch(ctx context.Context, opts BuildOptions) error {
	vars, err := ParseVars(opts.Vars)
	if err != nil {
		return err
	}
	project, err := a.configLoader.Load(opts.ProjectPath)
	if err != nil {
		return err
	}

	state := &watchState{project: project}
	plan, err := a.build(ctx, project, opts, vars)
	state.setPlan(plan)
	if err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, project.Root); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()
	a.logger.Info("watching " + project.Root + " for changes")

	deb := watcher.NewDebouncer(a.debounce, func(paths []string) {
		if ctx.Err() != nil {
			return
		}
		a.logger.Info(fmt.Sprintf("detected %d changed file(s), rebuilding", len(paths)))
		a.rebuild(ctx, state, paths, opts, vars)
	})

	for event := range a.watcher.Events() {
		if state.generated(event.Path) {
			continue
		}
		deb.Add(event.Path)
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

func (a *App) rebuild(ctx context.Context, state *watchState, paths []string, opts BuildOptions, vars *domain.Mapping) {
	project := state.current()
	if slices.Contains(paths, project.ConfigPath) {
		reloaded, err := a.configLoader.Load(opts.ProjectPath)
		if err != nil {
			a.logger.Error(err)
			return
		}
		project = reloaded
		state.setProject(project)
	}

	plan, err := a.build(ctx, project, opts, vars)
	state.setPlan(plan)
	if err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
}

// watchState tracks the project and the outputs of the last plan so events
// caused by writing outputs do not trigger another build.
type watchState struct {
	mu      sync.Mutex
	project *domain.Project
	outputs map[string]struct{}
}

func (s *watchState) current() *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project
}

func (s *watchState) setProject(p *domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = p
}

func (s *watchState) setPlan(plan *domain.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plan == nil {
		return
	}
	s.outputs = make(map[string]struct{})
	for _, job := range plan.Jobs() {
		s.outputs[filepath.Join(s.project.Root, filepath.FromSlash(job.Output))] = struct{}{}
	}
}

func (s *watchState) generated(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.outputs[path]
	return ok
}

// Clean removes the build info store of the project so the next build
// renders every output.
func (a *App) Clean(_ context.Context, projectPath string) error {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve project path")
	}
	state := filepath.Join(root, domain.StateDirName)

	a.logger.Info("removing build info store...")
	if err := os.RemoveAll(state); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove build info store"), "path", state)
	}
	a.logger.Info("removed build info store")
	return nil
}
