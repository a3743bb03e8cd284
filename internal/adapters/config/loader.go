// Package config loads the .yaml-doc.yml project file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/yamldoc/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader.
//
// The project file is read through a document loader, so reference tags such
// as !import work inside it.
type Loader struct {
	Logger  ports.Logger
	Loaders ports.LoaderFactory
	FS      FileSystem
}

// NewLoader creates a new Loader backed by the OS file system.
func NewLoader(logger ports.Logger, loaders ports.LoaderFactory) *Loader {
	return &Loader{
		Logger:  logger,
		Loaders: loaders,
		FS:      NewOSFS(),
	}
}

// Load reads the project file in projectPath and returns the validated project.
func (l *Loader) Load(projectPath string) (*domain.Project, error) {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project path")
	}
	configPath := filepath.Join(root, domain.ConfigFileName)
	if _, err := l.FS.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.Kind(domain.ErrConfigNotFound, zerr.With(err, "project_path", root))
		}
		return nil, domain.Kind(domain.ErrConfigReadFailed, err)
	}

	doc, err := l.Loaders.NewLoader(root).Load(configPath)
	if err != nil {
		return nil, domain.Kind(domain.ErrConfigReadFailed, err)
	}

	project := &domain.Project{Root: root, ConfigPath: configPath}
	switch doc.Root.Kind() {
	case domain.KindNull:
		return project, nil
	case domain.KindMapping:
	default:
		return nil, invalid(zerr.With(zerr.New("root must be a mapping of stage groups"), "kind", doc.Root.Kind().String()))
	}

	groups := doc.Root.Mapping()
	for _, group := range groups.Keys() {
		value, _ := groups.Get(group)
		stages, err := l.loadGroup(root, group, value)
		if err != nil {
			return nil, err
		}
		project.Groups = append(project.Groups, group)
		project.Stages = append(project.Stages, stages...)
	}
	return project, nil
}

// Init creates an empty project file in projectPath unless one exists.
// It reports whether a file was created.
func (l *Loader) Init(projectPath string) (bool, error) {
	configPath := filepath.Join(projectPath, domain.ConfigFileName)
	if _, err := l.FS.Stat(configPath); err == nil {
		l.Logger.Info("configuration file already exists at " + configPath)
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, domain.Kind(domain.ErrConfigReadFailed, err)
	}

	if err := l.FS.WriteFile(configPath, nil); err != nil {
		return false, domain.Kind(domain.ErrConfigCreateFailed, zerr.With(err, "path", configPath))
	}
	l.Logger.Info("created configuration file at " + configPath)
	return true, nil
}

func (l *Loader) loadGroup(root, group string, value domain.Value) ([]domain.Stage, error) {
	switch value.Kind() {
	case domain.KindNull:
		l.Logger.Warn(fmt.Sprintf("stage group %q is empty", group))
		return nil, nil
	case domain.KindSequence:
	default:
		err := zerr.With(zerr.New("stage group must be a list of stages"), "group", group)
		return nil, invalid(zerr.With(err, "kind", value.Kind().String()))
	}

	items := value.Items()
	stages := make([]domain.Stage, 0, len(items))
	for i, item := range items {
		var dto StageDTO
		if err := toNode(item).Decode(&dto); err != nil {
			return nil, invalid(stageContext(zerr.Wrap(err, "malformed stage"), group, i, ""))
		}
		if err := dto.Validate(); err != nil {
			return nil, invalid(stageContext(zerr.Wrap(err, "invalid stage"), group, i, dto.Name))
		}
		if err := l.checkStage(root, &dto); err != nil {
			return nil, invalid(stageContext(err, group, i, dto.Name))
		}

		stages = append(stages, domain.Stage{
			Group:    group,
			Name:     dto.Name,
			Template: filepath.ToSlash(dto.Template),
			Sources:  slices.Clone(dto.Sources),
			Outputs:  slices.Clone(dto.Outputs),
			Schema:   filepath.ToSlash(dto.Schema),
		})
	}
	return stages, nil
}

// checkStage verifies the files a stage refers to and the pairing of
// patterns with path templates.
func (l *Loader) checkStage(root string, dto *StageDTO) error {
	if err := l.checkFile(root, dto.Template); err != nil {
		return zerr.With(err, "template", dto.Template)
	}
	if dto.Schema != "" {
		if err := l.checkFile(root, dto.Schema); err != nil {
			return zerr.With(err, "schema", dto.Schema)
		}
	}

	for i, src := range dto.Sources {
		out := dto.Outputs[i]
		if err := checkPair(src, out); err != nil {
			return zerr.With(zerr.With(err, "source", src), "output", out)
		}
	}
	return nil
}

func (l *Loader) checkFile(root, rel string) error {
	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, filepath.FromSlash(rel))
	}
	info, err := l.FS.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.New("file does not exist")
		}
		return zerr.Wrap(err, "failed to stat file")
	}
	if info.IsDir() {
		return zerr.New("expected a file, found a directory")
	}
	return nil
}

func checkPair(src, out string) error {
	srcPattern := domain.IsPattern(src)
	outTemplate := domain.IsPathTemplate(out)

	switch {
	case srcPattern && !outTemplate:
		return zerr.New("a source pattern needs a templated output")
	case !srcPattern && outTemplate:
		return zerr.New("a templated output needs a source pattern")
	case !srcPattern:
		return nil
	}

	pattern, err := domain.CompilePattern(src)
	if err != nil {
		return err
	}
	tpl, err := domain.ParsePathTemplate(out)
	if err != nil {
		return err
	}
	for _, field := range tpl.Fields() {
		if !slices.Contains(pattern.Fields(), field) {
			return zerr.With(domain.ErrMissingTemplateField, "field", field)
		}
	}
	return nil
}

func stageContext(err error, group string, index int, name string) error {
	err = zerr.With(err, "group", group)
	if name != "" {
		return zerr.With(err, "stage", name)
	}
	return zerr.With(err, "stage", "#"+strconv.Itoa(index+1))
}

func invalid(err error) error {
	return domain.Kind(domain.ErrInvalidConfig, err)
}

// toNode rebuilds a YAML node from a resolved value so DTOs can be decoded
// with yaml.v3, keeping mapping order.
func toNode(v domain.Value) *yaml.Node {
	switch v.Kind() {
	case domain.KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		m := v.Mapping()
		for _, k := range m.Keys() {
			val, _ := m.Get(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				toNode(val),
			)
		}
		return n
	case domain.KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	case domain.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case domain.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.Scalar()}
	case domain.KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.Scalar()}
	case domain.KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: v.Scalar()}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Scalar()}
	}
}
