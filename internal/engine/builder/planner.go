package builder

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/zerr"
)

// Plan expands the stages of the project into jobs. Pattern sources are
// matched against the project tree; plain sources must exist.
func (b *Builder) Plan(project *domain.Project, stages []domain.Stage) (*domain.Plan, error) {
	plan := &domain.Plan{}
	for i := range stages {
		stage := &stages[i]
		sp := domain.StagePlan{Stage: stage}

		for j, src := range stage.Sources {
			jobs, err := b.expand(project.Root, stage, src, stage.Outputs[j])
			if err != nil {
				err = zerr.With(err, "group", stage.Group)
				return nil, zerr.With(err, "stage", stage.Label())
			}
			sp.Jobs = append(sp.Jobs, jobs...)
		}
		plan.Stages = append(plan.Stages, sp)
	}

	if err := plan.CheckOutputs(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (b *Builder) expand(root string, stage *domain.Stage, src, out string) ([]domain.Job, error) {
	if !domain.IsPattern(src) {
		source := path.Clean(filepath.ToSlash(src))
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(source))); err != nil {
			return nil, domain.Kind(domain.ErrInputNotFound, zerr.With(err, "source", source))
		}
		output, err := checkOutput(root, out)
		if err != nil {
			return nil, err
		}
		return []domain.Job{{Stage: stage, Source: source, Output: output}}, nil
	}

	tpl, err := domain.ParsePathTemplate(out)
	if err != nil {
		return nil, err
	}
	matches, err := b.resolver.Resolve(root, src)
	if err != nil {
		return nil, err
	}

	jobs := make([]domain.Job, 0, len(matches))
	for _, m := range matches {
		expanded, err := tpl.Expand(m.Params)
		if err != nil {
			return nil, zerr.With(err, "source", m.Path)
		}
		output, err := checkOutput(root, expanded)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, domain.Job{Stage: stage, Source: m.Path, Output: output, Params: m.Params})
	}
	return jobs, nil
}

// checkOutput cleans an output path and rejects paths escaping the project root.
func checkOutput(root, out string) (string, error) {
	p := filepath.FromSlash(out)
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		cause := zerr.New("path escapes the project directory")
		return "", domain.Kind(domain.ErrOutputPathOutsideRoot, zerr.With(cause, "output", out))
	}
	return filepath.ToSlash(rel), nil
}
