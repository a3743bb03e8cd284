// Package builder renders the jobs of a build plan.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"go.trai.ch/yamldoc/internal/core/domain"
	"go.trai.ch/yamldoc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options controls a build.
type Options struct {
	// Jobs bounds the number of concurrent renders. Zero means runtime.NumCPU().
	Jobs int
	// Force renders every job even when its output is up to date.
	Force bool
	// Vars are merged over every namespace.
	Vars *domain.Mapping
}

// Summary counts the outcome of a build.
type Summary struct {
	Built   int
	Skipped int
}

// Builder plans and runs renders.
type Builder struct {
	loaders  ports.LoaderFactory
	renderer ports.TemplateRenderer
	schemas  ports.SchemaValidator
	store    ports.BuildInfoStore
	hasher   ports.Hasher
	resolver ports.PatternResolver
	reporter ports.Reporter
}

// New creates a new Builder with the given dependencies.
func New(
	loaders ports.LoaderFactory,
	renderer ports.TemplateRenderer,
	schemas ports.SchemaValidator,
	store ports.BuildInfoStore,
	hasher ports.Hasher,
	resolver ports.PatternResolver,
	reporter ports.Reporter,
) *Builder {
	return &Builder{
		loaders:  loaders,
		renderer: renderer,
		schemas:  schemas,
		store:    store,
		hasher:   hasher,
		resolver: resolver,
		reporter: reporter,
	}
}

// Build renders every job of the plan. The first failing job cancels the
// remaining ones and its error is returned.
func (b *Builder) Build(ctx context.Context, root string, plan *domain.Plan, opts Options) (Summary, error) {
	jobs := plan.Jobs()
	limit := opts.Jobs
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	vars, err := canonicalVars(opts.Vars)
	if err != nil {
		return Summary{}, err
	}

	b.reporter.OnPlan(len(jobs))
	start := time.Now()

	var built, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			wasSkipped, err := b.runJob(root, job, opts, vars)
			if err != nil {
				err = zerr.With(zerr.Wrap(err, domain.ErrJobFailed.Error()), "source", job.Source)
				return zerr.With(err, "output", job.Output)
			}
			if wasSkipped {
				skipped.Add(1)
			} else {
				built.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	summary := Summary{Built: int(built.Load()), Skipped: int(skipped.Load())}
	b.reporter.OnDone(summary.Built, summary.Skipped, time.Since(start))
	return summary, err
}

// runJob renders one job. It reports whether the output was up to date.
func (b *Builder) runJob(root string, job domain.Job, opts Options, vars string) (bool, error) {
	loader := b.loaders.NewLoader(root)
	doc, err := loader.Load(filepath.Join(root, filepath.FromSlash(job.Source)))
	if err != nil {
		return false, err
	}

	stage := job.Stage
	if stage.Schema != "" {
		if err := b.schemas.Validate(b.abs(root, stage.Schema), doc.Root); err != nil {
			return false, err
		}
	}

	files := append([]string{b.abs(root, stage.Template)}, loader.Files()...)
	if stage.Schema != "" {
		files = append(files, b.abs(root, stage.Schema))
	}
	hash, err := b.hasher.ComputeInputHash(files, job.Output, vars)
	if err != nil {
		return false, err
	}

	outPath := filepath.Join(root, filepath.FromSlash(job.Output))
	if !opts.Force {
		upToDate, err := b.upToDate(root, job.Output, outPath, hash)
		if err != nil {
			return false, err
		}
		if upToDate {
			b.reporter.OnJobSkip(job.Source, job.Output)
			return true, nil
		}
	}

	b.reporter.OnJobStart(job.Source, job.Output, time.Now())
	err = b.render(root, job, doc, opts.Vars, outPath)
	b.reporter.OnJobComplete(job.Source, job.Output, time.Now(), err)
	if err != nil {
		return false, err
	}

	return false, b.store.Put(root, domain.BuildInfo{
		Output:    job.Output,
		Source:    job.Source,
		Template:  stage.Template,
		InputHash: hash,
		Timestamp: time.Now(),
	})
}

func (b *Builder) render(root string, job domain.Job, doc *domain.Document, vars *domain.Mapping, outPath string) error {
	nb := domain.NewNamespaceBuilder().
		AddDocument(doc).
		Set(domain.SourceKey, domain.String(job.Source))
	if vars != nil {
		nb.Add("--var", domain.Map(vars))
	}
	ns, err := nb.Build()
	if err != nil {
		return err
	}

	text, err := b.renderer.RenderFile(root, job.Stage.Template, ns)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), domain.DirPerm); err != nil {
		return domain.Kind(domain.ErrOutputWriteFailed, zerr.With(err, "output", job.Output))
	}
	//nolint:gosec // outputs are checked against the project root when planning
	if err := os.WriteFile(outPath, []byte(text), domain.FilePerm); err != nil {
		return domain.Kind(domain.ErrOutputWriteFailed, zerr.With(err, "output", job.Output))
	}
	return nil
}

func (b *Builder) upToDate(root, output, outPath, hash string) (bool, error) {
	info, err := b.store.Get(root, output)
	if err != nil || info == nil || info.InputHash != hash {
		return false, err
	}
	if _, err := os.Stat(outPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat output"), "output", output)
	}
	return true, nil
}

func (b *Builder) abs(root, rel string) string {
	p := filepath.FromSlash(rel)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// canonicalVars serializes the overrides with sorted keys for hashing.
func canonicalVars(vars *domain.Mapping) (string, error) {
	if vars == nil {
		return "", nil
	}
	data, err := json.Marshal(vars.Interface())
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode variables")
	}
	return string(data), nil
}
