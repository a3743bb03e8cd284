package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Project is a loaded .yaml-doc.yml.
type Project struct {
	// Root is the absolute project directory.
	Root string
	// ConfigPath is the absolute path of the project file.
	ConfigPath string
	// Groups lists the stage group names in declaration order.
	Groups []string
	// Stages lists every stage in declaration order.
	Stages []Stage
}

// Stage renders one template for each of its sources.
// Paths are relative to the project root.
type Stage struct {
	Group    string
	Name     string
	Template string
	Sources  []string
	Outputs  []string
	Schema   string
}

// Label returns the stage name, falling back to its group.
func (s Stage) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Group
}

// Job is a single render: one source document into one output file.
type Job struct {
	Stage  *Stage
	Source string
	Output string
	Params map[string]string
}

// Plan is the ordered list of jobs per stage.
type Plan struct {
	Stages []StagePlan
}

// StagePlan holds the jobs expanded from one stage.
type StagePlan struct {
	Stage *Stage
	Jobs  []Job
}

// Jobs flattens the plan.
func (p *Plan) Jobs() []Job {
	var out []Job
	for _, sp := range p.Stages {
		out = append(out, sp.Jobs...)
	}
	return out
}

// CheckOutputs fails when two jobs share an output path.
func (p *Plan) CheckOutputs() error {
	owners := make(map[string]string)
	for _, job := range p.Jobs() {
		if prev, ok := owners[job.Output]; ok {
			err := zerr.With(ErrDuplicateOutput, "output", job.Output)
			err = zerr.With(err, "first", prev)
			return zerr.With(err, "second", job.Source)
		}
		owners[job.Output] = job.Source
	}
	return nil
}

// Selector picks stage groups. An empty selector picks every group.
type Selector []string

// Matches reports whether the group is selected.
func (s Selector) Matches(group string) bool {
	return len(s) == 0 || slices.Contains(s, group)
}

// Select returns the selected stages of the project in declaration order.
func (p *Project) Select(sel Selector) ([]Stage, error) {
	for _, g := range sel {
		if !slices.Contains(p.Groups, g) {
			return nil, zerr.With(ErrUnknownGroup, "group", g)
		}
	}
	var out []Stage
	for _, st := range p.Stages {
		if sel.Matches(st.Group) {
			out = append(out, st)
		}
	}
	return out, nil
}
