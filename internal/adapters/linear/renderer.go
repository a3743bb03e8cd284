// Package linear provides a synchronous, line-oriented build reporter.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/yamldoc/internal/ui/output"
	"go.trai.ch/yamldoc/internal/ui/style"
)

// Reporter implements ports.Reporter. It prints one line per job event,
// prefixed with the job's output path.
type Reporter struct {
	w      io.Writer
	output *termenv.Output

	mu     sync.Mutex
	starts map[string]time.Time
}

// NewReporter creates a new Reporter writing to w, or stderr when w is nil.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}

	return &Reporter{
		w:      w,
		output: output.NewANSI(w),
		starts: make(map[string]time.Time),
	}
}

// OnPlan prints the number of planned jobs.
func (r *Reporter) OnPlan(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.w, "Planning to render %d document(s)\n", total)
}

// OnJobStart records the start time of a job.
func (r *Reporter) OnJobStart(source, output string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.starts[output] = startTime
	_, _ = fmt.Fprintf(r.w, "%s Rendering %s\n", r.prefix(output), source)
}

// OnJobSkip prints that a job's output is up to date.
func (r *Reporter) OnJobSkip(_, output string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol := style.Paint(r.output, style.Tilde, style.Muted)
	_, _ = fmt.Fprintf(r.w, "%s %s Up to date\n", r.prefix(output), symbol)
}

// OnJobComplete prints the outcome of a job.
func (r *Reporter) OnJobComplete(_, output string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var duration time.Duration
	if start, ok := r.starts[output]; ok {
		duration = endTime.Sub(start).Round(time.Millisecond)
		delete(r.starts, output)
	}

	if err != nil {
		symbol := style.Paint(r.output, style.Cross, style.Failure)
		_, _ = fmt.Fprintf(r.w, "%s %s Failed after %v\n", r.prefix(output), symbol, duration)
		return
	}
	symbol := style.Paint(r.output, style.Check, style.Success)
	_, _ = fmt.Fprintf(r.w, "%s %s Rendered in %v\n", r.prefix(output), symbol, duration)
}

// OnDone prints the build summary.
func (r *Reporter) OnDone(built, skipped int, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.w, "Rendered %d, skipped %d in %v\n", built, skipped, elapsed.Round(time.Millisecond))
}

func (r *Reporter) prefix(output string) string {
	return style.Faint(r.output, "["+output+"]")
}
