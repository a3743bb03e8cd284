package ports

import "time"

// Reporter presents build progress.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// OnPlan is called once with the number of jobs about to run.
	OnPlan(total int)

	// OnJobStart is called when a job begins rendering.
	OnJobStart(source, output string, startTime time.Time)

	// OnJobSkip is called when a job's output is already up to date.
	OnJobSkip(source, output string)

	// OnJobComplete is called when a job finishes. err is nil on success.
	OnJobComplete(source, output string, endTime time.Time, err error)

	// OnDone is called once after every job has finished.
	OnDone(built, skipped int, elapsed time.Duration)
}
