package assertion

import "github.com/philipp01105/sinklog/logger"

// ExitCode is the process exit status after a failed check, matching a
// SIGABRT termination.
const ExitCode = 134

// Checker runs checks against a specific Facade instead of the
// process-wide default.
type Checker struct {
	facade *logger.Facade
}

// New creates a Checker that logs through f
func New(f *logger.Facade) *Checker {
	return &Checker{facade: f}
}
