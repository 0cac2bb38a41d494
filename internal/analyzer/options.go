package analyzer

import "time"

// AnalysisOptions tunes how the service picks a driver and runs analyses
type AnalysisOptions struct {
	// Driver forces a driver by name. Empty means the first available
	// driver that supports the file is used.
	Driver string

	// ValidateResult checks every record before it is returned
	ValidateResult bool

	// Timeout bounds one driver run; zero means only the context applies
	Timeout time.Duration

	// Batch options
	UseWorkerPool bool
	MaxWorkers    int
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		Driver:         "",
		ValidateResult: true,
		UseWorkerPool:  true,
		MaxWorkers:     0, // Use default CPU count
	}
}

// SequentialOptions returns options that analyze batches one source at a time
func SequentialOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.UseWorkerPool = false
	return opts
}

// WithDriver pins the analysis to one driver
func (opts AnalysisOptions) WithDriver(name string) AnalysisOptions {
	opts.Driver = name
	return opts
}

// WithWorkers sets the batch worker count; zero or less means one per CPU
func (opts AnalysisOptions) WithWorkers(n int) AnalysisOptions {
	opts.UseWorkerPool = true
	opts.MaxWorkers = n
	return opts
}

// WithTimeout bounds every driver run, batch items included
func (opts AnalysisOptions) WithTimeout(d time.Duration) AnalysisOptions {
	opts.Timeout = d
	return opts
}

// WithoutValidation skips result validation
func (opts AnalysisOptions) WithoutValidation() AnalysisOptions {
	opts.ValidateResult = false
	return opts
}

// AutoSelect reports whether the driver is chosen per file
func (opts AnalysisOptions) AutoSelect() bool {
	return opts.Driver == ""
}
