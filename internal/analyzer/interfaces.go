package analyzer

import "go-image-analyzer/pkg/models"

// Driver extracts image metadata through one backend library and maps the
// backend's enumerations into the shared vocabulary of models.ImageInfo.
type Driver interface {
	// Name identifies the driver; it is copied into ImageInfo.Analyzer.
	Name() string

	// Available reports whether the backend library initialized in this process.
	// The answer does not change during the process lifetime.
	Available() bool

	// Supports checks whether the backend can decode the file. Backend errors
	// are swallowed and reported as false.
	Supports(filename string) bool

	// Analyze returns a fully populated record, or an unsupported-file error
	// when the backend cannot decode the file.
	Analyze(filename string) (*models.ImageInfo, error)
}

// Analyzer is the narrow surface callers depend on instead of a full Driver.
type Analyzer interface {
	Supports(filename string) bool
	Analyze(filename string) (*models.ImageInfo, error)
}
