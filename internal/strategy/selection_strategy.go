package strategy

import (
	"fmt"
	"strings"

	"go-image-analyzer/internal/analyzer"
	apperrors "go-image-analyzer/internal/errors"
)

// SelectionStrategy picks the driver that analyzes a file
type SelectionStrategy interface {
	Select(drivers []analyzer.Driver, filename string) (analyzer.Driver, error)
	GetStrategyName() string
}

// FirstSupportingStrategy walks the drivers in order and picks the first
// available one that supports the file
type FirstSupportingStrategy struct{}

// NewFirstSupportingStrategy creates the automatic selection strategy
func NewFirstSupportingStrategy() SelectionStrategy {
	return &FirstSupportingStrategy{}
}

func (s *FirstSupportingStrategy) Select(drivers []analyzer.Driver, filename string) (analyzer.Driver, error) {
	available := 0
	for _, d := range drivers {
		if !d.Available() {
			continue
		}
		available++
		if d.Supports(filename) {
			return d, nil
		}
	}

	if available == 0 {
		return nil, apperrors.NewUnavailableError("no image driver is available", nil)
	}
	return nil, apperrors.NewUnsupportedFileError("File type not supported.", nil).
		WithDetails(fmt.Sprintf("none of %d available drivers can decode the file", available))
}

func (s *FirstSupportingStrategy) GetStrategyName() string {
	return "first_supporting"
}

// FixedDriverStrategy always uses the driver with the given name. Whether
// the file is supported is left to the driver's Analyze.
type FixedDriverStrategy struct {
	name string
}

// NewFixedDriverStrategy creates a strategy pinned to one driver
func NewFixedDriverStrategy(name string) SelectionStrategy {
	return &FixedDriverStrategy{name: strings.ToLower(strings.TrimSpace(name))}
}

func (s *FixedDriverStrategy) Select(drivers []analyzer.Driver, filename string) (analyzer.Driver, error) {
	for _, d := range drivers {
		if d.Name() != s.name {
			continue
		}
		if !d.Available() {
			return nil, apperrors.NewUnavailableError(fmt.Sprintf("driver %q is not available", s.name), nil)
		}
		return d, nil
	}
	return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("unknown driver %q", s.name), nil)
}

func (s *FixedDriverStrategy) GetStrategyName() string {
	return "fixed:" + s.name
}

// ForOptions returns the strategy the analysis options ask for
func ForOptions(opts analyzer.AnalysisOptions) SelectionStrategy {
	if opts.AutoSelect() {
		return NewFirstSupportingStrategy()
	}
	return NewFixedDriverStrategy(opts.Driver)
}
