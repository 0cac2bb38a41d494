package analyzer

import "go-image-analyzer/pkg/models"

// ImageAnalyzer forwards every call to the driver it was built with.
type ImageAnalyzer struct {
	driver Driver
}

// NewImageAnalyzer creates an analyzer bound to driver for its whole lifetime.
func NewImageAnalyzer(driver Driver) *ImageAnalyzer {
	return &ImageAnalyzer{driver: driver}
}

// Supports reports whether the held driver can decode filename.
func (a *ImageAnalyzer) Supports(filename string) bool {
	return a.driver.Supports(filename)
}

// Analyze extracts the metadata of filename with the held driver.
func (a *ImageAnalyzer) Analyze(filename string) (*models.ImageInfo, error) {
	return a.driver.Analyze(filename)
}

// DriverName returns the name of the held driver.
func (a *ImageAnalyzer) DriverName() string {
	return a.driver.Name()
}
