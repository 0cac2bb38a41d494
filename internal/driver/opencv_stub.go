//go:build !opencv

package driver

import "go-image-analyzer/pkg/models"

// OpenCVDriver is never available in binaries built without the opencv tag.
type OpenCVDriver struct{}

func NewOpenCVDriver() *OpenCVDriver {
	return &OpenCVDriver{}
}

func (d *OpenCVDriver) Name() string {
	return NameOpenCV
}

func (d *OpenCVDriver) Available() bool {
	return false
}

func (d *OpenCVDriver) Supports(string) bool {
	return false
}

func (d *OpenCVDriver) Analyze(filename string) (*models.ImageInfo, error) {
	return nil, unsupported(NameOpenCV, filename, notCompiled("OpenCV", "opencv"))
}
