//go:build !imagick

package driver

import "go-image-analyzer/pkg/models"

// ImagickDriver is never available in binaries built without the imagick tag.
type ImagickDriver struct{}

func NewImagickDriver() *ImagickDriver {
	return &ImagickDriver{}
}

func (d *ImagickDriver) Name() string {
	return NameImagick
}

func (d *ImagickDriver) Available() bool {
	return false
}

func (d *ImagickDriver) Supports(string) bool {
	return false
}

func (d *ImagickDriver) Analyze(filename string) (*models.ImageInfo, error) {
	return nil, unsupported(NameImagick, filename, notCompiled("ImageMagick", "imagick"))
}
