//go:build !vips

package driver

import "go-image-analyzer/pkg/models"

// VipsDriver is never available in binaries built without the vips tag.
type VipsDriver struct{}

func NewVipsDriver() *VipsDriver {
	return &VipsDriver{}
}

func (d *VipsDriver) Name() string {
	return NameVips
}

func (d *VipsDriver) Available() bool {
	return false
}

func (d *VipsDriver) Supports(string) bool {
	return false
}

func (d *VipsDriver) Analyze(filename string) (*models.ImageInfo, error) {
	return nil, unsupported(NameVips, filename, notCompiled("libvips", "vips"))
}
