//go:build vips

package driver

import (
	"fmt"

	"go-image-analyzer/pkg/models"

	"github.com/cshum/vipsgen/vips"
)

// Startup panics when libvips cannot initialize.
var vipsAvailability = availability{check: func() bool {
	vips.Startup(nil)
	return true
}}

// VipsDriver analyzes files through libvips. libvips opens lazily, so only
// the header is read for the fields reported here.
type VipsDriver struct{}

func NewVipsDriver() *VipsDriver {
	return &VipsDriver{}
}

func (d *VipsDriver) Name() string {
	return NameVips
}

func (d *VipsDriver) Available() bool {
	return vipsAvailability.get()
}

func (d *VipsDriver) Supports(filename string) bool {
	img, err := d.open(filename)
	if err != nil {
		return false
	}
	img.Close()
	return true
}

func (d *VipsDriver) Analyze(filename string) (*models.ImageInfo, error) {
	img, err := d.open(filename)
	if err != nil {
		return nil, unsupported(NameVips, filename, err)
	}
	defer img.Close()

	if img.Width() <= 0 || img.Height() <= 0 {
		return nil, unsupported(NameVips, filename, nil)
	}
	return describeVipsImage(img), nil
}

func (d *VipsDriver) open(filename string) (*vips.Image, error) {
	if !d.Available() {
		return nil, fmt.Errorf("libvips is not available")
	}
	return vips.NewImageFromFile(filename, nil)
}
