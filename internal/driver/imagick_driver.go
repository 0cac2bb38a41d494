//go:build imagick

package driver

import (
	"fmt"

	"go-image-analyzer/pkg/models"

	"gopkg.in/gographics/imagick.v2/imagick"
)

var imagickAvailability = availability{check: func() bool {
	imagick.Initialize()

	mw := imagick.NewMagickWand()
	defer mw.Destroy()

	return len(mw.QueryFormats("*")) > 0
}}

// ImagickDriver analyzes files through an ImageMagick MagickWand.
type ImagickDriver struct{}

func NewImagickDriver() *ImagickDriver {
	return &ImagickDriver{}
}

func (d *ImagickDriver) Name() string {
	return NameImagick
}

// Available initializes the MagickWand environment on first use.
func (d *ImagickDriver) Available() bool {
	return imagickAvailability.get()
}

func (d *ImagickDriver) Supports(filename string) bool {
	if !d.Available() {
		return false
	}

	mw := imagick.NewMagickWand()
	defer mw.Destroy()

	return mw.PingImage(filename) == nil
}

func (d *ImagickDriver) Analyze(filename string) (*models.ImageInfo, error) {
	if !d.Available() {
		return nil, unsupported(NameImagick, filename, fmt.Errorf("ImageMagick is not available"))
	}

	mw := imagick.NewMagickWand()
	defer mw.Destroy()

	if err := mw.ReadImage(filename); err != nil {
		return nil, unsupported(NameImagick, filename, err)
	}

	width, height := int(mw.GetImageWidth()), int(mw.GetImageHeight())
	if width <= 0 || height <= 0 {
		return nil, unsupported(NameImagick, filename, nil)
	}

	// A wand without resolution data still reports 0x0.
	resX, resY, err := mw.GetImageResolution()
	if err != nil {
		resX, resY = 0, 0
	}

	format := mw.GetImageFormat()
	if format == "" {
		format = models.FormatUnknown
	}

	profiles := mw.GetImageProfiles("*")
	if profiles == nil {
		profiles = []string{}
	}

	info := models.NewImageInfo()
	info.
		SetAnalyzer(NameImagick).
		SetSize(width, height).
		SetResolution(ptr(resX), ptr(resY)).
		SetUnits(ptr(mapImagickUnits(mw.GetImageUnits()))).
		SetFormat(format).
		SetColors(ptr(int(mw.GetImageColors()))).
		SetType(mapImagickType(mw.GetImageType())).
		SetColorspace(mapImagickColorspace(mw.GetImageColorspace())).
		SetDepth(int(mw.GetImageDepth())).
		SetCompression(ptr(mapImagickCompression(mw.GetImageCompression()))).
		SetQuality(ptr(int(mw.GetImageCompressionQuality()))).
		SetProfiles(profiles)

	return info, nil
}
