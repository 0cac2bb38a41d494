//go:build opencv

package driver

import (
	"fmt"

	"go-image-analyzer/pkg/models"

	"gocv.io/x/gocv"
)

var opencvAvailability = availability{check: func() bool {
	return gocv.OpenCVVersion() != ""
}}

// OpenCVDriver analyzes files through OpenCV imgcodecs. OpenCV decodes the
// full raster and converts CMYK to BGR on load, so only the channel layout
// survives; resolution comes from EXIF when present.
type OpenCVDriver struct{}

func NewOpenCVDriver() *OpenCVDriver {
	return &OpenCVDriver{}
}

func (d *OpenCVDriver) Name() string {
	return NameOpenCV
}

func (d *OpenCVDriver) Available() bool {
	return opencvAvailability.get()
}

func (d *OpenCVDriver) Supports(filename string) bool {
	mat, err := d.read(filename)
	if err != nil {
		return false
	}
	mat.Close()
	return true
}

func (d *OpenCVDriver) Analyze(filename string) (*models.ImageInfo, error) {
	mat, err := d.read(filename)
	if err != nil {
		return nil, unsupported(NameOpenCV, filename, err)
	}
	defer mat.Close()

	width, height := mat.Cols(), mat.Rows()
	if width <= 0 || height <= 0 {
		return nil, unsupported(NameOpenCV, filename, nil)
	}

	imageType, err := SniffFile(filename)
	if err != nil {
		imageType = ImageTypeUnknown
	}

	var resX, resY *float64
	var units *string
	if res, ok := readExifResolution(filename); ok {
		resX, resY, units = ptr(res.x), ptr(res.y), ptr(res.units)
	}

	channels := mat.Channels()

	info := models.NewImageInfo()
	info.
		SetAnalyzer(NameOpenCV).
		SetSize(width, height).
		SetResolution(resX, resY).
		SetUnits(units).
		SetFormat(mapImageFormat(imageType)).
		SetColors(nil).
		SetType(mapOpenCVType(channels)).
		SetColorspace(mapOpenCVColorspace(channels)).
		SetDepth(mapOpenCVDepth(mat.Type())).
		SetCompression(nil).
		SetQuality(nil).
		SetProfiles(nil)

	return info, nil
}

func (d *OpenCVDriver) read(filename string) (gocv.Mat, error) {
	if !d.Available() {
		return gocv.Mat{}, fmt.Errorf("OpenCV is not available")
	}
	mat := gocv.IMRead(filename, gocv.IMReadUnchanged)
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, fmt.Errorf("imread returned an empty matrix")
	}
	return mat, nil
}
