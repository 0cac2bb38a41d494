package driver

import (
	"os"

	"go-image-analyzer/pkg/models"

	"github.com/rwcarlsen/goexif/exif"
)

// EXIF ResolutionUnit values
const (
	exifUnitInch       = 2
	exifUnitCentimeter = 3
)

type exifResolution struct {
	x, y  float64
	units string
}

// readExifResolution returns the resolution stored in the EXIF block of
// filename. ok is false when the file carries no usable resolution tags.
func readExifResolution(filename string) (res exifResolution, ok bool) {
	f, err := os.Open(filename)
	if err != nil {
		return res, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return res, false
	}

	resX, okX := exifRational(x, exif.XResolution)
	resY, okY := exifRational(x, exif.YResolution)
	if !okX || !okY {
		return res, false
	}

	// EXIF defaults to inches when the unit tag is missing
	units := models.UnitsPixelsPerInch
	if tag, err := x.Get(exif.ResolutionUnit); err == nil {
		if unit, err := tag.Int(0); err == nil && unit == exifUnitCentimeter {
			units = models.UnitsPixelsPerCentimeter
		}
	}

	return exifResolution{x: resX, y: resY, units: units}, true
}

func exifRational(x *exif.Exif, name exif.FieldName) (float64, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, false
	}
	rat, err := tag.Rat(0)
	if err != nil {
		return 0, false
	}
	v, _ := rat.Float64()
	return v, true
}
