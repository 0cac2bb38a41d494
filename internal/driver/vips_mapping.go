//go:build vips

package driver

import (
	"go-image-analyzer/pkg/models"

	"github.com/cshum/vipsgen/vips"
)

// vipsImage is the part of *vips.Image the driver reads.
type vipsImage interface {
	Width() int
	Height() int
	Bands() int
	HasAlpha() bool
	Interpretation() vips.Interpretation
	BandFormat() vips.BandFormat
	ResX() float64
	ResY() float64
	Format() vips.ImageType
	HasICCProfile() bool
}

// vips keeps resolution in pixels per millimetre.
const vipsMillimetresPerCentimetre = 10

func mapVipsFormat(t vips.ImageType) string {
	switch t {
	case vips.ImageTypeJpeg:
		return "JPEG"
	case vips.ImageTypePng:
		return "PNG"
	case vips.ImageTypeGif:
		return "GIF"
	case vips.ImageTypeTiff:
		return "TIFF"
	case vips.ImageTypeWebp:
		return "WEBP"
	case vips.ImageTypeHeif:
		return "HEIF"
	case vips.ImageTypeAvif:
		return "AVIF"
	case vips.ImageTypeJp2k:
		return "JP2"
	case vips.ImageTypeJxl:
		return "JXL"
	case vips.ImageTypeSvg:
		return "SVG"
	case vips.ImageTypePdf:
		return "PDF"
	default:
		return models.FormatUnknown
	}
}

// mapVipsCompression names the codec implied by the loader. TIFF carries its
// own per-file compression tag which libvips does not expose, so it is absent.
func mapVipsCompression(t vips.ImageType) *string {
	switch t {
	case vips.ImageTypeJpeg:
		return ptr("JPEG")
	case vips.ImageTypePng:
		return ptr("Zip")
	case vips.ImageTypeGif:
		return ptr("LZW")
	case vips.ImageTypeWebp:
		return ptr("WebP")
	case vips.ImageTypeHeif:
		return ptr("HEVC")
	case vips.ImageTypeAvif:
		return ptr("AV1")
	case vips.ImageTypeJp2k:
		return ptr("JPEG2000")
	case vips.ImageTypeJxl:
		return ptr("JPEGXL")
	default:
		return nil
	}
}

func mapVipsColorspace(i vips.Interpretation) string {
	switch i {
	case vips.InterpretationSrgb:
		return models.ColorspaceSRGB
	case vips.InterpretationRgb, vips.InterpretationRgb16, vips.InterpretationScrgb:
		return models.ColorspaceRGB
	case vips.InterpretationBW, vips.InterpretationGrey16:
		return models.ColorspaceGray
	case vips.InterpretationCmyk:
		return models.ColorspaceCMYK
	case vips.InterpretationLab, vips.InterpretationLabq, vips.InterpretationLabs:
		return models.ColorspaceLAB
	case vips.InterpretationXyz:
		return models.ColorspaceXYZ
	case vips.InterpretationHsv:
		return models.ColorspaceHSB
	default:
		return models.ColorspaceUndefined
	}
}

// mapVipsType derives the pixel type from interpretation, loader and band layout.
func mapVipsType(i vips.Interpretation, format vips.ImageType, bands int, alpha bool) string {
	switch {
	case bands <= 0:
		return models.TypeUndefined
	case i == vips.InterpretationCmyk:
		if alpha {
			return models.TypeColorSeparationMatte
		}
		return models.TypeColorSeparation
	case format == vips.ImageTypeGif:
		if alpha {
			return models.TypePaletteMatte
		}
		return models.TypePalette
	case i == vips.InterpretationBW || i == vips.InterpretationGrey16 || bands == 1:
		if alpha {
			return models.TypeGrayscaleMatte
		}
		return models.TypeGrayscale
	case bands == 2:
		return models.TypeGrayscaleMatte
	case alpha:
		return models.TypeTrueColorMatte
	default:
		return models.TypeTrueColor
	}
}

// mapVipsDepth returns bits per band.
func mapVipsDepth(f vips.BandFormat) int {
	switch f {
	case vips.BandFormatUchar, vips.BandFormatChar:
		return 8
	case vips.BandFormatUshort, vips.BandFormatShort:
		return 16
	case vips.BandFormatUint, vips.BandFormatInt, vips.BandFormatFloat, vips.BandFormatComplex:
		return 32
	case vips.BandFormatDouble, vips.BandFormatDpcomplex:
		return 64
	default:
		return 0
	}
}

func describeVipsImage(img vipsImage) *models.ImageInfo {
	format := img.Format()
	interpretation := img.Interpretation()

	var resX, resY *float64
	var units *string
	if img.ResX() > 0 || img.ResY() > 0 {
		resX = ptr(img.ResX() * vipsMillimetresPerCentimetre)
		resY = ptr(img.ResY() * vipsMillimetresPerCentimetre)
		units = ptr(models.UnitsPixelsPerCentimeter)
	}

	profiles := []string{}
	if img.HasICCProfile() {
		profiles = append(profiles, "icc")
	}

	info := models.NewImageInfo()
	info.
		SetAnalyzer(NameVips).
		SetSize(img.Width(), img.Height()).
		SetResolution(resX, resY).
		SetUnits(units).
		SetFormat(mapVipsFormat(format)).
		SetColors(nil).
		SetType(mapVipsType(interpretation, format, img.Bands(), img.HasAlpha())).
		SetColorspace(mapVipsColorspace(interpretation)).
		SetDepth(mapVipsDepth(img.BandFormat())).
		SetCompression(mapVipsCompression(format)).
		SetQuality(nil).
		SetProfiles(profiles)

	return info
}
