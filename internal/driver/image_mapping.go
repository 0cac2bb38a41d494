package driver

import (
	"image/color"
	"math/bits"

	"go-image-analyzer/pkg/models"
)

var imageTypeFormats = map[ImageType]string{
	ImageTypeBMP:      "BMP",
	ImageTypeCount:    "COUNT",
	ImageTypeGIF:      "GIF",
	ImageTypeICO:      "ICON",
	ImageTypeIFF:      "IFF",
	ImageTypeJB2:      "JB2",
	ImageTypeJP2:      "JP2",
	ImageTypeJPEG2000: "JPEG2000",
	ImageTypeJPEG:     "JPEG",
	ImageTypeJPX:      "JPX",
	ImageTypePNG:      "PNG",
	ImageTypePSD:      "PSD",
	ImageTypeSWC:      "SWC",
	ImageTypeSWF:      "SWF",
	ImageTypeTIFFII:   "TIFF_II",
	ImageTypeTIFFMM:   "TIFF_MM",
	ImageTypeWBMP:     "WBMP",
	ImageTypeXBM:      "XBM",
	ImageTypeWEBP:     "WEBP",
	ImageTypeAVIF:     "AVIF",
	ImageTypeHEIF:     "HEIF",
	ImageTypeUnknown:  models.FormatUnknown,
}

// mapImageFormat returns the normalized format of an ImageType.
func mapImageFormat(t ImageType) string {
	if format, ok := imageTypeFormats[t]; ok {
		return format
	}
	return models.FormatUnknown
}

func (t ImageType) String() string {
	return mapImageFormat(t)
}

// pixelTypeReported lists the types whose decoded pixel layout is inspected.
var pixelTypeReported = map[ImageType]bool{
	ImageTypeJPEG: true,
	ImageTypeGIF:  true,
	ImageTypePNG:  true,
}

// colorModel is what the Go image registry tells about pixels without decoding them.
type colorModel struct {
	palette bool
	cmyk    bool
	colors  int
	depth   int
}

func describeColorModel(m color.Model) colorModel {
	if p, ok := m.(color.Palette); ok {
		return colorModel{palette: true, colors: len(p), depth: paletteDepth(len(p))}
	}

	switch m {
	case color.CMYKModel:
		return colorModel{cmyk: true, depth: 8}
	case color.Gray16Model, color.Alpha16Model, color.RGBA64Model, color.NRGBA64Model:
		return colorModel{depth: 16}
	default:
		return colorModel{depth: 8}
	}
}

// paletteDepth is the number of bits needed to index n palette entries.
func paletteDepth(n int) int {
	if n <= 2 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// mapImagePixelType only tells palette images from true-color ones.
func mapImagePixelType(cm colorModel) string {
	if cm.palette {
		return models.TypePalette
	}
	return models.TypeTrueColor
}

// mapImageColorspace reports CMYK for four-ink images and RGB for everything else.
func mapImageColorspace(cm colorModel) string {
	if cm.cmyk {
		return models.ColorspaceCMYK
	}
	return models.ColorspaceRGB
}
