//go:build imagick

package driver

import (
	"go-image-analyzer/pkg/models"

	"gopkg.in/gographics/imagick.v2/imagick"
)

func mapImagickUnits(units imagick.ResolutionType) string {
	switch units {
	case imagick.RESOLUTION_PIXELS_PER_CENTIMETER:
		return models.UnitsPixelsPerCentimeter
	case imagick.RESOLUTION_PIXELS_PER_INCH:
		return models.UnitsPixelsPerInch
	default:
		return models.UnitsUndefined
	}
}

func mapImagickType(t imagick.ImageType) string {
	switch t {
	case imagick.IMAGE_TYPE_BILEVEL:
		return models.TypeBilevel
	case imagick.IMAGE_TYPE_GRAYSCALE:
		return models.TypeGrayscale
	case imagick.IMAGE_TYPE_GRAYSCALE_MATTE:
		return models.TypeGrayscaleMatte
	case imagick.IMAGE_TYPE_PALETTE:
		return models.TypePalette
	case imagick.IMAGE_TYPE_PALETTE_MATTE:
		return models.TypePaletteMatte
	case imagick.IMAGE_TYPE_TRUE_COLOR:
		return models.TypeTrueColor
	case imagick.IMAGE_TYPE_TRUE_COLOR_MATTE:
		return models.TypeTrueColorMatte
	case imagick.IMAGE_TYPE_COLOR_SEPARATION:
		return models.TypeColorSeparation
	case imagick.IMAGE_TYPE_COLOR_SEPARATION_MATTE:
		return models.TypeColorSeparationMatte
	case imagick.IMAGE_TYPE_OPTIMIZE:
		return models.TypeOptimize
	default:
		return models.TypeUndefined
	}
}

func mapImagickColorspace(cs imagick.ColorspaceType) string {
	switch cs {
	case imagick.COLORSPACE_CMY:
		return models.ColorspaceCMY
	case imagick.COLORSPACE_CMYK:
		return models.ColorspaceCMYK
	case imagick.COLORSPACE_GRAY:
		return models.ColorspaceGray
	case imagick.COLORSPACE_HSB:
		return models.ColorspaceHSB
	case imagick.COLORSPACE_HSL:
		return models.ColorspaceHSL
	case imagick.COLORSPACE_HWB:
		return models.ColorspaceHWB
	case imagick.COLORSPACE_LAB:
		return models.ColorspaceLAB
	case imagick.COLORSPACE_LOG:
		return models.ColorspaceLOG
	case imagick.COLORSPACE_OHTA:
		return models.ColorspaceOHTA
	case imagick.COLORSPACE_REC601LUMA:
		return models.ColorspaceRec601Luma
	case imagick.COLORSPACE_REC709LUMA:
		return models.ColorspaceRec709Luma
	case imagick.COLORSPACE_RGB:
		return models.ColorspaceRGB
	case imagick.COLORSPACE_SRGB:
		return models.ColorspaceSRGB
	case imagick.COLORSPACE_TRANSPARENT:
		return models.ColorspaceTransparent
	case imagick.COLORSPACE_XYZ:
		return models.ColorspaceXYZ
	case imagick.COLORSPACE_YCBCR:
		return models.ColorspaceYCbCr
	case imagick.COLORSPACE_YCC:
		return models.ColorspaceYCC
	case imagick.COLORSPACE_YIQ:
		return models.ColorspaceYIQ
	case imagick.COLORSPACE_YPBPR:
		return models.ColorspaceYPbPr
	case imagick.COLORSPACE_YUV:
		return models.ColorspaceYUV
	default:
		return models.ColorspaceUndefined
	}
}

// mapImagickCompression uses the names `identify -verbose` prints.
func mapImagickCompression(c imagick.CompressionType) string {
	switch c {
	case imagick.COMPRESSION_NO:
		return "None"
	case imagick.COMPRESSION_BZIP:
		return "BZip"
	case imagick.COMPRESSION_DXT1:
		return "DXT1"
	case imagick.COMPRESSION_DXT3:
		return "DXT3"
	case imagick.COMPRESSION_DXT5:
		return "DXT5"
	case imagick.COMPRESSION_FAX:
		return "Fax"
	case imagick.COMPRESSION_GROUP4:
		return "Group4"
	case imagick.COMPRESSION_JPEG:
		return "JPEG"
	case imagick.COMPRESSION_JPEG2000:
		return "JPEG2000"
	case imagick.COMPRESSION_LOSSLESS_JPEG:
		return "LosslessJPEG"
	case imagick.COMPRESSION_LZW:
		return "LZW"
	case imagick.COMPRESSION_RLE:
		return "RLE"
	case imagick.COMPRESSION_ZIP:
		return "Zip"
	case imagick.COMPRESSION_ZIPS:
		return "ZipS"
	case imagick.COMPRESSION_PIZ:
		return "Piz"
	case imagick.COMPRESSION_PXR24:
		return "Pxr24"
	case imagick.COMPRESSION_B44:
		return "B44"
	case imagick.COMPRESSION_B44A:
		return "B44A"
	case imagick.COMPRESSION_LZMA:
		return "LZMA"
	case imagick.COMPRESSION_JBIG1:
		return "JBIG1"
	case imagick.COMPRESSION_JBIG2:
		return "JBIG2"
	default:
		return "Undefined"
	}
}
