package models

// Normalized labels shared by every driver.

const (
	FormatUnknown = "UNKNOWN"
)

// Pixel types
const (
	TypeBilevel              = "BILEVEL"
	TypeGrayscale            = "GRAYSCALE"
	TypeGrayscaleMatte       = "GRAYSCALEMATTE"
	TypePalette              = "PALETTE"
	TypePaletteMatte         = "PALETTEMATTE"
	TypeTrueColor            = "TRUECOLOR"
	TypeTrueColorMatte       = "TRUECOLORMATTE"
	TypeColorSeparation      = "COLORSEPARATION"
	TypeColorSeparationMatte = "COLORSEPARATIONMATTE"
	TypeOptimize             = "OPTIMIZE"
	TypeUndefined            = "UNDEFINED"
)

// Colorspaces
const (
	ColorspaceRGB         = "RGB"
	ColorspaceSRGB        = "SRGB"
	ColorspaceCMYK        = "CMYK"
	ColorspaceCMY         = "CMY"
	ColorspaceGray        = "GRAY"
	ColorspaceHSL         = "HSL"
	ColorspaceHSB         = "HSB"
	ColorspaceHWB         = "HWB"
	ColorspaceLAB         = "LAB"
	ColorspaceLOG         = "LOG"
	ColorspaceOHTA        = "OHTA"
	ColorspaceRec601Luma  = "REC601LUMA"
	ColorspaceRec709Luma  = "REC709LUMA"
	ColorspaceTransparent = "TRANSPARENT"
	ColorspaceXYZ         = "XYZ"
	ColorspaceYCbCr       = "YCBCR"
	ColorspaceYCC         = "YCC"
	ColorspaceYIQ         = "YIQ"
	ColorspaceYPbPr       = "YPBPR"
	ColorspaceYUV         = "YUV"
	ColorspaceUndefined   = "UNDEFINED"
)

// Resolution units
const (
	UnitsPixelsPerCentimeter = "PixelsPerCentimeter"
	UnitsPixelsPerInch       = "PixelsPerInch"
	UnitsUndefined           = "undefined"
)

// Types lists every normalized pixel type.
var Types = []string{
	TypeBilevel, TypeGrayscale, TypeGrayscaleMatte, TypePalette, TypePaletteMatte,
	TypeTrueColor, TypeTrueColorMatte, TypeColorSeparation, TypeColorSeparationMatte,
	TypeOptimize, TypeUndefined,
}

// Colorspaces lists every normalized colorspace.
var Colorspaces = []string{
	ColorspaceRGB, ColorspaceSRGB, ColorspaceCMYK, ColorspaceCMY, ColorspaceGray,
	ColorspaceHSL, ColorspaceHSB, ColorspaceHWB, ColorspaceLAB, ColorspaceLOG,
	ColorspaceOHTA, ColorspaceRec601Luma, ColorspaceRec709Luma, ColorspaceTransparent,
	ColorspaceXYZ, ColorspaceYCbCr, ColorspaceYCC, ColorspaceYIQ, ColorspaceYPbPr,
	ColorspaceYUV, ColorspaceUndefined,
}
