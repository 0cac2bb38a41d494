//go:build opencv

package driver

import (
	"go-image-analyzer/pkg/models"

	"gocv.io/x/gocv"
)

// cvDepthMask extracts the depth from a Mat type; the upper bits hold channels.
const cvDepthMask = 7

// mapOpenCVType maps a channel count. IMReadUnchanged keeps alpha as a fourth
// (or second) channel.
func mapOpenCVType(channels int) string {
	switch channels {
	case 1:
		return models.TypeGrayscale
	case 2:
		return models.TypeGrayscaleMatte
	case 3:
		return models.TypeTrueColor
	case 4:
		return models.TypeTrueColorMatte
	default:
		return models.TypeUndefined
	}
}

func mapOpenCVColorspace(channels int) string {
	switch channels {
	case 1, 2:
		return models.ColorspaceGray
	case 3, 4:
		return models.ColorspaceRGB
	default:
		return models.ColorspaceUndefined
	}
}

func mapOpenCVDepth(t gocv.MatType) int {
	switch t & cvDepthMask {
	case gocv.MatTypeCV8U, gocv.MatTypeCV8S:
		return 8
	case gocv.MatTypeCV16U, gocv.MatTypeCV16S:
		return 16
	case gocv.MatTypeCV32S, gocv.MatTypeCV32F:
		return 32
	case gocv.MatTypeCV64F:
		return 64
	default:
		return 0
	}
}
