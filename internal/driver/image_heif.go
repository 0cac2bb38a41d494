//go:build heif

package driver

// libheif registers HEIF and AVIF with the image package.
import _ "github.com/strukturag/libheif/go/heif"
