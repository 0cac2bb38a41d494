//go:build opencv

package driver

import (
	"testing"

	apperrors "go-image-analyzer/internal/errors"
	"go-image-analyzer/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestMapOpenCVChannels(t *testing.T) {
	tests := []struct {
		channels   int
		pixelType  string
		colorspace string
	}{
		{1, models.TypeGrayscale, models.ColorspaceGray},
		{2, models.TypeGrayscaleMatte, models.ColorspaceGray},
		{3, models.TypeTrueColor, models.ColorspaceRGB},
		{4, models.TypeTrueColorMatte, models.ColorspaceRGB},
		{0, models.TypeUndefined, models.ColorspaceUndefined},
		{7, models.TypeUndefined, models.ColorspaceUndefined},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.pixelType, mapOpenCVType(tt.channels), "channels %d", tt.channels)
		assert.Equal(t, tt.colorspace, mapOpenCVColorspace(tt.channels), "channels %d", tt.channels)
	}
}

func TestMapOpenCVDepth(t *testing.T) {
	assert.Equal(t, 8, mapOpenCVDepth(gocv.MatTypeCV8UC3))
	assert.Equal(t, 8, mapOpenCVDepth(gocv.MatTypeCV8UC1))
	assert.Equal(t, 16, mapOpenCVDepth(gocv.MatTypeCV16UC4))
	assert.Equal(t, 32, mapOpenCVDepth(gocv.MatTypeCV32F))
	assert.Equal(t, 64, mapOpenCVDepth(gocv.MatTypeCV64F))
}

func newOpenCVDriver(t *testing.T) *OpenCVDriver {
	t.Helper()
	d := NewOpenCVDriver()
	if !d.Available() {
		t.Skip("OpenCV is not available")
	}
	return d
}

func TestOpenCVDriver_AnalyzeImageFiles(t *testing.T) {
	tests := []struct {
		name   string
		path   func(*testing.T) string
		format string
	}{
		{"jpeg", jpegFixture, "JPEG"},
		{"png", pngFixture, "PNG"},
	}

	d := newOpenCVDriver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := d.Analyze(tt.path(t))
			require.NoError(t, err)

			assert.Equal(t, NameOpenCV, info.Analyzer)
			assert.Equal(t, fixtureWidth, info.Width)
			assert.Equal(t, fixtureHeight, info.Height)
			assert.Equal(t, tt.format, info.Format)
			assert.Equal(t, models.TypeTrueColor, info.Type)
			assert.Equal(t, models.ColorspaceRGB, info.Colorspace)
			assert.Equal(t, 8, info.Depth)
			assert.Nil(t, info.ResolutionX)
			assert.Nil(t, info.Units)
			assert.Nil(t, info.Colors)
		})
	}
}

func TestOpenCVDriver_AnalyzeUnsupportedFile(t *testing.T) {
	d := newOpenCVDriver(t)

	assert.False(t, d.Supports(unknownFixture(t)))

	info, err := d.Analyze(unknownFixture(t))
	assert.Nil(t, info)
	assert.True(t, apperrors.IsUnsupportedFile(err))
}

func TestOpenCVDriver_Contract(t *testing.T) {
	assertDriverContract(t, newOpenCVDriver(t), pngFixture(t))
}
