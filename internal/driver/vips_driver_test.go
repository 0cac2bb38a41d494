//go:build vips

package driver

import (
	"testing"

	apperrors "go-image-analyzer/internal/errors"
	"go-image-analyzer/pkg/models"

	"github.com/cshum/vipsgen/vips"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVipsImage struct {
	width, height  int
	bands          int
	alpha          bool
	interpretation vips.Interpretation
	bandFormat     vips.BandFormat
	resX, resY     float64
	format         vips.ImageType
	icc            bool
}

func (f fakeVipsImage) Width() int                          { return f.width }
func (f fakeVipsImage) Height() int                         { return f.height }
func (f fakeVipsImage) Bands() int                          { return f.bands }
func (f fakeVipsImage) HasAlpha() bool                      { return f.alpha }
func (f fakeVipsImage) Interpretation() vips.Interpretation { return f.interpretation }
func (f fakeVipsImage) BandFormat() vips.BandFormat         { return f.bandFormat }
func (f fakeVipsImage) ResX() float64                       { return f.resX }
func (f fakeVipsImage) ResY() float64                       { return f.resY }
func (f fakeVipsImage) Format() vips.ImageType              { return f.format }
func (f fakeVipsImage) HasICCProfile() bool                 { return f.icc }

func TestMapVipsType(t *testing.T) {
	tests := []struct {
		name           string
		interpretation vips.Interpretation
		format         vips.ImageType
		bands          int
		alpha          bool
		want           string
	}{
		{"srgb", vips.InterpretationSrgb, vips.ImageTypeJpeg, 3, false, models.TypeTrueColor},
		{"srgb alpha", vips.InterpretationSrgb, vips.ImageTypePng, 4, true, models.TypeTrueColorMatte},
		{"cmyk", vips.InterpretationCmyk, vips.ImageTypeJpeg, 4, false, models.TypeColorSeparation},
		{"cmyk alpha", vips.InterpretationCmyk, vips.ImageTypeTiff, 5, true, models.TypeColorSeparationMatte},
		{"gif", vips.InterpretationSrgb, vips.ImageTypeGif, 3, false, models.TypePalette},
		{"gif alpha", vips.InterpretationSrgb, vips.ImageTypeGif, 4, true, models.TypePaletteMatte},
		{"grey", vips.InterpretationBW, vips.ImageTypePng, 1, false, models.TypeGrayscale},
		{"grey alpha", vips.InterpretationBW, vips.ImageTypePng, 2, true, models.TypeGrayscaleMatte},
		{"no bands", vips.InterpretationMultiband, vips.ImageTypeUnknown, 0, false, models.TypeUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapVipsType(tt.interpretation, tt.format, tt.bands, tt.alpha))
		})
	}
}

func TestMapVipsColorspace(t *testing.T) {
	assert.Equal(t, models.ColorspaceSRGB, mapVipsColorspace(vips.InterpretationSrgb))
	assert.Equal(t, models.ColorspaceRGB, mapVipsColorspace(vips.InterpretationRgb16))
	assert.Equal(t, models.ColorspaceGray, mapVipsColorspace(vips.InterpretationBW))
	assert.Equal(t, models.ColorspaceCMYK, mapVipsColorspace(vips.InterpretationCmyk))
	assert.Equal(t, models.ColorspaceLAB, mapVipsColorspace(vips.InterpretationLab))
	assert.Equal(t, models.ColorspaceUndefined, mapVipsColorspace(vips.InterpretationFourier))
}

func TestMapVipsDepth(t *testing.T) {
	assert.Equal(t, 8, mapVipsDepth(vips.BandFormatUchar))
	assert.Equal(t, 16, mapVipsDepth(vips.BandFormatUshort))
	assert.Equal(t, 32, mapVipsDepth(vips.BandFormatFloat))
	assert.Equal(t, 64, mapVipsDepth(vips.BandFormatDouble))
}

func TestMapVipsFormat(t *testing.T) {
	assert.Equal(t, "JPEG", mapVipsFormat(vips.ImageTypeJpeg))
	assert.Equal(t, "PNG", mapVipsFormat(vips.ImageTypePng))
	assert.Equal(t, "TIFF", mapVipsFormat(vips.ImageTypeTiff))
	assert.Equal(t, models.FormatUnknown, mapVipsFormat(vips.ImageTypeUnknown))
}

func TestDescribeVipsImage(t *testing.T) {
	info := describeVipsImage(fakeVipsImage{
		width:          fixtureWidth,
		height:         fixtureHeight,
		bands:          4,
		interpretation: vips.InterpretationCmyk,
		bandFormat:     vips.BandFormatUchar,
		resX:           2.834645669,
		resY:           2.834645669,
		format:         vips.ImageTypeJpeg,
		icc:            true,
	})

	assert.Equal(t, NameVips, info.Analyzer)
	assert.Equal(t, fixtureWidth, info.Width)
	assert.Equal(t, fixtureHeight, info.Height)
	assert.Equal(t, "JPEG", info.Format)
	assert.Equal(t, models.TypeColorSeparation, info.Type)
	assert.Equal(t, models.ColorspaceCMYK, info.Colorspace)
	assert.Equal(t, 8, info.Depth)
	require.NotNil(t, info.ResolutionX)
	assert.InDelta(t, 28.34645669, *info.ResolutionX, 1e-6)
	require.NotNil(t, info.Units)
	assert.Equal(t, models.UnitsPixelsPerCentimeter, *info.Units)
	require.NotNil(t, info.Compression)
	assert.Equal(t, "JPEG", *info.Compression)
	assert.Equal(t, []string{"icc"}, info.Profiles)
	assert.Nil(t, info.Colors)
	assert.Nil(t, info.Quality)
}

func TestDescribeVipsImage_NoResolution(t *testing.T) {
	info := describeVipsImage(fakeVipsImage{
		width: 1, height: 1, bands: 3,
		interpretation: vips.InterpretationSrgb,
		bandFormat:     vips.BandFormatUchar,
		format:         vips.ImageTypeTiff,
	})

	assert.Nil(t, info.ResolutionX)
	assert.Nil(t, info.ResolutionY)
	assert.Nil(t, info.Units)
	assert.Nil(t, info.Compression)
	assert.Equal(t, []string{}, info.Profiles)
}

func newVipsDriver(t *testing.T) *VipsDriver {
	t.Helper()
	d := NewVipsDriver()
	if !d.Available() {
		t.Skip("libvips is not available")
	}
	return d
}

func TestVipsDriver_Analyze(t *testing.T) {
	d := newVipsDriver(t)

	info, err := d.Analyze(jpegFixture(t))
	require.NoError(t, err)
	assert.Equal(t, fixtureWidth, info.Width)
	assert.Equal(t, fixtureHeight, info.Height)
	assert.Equal(t, "JPEG", info.Format)
	assert.Equal(t, models.TypeTrueColor, info.Type)
	assert.Equal(t, models.ColorspaceSRGB, info.Colorspace)
}

func TestVipsDriver_AnalyzeUnsupportedFile(t *testing.T) {
	d := newVipsDriver(t)

	assert.False(t, d.Supports(unknownFixture(t)))

	info, err := d.Analyze(unknownFixture(t))
	assert.Nil(t, info)
	assert.True(t, apperrors.IsUnsupportedFile(err))
}

func TestVipsDriver_Contract(t *testing.T) {
	assertDriverContract(t, newVipsDriver(t), jpegFixture(t))
}
