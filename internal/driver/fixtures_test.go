package driver

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const (
	fixtureWidth  = 466
	fixtureHeight = 350
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 0xFF})
		}
	}
	return img
}

// gifColorsUsed is the number of palette entries the GIF fixture paints with;
// its color table still holds all 256 entries.
const gifColorsUsed = 255

func paletted(w, h int, p color.Palette, used int) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, w, h), p)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetColorIndex(x, y, uint8((x+y)%used))
		}
	}
	return img
}

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func jpegFixture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, gradient(fixtureWidth, fixtureHeight), &jpeg.Options{Quality: 91}))
	return writeFixture(t, "file.jpg", buf.Bytes())
}

func gifFixture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	// a global color table is only written when the config carries the palette
	require.NoError(t, gif.EncodeAll(&buf, &gif.GIF{
		Image: []*image.Paletted{paletted(fixtureWidth, fixtureHeight, palette.Plan9, gifColorsUsed)},
		Delay: []int{0},
		Config: image.Config{
			ColorModel: color.Palette(palette.Plan9),
			Width:      fixtureWidth,
			Height:     fixtureHeight,
		},
	}))
	return writeFixture(t, "file.gif", buf.Bytes())
}

func pngFixture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, gradient(fixtureWidth, fixtureHeight)))
	return writeFixture(t, "file.png", buf.Bytes())
}

func png16Fixture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA64(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	require.NoError(t, png.Encode(&buf, img))
	return writeFixture(t, "file16.png", buf.Bytes())
}

func bmpFixture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, gradient(16, 8)))
	return writeFixture(t, "file.bmp", buf.Bytes())
}

func tiffFixture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tiff.Encode(&buf, gradient(fixtureWidth, fixtureHeight), nil))
	return writeFixture(t, "file.tif", buf.Bytes())
}

// cmykJPEGHeader is the head of an Adobe CMYK JPEG (64x32): SOI, APP14 Adobe
// with transform 0, a four component SOF0 and the start of the scan.
var cmykJPEGHeader = []byte{
	0xFF, 0xD8,
	0xFF, 0xEE, 0x00, 0x0E, 'A', 'd', 'o', 'b', 'e', 0x00, 0x64, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xC0, 0x00, 0x14, 0x08, 0x00, 0x20, 0x00, 0x40, 0x04,
	0x01, 0x11, 0x00, 0x02, 0x11, 0x00, 0x03, 0x11, 0x00, 0x04, 0x11, 0x00,
	0xFF, 0xDA, 0x00, 0x0E, 0x04, 0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04, 0x00, 0x00, 0x3F, 0x00,
	0xFF, 0xD9,
}

func cmykJPEGFixture(t *testing.T) string {
	t.Helper()
	return writeFixture(t, "cmyk.jpg", cmykJPEGHeader)
}

func psdHeader(w, h uint32, depth uint16) []byte {
	b := make([]byte, 26)
	copy(b, "8BPS")
	binary.BigEndian.PutUint16(b[4:], 1)
	binary.BigEndian.PutUint16(b[12:], 3)
	binary.BigEndian.PutUint32(b[14:], h)
	binary.BigEndian.PutUint32(b[18:], w)
	binary.BigEndian.PutUint16(b[22:], depth)
	binary.BigEndian.PutUint16(b[24:], 3)
	return b
}

func icoHeader(w, h byte, bpp uint16) []byte {
	b := make([]byte, 22)
	binary.LittleEndian.PutUint16(b[2:], 1)
	binary.LittleEndian.PutUint16(b[4:], 1)
	b[6], b[7] = w, h
	binary.LittleEndian.PutUint16(b[10:], 1)
	binary.LittleEndian.PutUint16(b[12:], bpp)
	return b
}

func jpcHeader(w, h uint32, bits byte) []byte {
	b := make([]byte, 4+41)
	copy(b, jpcSignature)
	siz := b[4:]
	binary.BigEndian.PutUint16(siz[0:], 41)
	binary.BigEndian.PutUint32(siz[4:], w)
	binary.BigEndian.PutUint32(siz[8:], h)
	binary.BigEndian.PutUint32(siz[20:], w)
	binary.BigEndian.PutUint32(siz[24:], h)
	binary.BigEndian.PutUint16(siz[36:], 1)
	siz[38] = bits - 1
	siz[39], siz[40] = 1, 1
	return b
}

func jp2Header(w, h uint32, bits byte) []byte {
	var b bytes.Buffer
	b.Write([]byte{0x00, 0x00, 0x00, 0x0C, 'j', 'P', ' ', ' ', 0x0D, 0x0A, 0x87, 0x0A})
	b.Write([]byte{0x00, 0x00, 0x00, 0x14, 'f', 't', 'y', 'p', 'j', 'p', '2', ' ', 0, 0, 0, 0, 'j', 'p', '2', ' '})
	b.Write([]byte{0x00, 0x00, 0x00, 0x1E, 'j', 'p', '2', 'h'})
	b.Write([]byte{0x00, 0x00, 0x00, 0x16, 'i', 'h', 'd', 'r'})
	_ = binary.Write(&b, binary.BigEndian, h)
	_ = binary.Write(&b, binary.BigEndian, w)
	b.Write([]byte{0x00, 0x03, bits - 1, 0x07, 0x00, 0x00})
	return b.Bytes()
}

func iffHeader(w, h uint16, planes byte) []byte {
	b := make([]byte, 12+8+20)
	copy(b, "FORM")
	binary.BigEndian.PutUint32(b[4:], uint32(len(b)-8))
	copy(b[8:], "ILBM")
	copy(b[12:], "BMHD")
	binary.BigEndian.PutUint32(b[16:], 20)
	binary.BigEndian.PutUint16(b[20:], w)
	binary.BigEndian.PutUint16(b[22:], h)
	b[28] = planes
	return b
}

func unknownFixture(t *testing.T) string {
	t.Helper()
	return writeFixture(t, "file.unknown", []byte("this is not an image, just some plain text\n"))
}
