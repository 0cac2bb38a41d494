package driver

import (
	"bytes"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// ImageType is the header-level file type, numbered like the IMAGETYPE_*
// constants of the GD image library.
type ImageType int

const (
	ImageTypeUnknown ImageType = iota
	ImageTypeGIF
	ImageTypeJPEG
	ImageTypePNG
	ImageTypeSWF
	ImageTypePSD
	ImageTypeBMP
	ImageTypeTIFFII
	ImageTypeTIFFMM
	ImageTypeJPC
	ImageTypeJP2
	ImageTypeJPX
	ImageTypeJB2
	ImageTypeSWC
	ImageTypeIFF
	ImageTypeWBMP
	ImageTypeXBM
	ImageTypeICO
	ImageTypeWEBP
	ImageTypeAVIF
	ImageTypeHEIF
	ImageTypeCount
)

// ImageTypeJPEG2000 shares its value with ImageTypeJPC.
const ImageTypeJPEG2000 = ImageTypeJPC

// sniffLen is enough for every mimetype image matcher.
const sniffLen = 3072

var mimeTypes = []struct {
	mime      string
	imageType ImageType
}{
	{"image/jpeg", ImageTypeJPEG},
	{"image/png", ImageTypePNG},
	{"image/gif", ImageTypeGIF},
	{"image/bmp", ImageTypeBMP},
	{"image/vnd.adobe.photoshop", ImageTypePSD},
	{"image/x-icon", ImageTypeICO},
	{"image/jp2", ImageTypeJP2},
	{"image/jpx", ImageTypeJPX},
	{"image/webp", ImageTypeWEBP},
	{"image/avif", ImageTypeAVIF},
	{"image/heic", ImageTypeHEIF},
	{"image/heif", ImageTypeHEIF},
	{"image/heic-sequence", ImageTypeHEIF},
	{"image/heif-sequence", ImageTypeHEIF},
	{"application/x-shockwave-flash", ImageTypeSWF},
}

var (
	jpcSignature = []byte{0xFF, 0x4F, 0xFF, 0x51}
	jb2Signature = []byte{0x97, 0x4A, 0x42, 0x32, 0x0D, 0x0A, 0x1A, 0x0A}
	iffSignature = []byte("FORM")
	xbmSignature = []byte("#define ")
)

// SniffFile reads the head of filename and detects its ImageType.
func SniffFile(filename string) (ImageType, error) {
	f, err := os.Open(filename)
	if err != nil {
		return ImageTypeUnknown, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return ImageTypeUnknown, err
	}
	return Sniff(head), nil
}

// readHead reads up to sniffLen bytes; short files are not an error.
func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// Sniff detects the ImageType of a file header.
func Sniff(head []byte) ImageType {
	if len(head) < 2 {
		return ImageTypeUnknown
	}

	// TIFF byte order decides between the two TIFF types
	switch {
	case bytes.HasPrefix(head, []byte{'I', 'I', 0x2A, 0x00}):
		return ImageTypeTIFFII
	case bytes.HasPrefix(head, []byte{'M', 'M', 0x00, 0x2A}):
		return ImageTypeTIFFMM
	case bytes.HasPrefix(head, jpcSignature):
		return ImageTypeJPC
	case bytes.HasPrefix(head, jb2Signature):
		return ImageTypeJB2
	case bytes.HasPrefix(head, iffSignature):
		return ImageTypeIFF
	case bytes.HasPrefix(head, xbmSignature) && bytes.Contains(head, []byte("_width")):
		return ImageTypeXBM
	}

	mtype := mimetype.Detect(head)
	for _, m := range mimeTypes {
		if !mtype.Is(m.mime) {
			continue
		}
		if m.imageType == ImageTypeSWF && head[0] == 'C' {
			return ImageTypeSWC
		}
		return m.imageType
	}
	return ImageTypeUnknown
}
