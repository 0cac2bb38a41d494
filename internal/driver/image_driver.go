package driver

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"go-image-analyzer/pkg/models"

	_ "github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ImageDriver reads headers through the decoders registered with the Go
// image package. It reports the same small field set as a getimagesize call:
// no resolution, compression, quality or profiles.
//
// PSD, ICO, JPEG 2000, IFF and XBM have no Go decoder; their width, height and
// depth come from the fixed file header. SWF, SWC, JB2 and WBMP are sniffed
// for the format label only and are not supported. HEIF and AVIF need the heif
// build tag.
type ImageDriver struct{}

// NewImageDriver creates the Go image registry driver
func NewImageDriver() *ImageDriver {
	return &ImageDriver{}
}

func (d *ImageDriver) Name() string {
	return NameImage
}

// Available is always true: the decoders are linked into the binary.
func (d *ImageDriver) Available() bool {
	return true
}

func (d *ImageDriver) Supports(filename string) bool {
	_, err := d.inspect(filename)
	return err == nil
}

func (d *ImageDriver) Analyze(filename string) (*models.ImageInfo, error) {
	hdr, err := d.inspect(filename)
	if err != nil {
		return nil, unsupported(NameImage, filename, err)
	}
	if hdr.width <= 0 || hdr.height <= 0 {
		return nil, unsupported(NameImage, filename, nil)
	}

	pixelType := models.TypeUndefined
	var colors *int
	if pixelTypeReported[hdr.imageType] {
		pixelType = mapImagePixelType(hdr.model)
		colors = ptr(hdr.model.colors)
	}

	info := models.NewImageInfo()
	info.
		SetAnalyzer(NameImage).
		SetSize(hdr.width, hdr.height).
		SetResolution(nil, nil).
		SetUnits(nil).
		SetFormat(mapImageFormat(hdr.imageType)).
		SetColors(colors).
		SetType(pixelType).
		SetColorspace(mapImageColorspace(hdr.model)).
		SetDepth(hdr.model.depth).
		SetCompression(nil).
		SetQuality(nil).
		SetProfiles(nil)

	return info, nil
}

type imageHeader struct {
	imageType     ImageType
	width, height int
	model         colorModel
}

// inspect sniffs the file type, then asks the image registry for the header.
// Types without a registered decoder fall back to their fixed header layout.
func (d *ImageDriver) inspect(filename string) (imageHeader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return imageHeader{}, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return imageHeader{}, err
	}
	hdr := imageHeader{imageType: Sniff(head)}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return hdr, err
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		size, ok := readHeaderSize(hdr.imageType, head)
		if !ok {
			return hdr, err
		}
		hdr.width, hdr.height = size.width, size.height
		hdr.model = colorModel{depth: size.depth}
		return hdr, nil
	}

	hdr.width, hdr.height = cfg.Width, cfg.Height
	hdr.model = describeColorModel(cfg.ColorModel)
	return hdr, nil
}
