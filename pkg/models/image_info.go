package models

// ImageInfo holds the normalized metadata of one analyzed image.
// A driver fills it field by field during a single Analyze call and hands it to
// the caller afterwards; it is not modified once returned.
type ImageInfo struct {
	Analyzer    string   `json:"analyzer" validate:"required"`
	Width       int      `json:"width" validate:"gt=0"`
	Height      int      `json:"height" validate:"gt=0"`
	ResolutionX *float64 `json:"resolutionX"`
	ResolutionY *float64 `json:"resolutionY"`
	Units       *string  `json:"units"`
	Format      string   `json:"format" validate:"required"`
	Colors      *int     `json:"colors" validate:"omitempty,gte=0"`
	Type        string   `json:"type" validate:"required,pixeltype"`
	Colorspace  string   `json:"colorspace" validate:"required,colorspace"`
	Depth       int      `json:"depth" validate:"gte=0"`
	Compression *string  `json:"compression"`
	Quality     *int     `json:"quality" validate:"omitempty,gte=0,lte=100"`
	Profiles    []string `json:"profiles"`
}

// NewImageInfo returns an empty record with every optional field absent.
func NewImageInfo() *ImageInfo {
	return &ImageInfo{}
}

// RatioX returns width / height, or 0 for an image without height.
func (i *ImageInfo) RatioX() float64 {
	if i.Height == 0 {
		return 0
	}
	return float64(i.Width) / float64(i.Height)
}

// RatioY returns height / width, or 0 for an image without width.
func (i *ImageInfo) RatioY() float64 {
	if i.Width == 0 {
		return 0
	}
	return float64(i.Height) / float64(i.Width)
}

func (i *ImageInfo) SetAnalyzer(analyzer string) *ImageInfo {
	i.Analyzer = analyzer
	return i
}

func (i *ImageInfo) SetSize(width, height int) *ImageInfo {
	i.Width = width
	i.Height = height
	return i
}

// SetResolution sets both axes; nil marks the resolution as not reported.
func (i *ImageInfo) SetResolution(x, y *float64) *ImageInfo {
	i.ResolutionX = x
	i.ResolutionY = y
	return i
}

func (i *ImageInfo) SetUnits(units *string) *ImageInfo {
	i.Units = units
	return i
}

func (i *ImageInfo) SetFormat(format string) *ImageInfo {
	i.Format = format
	return i
}

func (i *ImageInfo) SetColors(colors *int) *ImageInfo {
	i.Colors = colors
	return i
}

func (i *ImageInfo) SetType(imageType string) *ImageInfo {
	i.Type = imageType
	return i
}

func (i *ImageInfo) SetColorspace(colorspace string) *ImageInfo {
	i.Colorspace = colorspace
	return i
}

func (i *ImageInfo) SetDepth(depth int) *ImageInfo {
	i.Depth = depth
	return i
}

func (i *ImageInfo) SetCompression(compression *string) *ImageInfo {
	i.Compression = compression
	return i
}

func (i *ImageInfo) SetQuality(quality *int) *ImageInfo {
	i.Quality = quality
	return i
}

// SetProfiles sets the embedded profile names. A nil slice means the backend
// cannot report profiles, an empty one that the image carries none.
func (i *ImageInfo) SetProfiles(profiles []string) *ImageInfo {
	i.Profiles = profiles
	return i
}
