package driver

import (
	"bytes"
	"encoding/binary"
	"regexp"
	"strconv"
)

// headerSize is what a fixed header tells about an image whose pixels the Go
// image registry cannot decode.
type headerSize struct {
	width, height int
	depth         int
}

// headerReaders read dimensions for the sniffed types without a registered decoder.
var headerReaders = map[ImageType]func(head []byte) (headerSize, bool){
	ImageTypePSD: readPSDHeader,
	ImageTypeICO: readICOHeader,
	ImageTypeJPC: readJPCHeader,
	ImageTypeJP2: readJP2Header,
	ImageTypeJPX: readJP2Header,
	ImageTypeIFF: readIFFHeader,
	ImageTypeXBM: readXBMHeader,
}

func readHeaderSize(t ImageType, head []byte) (headerSize, bool) {
	read, ok := headerReaders[t]
	if !ok {
		return headerSize{}, false
	}
	size, ok := read(head)
	if !ok || size.width <= 0 || size.height <= 0 {
		return headerSize{}, false
	}
	return size, true
}

// readPSDHeader reads the 26 byte Photoshop file header.
func readPSDHeader(head []byte) (headerSize, bool) {
	if len(head) < 26 || !bytes.HasPrefix(head, []byte("8BPS")) {
		return headerSize{}, false
	}
	return headerSize{
		height: int(binary.BigEndian.Uint32(head[14:18])),
		width:  int(binary.BigEndian.Uint32(head[18:22])),
		depth:  int(binary.BigEndian.Uint16(head[22:24])),
	}, true
}

// readICOHeader reads the first directory entry. A stored 0 means 256 pixels.
func readICOHeader(head []byte) (headerSize, bool) {
	if len(head) < 22 || binary.LittleEndian.Uint16(head[4:6]) == 0 {
		return headerSize{}, false
	}
	dim := func(b byte) int {
		if b == 0 {
			return 256
		}
		return int(b)
	}
	return headerSize{
		width:  dim(head[6]),
		height: dim(head[7]),
		depth:  int(binary.LittleEndian.Uint16(head[12:14])),
	}, true
}

// readJPCHeader reads the SIZ segment that follows the SOC marker.
func readJPCHeader(head []byte) (headerSize, bool) {
	if len(head) < 43 || !bytes.HasPrefix(head, jpcSignature) {
		return headerSize{}, false
	}
	siz := head[4:]
	xsiz, ysiz := binary.BigEndian.Uint32(siz[4:8]), binary.BigEndian.Uint32(siz[8:12])
	xoff, yoff := binary.BigEndian.Uint32(siz[12:16]), binary.BigEndian.Uint32(siz[16:20])
	if xoff >= xsiz || yoff >= ysiz {
		return headerSize{}, false
	}
	return headerSize{
		width:  int(xsiz - xoff),
		height: int(ysiz - yoff),
		depth:  int(siz[38]&0x7F) + 1,
	}, true
}

// readJP2Header reads the image header box inside the jp2h box.
func readJP2Header(head []byte) (headerSize, bool) {
	i := bytes.Index(head, []byte("ihdr"))
	if i < 0 || len(head) < i+4+11 {
		return headerSize{}, false
	}
	box := head[i+4:]
	return headerSize{
		height: int(binary.BigEndian.Uint32(box[0:4])),
		width:  int(binary.BigEndian.Uint32(box[4:8])),
		depth:  int(box[10]&0x7F) + 1,
	}, true
}

// readIFFHeader reads the BMHD chunk of an ILBM or PBM picture.
func readIFFHeader(head []byte) (headerSize, bool) {
	i := bytes.Index(head, []byte("BMHD"))
	if i < 0 || len(head) < i+8+9 {
		return headerSize{}, false
	}
	bmhd := head[i+8:]
	planes := int(bmhd[8])
	if planes > 8 {
		planes = 8
	}
	return headerSize{
		width:  int(binary.BigEndian.Uint16(bmhd[0:2])),
		height: int(binary.BigEndian.Uint16(bmhd[2:4])),
		depth:  planes,
	}, true
}

var xbmDefine = regexp.MustCompile(`#define\s+\S*_(width|height)\s+(\d+)`)

// readXBMHeader reads the C defines of an X bitmap. XBM is always one bit deep.
func readXBMHeader(head []byte) (headerSize, bool) {
	size := headerSize{depth: 1}
	for _, m := range xbmDefine.FindAllSubmatch(head, -1) {
		n, err := strconv.Atoi(string(m[2]))
		if err != nil {
			return headerSize{}, false
		}
		if string(m[1]) == "width" {
			size.width = n
		} else {
			size.height = n
		}
	}
	return size, true
}
