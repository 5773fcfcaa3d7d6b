package imagecache

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned by Decode for data that is not one of
// the supported image formats.
var ErrUnsupportedFormat = errors.New("imagecache: unsupported image format")

// headerSize is the number of bytes filetype needs to recognize a format.
const headerSize = 262

var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"gif":  gif.Decode,
	"webp": webp.Decode,
	"bmp":  bmp.Decode,
	"tif":  tiff.Decode,
}

// Decode sniffs the image format from the first bytes of r and decodes
// it. It returns the image and the format's file extension.
func Decode(r io.Reader) (image.Image, string, error) {
	br := bufio.NewReaderSize(r, headerSize)
	head, err := br.Peek(headerSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", err
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return nil, "", fmt.Errorf("imagecache: sniff: %w", err)
	}
	decode, ok := decoders[kind.Extension]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	img, err := decode(br)
	if err != nil {
		return nil, kind.Extension, fmt.Errorf("imagecache: decode %s: %w", kind.Extension, err)
	}
	return img, kind.Extension, nil
}
