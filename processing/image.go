package processing

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/nfnt/resize"
)

const (
	MaxWidth    = 800
	MaxPixels   = 50_000_000 // decoded size limit, checked from the header before decoding
	JPEGQuality = 70
	MimeType    = "image/jpeg"

	dataURLPrefix = "data:" + MimeType + ";base64,"
	bytesPerMB    = 1024 * 1024
)

// PayloadTooLargeError is returned before decoding when the upload exceeds the limit
type PayloadTooLargeError struct {
	SizeMB float64
	MaxMB  int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("Photo too large (%.1fMB). Max %dMB.", e.SizeMB, e.MaxMB)
}

type UnsupportedImageError struct {
	Err error
}

func (e *UnsupportedImageError) Error() string {
	return "unsupported image: " + e.Err.Error()
}

func (e *UnsupportedImageError) Unwrap() error {
	return e.Err
}

// Normalize turns an uploaded photo into a data URL holding a JPEG at most
// MaxWidth pixels wide, with any transparency flattened onto white.
func Normalize(raw []byte, maxSizeMB int) (string, error) {
	sizeMB := float64(len(raw)) / bytesPerMB
	if sizeMB > float64(maxSizeMB) {
		return "", &PayloadTooLargeError{SizeMB: sizeMB, MaxMB: maxSizeMB}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", &UnsupportedImageError{Err: err}
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", &UnsupportedImageError{Err: fmt.Errorf("%dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxPixels)}
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", &UnsupportedImageError{Err: err}
	}
	img = flatten(scaleDown(img))

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", fmt.Errorf("encoding jpeg: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// scaleDown keeps the aspect ratio, images narrower than MaxWidth are returned as is
func scaleDown(img image.Image) image.Image {
	size := img.Bounds().Size()
	if size.X <= MaxWidth {
		return img
	}
	height := uint(math.Round(float64(size.Y) * MaxWidth / float64(size.X)))
	if height == 0 {
		height = 1
	}
	return resize.Resize(MaxWidth, height, img, resize.Lanczos3)
}

// flatten composites paletted or translucent images onto an opaque white
// background. Grayscale images are converted too so the JPEG is always colour.
func flatten(img image.Image) image.Image {
	if !needsFlattening(img) {
		return img
	}
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}

func needsFlattening(img image.Image) bool {
	switch img.(type) {
	case *image.Paletted, *image.Gray, *image.Gray16:
		return true
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// DecodeDataURL reverses Normalize. It returns the decoded image and its format name.
func DecodeDataURL(dataURL string) (image.Image, string, error) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return nil, "", errors.New("not a " + MimeType + " data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[len(dataURLPrefix):])
	if err != nil {
		return nil, "", fmt.Errorf("decoding base64: %w", err)
	}
	return image.Decode(bytes.NewReader(raw))
}

// IsDataURL is a cheap check used before trusting a stored photo in HTML output
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, dataURLPrefix)
}
