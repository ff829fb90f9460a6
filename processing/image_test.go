package processing

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// transparentPNG returns a w*h image whose left half is fully transparent and right half opaque red
func transparentPNG(t *testing.T, w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return encodePNG(t, img)
}

func opaqueJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeResult(t *testing.T, dataURL string) image.Image {
	t.Helper()
	img, format, err := DecodeDataURL(dataURL)
	if err != nil {
		t.Fatalf("DecodeDataURL() error = %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("format = %q, want jpeg", format)
	}
	return img
}

func TestNormalize_Dimensions(t *testing.T) {
	tests := []struct {
		name       string
		raw        func(t *testing.T) []byte
		wantWidth  int
		wantHeight int
	}{
		{"transparent png is scaled down", func(t *testing.T) []byte { return transparentPNG(t, 1200, 900) }, 800, 600},
		{"height is rounded", func(t *testing.T) []byte { return opaqueJPEG(t, 1000, 333) }, 800, 266},
		{"height rounds up", func(t *testing.T) []byte { return opaqueJPEG(t, 1600, 901) }, 800, 451},
		{"exactly max width is kept", func(t *testing.T) []byte { return opaqueJPEG(t, 800, 100) }, 800, 100},
		{"small image is not upscaled", func(t *testing.T) []byte { return opaqueJPEG(t, 320, 240) }, 320, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw(t), 5)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			size := decodeResult(t, got).Bounds().Size()
			if size.X != tt.wantWidth || size.Y != tt.wantHeight {
				t.Errorf("Normalize() size = %dx%d, want %dx%d", size.X, size.Y, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestNormalize_FlattensTransparency(t *testing.T) {
	got, err := Normalize(transparentPNG(t, 1200, 900), 5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Fatalf("Normalize() prefix = %q", got[:30])
	}
	img := decodeResult(t, got)
	if o, ok := img.(interface{ Opaque() bool }); !ok || !o.Opaque() {
		t.Errorf("decoded image %T is not opaque", img)
	}
	// Transparent area turns white
	r, g, b, _ := img.At(100, 300).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("transparent pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
	// Opaque area keeps its colour
	r, g, b, _ = img.At(700, 300).RGBA()
	if r>>8 < 200 || g>>8 > 60 || b>>8 > 60 {
		t.Errorf("opaque pixel = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestNormalize_Paletted(t *testing.T) {
	// Index 0 is transparent, index 1 opaque blue
	img := image.NewPaletted(image.Rect(0, 0, 40, 30), color.Palette{color.Transparent, color.RGBA{B: 255, A: 255}})
	for y := 0; y < 30; y++ {
		for x := 20; x < 40; x++ {
			img.SetColorIndex(x, y, 1)
		}
	}
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	got, err := Normalize(buf.Bytes(), 5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	out := decodeResult(t, got)
	if size := out.Bounds().Size(); size.X != 40 || size.Y != 30 {
		t.Errorf("size = %v, want 40x30", size)
	}
	r, g, b, _ := out.At(5, 15).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("transparent palette pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = out.At(35, 15).RGBA()
	if b>>8 < 200 || r>>8 > 60 || g>>8 > 60 {
		t.Errorf("opaque palette pixel = (%d,%d,%d), want blue", r>>8, g>>8, b>>8)
	}
}

func TestNormalize_GrayBecomesColour(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = 100
	}
	got, err := Normalize(encodePNG(t, img), 5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	out := decodeResult(t, got)
	if _, ok := out.(*image.YCbCr); !ok {
		t.Errorf("decoded image is %T, want a 3-channel *image.YCbCr", out)
	}
}

func TestNormalize_PayloadTooLarge(t *testing.T) {
	// Not an image at all: the size gate must trigger before decoding
	raw := bytes.Repeat([]byte{0xAB}, 6*1024*1024)
	_, err := Normalize(raw, 5)
	var tooLarge *PayloadTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("Normalize() error = %v, want PayloadTooLargeError", err)
	}
	if tooLarge.MaxMB != 5 || tooLarge.SizeMB != 6 {
		t.Errorf("got %+v", tooLarge)
	}
	if want := "Photo too large (6.0MB). Max 5MB."; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNormalize_LimitIsInclusive(t *testing.T) {
	raw := make([]byte, 1024*1024)
	_, err := Normalize(raw, 1)
	var unsupported *UnsupportedImageError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Normalize() error = %v, want UnsupportedImageError for exactly 1MB", err)
	}
}

// pngHeader returns a PNG holding only a signature and an IHDR chunk for a
// w*h 8-bit grayscale image. Enough for image.DecodeConfig.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth, colour type 0 (gray)
	chunk := append([]byte("IHDR"), ihdr...)
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestNormalize_UnsupportedImage(t *testing.T) {
	tests := []struct {
		name      string
		raw       []byte
		wantCause error
		wantMsg   string
	}{
		{"not an image", []byte("definitely not an image"), image.ErrFormat, "unknown format"},
		{"declared size too big", pngHeader(20000, 20000), nil, "20000x20000 exceeds"},
		{"just over the pixel limit", pngHeader(10000, 5001), nil, "10000x5001 exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw, 5)
			var unsupported *UnsupportedImageError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Normalize() error = %v, want UnsupportedImageError", err)
			}
			if tt.wantCause != nil && !errors.Is(err, tt.wantCause) {
				t.Errorf("error should wrap %v, got %v", tt.wantCause, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDecodeDataURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"wrong mime", "data:image/png;base64,AAAA", true},
		{"bad base64", "data:image/jpeg;base64,@@@", true},
		{"plain text", "hello", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeDataURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeDataURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
