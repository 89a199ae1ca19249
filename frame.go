package vram

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// FrameName returns the file name a saved frame gets: frame_<index>.png.
// The extension is fixed whatever the encoding.
func FrameName(index int) string {
	return "frame_" + strconv.Itoa(index) + ".png"
}

// ComposeFrame returns src stretched to width x height, the way a texture
// drawn over the whole window appears. Alpha is forced opaque because
// buffers are drawn with blending disabled.
func ComposeFrame(src *image.RGBA, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidFrameSize, width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if src != nil && !src.Bounds().Empty() {
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst, nil
}

// EncodeFrame writes img to w in the given format.
func EncodeFrame(w io.Writer, img image.Image, format FrameFormat) error {
	switch format {
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatPNG:
		return png.Encode(w, img)
	default:
		return fmt.Errorf("vram: unknown frame format %v", format)
	}
}

// WriteFrame encodes img into dir/FrameName(index) and returns the path
// written. The frame is encoded into a temporary file in dir that replaces
// any earlier file of that name only once it is complete.
func WriteFrame(dir string, index int, img image.Image, format FrameFormat) (string, error) {
	path := filepath.Join(dir, FrameName(index))
	f, err := os.CreateTemp(dir, ".frame_*.tmp")
	if err != nil {
		return "", fmt.Errorf("vram: create frame file: %w", err)
	}
	tmp := f.Name()
	fail := func(err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}

	bw := bufio.NewWriter(f)
	if err := EncodeFrame(bw, img, format); err != nil {
		return fail(fmt.Errorf("vram: encode %s: %w", format, err))
	}
	if err := bw.Flush(); err != nil {
		return fail(fmt.Errorf("vram: write frame: %w", err))
	}
	if err := f.Chmod(0o644); err != nil {
		return fail(fmt.Errorf("vram: write frame: %w", err))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("vram: close frame file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("vram: replace %s: %w", path, err)
	}
	return path, nil
}
