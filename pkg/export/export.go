// Package export writes rendered wallpapers to lossless image files.
//
// The format is inferred from the file extension: ".png" or ".bmp".
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for extensions other than .png and .bmp.
var ErrUnsupportedFormat = errors.New("export: unsupported format")

// Write encodes img to output, creating parent directories as needed.
func Write(output string, img image.Image) error {
	ext := filepath.Ext(output)
	if _, err := ContentType(ext); err != nil {
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}

	if err := Encode(f, ext, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes img to w in the format named by ext (".png" or ".bmp").
func Encode(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return encodePNG(w, img)
	case ".bmp":
		return encodeBMP(w, img)
	default:
		return fmt.Errorf("%w %q: use .png or .bmp", ErrUnsupportedFormat, ext)
	}
}

// ContentType returns the MIME type for ext.
func ContentType(ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png", nil
	case ".bmp":
		return "image/bmp", nil
	default:
		return "", fmt.Errorf("%w %q: use .png or .bmp", ErrUnsupportedFormat, ext)
	}
}
