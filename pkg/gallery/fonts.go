// fonts.go - Label fonts with custom TTF support and embedded fallbacks.
// Style names use Go Bold unless a custom font is configured; the pattern
// line always uses Go Regular.
package gallery

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type fontSet struct {
	title  *opentype.Font
	detail *opentype.Font
}

// loadFonts parses the label fonts. A custom path that cannot be read or
// parsed falls back to the embedded bold face with a warning.
func loadFonts(customPath string) (*fontSet, error) {
	title, err := loadCustom(customPath)
	if err != nil {
		logger().Warn("gallery: custom font unavailable, using Go Bold",
			"path", customPath, "err", err)
	}
	if title == nil {
		if title, err = opentype.Parse(gobold.TTF); err != nil {
			return nil, fmt.Errorf("parse embedded bold font: %w", err)
		}
	}

	detail, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded regular font: %w", err)
	}

	return &fontSet{title: title, detail: detail}, nil
}

func loadCustom(path string) (*opentype.Font, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// face returns f at size points (72 DPI, so points equal pixels).
func face(f *opentype.Font, size float64) (font.Face, error) {
	fc, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return fc, nil
}
