// sheet.go - Contact sheet composition.
// Layered like a card grid: sheet background -> rounded cards -> scaled
// thumbnails -> name and pattern labels.
package gallery

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Sheet geometry in pixels.
const (
	Padding     = 24
	CardInset   = 8
	CardRadius  = 12
	LabelHeight = 56

	DefaultColumns   = 4
	DefaultCardWidth = 180

	titleSize  = 16
	detailSize = 12
)

const (
	sheetBackground = "#0b0b0f"
	cardBackground  = "#1a1a22"
)

var (
	titleColor  = color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf7, A: 0xff}
	detailColor = color.NRGBA{R: 0x9a, G: 0x9a, B: 0xa8, A: 0xff}
)

// SheetOptions configures Sheet.
type SheetOptions struct {
	Columns   int    // defaults to DefaultColumns
	CardWidth int    // thumbnail width on the sheet, defaults to DefaultCardWidth
	FontPath  string // custom TTF for style names
}

// Layout is the resolved geometry of a sheet.
type Layout struct {
	Columns, Rows  int
	ThumbW, ThumbH int
	CardW, CardH   int
	Width, Height  int
}

// NewLayout computes the grid for n thumbnails of srcW×srcH.
func NewLayout(n, srcW, srcH int, opts SheetOptions) (Layout, error) {
	if n == 0 {
		return Layout{}, ErrNoThumbnails
	}
	if srcW <= 0 || srcH <= 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, srcW, srcH)
	}
	if opts.Columns <= 0 {
		opts.Columns = DefaultColumns
	}
	if opts.CardWidth <= 0 {
		opts.CardWidth = DefaultCardWidth
	}

	l := Layout{Columns: min(opts.Columns, n)}
	l.Rows = (n + l.Columns - 1) / l.Columns
	l.ThumbW = opts.CardWidth
	l.ThumbH = max(1, opts.CardWidth*srcH/srcW)
	l.CardW = l.ThumbW + 2*CardInset
	l.CardH = CardInset + l.ThumbH + LabelHeight
	l.Width = l.Columns*l.CardW + (l.Columns+1)*Padding
	l.Height = l.Rows*l.CardH + (l.Rows+1)*Padding
	return l, nil
}

// Card returns the card rectangle of thumbnail i.
func (l Layout) Card(i int) image.Rectangle {
	col, row := i%l.Columns, i/l.Columns
	x := Padding + col*(l.CardW+Padding)
	y := Padding + row*(l.CardH+Padding)
	return image.Rect(x, y, x+l.CardW, y+l.CardH)
}

// Thumb returns the rectangle the thumbnail of card i is scaled into.
func (l Layout) Thumb(i int) image.Rectangle {
	c := l.Card(i)
	p := c.Min.Add(image.Pt(CardInset, CardInset))
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(l.ThumbW, l.ThumbH))}
}

// Sheet draws thumbs as a grid of labelled cards. The grid geometry is
// taken from the first thumbnail; the rest are scaled into the same cell.
func Sheet(thumbs []Thumbnail, opts SheetOptions) (*image.RGBA, error) {
	if len(thumbs) == 0 {
		return nil, ErrNoThumbnails
	}
	src := thumbs[0].Image.Bounds()
	layout, err := NewLayout(len(thumbs), src.Dx(), src.Dy(), opts)
	if err != nil {
		return nil, err
	}

	fonts, err := loadFonts(opts.FontPath)
	if err != nil {
		return nil, err
	}
	title, err := face(fonts.title, titleSize)
	if err != nil {
		return nil, err
	}
	defer title.Close()
	detail, err := face(fonts.detail, detailSize)
	if err != nil {
		return nil, err
	}
	defer detail.Close()

	sheet, err := drawCards(layout, len(thumbs))
	if err != nil {
		return nil, err
	}

	for i, t := range thumbs {
		xdraw.CatmullRom.Scale(sheet, layout.Thumb(i), t.Image, t.Image.Bounds(), xdraw.Over, nil)

		tr := layout.Thumb(i)
		x := tr.Min.X
		name := fitString(title, strings.ToUpper(t.Style.Name()), layout.ThumbW)
		drawString(sheet, name, x, tr.Max.Y+24, titleColor, title)
		drawString(sheet, t.Style.Pattern().String(), x, tr.Max.Y+44, detailColor, detail)
	}

	return sheet, nil
}

// drawCards paints the sheet background and one rounded card per slot.
func drawCards(l Layout, n int) (*image.RGBA, error) {
	dc := gg.NewContext(l.Width, l.Height)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex(sheetBackground))
	dc.SetHexColor(cardBackground)
	for i := range n {
		r := l.Card(i)
		dc.DrawRoundedRectangle(float64(r.Min.X), float64(r.Min.Y),
			float64(r.Dx()), float64(r.Dy()), CardRadius)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("draw card %d: %w", i, err)
		}
	}

	return dc.Image().(*image.RGBA), nil
}

func drawString(dst *image.RGBA, text string, x, y int, c color.Color, fc font.Face) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: fc,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// fitString trims text with an ellipsis until it fits maxWidth pixels.
func fitString(fc font.Face, text string, maxWidth int) string {
	limit := fixed.I(maxWidth)
	if font.MeasureString(fc, text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		s := strings.TrimRight(string(runes), " ") + "…"
		if font.MeasureString(fc, s) <= limit {
			return s
		}
	}
	return ""
}
