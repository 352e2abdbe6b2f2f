// surface.go - Raster Canvas over image.RGBA.
// Shapes are rasterized with golang.org/x/image/vector into a mask sized to
// the clipped bounding box, then composited source-over with image/draw
// semantics. Gradient rows are gg.RGBA lerps between adjacent stops.
package wallpaper

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/vector"
)

// circleKappa is the cubic Bézier control distance for a quarter circle.
const circleKappa = 0.5522847498307936

// Surface is a width×height RGBA pixel buffer implementing Canvas.
type Surface struct {
	img   *image.RGBA
	alpha float64
	ras   *vector.Rasterizer
}

var _ Canvas = (*Surface)(nil)

// NewSurface returns a cleared surface. Non-positive sizes yield an empty surface.
func NewSurface(w, h int) *Surface {
	s := &Surface{ras: vector.NewRasterizer(0, 0)}
	s.Resize(w, h)
	return s
}

func (s *Surface) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if s.img != nil && s.img.Rect.Dx() == w && s.img.Rect.Dy() == h {
		clear(s.img.Pix)
	} else {
		s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	if s.ras == nil {
		s.ras = vector.NewRasterizer(0, 0)
	}
	s.alpha = 1
}

func (s *Surface) Size() (w, h int) {
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

// Image returns the backing image. It aliases the surface and changes with
// subsequent draws.
func (s *Surface) Image() *image.RGBA { return s.img }

// Bounds returns the surface rectangle.
func (s *Surface) SetAlpha(a float64) {
	s.alpha = min(max(a, 0), 1)
}

func (s *Surface) Alpha() float64 { return s.alpha }

// EncodePNG writes the surface as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

func (s *Surface) FillVerticalGradient(stops [3]color.NRGBA) {
	w, h := s.Size()
	if w == 0 || h == 0 {
		return
	}

	top, mid, bottom := gg.FromColor(stops[0]), gg.FromColor(stops[1]), gg.FromColor(stops[2])

	op := draw.Src
	if s.alpha < 1 {
		op = draw.Over
	}
	for y := 0; y < h; y++ {
		// Components are interpolated in sRGB, not linear light.
		t := (float64(y) + 0.5) / float64(h)
		var rgba gg.RGBA
		if t < 0.5 {
			rgba = top.Lerp(mid, t*2)
		} else {
			rgba = mid.Lerp(bottom, t*2-1)
		}
		c := s.paint(toNRGBA(rgba))
		draw.Draw(s.img, image.Rect(0, y, w, y+1), image.NewUniform(c), image.Point{}, op)
	}
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if r <= 0 {
		return
	}
	bbox := boundsOf(cx-r, cy-r, cx+r, cy+r)
	s.fill(bbox, c, func(z *vector.Rasterizer, ox, oy float64) {
		k := r * circleKappa
		x, y := cx-ox, cy-oy
		z.MoveTo(f32(x+r), f32(y))
		z.CubeTo(f32(x+r), f32(y+k), f32(x+k), f32(y+r), f32(x), f32(y+r))
		z.CubeTo(f32(x-k), f32(y+r), f32(x-r), f32(y+k), f32(x-r), f32(y))
		z.CubeTo(f32(x-r), f32(y-k), f32(x-k), f32(y-r), f32(x), f32(y-r))
		z.CubeTo(f32(x+k), f32(y-r), f32(x+r), f32(y-k), f32(x+r), f32(y))
		z.ClosePath()
	})
}

// StrokeLine strokes a segment with butt caps.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	pts := [4][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}
	minX, minY, maxX, maxY := pts[0][0], pts[0][1], pts[0][0], pts[0][1]
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}

	s.fill(boundsOf(minX, minY, maxX, maxY), c, func(z *vector.Rasterizer, ox, oy float64) {
		z.MoveTo(f32(pts[0][0]-ox), f32(pts[0][1]-oy))
		for _, p := range pts[1:] {
			z.LineTo(f32(p[0]-ox), f32(p[1]-oy))
		}
		z.ClosePath()
	})
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	s.fill(boundsOf(x, y, x+w, y+h), c, func(z *vector.Rasterizer, ox, oy float64) {
		z.MoveTo(f32(x-ox), f32(y-oy))
		z.LineTo(f32(x+w-ox), f32(y-oy))
		z.LineTo(f32(x+w-ox), f32(y+h-oy))
		z.LineTo(f32(x-ox), f32(y+h-oy))
		z.ClosePath()
	})
}

// fill clips bbox to the surface, lets path draw into a mask whose origin
// is the clipped box's top-left corner and composites c through it.
func (s *Surface) fill(bbox image.Rectangle, c color.NRGBA, path func(z *vector.Rasterizer, ox, oy float64)) {
	r := bbox.Intersect(s.img.Rect)
	if r.Empty() {
		return
	}
	c = s.paint(c)
	if c.A == 0 {
		return
	}

	s.ras.Reset(r.Dx(), r.Dy())
	s.ras.DrawOp = draw.Over
	path(s.ras, float64(r.Min.X), float64(r.Min.Y))
	s.ras.Draw(s.img, r, image.NewUniform(c), image.Point{})
}

// paint applies the surface alpha to c.
func (s *Surface) paint(c color.NRGBA) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * s.alpha))
	return c
}

func boundsOf(x0, y0, x1, y1 float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	)
}

func toNRGBA(c gg.RGBA) color.NRGBA {
	return color.NRGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}

func f32(v float64) float32 { return float32(v) }
