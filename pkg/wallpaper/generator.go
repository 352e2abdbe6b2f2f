package wallpaper

import (
	"image/color"
	"math/rand/v2"

	"github.com/xob0t/fluf/pkg/style"
)

// Output sizes used by the gallery and the full-screen preview.
const (
	DefaultWidth  = 1440
	DefaultHeight = 2560
	ThumbWidth    = 360
	ThumbHeight   = 640
)

// Pattern and grain parameters.
const (
	CircleCount     = 5
	CircleMinRadius = 100.0
	CircleMaxRadius = 700.0
	CircleAlpha     = 0.05

	LineCount  = 20
	LineWidth  = 2.0
	LinesAlpha = 0.1

	MeshCount  = 15
	MeshSpread = 200.0
	MeshWidth  = 1.0
	MeshAlpha  = 0.15

	GrainCount = 3000
	GrainSize  = 2.0
	GrainAlpha = 0.05
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

// Generate repaints canvas at width×height with the gradient, pattern and
// grain layers of s, in that order. The canvas alpha is 1 on return.
func Generate(s style.Style, canvas Canvas, width, height int, opts ...Option) {
	o := newOptions(opts)
	rng := o.rand()

	canvas.Resize(width, height)
	w, h := float64(width), float64(height)

	if o.layers.Has(LayerGradient) {
		canvas.FillVerticalGradient(s.Stops())
	}
	if o.layers.Has(LayerPattern) {
		paintPattern(canvas, s.Pattern(), w, h, rng)
	}
	if o.layers.Has(LayerGrain) {
		paintGrain(canvas, w, h, rng)
	}

	canvas.SetAlpha(1)
}

// Render is Generate into a fresh Surface.
func Render(s style.Style, width, height int, opts ...Option) *Surface {
	surface := NewSurface(width, height)
	Generate(s, surface, width, height, opts...)
	return surface
}

func paintPattern(canvas Canvas, kind style.PatternKind, w, h float64, rng *rand.Rand) {
	switch kind {
	case style.Circles:
		canvas.SetAlpha(CircleAlpha)
		for range CircleCount {
			cx, cy := rng.Float64()*w, rng.Float64()*h
			r := CircleMinRadius + rng.Float64()*(CircleMaxRadius-CircleMinRadius)
			canvas.FillCircle(cx, cy, r, white)
		}
	case style.Lines:
		canvas.SetAlpha(LinesAlpha)
		for range LineCount {
			y1, y2 := rng.Float64()*h, rng.Float64()*h
			canvas.StrokeLine(0, y1, w, y2, LineWidth, white)
		}
	case style.Mesh:
		canvas.SetAlpha(MeshAlpha)
		for range MeshCount {
			x, y := rng.Float64()*w, rng.Float64()*h
			dx := rng.Float64()*2*MeshSpread - MeshSpread
			dy := rng.Float64()*2*MeshSpread - MeshSpread
			canvas.StrokeLine(x, y, x+dx, y+dy, MeshWidth, white)
		}
	case style.NoiseOnly:
	default:
		panic("wallpaper: unreachable pattern kind " + kind.String())
	}
}

func paintGrain(canvas Canvas, w, h float64, rng *rand.Rand) {
	canvas.SetAlpha(GrainAlpha)
	for range GrainCount {
		c := black
		if rng.Float64() > 0.5 {
			c = white
		}
		canvas.FillRect(rng.Float64()*w, rng.Float64()*h, GrainSize, GrainSize, c)
	}
	canvas.SetAlpha(1)
}
