// Package wallpaper paints procedural wallpapers: a vertical three-stop
// gradient, an optional geometric pattern layer and a grain overlay.
//
// Output is randomized on every call unless a seeded source is supplied with
// WithRand or WithSeed. Each call fully repaints its canvas.
package wallpaper

import "image/color"

// Canvas is the drawing surface Generate paints into. It mirrors the subset
// of a 2D context the generator needs. The effective alpha of every paint
// operation is the color's alpha multiplied by the canvas alpha.
//
// A Canvas is owned by one caller for the duration of a Generate call.
type Canvas interface {
	// Resize sets the canvas to w×h, clears it and resets alpha to 1.
	Resize(w, h int)
	Size() (w, h int)

	SetAlpha(a float64)
	Alpha() float64

	// FillVerticalGradient fills the whole canvas with a top-to-bottom
	// gradient through stops at offsets 0, 0.5 and 1.
	FillVerticalGradient(stops [3]color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	FillRect(x, y, w, h float64, c color.NRGBA)
}
