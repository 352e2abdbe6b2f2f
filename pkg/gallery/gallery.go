// Package gallery renders catalog thumbnails in parallel and composes them
// into a labelled contact sheet.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xob0t/fluf/pkg/style"
	"github.com/xob0t/fluf/pkg/wallpaper"
)

var (
	ErrInvalidSize  = errors.New("gallery: thumbnail size must be positive")
	ErrNoThumbnails = errors.New("gallery: no thumbnails")
	ErrZeroStyle    = errors.New("gallery: zero style")
)

// Thumbnail is one rendered catalog entry.
type Thumbnail struct {
	Style style.Style
	Image *image.RGBA
}

// Options configures Build.
type Options struct {
	Width   int // defaults to wallpaper.ThumbWidth
	Height  int // defaults to wallpaper.ThumbHeight
	Workers int // <= 0 uses GOMAXPROCS

	// Seed, when set, makes every thumbnail reproducible. Style i is
	// rendered with seed *Seed + i.
	Seed *uint64
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = wallpaper.ThumbWidth
	}
	if o.Height == 0 {
		o.Height = wallpaper.ThumbHeight
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Build renders one thumbnail per style, in input order. Every worker owns
// its own Surface. The first error or a cancelled ctx stops the remaining
// renders. A zero Style anywhere in styles fails with ErrZeroStyle before
// any rendering starts.
func Build(ctx context.Context, styles []style.Style, opts Options) ([]Thumbnail, error) {
	opts = opts.withDefaults()
	if opts.Width < 0 || opts.Height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}

	for i, s := range styles {
		if s.IsZero() {
			return nil, fmt.Errorf("%w: index %d", ErrZeroStyle, i)
		}
	}

	thumbs := make([]Thumbnail, len(styles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, s := range styles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var ropts []wallpaper.Option
			if opts.Seed != nil {
				ropts = append(ropts, wallpaper.WithSeed(*opts.Seed+uint64(i)))
			}

			start := time.Now()
			surface := wallpaper.Render(s, opts.Width, opts.Height, ropts...)
			logger().Debug("gallery: rendered thumbnail",
				"style", s.Name(), "elapsed", time.Since(start))

			thumbs[i] = Thumbnail{Style: s, Image: surface.Image()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return thumbs, nil
}
