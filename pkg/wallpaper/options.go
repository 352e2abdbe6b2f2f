package wallpaper

import "math/rand/v2"

// Layer is a bit set of the layers Generate paints.
type Layer uint8

const (
	LayerGradient Layer = 1 << iota
	LayerPattern
	LayerGrain

	LayerAll = LayerGradient | LayerPattern | LayerGrain
)

// Has reports whether every layer in other is set in l.
func (l Layer) Has(other Layer) bool { return l&other == other }

// Option configures a Generate call.
type Option func(*options)

type options struct {
	rng    *rand.Rand
	layers Layer
}

func newOptions(opts []Option) options {
	o := options{layers: LayerAll}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// rand returns the injected source or a freshly seeded one. A *rand.Rand is
// not safe for concurrent use, so the default is never shared between calls.
func (o options) rand() *rand.Rand {
	if o.rng != nil {
		return o.rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// WithRand draws every random value from r.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithSeed makes output reproducible for a given seed.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithLayers restricts painting to the given layers.
func WithLayers(l Layer) Option {
	return func(o *options) { o.layers = l }
}
