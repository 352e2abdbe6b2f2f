// Package style defines wallpaper style descriptors and the built-in catalog.
package style

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrUnknownPattern is returned for pattern names outside the closed set.
	ErrUnknownPattern = errors.New("style: unknown pattern kind")
	// ErrColorCount is returned when a style does not have exactly three colors.
	ErrColorCount = errors.New("style: exactly 3 colors required")
	// ErrEmptyName is returned for a style without a display name.
	ErrEmptyName = errors.New("style: empty name")
)

// PatternKind selects the overlay drawn above the gradient.
type PatternKind int

const (
	Circles PatternKind = iota + 1
	Lines
	Mesh
	NoiseOnly
)

var patternNames = map[PatternKind]string{
	Circles:   "circles",
	Lines:     "lines",
	Mesh:      "mesh",
	NoiseOnly: "noise-only",
}

// PatternKinds lists every pattern kind in declaration order.
func PatternKinds() []PatternKind {
	return []PatternKind{Circles, Lines, Mesh, NoiseOnly}
}

func (k PatternKind) String() string {
	if s, ok := patternNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PatternKind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k PatternKind) Valid() bool {
	_, ok := patternNames[k]
	return ok
}

// ParsePatternKind maps "circles", "lines", "mesh" or "noise-only" to a kind.
func ParsePatternKind(s string) (PatternKind, error) {
	for k, name := range patternNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

func (k PatternKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPattern, int(k))
	}
	return []byte(k.String()), nil
}

func (k *PatternKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePatternKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Style is an immutable wallpaper descriptor: a display name, a pattern kind
// and three gradient stops (top, middle, bottom).
type Style struct {
	name    string
	pattern PatternKind
	colors  [3]string
	stops   [3]color.NRGBA
}

// New validates and builds a Style.
func New(name string, pattern PatternKind, colors ...string) (Style, error) {
	if name == "" {
		return Style{}, ErrEmptyName
	}
	if !pattern.Valid() {
		return Style{}, fmt.Errorf("%s: %w: %d", name, ErrUnknownPattern, int(pattern))
	}
	if len(colors) != 3 {
		return Style{}, fmt.Errorf("%s: %w, got %d", name, ErrColorCount, len(colors))
	}

	s := Style{name: name, pattern: pattern}
	for i, c := range colors {
		stop, err := ParseNRGBA(c)
		if err != nil {
			return Style{}, fmt.Errorf("%s: color %d: %w", name, i, err)
		}
		s.colors[i] = c
		s.stops[i] = stop
	}
	return s, nil
}

// MustNew is New for static definitions; it panics on invalid input.
func MustNew(name string, pattern PatternKind, colors ...string) Style {
	s, err := New(name, pattern, colors...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Style) Name() string         { return s.name }
func (s Style) Pattern() PatternKind { return s.pattern }

// Colors returns the stop colors as written in the definition.
func (s Style) Colors() [3]string { return s.colors }

// Stops returns the parsed gradient stops for offsets 0, 0.5 and 1.
func (s Style) Stops() [3]color.NRGBA { return s.stops }

// Slug is the normalized name used in URLs and filenames.
func (s Style) Slug() string { return Slugify(s.name) }

// IsZero reports whether s was never built by New.
func (s Style) IsZero() bool { return s.name == "" }

type styleJSON struct {
	Name    string      `json:"name"`
	Slug    string      `json:"slug"`
	Pattern PatternKind `json:"pattern"`
	Colors  [3]string   `json:"colors"`
}

func (s Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(styleJSON{
		Name:    s.name,
		Slug:    s.Slug(),
		Pattern: s.pattern,
		Colors:  s.colors,
	})
}

func (s *Style) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    string      `json:"name"`
		Pattern PatternKind `json:"pattern"`
		Colors  []string    `json:"colors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := New(raw.Name, raw.Pattern, raw.Colors...)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
