// catalog.go - Built-in style catalog, lookup and download filenames.
package style

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// catalog is built once at init and never mutated; Catalog hands out copies.
var catalog = []Style{
	MustNew("Cyber Sunset", Circles, "#ff007f", "#7000ff", "#00f2ff"),
	MustNew("Deep Moss", NoiseOnly, "#1a2e1a", "#3d5a3d", "#0a0f0a"),
	MustNew("Peach Fuzz", Circles, "#ffbe94", "#f6d5f7", "#fdfcfb"),
	MustNew("Obsidian", Lines, "#000000", "#1c1c1c", "#333333"),
	MustNew("Vaporwave", Mesh, "#ff71ce", "#01cdfe", "#05ffa1"),
	MustNew("Crimson Tide", NoiseOnly, "#450a0a", "#7f1d1d", "#000000"),
	MustNew("Nordic Mist", Circles, "#d1d5db", "#9ca3af", "#4b5563"),
	MustNew("Golden Hour", Lines, "#f59e0b", "#ef4444", "#78350f"),
	MustNew("Ethereal Blue", Mesh, "#60a5fa", "#2563eb", "#1e3a8a"),
	MustNew("Royal Velvet", Circles, "#240046", "#3c096c", "#5a189a"),
	MustNew("Slate & Ash", Lines, "#334155", "#475569", "#0f172a"),
	MustNew("Mint Tea", NoiseOnly, "#d1fae5", "#6ee7b7", "#064e3b"),
	MustNew("Neon Night", Mesh, "#111827", "#8b5cf6", "#ec4899"),
	MustNew("Sahara", Lines, "#d97706", "#92400e", "#78350f"),
}

// Catalog returns a copy of the built-in styles in display order.
func Catalog() []Style {
	out := make([]Style, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog style by exact name, case-insensitive name or slug.
func Lookup(key string) (Style, bool) {
	key = strings.TrimSpace(key)
	for _, s := range catalog {
		if s.name == key {
			return s, true
		}
	}
	for _, s := range catalog {
		if strings.EqualFold(s.name, key) || s.Slug() == Slugify(key) {
			return s, true
		}
	}
	return Style{}, false
}

// Names returns the catalog display names in order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.name
	}
	return names
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lowercases name and replaces each whitespace run with "_".
func Slugify(name string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(name, "_"))
}

// Filename builds "<prefix>_<slug>_<unix-millis>.png".
func Filename(prefix string, s Style, t time.Time) string {
	return fmt.Sprintf("%s_%s_%d.png", prefix, s.Slug(), t.UnixMilli())
}
