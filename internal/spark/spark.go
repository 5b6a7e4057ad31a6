// Package spark renders a compact unicode trend line from a series of
// mood scores.
package spark

import "strings"

// chars is the fixed palette, lowest to highest.
const chars = "▁▂▃▄▅▆▇█"

// runes caches the palette as runes; the glyphs are multi-byte so the
// string cannot be indexed directly.
var runes = []rune(chars)

// Line turns a sequence of scores into a sparkline. Values are scaled
// between the minimum and maximum of the input; a flat series renders
// as the lowest glyph. Empty input yields an empty string.
func Line(values []int) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		i := (v - lo) * (len(runes) - 1) / span
		if i > len(runes)-1 {
			i = len(runes) - 1
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
