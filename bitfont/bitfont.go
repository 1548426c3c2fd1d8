// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bitfont describes fixed-width bitmap fonts packed column by column,
// plus adapters for common font sources.
//
// A glyph is stored as its columns left to right. Fonts up to eight pixels
// tall use one byte per column; taller fonts, up to sixteen pixels, use two
// interleaved bytes per column. Within a byte the least significant bit is
// the topmost row. This is the native layout of small embedded font tables
// and lets a renderer blit a column with a single byte fetch.
package bitfont

// Monospaced is the Kind flag marking fixed-width fonts. It is the only
// flag defined; embedded font tables carry no proportional variant.
const Monospaced byte = 0x40

// Metrics describes the geometry shared by every glyph of a Font.
type Metrics struct {
	// Kind carries the font header flags.
	Kind byte
	// Height is the glyph cell height in pixels, at most 16.
	Height int
	// MaxWidth is the glyph cell width in pixels.
	MaxWidth int
	// First is the first rune covered by the font.
	First rune
	// Count is the number of consecutive runes covered, starting at First.
	Count int
}

// Font provides glyph bitmaps in column-packed form.
type Font interface {
	Metrics() Metrics
	// GlyphByte returns the i-th byte of a glyph's column data. glyph is the
	// index relative to Metrics.First. Fonts up to eight pixels tall store
	// column c at index c; taller fonts store rows 0-7 of column c at 2c and
	// the remaining rows at 2c+1. Indexes outside the glyph return 0.
	GlyphByte(glyph, i int) byte
}

func bytesPerColumn(height int) int {
	if height > 8 {
		return 2
	}
	return 1
}
