// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitfont

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// FromTinyfont adapts a tinyfont face into a column-packed Font covering
// count runes starting at first.
//
// The cell is GetYAdvance() pixels tall and as wide as the widest advance in
// the covered range; the baseline sits below the tallest ascender. Fonts
// taller than sixteen pixels do not fit two bytes per column and are
// rejected.
//
// Glyph bitmaps are rasterized on demand through a recording
// drivers.Displayer and cached one glyph at a time, so the returned Font is
// not safe for concurrent use.
func FromTinyfont(f tinyfont.Fonter, first rune, count int) (Font, error) {
	if count <= 0 {
		return nil, fmt.Errorf("bitfont: invalid rune count %d", count)
	}
	height := int(f.GetYAdvance())
	if height <= 0 || height > 16 {
		return nil, fmt.Errorf("bitfont: cell height %d is outside the supported 1 to 16 pixels", height)
	}
	ascent := 0
	maxWidth := 0
	for i := 0; i < count; i++ {
		info := f.GetGlyph(first + rune(i)).Info()
		if a := int(-info.YOffset); a > ascent {
			ascent = a
		}
		if w := int(info.XAdvance); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth == 0 {
		return nil, fmt.Errorf("bitfont: no visible glyphs in the %d runes from %U", count, first)
	}
	t := &tinyfontFont{
		face:   f,
		ascent: ascent,
		glyph:  -1,
		cols:   make([]byte, maxWidth*bytesPerColumn(height)),
		m: Metrics{
			Kind:     Monospaced,
			Height:   height,
			MaxWidth: maxWidth,
			First:    first,
			Count:    count,
		},
	}
	return t, nil
}

type tinyfontFont struct {
	face   tinyfont.Fonter
	m      Metrics
	ascent int
	glyph  int
	cols   []byte
}

func (f *tinyfontFont) Metrics() Metrics {
	return f.m
}

func (f *tinyfontFont) GlyphByte(glyph, i int) byte {
	if glyph < 0 || glyph >= f.m.Count || i < 0 || i >= len(f.cols) {
		return 0
	}
	if glyph != f.glyph {
		f.load(glyph)
	}
	return f.cols[i]
}

// load rasterizes one glyph into the column cache.
func (f *tinyfontFont) load(glyph int) {
	for i := range f.cols {
		f.cols[i] = 0
	}
	g := f.face.GetGlyph(f.m.First + rune(glyph))
	rec := recorder{
		cols:   f.cols,
		bpc:    bytesPerColumn(f.m.Height),
		width:  f.m.MaxWidth,
		height: f.m.Height,
	}
	g.Draw(&rec, 0, int16(f.ascent), color.RGBA{A: 0xFF})
	f.glyph = glyph
}

// recorder captures SetPixel calls into column-packed bytes. Pixels outside
// the cell are dropped.
type recorder struct {
	cols   []byte
	bpc    int
	width  int
	height int
}

func (r *recorder) Size() (int16, int16) {
	return int16(r.width), int16(r.height)
}

func (r *recorder) SetPixel(x, y int16, _ color.RGBA) {
	if x < 0 || y < 0 || int(x) >= r.width || int(y) >= r.height {
		return
	}
	r.cols[int(x)*r.bpc+int(y)/8] |= 1 << uint(int(y)%8)
}

func (r *recorder) Display() error {
	return nil
}

var _ drivers.Displayer = &recorder{}
