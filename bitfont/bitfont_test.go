// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitfont

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// testFace builds a basicfont.Face with the given cell height and two glyphs
// ('A' and 'B') on a 2 pixel wide mask inside a 3 pixel advance.
func testFace(ascent, descent int, pixels map[rune][][2]int) *basicfont.Face {
	height := ascent + descent
	mask := image.NewAlpha(image.Rect(0, 0, 2, 2*height))
	for r, pts := range pixels {
		base := int(r-'A') * height
		for _, pt := range pts {
			mask.SetAlpha(pt[0], base+pt[1], color.Alpha{A: 0xFF})
		}
	}
	return &basicfont.Face{
		Advance: 3,
		Width:   2,
		Left:    0,
		Ascent:  ascent,
		Descent: descent,
		Height:  height,
		Mask:    mask,
		Ranges:  []basicfont.Range{{Low: 'A', High: 'C', Offset: 0}},
	}
}

func TestFromBasicfontSingleByteColumns(t *testing.T) {
	f, err := FromBasicfont(testFace(4, 1, map[rune][][2]int{
		'A': {{0, 0}, {0, 4}},
		'B': {{1, 2}},
	}))
	if err != nil {
		t.Fatal(err)
	}
	want := Metrics{Kind: Monospaced, Height: 5, MaxWidth: 3, First: 'A', Count: 2}
	if diff := cmp.Diff(f.Metrics(), want); diff != "" {
		t.Fatalf("unexpected metrics:\n%s", diff)
	}
	for _, tc := range []struct {
		glyph, i int
		want     byte
	}{
		{0, 0, 0x11}, // rows 0 and 4 of column 0
		{0, 1, 0x00},
		{0, 2, 0x00}, // column past the mask width stays blank
		{1, 0, 0x00},
		{1, 1, 0x04}, // row 2 of column 1
		{2, 0, 0x00}, // out of range glyph
		{0, 3, 0x00}, // out of range byte
	} {
		if got := f.GlyphByte(tc.glyph, tc.i); got != tc.want {
			t.Errorf("GlyphByte(%d, %d) = %#02x, want %#02x", tc.glyph, tc.i, got, tc.want)
		}
	}
}

func TestFromBasicfontDoubleByteColumns(t *testing.T) {
	f, err := FromBasicfont(testFace(8, 4, map[rune][][2]int{
		'A': {{0, 0}, {1, 9}},
		'B': {{0, 11}},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Metrics().Height; got != 12 {
		t.Fatalf("Height = %d, want 12", got)
	}
	for _, tc := range []struct {
		glyph, i int
		want     byte
	}{
		{0, 0, 0x01}, // row 0 of column 0, first byte
		{0, 1, 0x00},
		{0, 2, 0x00},
		{0, 3, 0x02}, // row 9 of column 1, second byte bit 1
		{1, 1, 0x08}, // row 11 of column 0, second byte bit 3
	} {
		if got := f.GlyphByte(tc.glyph, tc.i); got != tc.want {
			t.Errorf("GlyphByte(%d, %d) = %#02x, want %#02x", tc.glyph, tc.i, got, tc.want)
		}
	}
}

func TestFromBasicfontErrors(t *testing.T) {
	if _, err := FromBasicfont(testFace(12, 8, nil)); err == nil {
		t.Error("expected an error for a 20 pixel tall face")
	}
	if _, err := FromBasicfont(&basicfont.Face{Advance: 3, Ascent: 4, Descent: 1}); err == nil {
		t.Error("expected an error for a face without ranges")
	}
}

func TestDefaultFonts(t *testing.T) {
	fonts := DefaultFonts()
	if len(fonts) != 3 {
		t.Fatalf("len(DefaultFonts()) = %d, want 3", len(fonts))
	}
	want := []Metrics{
		{Kind: Monospaced, Height: 13, MaxWidth: 7, First: ' ', Count: 95},
		{Kind: Monospaced, Height: 16, MaxWidth: 8, First: ' ', Count: 95},
		{Kind: Monospaced, Height: 16, MaxWidth: 8, First: ' ', Count: 95},
	}
	for i, f := range fonts {
		if diff := cmp.Diff(f.Metrics(), want[i]); diff != "" {
			t.Errorf("font %d: unexpected metrics:\n%s", i, diff)
		}
		// The space glyph is blank, 'A' is not.
		bpc := bytesPerColumn(f.Metrics().Height)
		blank, inked := true, false
		for i2 := 0; i2 < f.Metrics().MaxWidth*bpc; i2++ {
			if f.GlyphByte(0, i2) != 0 {
				blank = false
			}
			if f.GlyphByte(int('A'-' '), i2) != 0 {
				inked = true
			}
		}
		if !blank {
			t.Errorf("font %d: space glyph has ink", i)
		}
		if !inked {
			t.Errorf("font %d: 'A' glyph is blank", i)
		}
	}
}

// fakeFonter implements tinyfont.Fonter with a reusable glyph, the same way
// embedded font tables do.
type fakeFonter struct {
	yAdvance uint8
	info     tinyfont.GlyphInfo
	draw     func(d drivers.Displayer, r rune, x, y int16)
	g        fakeGlyph
}

func (f *fakeFonter) GetYAdvance() uint8 {
	return f.yAdvance
}

func (f *fakeFonter) GetGlyph(r rune) tinyfont.Glypher {
	f.g.f = f
	f.g.r = r
	return &f.g
}

type fakeGlyph struct {
	f *fakeFonter
	r rune
}

func (g *fakeGlyph) Info() tinyfont.GlyphInfo {
	info := g.f.info
	info.Rune = g.r
	return info
}

func (g *fakeGlyph) Draw(d drivers.Displayer, x, y int16, _ color.RGBA) {
	if g.f.draw != nil {
		g.f.draw(d, g.r, x, y)
	}
}

func TestFromTinyfont(t *testing.T) {
	f := &fakeFonter{
		yAdvance: 4,
		info:     tinyfont.GlyphInfo{Width: 2, Height: 3, XAdvance: 3, YOffset: -2},
		draw: func(d drivers.Displayer, r rune, x, y int16) {
			switch r {
			case 'A': // vertical bar over the full glyph height
				for row := int16(0); row < 3; row++ {
					d.SetPixel(x, y-2+row, color.RGBA{A: 0xFF})
				}
			case 'B': // single dot on the baseline
				d.SetPixel(x+1, y, color.RGBA{A: 0xFF})
			}
		},
	}
	font, err := FromTinyfont(f, 'A', 2)
	if err != nil {
		t.Fatal(err)
	}
	want := Metrics{Kind: Monospaced, Height: 4, MaxWidth: 3, First: 'A', Count: 2}
	if diff := cmp.Diff(font.Metrics(), want); diff != "" {
		t.Fatalf("unexpected metrics:\n%s", diff)
	}
	if got := font.GlyphByte(0, 0); got != 0x07 {
		t.Errorf("GlyphByte(0, 0) = %#02x, want 0x07", got)
	}
	if got := font.GlyphByte(1, 1); got != 0x04 {
		t.Errorf("GlyphByte(1, 1) = %#02x, want 0x04", got)
	}
	// Back to the first glyph, exercising the cache reload.
	if got := font.GlyphByte(0, 0); got != 0x07 {
		t.Errorf("GlyphByte(0, 0) after reload = %#02x, want 0x07", got)
	}
	if got := font.GlyphByte(0, 1); got != 0x00 {
		t.Errorf("GlyphByte(0, 1) = %#02x, want 0x00", got)
	}
}

func TestFromTinyfontTallCell(t *testing.T) {
	f := &fakeFonter{
		yAdvance: 12,
		info:     tinyfont.GlyphInfo{Width: 1, Height: 10, XAdvance: 2, YOffset: -9},
		draw: func(d drivers.Displayer, r rune, x, y int16) {
			d.SetPixel(x, y, color.RGBA{A: 0xFF}) // baseline row 9
		},
	}
	font, err := FromTinyfont(f, 'A', 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := font.Metrics().Height; got != 12 {
		t.Fatalf("Height = %d, want 12", got)
	}
	if got := font.GlyphByte(0, 1); got != 0x02 {
		t.Errorf("GlyphByte(0, 1) = %#02x, want 0x02", got)
	}
	if got := font.GlyphByte(0, 0); got != 0x00 {
		t.Errorf("GlyphByte(0, 0) = %#02x, want 0x00", got)
	}
}

func TestFromTinyfontErrors(t *testing.T) {
	f := &fakeFonter{yAdvance: 20, info: tinyfont.GlyphInfo{XAdvance: 2}}
	if _, err := FromTinyfont(f, 'A', 1); err == nil {
		t.Error("expected an error for a 20 pixel tall cell")
	}
	f.yAdvance = 8
	if _, err := FromTinyfont(f, 'A', 0); err == nil {
		t.Error("expected an error for an empty rune range")
	}
	f.info.XAdvance = 0
	if _, err := FromTinyfont(f, 'A', 1); err == nil {
		t.Error("expected an error for zero width glyphs")
	}
}
