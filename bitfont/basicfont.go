// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitfont

import (
	"fmt"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
)

// FromBasicfont adapts a basicfont.Face into a column-packed Font.
//
// The cell is Advance pixels wide and Ascent+Descent pixels tall; the covered
// runes come from the face's first range. Faces taller than sixteen pixels do
// not fit two bytes per column and are rejected.
func FromBasicfont(f *basicfont.Face) (Font, error) {
	if len(f.Ranges) == 0 {
		return nil, fmt.Errorf("bitfont: face has no rune ranges")
	}
	height := f.Ascent + f.Descent
	if height <= 0 || height > 16 {
		return nil, fmt.Errorf("bitfont: cell height %d is outside the supported 1 to 16 pixels", height)
	}
	if f.Advance <= 0 {
		return nil, fmt.Errorf("bitfont: invalid advance %d", f.Advance)
	}
	r := f.Ranges[0]
	return &basicfontFont{
		face: f,
		m: Metrics{
			Kind:     Monospaced,
			Height:   height,
			MaxWidth: f.Advance,
			First:    r.Low,
			Count:    int(r.High - r.Low),
		},
	}, nil
}

// DefaultFonts returns three faces from golang.org/x/image in increasing
// size. They are the stock font table for text rendering on small
// monochrome panels.
func DefaultFonts() []Font {
	// These faces are known to fit the column limits, so the errors are
	// not reachable.
	small, _ := FromBasicfont(basicfont.Face7x13)
	regular, _ := FromBasicfont(inconsolata.Regular8x16)
	bold, _ := FromBasicfont(inconsolata.Bold8x16)
	return []Font{small, regular, bold}
}

type basicfontFont struct {
	face *basicfont.Face
	m    Metrics
}

func (f *basicfontFont) Metrics() Metrics {
	return f.m
}

func (f *basicfontFont) GlyphByte(glyph, i int) byte {
	bpc := bytesPerColumn(f.m.Height)
	col := i / bpc
	seg := i % bpc
	if glyph < 0 || glyph >= f.m.Count || col < 0 || col >= f.m.MaxWidth {
		return 0
	}
	r := f.m.First + rune(glyph)
	maskY := -1
	for _, rng := range f.face.Ranges {
		if r < rng.Low || rng.High <= r {
			continue
		}
		maskY = (int(r-rng.Low) + rng.Offset) * f.m.Height
		break
	}
	if maskY < 0 {
		return 0
	}
	// The mask is narrower than the advance; trailing columns stay blank.
	maskX := col - f.face.Left
	if maskX < 0 || maskX >= f.face.Width {
		return 0
	}
	var out byte
	for j := 0; j < 8; j++ {
		row := seg*8 + j
		if row >= f.m.Height {
			break
		}
		if _, _, _, a := f.face.Mask.At(maskX, maskY+row).RGBA(); a >= 0x8000 {
			out |= 1 << uint(j)
		}
	}
	return out
}
