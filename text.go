// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pdi

import (
	"unicode/utf8"
)

// SelectFont switches the active font. The index is clamped to the available
// table.
func (d *Dev) SelectFont(font int) {
	if font >= len(d.opts.Fonts) {
		font = len(d.opts.Fonts) - 1
	}
	if font < 0 {
		font = 0
	}
	d.fontIndex = font
}

// Font returns the active font index.
func (d *Dev) Font() int {
	return d.fontIndex
}

// FontMax returns the number of available fonts.
func (d *Dev) FontMax() int {
	return len(d.opts.Fonts)
}

// SetFontSolid paints the glyph background in the back color when set.
func (d *Dev) SetFontSolid(flag bool) {
	d.fontSolid = flag
}

// SetFontSpaceX sets the horizontal margin reported by CharacterSizeX.
func (d *Dev) SetFontSpaceX(pixels int) {
	d.fontSpaceX = pixels
}

// SetFontSpaceY sets the vertical margin between lines of text.
func (d *Dev) SetFontSpaceY(pixels int) {
	d.fontSpaceY = pixels
}

// Text writes a string with the top left corner of the first glyph at the
// given position, in the active font. Runes the font does not cover leave
// their cell untouched.
func (d *Dev) Text(x0, y0 int, text string, textColor, backColor Color) {
	f := d.opts.Fonts[d.fontIndex]
	m := f.Metrics()
	bpc := 1
	if m.Height > 8 {
		bpc = 2
	}
	k := 0
	for _, r := range text {
		glyph := int(r - m.First)
		if glyph < 0 || glyph >= m.Count {
			k++
			continue
		}
		left := x0 + m.MaxWidth*k
		for i := 0; i < m.MaxWidth; i++ {
			line := f.GlyphByte(glyph, bpc*i)
			for j := 0; j < 8; j++ {
				if line&(1<<uint(j)) != 0 {
					d.Point(left+i, y0+j, textColor)
				} else if d.fontSolid {
					d.Point(left+i, y0+j, backColor)
				}
			}
			if bpc == 2 {
				line = f.GlyphByte(glyph, 2*i+1)
				for j := 0; j < 8; j++ {
					if line&(1<<uint(j)) != 0 {
						d.Point(left+i, y0+8+j, textColor)
					} else if d.fontSolid && j < m.Height-8 {
						d.Point(left+i, y0+8+j, backColor)
					}
				}
			}
		}
		k++
	}
}

// CharacterSizeX returns the advance of one glyph in the active font,
// including the horizontal margin.
func (d *Dev) CharacterSizeX() int {
	return d.opts.Fonts[d.fontIndex].Metrics().MaxWidth + d.fontSpaceX
}

// CharacterSizeY returns the cell height of the active font.
func (d *Dev) CharacterSizeY() int {
	return d.opts.Fonts[d.fontIndex].Metrics().Height
}

// StringSizeX returns the width of the string rendered in the active font.
func (d *Dev) StringSizeX(text string) int {
	return utf8.RuneCountInString(text) * d.opts.Fonts[d.fontIndex].Metrics().MaxWidth
}

// StringLengthToFitX returns how many leading characters of the string fit
// in the given width, keeping one cell as margin.
func (d *Dev) StringLengthToFitX(text string, pixels int) int {
	m := d.opts.Fonts[d.fontIndex].Metrics()
	n := pixels/m.MaxWidth - 1
	if count := utf8.RuneCountInString(text); n > count {
		n = count
	}
	if n < 0 {
		n = 0
	}
	return n
}
