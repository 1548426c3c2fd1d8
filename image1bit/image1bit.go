// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image1bit implements black and white (1 bit per pixel) 2D graphics
// for panels that pack eight horizontal pixels per byte, most significant bit
// first.
//
// It is compatible with package image/draw.
package image1bit

import (
	"image"
	"image/color"
	"image/draw"
)

// Bit implements a 1 bit color.
//
// On is a set bit, rendered as black ink on paper displays. Off is a cleared
// bit, the white background.
type Bit bool

// RGBA returns either all black or all white.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 0, 0, 0, 65535
	}
	return 65535, 65535, 65535, 65535
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// Possible bitness.
const (
	On  = Bit(true)
	Off = Bit(false)
)

// BitModel is the color model for 1 bit color.
var BitModel = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	return convertBit(c)
}

// convertBit maps dark colors to On (ink) and light ones to Off (paper).
func convertBit(c color.Color) Bit {
	switch t := c.(type) {
	case Bit:
		return t
	default:
		r, g, b, _ := t.RGBA()
		y := (299*r + 587*g + 114*b) / 1000
		return Bit(y < 0x8000)
	}
}

// HorizontalMSB is a black and white image.
//
// Each byte covers eight horizontal pixels, most significant bit first: the
// first byte holds pixels (0,0) through (7,0) with (0,0) in bit 7.
type HorizontalMSB struct {
	// Pix holds the image's pixels, as a horizontally MSB-first packed bitmap.
	Pix []byte
	// Stride is the Pix stride between vertically adjacent pixels, in bytes.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewHorizontalMSB returns an initialized HorizontalMSB instance.
//
// Rows are padded up to a byte boundary when the width is not a multiple of
// eight.
func NewHorizontalMSB(r image.Rectangle) *HorizontalMSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalMSB{Rect: r}
	}
	stride := (w + 7) / 8
	return &HorizontalMSB{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (i *HorizontalMSB) ColorModel() color.Model {
	return BitModel
}

// Bounds implements image.Image.
func (i *HorizontalMSB) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *HorizontalMSB) At(x, y int) color.Color {
	return i.BitAt(x, y)
}

// BitAt is the optimized version of At(). Out of bounds access returns Off.
func (i *HorizontalMSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return Off
	}
	offset, mask := i.pixOffset(x, y)
	return Bit(i.Pix[offset]&mask != 0)
}

// Set implements draw.Image.
func (i *HorizontalMSB) Set(x, y int, c color.Color) {
	i.SetBit(x, y, convertBit(c))
}

// SetBit is the optimized version of Set(). Out of bounds access is ignored.
func (i *HorizontalMSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return
	}
	offset, mask := i.pixOffset(x, y)
	if b {
		i.Pix[offset] |= mask
	} else {
		i.Pix[offset] &^= mask
	}
}

func (i *HorizontalMSB) pixOffset(x, y int) (int, byte) {
	x -= i.Rect.Min.X
	y -= i.Rect.Min.Y
	return y*i.Stride + x/8, 0x80 >> uint(x&7)
}

var _ draw.Image = &HorizontalMSB{}
