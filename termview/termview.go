// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview implements a display.Drawer that renders 1-bit frames to
// the terminal (stdout) using ANSI color codes.
//
// Useful while you are waiting for your e-paper panel to come by mail.
package termview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/pdi/image1bit"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width and Height describe the frame size in pixels.
	Width  int
	Height int
	// Scale is the number of pixel columns shown per character cell. A cell
	// covers twice as many pixel rows since terminal cells are roughly twice
	// as tall as they are wide. 0 means 1.
	Scale   int
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is an e-paper panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	width   int
	height  int
	scale   int
	rows    int
	palette ansi256.Palette

	buffer  *image1bit.HorizontalMSB
	painted bool
	buf     bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// Permits to do local testing of e-paper rendering.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	return &Dev{
		w:       colorable.NewColorableStdout(),
		width:   opts.Width,
		height:  opts.Height,
		scale:   scale,
		rows:    (opts.Height + 2*scale - 1) / (2 * scale),
		palette: *p,
		buffer:  image1bit.NewHorizontalMSB(image.Rect(0, 0, opts.Width, opts.Height)),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermView{%dx%d}", d.width, d.height)
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Write accepts a packed 1-bit frame, as sent to a panel, and renders it.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer.Pix) {
		return 0, errors.New("invalid 1-bit frame length")
	}
	copy(d.buffer.Pix, pixels)
	return len(pixels), d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	draw.Draw(d.buffer, r, src, sp, draw.Src)
	return d.refresh()
}

// inked reports whether any pixel under the character cell at x, y is set.
// Sampling every covered pixel keeps single pixel lines visible at any
// scale.
func (d *Dev) inked(x, y int) bool {
	for dy := 0; dy < 2*d.scale && y+dy < d.height; dy++ {
		for dx := 0; dx < d.scale && x+dx < d.width; dx++ {
			if d.buffer.BitAt(x+dx, y+dy) == image1bit.On {
				return true
			}
		}
	}
	return false
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.painted {
		// Move back over the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA", d.rows)
	}
	d.painted = true
	black := color.NRGBA{A: 255}
	white := color.NRGBA{255, 255, 255, 255}
	for y := 0; y < d.height; y += 2 * d.scale {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < d.width; x += d.scale {
			c := white
			if d.inked(x, y) {
				c = black
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
