// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pdi

import (
	"periph.io/x/devices/v3/pdi/image1bit"
)

// orientCoordinates maps logical coordinates to the portrait frame buffer.
// ok is false when the point falls outside the logical screen.
func (d *Dev) orientCoordinates(x, y int) (int, int, bool) {
	h := d.opts.Width
	v := d.opts.Height
	switch d.orientation {
	case 1:
		if x < 0 || x >= v || y < 0 || y >= h {
			return 0, 0, false
		}
		return x, h - 1 - y, true
	case 2:
		if x < 0 || x >= h || y < 0 || y >= v {
			return 0, 0, false
		}
		return v - 1 - y, h - 1 - x, true
	case 3:
		if x < 0 || x >= v || y < 0 || y >= h {
			return 0, 0, false
		}
		return v - 1 - x, y, true
	default:
		if x < 0 || x >= h || y < 0 || y >= v {
			return 0, 0, false
		}
		return y, x, true
	}
}

// SetOrientation sets the logical rotation: 0 is the native portrait, each
// step is a quarter turn. The pseudo values 6 and 7 pick the rotation from
// the panel geometry, 6 for portrait and 7 for landscape. Other input is
// reduced modulo 4.
func (d *Dev) SetOrientation(orientation int) {
	switch orientation {
	case 6:
		d.orientation = 0
		if d.SizeX() > d.SizeY() {
			d.orientation = 1
		}
	case 7:
		d.orientation = 0
		if d.SizeX() < d.SizeY() {
			d.orientation = 1
		}
	default:
		d.orientation = ((orientation % 4) + 4) % 4
	}
}

// Orientation returns the current rotation.
func (d *Dev) Orientation() int {
	return d.orientation
}

// SizeX returns the screen width in the current orientation.
func (d *Dev) SizeX() int {
	if d.orientation == 1 || d.orientation == 3 {
		return d.opts.Height
	}
	return d.opts.Width
}

// SizeY returns the screen height in the current orientation.
func (d *Dev) SizeY() int {
	if d.orientation == 1 || d.orientation == 3 {
		return d.opts.Width
	}
	return d.opts.Height
}

// Point draws a single pixel. Out of range coordinates are ignored.
func (d *Dev) Point(x, y int, c Color) {
	x1, y1, ok := d.orientCoordinates(x, y)
	if !ok {
		return
	}
	if c == Gray {
		if (x1+y1)%2 == 0 {
			c = Black
		} else {
			c = White
		}
	}
	// The buffer is portrait: x1 spans the long edge, y1 the short one.
	if (c == White) != d.invert {
		d.next.SetBit(y1, x1, image1bit.Off)
	} else if (c == Black) != d.invert {
		d.next.SetBit(y1, x1, image1bit.On)
	}
}

// ReadPixel returns the frame buffer color at the given position, which may
// not be on the panel yet. Out of range coordinates return Black. Invert is
// not consulted.
func (d *Dev) ReadPixel(x, y int) Color {
	x1, y1, ok := d.orientCoordinates(x, y)
	if !ok {
		return Black
	}
	if d.next.BitAt(y1, x1) == image1bit.On {
		return Black
	}
	return White
}

// Line draws a segment between two points, both included.
func (d *Dev) Line(x1, y1, x2, y2 int, c Color) {
	if x1 == x2 && y1 == y2 {
		d.Point(x1, y1, c)
	} else if x1 == x2 {
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		for y := y1; y <= y2; y++ {
			d.Point(x1, y, c)
		}
	} else if y1 == y2 {
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		for x := x1; x <= x2; x++ {
			d.Point(x, y1, c)
		}
	} else {
		steep := abs(y2-y1) > abs(x2-x1)
		if steep {
			x1, y1 = y1, x1
			x2, y2 = y2, x2
		}
		if x1 > x2 {
			x1, x2 = x2, x1
			y1, y2 = y2, y1
		}
		dx := x2 - x1
		dy := abs(y2 - y1)
		err := dx / 2
		ystep := -1
		if y1 < y2 {
			ystep = 1
		}
		for ; x1 <= x2; x1++ {
			if steep {
				d.Point(y1, x1, c)
			} else {
				d.Point(x1, y1, c)
			}
			err -= dy
			if err < 0 {
				y1 += ystep
				err += dx
			}
		}
	}
}

// DLine draws a segment from an origin and an extent.
func (d *Dev) DLine(x0, y0, dx, dy int, c Color) {
	d.Line(x0, y0, x0+dx-1, y0+dy-1, c)
}

// Rectangle draws a rectangle between two corners, outlined or filled
// depending on SetPenSolid.
func (d *Dev) Rectangle(x1, y1, x2, y2 int, c Color) {
	if !d.penSolid {
		d.Line(x1, y1, x1, y2, c)
		d.Line(x1, y1, x2, y1, c)
		d.Line(x1, y2, x2, y2, c)
		d.Line(x2, y1, x2, y2, c)
	} else {
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		for x := x1; x <= x2; x++ {
			for y := y1; y <= y2; y++ {
				d.Point(x, y, c)
			}
		}
	}
}

// DRectangle draws a rectangle from an origin and an extent.
func (d *Dev) DRectangle(x0, y0, dx, dy int, c Color) {
	d.Rectangle(x0, y0, x0+dx-1, y0+dy-1, c)
}

// Circle draws a circle, outlined or filled depending on SetPenSolid. The
// filled variant finishes with a solid square over the remaining core.
func (d *Dev) Circle(x0, y0, radius int, c Color) {
	f := 1 - radius
	ddFx := 1
	ddFy := -2 * radius
	x := 0
	y := radius

	if !d.penSolid {
		d.Point(x0, y0+radius, c)
		d.Point(x0, y0-radius, c)
		d.Point(x0+radius, y0, c)
		d.Point(x0-radius, y0, c)
		for x < y {
			if f >= 0 {
				y--
				ddFy += 2
				f += ddFy
			}
			x++
			ddFx += 2
			f += ddFx
			d.Point(x0+x, y0+y, c)
			d.Point(x0-x, y0+y, c)
			d.Point(x0+x, y0-y, c)
			d.Point(x0-x, y0-y, c)
			d.Point(x0+y, y0+x, c)
			d.Point(x0-y, y0+x, c)
			d.Point(x0+y, y0-x, c)
			d.Point(x0-y, y0-x, c)
		}
	} else {
		for x < y {
			if f >= 0 {
				y--
				ddFy += 2
				f += ddFy
			}
			x++
			ddFx += 2
			f += ddFx
			d.Line(x0+x, y0+y, x0-x, y0+y, c)
			d.Line(x0+x, y0-y, x0-x, y0-y, c)
			d.Line(x0+y, y0-x, x0+y, y0+x, c)
			d.Line(x0-y, y0-x, x0-y, y0+x, c)
		}
		d.SetPenSolid(true)
		d.Rectangle(x0-x, y0-y, x0+x, y0+y, c)
	}
}

// SetPenSolid selects between outlined and filled rectangles and circles.
func (d *Dev) SetPenSolid(flag bool) {
	d.penSolid = flag
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
