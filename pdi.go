// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pdi

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/pdi/bitfont"
	"periph.io/x/devices/v3/pdi/image1bit"
	"periph.io/x/host/v3/rpi"
)

// Color describes the logical colors the panel can show. Gray is simulated
// with a checkerboard of black and white pixels.
type Color int

// Valid colors.
const (
	Black Color = iota
	White
	Gray
)

// Set implements flag.Value.
func (c *Color) Set(s string) error {
	switch s {
	case "black":
		*c = Black
	case "white":
		*c = White
	case "gray", "grey":
		*c = Gray
	default:
		return fmt.Errorf("unknown color %q: expected black, white or gray", s)
	}
	return nil
}

// String implements fmt.Stringer.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Gray:
		return "gray"
	default:
		return "unknown"
	}
}

// Opts defines the panel configuration.
type Opts struct {
	// Width is the short edge of the panel, in pixels.
	Width int
	// Height is the long edge of the panel, in pixels.
	Height int
	// Temperature is the ambient temperature in degrees Celsius, used to
	// tune the refresh waveform. 0 selects the 25C default.
	Temperature int
	// BusyTimeout bounds every single wait on the busy line. 0 selects the
	// 32s worst case refresh bound.
	BusyTimeout time.Duration
	// Fonts is the font table used by Text, smallest first. An empty table
	// selects bitfont.DefaultFonts().
	Fonts []bitfont.Font
}

// EPD2in71 contains the configuration for the 2.71 inch panel.
var EPD2in71 = Opts{
	Width:  176,
	Height: 264,
}

// EPD3in70 contains the configuration for the 3.70 inch panel.
var EPD3in70 = Opts{
	Width:  240,
	Height: 416,
}

// Dev defines the handler which is used to access the panel.
type Dev struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIO

	opts      *Opts
	maxTxSize int

	// next receives all drawing; previous mirrors what the panel shows.
	next     *image1bit.HorizontalMSB
	previous *image1bit.HorizontalMSB

	orientation int
	penSolid    bool
	invert      bool

	fontIndex  int
	fontSolid  bool
	fontSpaceX int
	fontSpaceY int
}

// New creates new handler which is used to access the panel.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIO, opts *Opts) (*Dev, error) {
	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	o := *opts
	if o.Temperature == 0 {
		o.Temperature = 25
	}
	if o.BusyTimeout == 0 {
		o.BusyTimeout = 32 * time.Second
	}
	if len(o.Fonts) == 0 {
		o.Fonts = bitfont.DefaultFonts()
	}
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096 // spidev default.
	}

	d := &Dev{
		c:          c,
		dc:         dc,
		cs:         cs,
		rst:        rst,
		busy:       busy,
		opts:       &o,
		maxTxSize:  maxTxSize,
		next:       image1bit.NewHorizontalMSB(image.Rect(0, 0, o.Width, o.Height)),
		previous:   image1bit.NewHorizontalMSB(image.Rect(0, 0, o.Width, o.Height)),
		fontSpaceX: 1,
		fontSpaceY: 1,
	}

	return d, nil
}

// NewEXT3 creates new handler for an EXT3-1 extension board wired to a
// Raspberry Pi in the default configuration.
func NewEXT3(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return New(p, dc, cs, rst, busy, opts)
}

// Init performs the hardware reset sequence. It must be called once after
// power up, before the first Flush.
func (d *Dev) Init() error {
	eh := errorHandler{d: *d}

	eh.csOut(gpio.High)
	time.Sleep(resetSettle)
	eh.rstOut(gpio.High)
	time.Sleep(resetSettle)
	eh.rstOut(gpio.Low)
	time.Sleep(resetHold)
	eh.rstOut(gpio.High)
	time.Sleep(resetSettle)
	eh.csOut(gpio.High)
	time.Sleep(resetSettle)

	return eh.err
}

// Flush sends both frames to the panel and refreshes it. The previous frame
// is kept in step so the chip-on-glass driver sees the right transition for
// every pixel.
func (d *Dev) Flush() error {
	eh := errorHandler{d: *d}

	initDisplay(&eh, d.opts)
	sendImage(&eh, d.previous.Pix, d.next.Pix)
	if eh.err == nil {
		copy(d.previous.Pix, d.next.Pix)
	}
	updateDisplay(&eh)
	powerOffDisplay(&eh)

	return eh.err
}

// Clear fills the frame buffer with one color. The panel is not refreshed.
func (d *Dev) Clear(c Color) {
	switch {
	case c == Gray:
		for row := 0; row < d.opts.Height; row++ {
			pattern := byte(0xAA)
			if row%2 == 1 {
				pattern = 0x55
			}
			start := row * d.next.Stride
			for i := start; i < start+d.next.Stride; i++ {
				d.next.Pix[i] = pattern
			}
		}
	case (c == White) != d.invert:
		for i := range d.next.Pix {
			d.next.Pix[i] = 0x00
		}
	default:
		for i := range d.next.Pix {
			d.next.Pix[i] = 0xFF
		}
	}
}

// Regenerate flashes the panel black then white to purge ghosting. It takes
// two full refresh cycles.
func (d *Dev) Regenerate() error {
	d.Clear(Black)
	if err := d.Flush(); err != nil {
		return err
	}
	time.Sleep(regeneratePause)

	d.Clear(White)
	if err := d.Flush(); err != nil {
		return err
	}
	time.Sleep(regeneratePause)

	return nil
}

// Invert swaps the meaning of black and white for subsequent drawing.
func (d *Dev) Invert(flag bool) {
	d.invert = flag
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. The rectangle follows the logical
// orientation set with SetOrientation.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.SizeX(), d.SizeY())
}

// Draw implements display.Drawer. The source is composited into the frame
// buffer through the current orientation, then the panel is refreshed.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := White
			if image1bit.BitModel.Convert(src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)) == image1bit.On {
				c = Black
			}
			d.Point(x, y, c)
		}
	}
	return d.Flush()
}

// Halt turns off the panel's charge pump. The image shown stays visible.
func (d *Dev) Halt() error {
	eh := errorHandler{d: *d}
	powerOffDisplay(&eh)
	return eh.err
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("pdi.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.SizeX(), d.SizeY())
}

var _ display.Drawer = &Dev{}
