// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pdi

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// ErrBusyTimeout is returned when the busy line does not report ready within
// Opts.BusyTimeout. The panel state is unknown at that point; Init is the
// safest recovery.
var ErrBusyTimeout = errors.New("pdi: busy line timeout")

// Timings from the vendor reference code. These are minimums, the
// chip-on-glass driver drops writes with shorter pauses.
const (
	writeSettle     = 50 * time.Millisecond
	resetSettle     = 5 * time.Millisecond
	resetHold       = 10 * time.Millisecond
	regeneratePause = 100 * time.Millisecond
	busyPoll        = 32 * time.Millisecond
)

// errorHandler is a wrapper for error management.
type errorHandler struct {
	d   Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) cTx(w []byte, r []byte) {
	if eh.err != nil {
		return
	}
	if r == nil {
		// Full frames exceed the bus driver's transfer limit.
		for len(w) > 0 {
			chunk := w
			if len(chunk) > eh.d.maxTxSize {
				chunk = chunk[:eh.d.maxTxSize]
			}
			if eh.err = eh.d.c.Tx(chunk, nil); eh.err != nil {
				return
			}
			w = w[len(chunk):]
		}
		return
	}
	eh.err = eh.d.c.Tx(w, r)
}

// sendCommand writes a bare command byte and leaves the chip selected so the
// busy line can be observed; deselect releases it.
func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	time.Sleep(writeSettle)
	eh.cTx([]byte{cmd}, nil)
	time.Sleep(writeSettle)
}

func (eh *errorHandler) deselect() {
	eh.csOut(gpio.High)
}

// sendIndexData writes a register index followed by its payload, with the
// chip select released in between.
func (eh *errorHandler) sendIndexData(index byte, data []byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	time.Sleep(writeSettle)
	eh.cTx([]byte{index}, nil)
	time.Sleep(writeSettle)
	eh.csOut(gpio.High)

	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	time.Sleep(writeSettle)
	eh.cTx(data, nil)
	time.Sleep(writeSettle)
	eh.csOut(gpio.High)
}

// waitUntilIdle polls until the busy line reports ready. The line is low
// while the chip-on-glass driver works, the opposite of the SSD16xx panels.
func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	deadline := time.Now().Add(eh.d.opts.BusyTimeout)
	for eh.d.busy.Read() == gpio.Low {
		if time.Now().After(deadline) {
			eh.err = ErrBusyTimeout
			return
		}
		time.Sleep(busyPoll)
	}
}
