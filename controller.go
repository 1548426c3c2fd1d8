// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pdi

// Commands understood by the chip-on-glass driver. The update protocol never
// touches any other register.
const (
	panelSetting        byte = 0x00 // a zero payload performs the soft reset
	turnOffDCDC         byte = 0x02
	powerOn             byte = 0x04
	previousFrame       byte = 0x10
	displayRefresh      byte = 0x12
	currentFrame        byte = 0x13
	activateTemperature byte = 0xE0
	inputTemperature    byte = 0xE5
)

// controller describes the register level access to the panel.
type controller interface {
	sendIndexData(index byte, data []byte)
	sendCommand(cmd byte)
	deselect()
	waitUntilIdle()
}

// initDisplay soft resets the chip-on-glass driver and programs the refresh
// waveform for the ambient temperature.
func initDisplay(ctrl controller, opts *Opts) {
	ctrl.sendIndexData(panelSetting, []byte{0x00})
	ctrl.waitUntilIdle()

	ctrl.sendIndexData(inputTemperature, []byte{byte(opts.Temperature) | 0x40})
	ctrl.sendIndexData(activateTemperature, []byte{0x02})

	// Panel settings for the small and medium size class.
	ctrl.sendIndexData(panelSetting, []byte{0xCF | 0x10, 0x8D | 0x02})
}

// sendImage transfers both frames. The previous one lets the chip-on-glass
// driver derive the per-pixel transition waveform.
func sendImage(ctrl controller, previous, next []byte) {
	ctrl.sendIndexData(previousFrame, previous)
	ctrl.sendIndexData(currentFrame, next)
}

// updateDisplay powers the charge pump and triggers the refresh.
func updateDisplay(ctrl controller) {
	ctrl.sendCommand(powerOn)
	ctrl.deselect()
	ctrl.waitUntilIdle()

	ctrl.sendCommand(displayRefresh)
	ctrl.deselect()
	ctrl.waitUntilIdle()
}

// powerOffDisplay turns the charge pump back off.
func powerOffDisplay(ctrl controller) {
	ctrl.sendCommand(turnOffDCDC)
	ctrl.deselect()
	ctrl.waitUntilIdle()
}
